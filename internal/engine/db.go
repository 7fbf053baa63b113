package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/novalite/internal/catalog"
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
)

var ErrTableNotFound = errors.New("novalite: table not found")

type TableReader interface {
	Info() Info
	ListTables() ([]string, error)
	ReadTable(name string) ([]record.Row, error)
}

var _ TableReader = (*Database)(nil)

// Info is the container metadata cached at open time.
type Info struct {
	PageSize   int    `json:"page_size"`
	TableCount uint16 `json:"table_count"`
}

// Database is an open container. It caches only the parsed file header and
// holds no file handle, so it is safe for concurrent use.
type Database struct {
	header storage.FileHeader
	pages  catalog.PageFetcher
}

// Open reads the file header of path and returns a handle to it.
func Open(path string) (*Database, error) {
	h, err := storage.ReadFileHeader(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("engine: open", "path", path, "page_size", h.PageSize, "tables", h.TableCount)

	return &Database{
		header: *h,
		pages:  storage.NewPager(path, h.PageSize),
	}, nil
}

func (db *Database) Info() Info {
	return Info{PageSize: db.header.PageSize, TableCount: db.header.TableCount}
}

// Header returns a copy of the parsed file header.
func (db *Database) Header() storage.FileHeader { return db.header }

// Page fetches one raw page.
func (db *Database) Page(pageNo uint32) (*storage.Page, error) {
	return db.pages.Fetch(pageNo)
}

// Tables returns the catalog entries in scan order.
func (db *Database) Tables() ([]catalog.TableEntry, error) {
	return catalog.Load(db.pages)
}

// ListTables returns table names in catalog scan order.
func (db *Database) ListTables() ([]string, error) {
	entries, err := db.Tables()
	if err != nil {
		return nil, err
	}
	return catalog.Names(entries), nil
}

// ReadTable decodes every row on the root page of the named table. The
// lookup is exact and case-sensitive; an unknown name costs one catalog
// page read and nothing more.
func (db *Database) ReadTable(name string) ([]record.Row, error) {
	entries, err := db.Tables()
	if err != nil {
		return nil, err
	}
	entry, ok := catalog.Find(entries, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}

	p, err := db.pages.Fetch(entry.RootPage)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	rows, err := record.DecodeLeafPage(p)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	slog.Debug("engine: read table", "table", name, "root", entry.RootPage, "rows", len(rows))
	return rows, nil
}

// CountRows returns the number of rows ReadTable would return.
func (db *Database) CountRows(name string) (int, error) {
	rows, err := db.ReadTable(name)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
