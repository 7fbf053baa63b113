// Package catalog reads the table list stored on page 1 of a container.
package catalog

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
)

// CatalogPage is the page holding the catalog table.
const CatalogPage uint32 = 1

type PageFetcher interface {
	Fetch(pageNo uint32) (*storage.Page, error)
}

var _ PageFetcher = (*storage.Pager)(nil)

// Load fetches and decodes the catalog page and returns its table entries
// in scan order.
func Load(pf PageFetcher) ([]TableEntry, error) {
	p, err := pf.Fetch(CatalogPage)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	rows, err := record.DecodeLeafPage(p)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Entries(rows), nil
}

// Entries turns catalog rows into table entries. Rows without a name or
// with a zero root page are dropped, as are rows typed as something other
// than a table (indexes, views, triggers).
func Entries(rows []record.Row) []TableEntry {
	out := make([]TableEntry, 0, len(rows))
	for _, row := range rows {
		name, _ := row.Column(colTblName).AsText()
		root := rootPage(row.Column(colRootPage))
		typ, typed := row.Column(colType).AsText()

		if name == "" || root == 0 || (typed && typ != TypeTable) {
			slog.Debug("catalog: skip entry", "rowid", row.RowID, "type", typ, "name", name, "root", root)
			continue
		}

		objName, _ := row.Column(colName).AsText()
		sql, _ := row.Column(colSQL).AsText()
		out = append(out, TableEntry{
			Name:       name,
			RootPage:   root,
			Type:       typ,
			ObjectName: objName,
			SQL:        sql,
		})
	}
	return out
}

// Find returns the first entry whose name matches exactly.
func Find(entries []TableEntry, name string) (TableEntry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return TableEntry{}, false
}

// Names returns entry names in order.
func Names(entries []TableEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func rootPage(v record.Value) uint32 {
	n, ok := v.AsInteger()
	if !ok || n <= 0 || n > math.MaxUint32 {
		return 0
	}
	return uint32(n)
}
