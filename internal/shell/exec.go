// Package shell runs the reader's dot-commands and its small SELECT subset
// against an open database, one line at a time.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tuannm99/novalite/internal/catalog"
	"github.com/tuannm99/novalite/internal/engine"
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
)

var (
	ErrUnknownCommand   = errors.New("shell: unknown command")
	ErrUnsupportedQuery = errors.New("shell: unsupported query")
)

// Source is what the executor needs from an open database.
type Source interface {
	engine.TableReader
	Header() storage.FileHeader
	Tables() ([]catalog.TableEntry, error)
	Page(pageNo uint32) (*storage.Page, error)
}

var _ Source = (*engine.Database)(nil)

type Executor struct {
	src Source
	out io.Writer
}

func NewExecutor(src Source, out io.Writer) *Executor {
	return &Executor{src: src, out: out}
}

// Exec runs one command line.
func (e *Executor) Exec(line string) error {
	line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case ".dbinfo":
		return e.dbinfo()
	case ".tables":
		names, err := e.src.ListTables()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, strings.Join(names, " "))
		return err
	case ".schema":
		return e.schema()
	case ".page":
		if len(fields) != 2 {
			return fmt.Errorf("%w: usage: .page <number>", ErrUnknownCommand)
		}
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: bad page number %q", ErrUnknownCommand, fields[1])
		}
		p, err := e.src.Page(uint32(n))
		if err != nil {
			return err
		}
		return p.Debug(e.out)
	}

	if strings.EqualFold(fields[0], "select") {
		return e.selectStmt(fields)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
}

func (e *Executor) dbinfo() error {
	info := e.src.Info()
	h := e.src.Header()
	_, err := fmt.Fprintf(e.out,
		"database page size: %d\nnumber of tables: %d\npage count: %d\nschema format: %d\ntext encoding: %s\n",
		info.PageSize, info.TableCount, h.PageCount, h.SchemaFormat, h.Encoding())
	return err
}

func (e *Executor) schema() error {
	entries, err := e.src.Tables()
	if err != nil {
		return err
	}
	for _, t := range entries {
		if _, err := fmt.Fprintf(e.out, "%s (root page %d): %s\n", t.Name, t.RootPage, t.SQL); err != nil {
			return err
		}
	}
	return nil
}

// Query is a parsed SELECT: the projection text and the table name.
type Query struct {
	Projection string
	Table      string
}

func (q Query) IsCount() bool {
	return strings.EqualFold(strings.ReplaceAll(q.Projection, " ", ""), "count(*)")
}

// ParseSelect accepts "SELECT <projection> FROM <table>". Keywords are
// case-insensitive; the table name is kept as written.
func ParseSelect(fields []string) (Query, error) {
	from := -1
	for i, f := range fields {
		if strings.EqualFold(f, "from") {
			from = i
			break
		}
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], "select") || from < 2 {
		return Query{}, fmt.Errorf("%w: expected SELECT <columns> FROM <table>", ErrUnsupportedQuery)
	}
	if from != len(fields)-2 {
		return Query{}, fmt.Errorf("%w: only a single table without clauses is supported", ErrUnsupportedQuery)
	}
	return Query{
		Projection: strings.Join(fields[1:from], " "),
		Table:      strings.Trim(fields[from+1], `"`+"`"),
	}, nil
}

func (e *Executor) selectStmt(fields []string) error {
	q, err := ParseSelect(fields)
	if err != nil {
		return err
	}

	if !q.IsCount() && q.Projection != "*" {
		return fmt.Errorf("%w: projection %q", ErrUnsupportedQuery, q.Projection)
	}

	rows, err := e.src.ReadTable(q.Table)
	if err != nil {
		return err
	}
	if q.IsCount() {
		_, err = fmt.Fprintln(e.out, len(rows))
		return err
	}

	entries, err := e.src.Tables()
	if err != nil {
		return err
	}
	entry, _ := catalog.Find(entries, q.Table)
	return printRows(e.out, rows, RowIDAlias(entry.SQL))
}

// RowIDAlias reports whether the first column of a CREATE TABLE statement
// is declared INTEGER PRIMARY KEY. Such a column is stored as NULL and its
// value is the row id.
func RowIDAlias(createSQL string) bool {
	open := strings.IndexByte(createSQL, '(')
	if open < 0 {
		return false
	}
	def := createSQL[open+1:]
	if end := strings.IndexAny(def, ",)"); end >= 0 {
		def = def[:end]
	}
	f := strings.Fields(strings.ToLower(def))
	return len(f) >= 4 && f[1] == "integer" && f[2] == "primary" && f[3] == "key"
}

func printRows(w io.Writer, rows []record.Row, rowIDAlias bool) error {
	for _, row := range rows {
		vals := make([]string, len(row.Values))
		for i, v := range row.Values {
			vals[i] = v.String()
		}
		if rowIDAlias && len(row.Values) > 0 && row.Values[0].IsNull() {
			vals[0] = strconv.FormatInt(row.RowID, 10)
		}
		if _, err := fmt.Fprintln(w, strings.Join(vals, "|")); err != nil {
			return err
		}
	}
	return nil
}
