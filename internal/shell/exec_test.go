package shell

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novalite/internal/engine"
	"github.com/tuannm99/novalite/internal/storage/storagetest"
)

func newExecutor(t *testing.T) (*Executor, *bytes.Buffer) {
	t.Helper()
	apples := storagetest.LeafPage(2, 4096,
		storagetest.Cell(1, storagetest.Record(nil, "Granny Smith", "Light Green")),
		storagetest.Cell(2, storagetest.Record(nil, "Fuji", "Red")),
	)
	oranges := storagetest.LeafPage(3, 4096,
		storagetest.Cell(7, storagetest.Record(nil, "Mandarin", int64(12))),
	)
	data := storagetest.Container(4096, [][]byte{
		storagetest.SchemaRow("table", "apples", 2, "CREATE TABLE apples(id integer primary key, name text, color text)"),
		storagetest.SchemaRow("table", "oranges", 3, "CREATE TABLE oranges(id integer primary key, name text, n int)"),
	}, apples, oranges)

	db, err := engine.Open(storagetest.WriteFile(t, data))
	require.NoError(t, err)

	var out bytes.Buffer
	return NewExecutor(db, &out), &out
}

func TestExec_DBInfo(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec(".dbinfo"))
	assert.Equal(t, "database page size: 4096\n"+
		"number of tables: 2\n"+
		"page count: 3\n"+
		"schema format: 4\n"+
		"text encoding: utf8\n", out.String())
}

func TestExec_Tables(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec(".tables"))
	assert.Equal(t, "apples oranges\n", out.String())
}

func TestExec_Schema(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec(".schema"))
	assert.Contains(t, out.String(), "apples (root page 2): CREATE TABLE apples")
	assert.Contains(t, out.String(), "oranges (root page 3)")
}

func TestExec_Count(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec("SELECT COUNT(*) FROM apples"))
	require.NoError(t, e.Exec("select count( * ) from oranges;"))
	assert.Equal(t, "2\n1\n", out.String())
}

func TestExec_SelectStar(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec("SELECT * FROM apples"))
	require.NoError(t, e.Exec("SELECT * FROM oranges"))
	assert.Equal(t, "1|Granny Smith|Light Green\n2|Fuji|Red\n7|Mandarin|12\n", out.String())
}

func TestExec_SelectStarWithoutRowIDAlias(t *testing.T) {
	plain := storagetest.LeafPage(2, 4096,
		storagetest.Cell(5, storagetest.Record(nil, "x")),
	)
	data := storagetest.Container(4096, [][]byte{
		storagetest.SchemaRow("table", "plain", 2, "CREATE TABLE plain(a text, b text)"),
	}, plain)
	db, err := engine.Open(storagetest.WriteFile(t, data))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewExecutor(db, &out).Exec("SELECT * FROM plain"))
	assert.Equal(t, "NULL|x\n", out.String())
}

func TestRowIDAlias(t *testing.T) {
	assert.True(t, RowIDAlias("CREATE TABLE t(id integer primary key, name text)"))
	assert.True(t, RowIDAlias("CREATE TABLE t (\n\tid INTEGER PRIMARY KEY AUTOINCREMENT,\n\tname TEXT\n)"))
	assert.True(t, RowIDAlias("CREATE TABLE t(id INTEGER PRIMARY KEY)"))
	assert.False(t, RowIDAlias("CREATE TABLE t(id int primary key, name text)"))
	assert.False(t, RowIDAlias("CREATE TABLE t(name text, id integer primary key)"))
	assert.False(t, RowIDAlias("CREATE TABLE t(id integer, name text)"))
	assert.False(t, RowIDAlias(""))
}

func TestExec_Page(t *testing.T) {
	e, out := newExecutor(t)
	require.NoError(t, e.Exec(".page 2"))
	assert.Contains(t, out.String(), "kind=leaf_table")
	assert.Contains(t, out.String(), "cells=2")

	require.ErrorIs(t, e.Exec(".page x"), ErrUnknownCommand)
	require.ErrorIs(t, e.Exec(".page"), ErrUnknownCommand)
}

func TestExec_Errors(t *testing.T) {
	e, _ := newExecutor(t)

	require.ErrorIs(t, e.Exec("SELECT COUNT(*) FROM missing"), engine.ErrTableNotFound)
	require.ErrorIs(t, e.Exec("SELECT COUNT(*) FROM Apples"), engine.ErrTableNotFound)
	require.ErrorIs(t, e.Exec("SELECT name FROM apples"), ErrUnsupportedQuery)
	require.ErrorIs(t, e.Exec("SELECT * FROM apples WHERE color = 'Red'"), ErrUnsupportedQuery)
	require.ErrorIs(t, e.Exec("SELECT FROM apples"), ErrUnsupportedQuery)
	require.ErrorIs(t, e.Exec(".nope"), ErrUnknownCommand)
	require.ErrorIs(t, e.Exec("DELETE FROM apples"), ErrUnknownCommand)
	require.NoError(t, e.Exec("   "))
}

func TestParseSelect(t *testing.T) {
	q, err := ParseSelect([]string{"select", "count(*)", "FROM", "MyTable"})
	require.NoError(t, err)
	assert.True(t, q.IsCount())
	assert.Equal(t, "MyTable", q.Table)

	q, err = ParseSelect([]string{"SELECT", "*", "FROM", `"quoted"`})
	require.NoError(t, err)
	assert.False(t, q.IsCount())
	assert.Equal(t, "quoted", q.Table)
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hist")

	h := NewHistory(path)
	require.NoError(t, h.Load(10))
	require.NoError(t, h.Append(".tables"))
	require.NoError(t, h.Append("SELECT   COUNT(*)\n FROM t"))
	require.NoError(t, h.Append("  "))

	h2 := NewHistory(path)
	require.NoError(t, h2.Load(1))
	assert.Equal(t, []string{"SELECT COUNT(*) FROM t"}, h2.Lines())

	var buf bytes.Buffer
	h.Print(&buf, 0)
	assert.Equal(t, "    1  .tables\n    2  SELECT COUNT(*) FROM t\n", buf.String())
}
