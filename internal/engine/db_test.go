package engine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novalite/internal/catalog"
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
	"github.com/tuannm99/novalite/internal/storage/storagetest"
)

const testPageSize = 4096

// countingFetcher records which pages were requested.
type countingFetcher struct {
	next  catalog.PageFetcher
	mu    sync.Mutex
	pages []uint32
}

func (c *countingFetcher) Fetch(n uint32) (*storage.Page, error) {
	c.mu.Lock()
	c.pages = append(c.pages, n)
	c.mu.Unlock()
	return c.next.Fetch(n)
}

// newThreeRowDB writes a container whose only table "t" lives on page 2 and
// holds three single-text-column rows.
func newThreeRowDB(t *testing.T) string {
	t.Helper()
	page2 := storagetest.LeafPage(2, testPageSize,
		storagetest.Cell(1, storagetest.Record("first")),
		storagetest.Cell(2, storagetest.Record("second")),
		storagetest.Cell(3, storagetest.Record("third")),
	)
	data := storagetest.Container(testPageSize, [][]byte{
		storagetest.SchemaRow("table", "t", 2, "CREATE TABLE t(v TEXT)"),
	}, page2)
	return storagetest.WriteFile(t, data)
}

func TestDatabase_EndToEnd(t *testing.T) {
	db, err := Open(newThreeRowDB(t))
	require.NoError(t, err)

	assert.Equal(t, Info{PageSize: testPageSize, TableCount: 1}, db.Info())

	names, err := db.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, names)

	rows, err := db.ReadTable("t")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, want := range []string{"first", "second", "third"} {
		require.Len(t, rows[i].Values, 1)
		assert.Equal(t, record.Text(want), rows[i].Values[0])
		assert.Equal(t, int64(i+1), rows[i].RowID)
	}

	n, err := db.CountRows("t")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDatabase_NotFoundFetchesOnlyCatalog(t *testing.T) {
	db, err := Open(newThreeRowDB(t))
	require.NoError(t, err)

	cf := &countingFetcher{next: db.pages}
	db.pages = cf

	rows, err := db.ReadTable("missing")
	require.ErrorIs(t, err, ErrTableNotFound)
	assert.Nil(t, rows)
	assert.Equal(t, []uint32{catalog.CatalogPage}, cf.pages)

	// case-sensitive
	_, err = db.ReadTable("T")
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestDatabase_MalformedUTF8(t *testing.T) {
	page2 := storagetest.LeafPage(2, testPageSize,
		storagetest.Cell(1, storagetest.Record("fine")),
		storagetest.Cell(2, storagetest.Record(storagetest.RawText{'a', 0xff, 'b'})),
	)
	data := storagetest.Container(testPageSize, [][]byte{
		storagetest.SchemaRow("table", "t", 2, ""),
	}, page2)

	db, err := Open(storagetest.WriteFile(t, data))
	require.NoError(t, err)

	rows, err := db.ReadTable("t")
	require.ErrorIs(t, err, record.ErrDecode)
	require.ErrorIs(t, err, record.ErrInvalidUTF8)
	assert.Nil(t, rows)
}

func TestDatabase_InteriorRootRejected(t *testing.T) {
	page2 := storagetest.PageOfKind(storage.InteriorTable, 2, testPageSize)
	data := storagetest.Container(testPageSize, [][]byte{
		storagetest.SchemaRow("table", "big", 2, ""),
	}, page2)

	db, err := Open(storagetest.WriteFile(t, data))
	require.NoError(t, err)

	_, err = db.ReadTable("big")
	require.ErrorIs(t, err, storage.ErrUnsupportedPage)
}

func TestDatabase_RootPastEOF(t *testing.T) {
	data := storagetest.Container(testPageSize, [][]byte{
		storagetest.SchemaRow("table", "ghost", 9, ""),
	})
	db, err := Open(storagetest.WriteFile(t, data))
	require.NoError(t, err)

	_, err = db.ReadTable("ghost")
	require.ErrorIs(t, err, storage.ErrStorageIO)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(t.TempDir() + "/absent.db")
	require.ErrorIs(t, err, storage.ErrStorageIO)

	_, err = Open(storagetest.WriteFile(t, make([]byte, 4096)))
	require.ErrorIs(t, err, storage.ErrNotDatabase)
}

func TestDatabase_ConcurrentReads(t *testing.T) {
	db, err := Open(newThreeRowDB(t))
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := db.ReadTable("t")
			if err != nil || len(rows) != 3 {
				failed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, failed.Load())
}
