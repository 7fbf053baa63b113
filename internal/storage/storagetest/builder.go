// Package storagetest builds small container files byte by byte for tests.
package storagetest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novalite/internal/alias/bx"
	"github.com/tuannm99/novalite/internal/storage"
	"github.com/tuannm99/novalite/internal/varint"
)

// RawText is stored with a text serial type without any UTF-8 check.
type RawText []byte

// Serial returns the serial type code and body bytes for v.
// Supported: nil, string, RawText, []byte, bool, int, int64, float64.
func Serial(v any) (uint64, []byte) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		return uint64(13 + 2*len(x)), []byte(x)
	case RawText:
		return uint64(13 + 2*len(x)), []byte(x)
	case []byte:
		return uint64(12 + 2*len(x)), x
	case bool:
		if x {
			return 9, nil
		}
		return 8, nil
	case int:
		return intSerial(int64(x))
	case int64:
		return intSerial(x)
	case float64:
		b := make([]byte, 8)
		bx.PutU64(b, math.Float64bits(x))
		return 7, b
	default:
		panic("storagetest: unsupported value type")
	}
}

func intSerial(v int64) (uint64, []byte) {
	var code uint64
	var width int
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		code, width = 1, 1
	case v >= math.MinInt16 && v <= math.MaxInt16:
		code, width = 2, 2
	case v >= -1<<23 && v < 1<<23:
		code, width = 3, 3
	case v >= math.MinInt32 && v <= math.MaxInt32:
		code, width = 4, 4
	case v >= -1<<47 && v < 1<<47:
		code, width = 5, 6
	default:
		code, width = 6, 8
	}
	b := make([]byte, width)
	bx.PutInt(b, v)
	return code, b
}

// Record encodes values as a record: header length, serial types, bodies.
func Record(values ...any) []byte {
	var types, body []byte
	for _, v := range values {
		code, b := Serial(v)
		types = varint.Append(types, code)
		body = append(body, b...)
	}
	// the header length counts its own varint
	hlen := uint64(len(types) + 1)
	if varint.Len(hlen) > 1 {
		hlen = uint64(len(types) + 2)
	}
	out := varint.Append(nil, hlen)
	out = append(out, types...)
	return append(out, body...)
}

// Cell wraps a record into a table-leaf cell: payload length, rowid, payload.
func Cell(rowID int64, record []byte) []byte {
	out := varint.Append(nil, uint64(len(record)))
	out = varint.Append(out, uint64(rowID))
	return append(out, record...)
}

// LeafPage lays out cells on a full-size table leaf page. Cell content is
// packed from the end of the page; pointers use full-page coordinates. For
// page 1 the first 100 bytes are left for the file header.
func LeafPage(pageNo uint32, pageSize int, cells ...[]byte) []byte {
	return page(storage.LeafTable, pageNo, pageSize, cells)
}

// PageOfKind is LeafPage with an explicit page type byte.
func PageOfKind(kind storage.PageKind, pageNo uint32, pageSize int, cells ...[]byte) []byte {
	return page(kind, pageNo, pageSize, cells)
}

func page(kind storage.PageKind, pageNo uint32, pageSize int, cells [][]byte) []byte {
	buf := make([]byte, pageSize)
	hdr := 0
	if pageNo == 1 {
		hdr = storage.FileHeaderSize
	}
	hlen := storage.LeafHeaderSize
	if !kind.IsLeaf() {
		hlen = storage.InteriorHeaderSize
	}

	buf[hdr] = byte(kind)
	bx.PutU16At(buf, hdr+3, uint16(len(cells)))

	end := pageSize
	for i, c := range cells {
		end -= len(c)
		if end < hdr+hlen+len(cells)*2 {
			panic("storagetest: cells do not fit on page")
		}
		copy(buf[end:], c)
		bx.PutU16At(buf, hdr+hlen+i*2, uint16(end))
	}
	bx.PutU16At(buf, hdr+5, uint16(end))
	return buf
}

// FileHeader writes a minimal valid file header over the first 100 bytes
// of page1.
func FileHeader(page1 []byte, pageSize int, pageCount uint32) {
	copy(page1, storage.Magic)
	if pageSize == storage.MaxPageSize {
		bx.PutU16At(page1, 16, 1)
	} else {
		bx.PutU16At(page1, 16, uint16(pageSize))
	}
	page1[18], page1[19] = 1, 1
	page1[21], page1[22], page1[23] = 64, 32, 32
	bx.PutU32At(page1, 28, pageCount)
	bx.PutU32At(page1, 44, 4)
	bx.PutU32At(page1, 56, 1)
}

// SchemaRow builds the five-column catalog record for a table.
func SchemaRow(typ, name string, rootPage int64, sql string) []byte {
	return Record(typ, name, name, rootPage, sql)
}

// Container assembles a file whose page 1 holds catalog cells and whose
// remaining pages are given verbatim. It returns the file bytes.
func Container(pageSize int, catalog [][]byte, pages ...[]byte) []byte {
	cells := make([][]byte, len(catalog))
	for i, rec := range catalog {
		cells[i] = Cell(int64(i+1), rec)
	}
	p1 := LeafPage(1, pageSize, cells...)
	FileHeader(p1, pageSize, uint32(len(pages)+1))

	out := append([]byte(nil), p1...)
	for _, p := range pages {
		out = append(out, p...)
	}
	return out
}

// WriteFile writes data to a fresh file under t.TempDir and returns its path.
func WriteFile(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
