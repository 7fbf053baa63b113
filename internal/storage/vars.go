package storage

import (
	"errors"
)

const (
	OneB  = 1 << 0  // 1
	OneKB = 1 << 10 // 1,024

	FileHeaderSize = 100 // file header at the start of page 1
	MinPageSize    = 512
	MaxPageSize    = 1 << 16 // 65,536, stored on disk as the value 1
	DefaultPage    = OneKB * 4

	LeafHeaderSize     = 8
	InteriorHeaderSize = 12
	CellPointerSize    = 2
)

// Offsets inside the 100-byte file header.
const (
	offMagic       = 0
	offPageSize    = 16
	offWriteFormat = 18
	offReadFormat  = 19
	offReserved    = 20
	offChangeCtr   = 24
	offPageCount   = 28
	offSchemaCk    = 40
	offSchemaFmt   = 44
	offTextEnc     = 56
	offUserVersion = 60
	offSQLiteVer   = 96
)

// Offsets inside a b-tree page header.
const (
	offKind         = 0
	offFirstFree    = 1
	offCellCount    = 3
	offContentStart = 5
	offFragmented   = 7
	offRightMost    = 8
)

const Magic = "SQLite format 3\x00"

// PageKind is the b-tree page type stored in the first header byte.
type PageKind uint8

const (
	InteriorIndex PageKind = 0x02
	InteriorTable PageKind = 0x05
	LeafIndex     PageKind = 0x0a
	LeafTable     PageKind = 0x0d
)

func (k PageKind) String() string {
	switch k {
	case InteriorIndex:
		return "interior_index"
	case InteriorTable:
		return "interior_table"
	case LeafIndex:
		return "leaf_index"
	case LeafTable:
		return "leaf_table"
	default:
		return "unknown"
	}
}

func (k PageKind) IsLeaf() bool { return k == LeafIndex || k == LeafTable }

var (
	ErrStorageIO       = errors.New("storage: I/O error")
	ErrNotDatabase     = errors.New("storage: file is not a database")
	ErrInvalidPageNo   = errors.New("storage: invalid page number")
	ErrPageCorrupted   = errors.New("storage: page is corrupted")
	ErrUnsupportedPage = errors.New("storage: unsupported page kind")
)
