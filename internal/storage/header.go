package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/tuannm99/novalite/internal/alias/bx"
	"github.com/tuannm99/novalite/internal/alias/util"
)

// bootstrapSize covers the file header plus the 8-byte header of page 1.
const bootstrapSize = FileHeaderSize + LeafHeaderSize

// FileHeader is the subset of the 100-byte file header this reader uses,
// plus the cell count of page 1 (the number of catalog entries).
type FileHeader struct {
	PageSize      int
	WriteFormat   uint8
	ReadFormat    uint8
	ReservedBytes uint8
	ChangeCounter uint32
	PageCount     uint32
	SchemaCookie  uint32
	SchemaFormat  uint32
	TextEncoding  uint32
	UserVersion   uint32
	SQLiteVersion uint32

	// TableCount is the cell count of page 1's b-tree header.
	TableCount uint16
}

// ReadFileHeader opens path, reads the first 108 bytes and parses them.
func ReadFileHeader(path string) (*FileHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageIO, path, err)
	}
	defer util.CloseFileFunc(f)

	buf := make([]byte, bootstrapSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %w", ErrStorageIO, path, err)
	}
	return ParseFileHeader(buf)
}

// ParseFileHeader decodes a header from at least 108 bytes.
func ParseFileHeader(buf []byte) (*FileHeader, error) {
	if len(buf) < bootstrapSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrNotDatabase, bootstrapSize, len(buf))
	}
	if string(buf[offMagic:offMagic+len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrNotDatabase, buf[offMagic:offMagic+len(Magic)])
	}

	pageSize := int(bx.U16At(buf, offPageSize))
	if pageSize == 1 {
		pageSize = MaxPageSize
	}
	if pageSize < MinPageSize || pageSize > MaxPageSize || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("%w: invalid page size %d", ErrNotDatabase, pageSize)
	}

	return &FileHeader{
		PageSize:      pageSize,
		WriteFormat:   buf[offWriteFormat],
		ReadFormat:    buf[offReadFormat],
		ReservedBytes: buf[offReserved],
		ChangeCounter: bx.U32At(buf, offChangeCtr),
		PageCount:     bx.U32At(buf, offPageCount),
		SchemaCookie:  bx.U32At(buf, offSchemaCk),
		SchemaFormat:  bx.U32At(buf, offSchemaFmt),
		TextEncoding:  bx.U32At(buf, offTextEnc),
		UserVersion:   bx.U32At(buf, offUserVersion),
		SQLiteVersion: bx.U32At(buf, offSQLiteVer),
		TableCount:    bx.U16At(buf, FileHeaderSize+offCellCount),
	}, nil
}

// Encoding names the text encoding field.
func (h FileHeader) Encoding() string {
	switch h.TextEncoding {
	case 1:
		return "utf8"
	case 2:
		return "utf16le"
	case 3:
		return "utf16be"
	}
	return fmt.Sprintf("unknown(%d)", h.TextEncoding)
}
