package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tuannm99/novalite/internal/alias/util"
)

// Pager returns raw pages of a container file. It keeps no file handle:
// every Fetch opens, reads and closes the file on its own, so one Pager can
// be shared by any number of goroutines.
type Pager struct {
	path     string // Database file
	pageSize int    // Size of each page
}

// NewPager creates a pager for path. The file is not touched until Fetch.
func NewPager(path string, pageSize int) *Pager {
	return &Pager{path: path, pageSize: pageSize}
}

// Region returns the file offset and length of page pageNo. Page 1 starts
// after the file header and is shorter by FileHeaderSize bytes.
func (p *Pager) Region(pageNo uint32) (offset int64, size int, err error) {
	if pageNo == 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidPageNo, pageNo)
	}
	start := startOffset(pageNo)
	offset = int64(pageNo-1)*int64(p.pageSize) + int64(start)
	return offset, p.pageSize - start, nil
}

// Fetch reads page pageNo (1-based) from disk.
func (p *Pager) Fetch(pageNo uint32) (*Page, error) {
	offset, size, err := p.Region(pageNo)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageIO, p.path, err)
	}
	defer util.CloseFileFunc(f)

	buf := make([]byte, size)
	n, err := f.ReadAt(buf, offset)
	if n < size {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: read page %d (%d of %d bytes at offset %d): %w",
			ErrStorageIO, pageNo, n, size, offset, err)
	}

	slog.Debug("pager: fetch", "page", pageNo, "offset", offset, "size", size)
	return &Page{No: pageNo, Start: startOffset(pageNo), Buf: buf}, nil
}

func startOffset(pageNo uint32) int {
	if pageNo == 1 {
		return FileHeaderSize
	}
	return 0
}
