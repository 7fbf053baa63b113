package storage

import (
	"fmt"

	"github.com/tuannm99/novalite/internal/alias/bx"
)

// +------------------------+ 0 (100 on page 1)
// | b-tree page header     | 8 bytes on leaf pages, 12 on interior pages
// | cell pointer array     | CellCount x u16, full-page coordinates
// +------------------------+
// |   unallocated space    |
// +------------------------+ <-- content start
// |  cell content area     |
// |  (grows up from end)   |
// +------------------------+ page size
type Page struct {
	No    uint32 // 1-based page number
	Start int    // file-header bytes cut from the front of Buf (100 on page 1)
	Buf   []byte
}

// PageHeader is the decoded b-tree page header.
type PageHeader struct {
	Kind         PageKind
	FirstFree    uint16
	CellCount    uint16
	ContentStart uint16
	Fragmented   uint8
	RightMost    uint32 // interior pages only
}

// Header decodes the b-tree header at the front of the page.
func (p *Page) Header() (PageHeader, error) {
	if len(p.Buf) < LeafHeaderSize {
		return PageHeader{}, fmt.Errorf("%w: page %d has %d bytes, want at least %d",
			ErrPageCorrupted, p.No, len(p.Buf), LeafHeaderSize)
	}
	h := PageHeader{
		Kind:         PageKind(p.Buf[offKind]),
		FirstFree:    bx.U16At(p.Buf, offFirstFree),
		CellCount:    bx.U16At(p.Buf, offCellCount),
		ContentStart: bx.U16At(p.Buf, offContentStart),
		Fragmented:   p.Buf[offFragmented],
	}
	if !h.Kind.IsLeaf() {
		if len(p.Buf) < InteriorHeaderSize {
			return PageHeader{}, fmt.Errorf("%w: interior page %d truncated", ErrPageCorrupted, p.No)
		}
		h.RightMost = bx.U32At(p.Buf, offRightMost)
	}
	return h, nil
}

// Kind returns the page type byte, or 0 for an empty buffer.
func (p *Page) Kind() PageKind {
	if len(p.Buf) == 0 {
		return 0
	}
	return PageKind(p.Buf[offKind])
}

// CellCount returns the number of cells recorded in the header.
func (p *Page) CellCount() int {
	if len(p.Buf) < offCellCount+2 {
		return 0
	}
	return int(bx.U16At(p.Buf, offCellCount))
}

func (p *Page) headerLen() int {
	if p.Kind().IsLeaf() {
		return LeafHeaderSize
	}
	return InteriorHeaderSize
}

// CellOffset returns the position of cell i inside Buf. Pointers are stored
// in full-page coordinates, so page 1 pointers are shifted by Start.
func (p *Page) CellOffset(i int) (int, error) {
	if i < 0 || i >= p.CellCount() {
		return 0, fmt.Errorf("%w: page %d: cell %d out of range [0,%d)", ErrPageCorrupted, p.No, i, p.CellCount())
	}
	slot := p.headerLen() + i*CellPointerSize
	arrayEnd := p.headerLen() + p.CellCount()*CellPointerSize
	if arrayEnd > len(p.Buf) {
		return 0, fmt.Errorf("%w: page %d: pointer array overruns page", ErrPageCorrupted, p.No)
	}
	ptr := int(bx.U16At(p.Buf, slot))
	off := ptr - p.Start
	if off < arrayEnd || off >= len(p.Buf) {
		return 0, fmt.Errorf("%w: page %d: cell %d pointer %d outside content area", ErrPageCorrupted, p.No, i, ptr)
	}
	return off, nil
}

// Cell returns the bytes from the start of cell i to the end of the page.
// Cell boundaries are only known after decoding, so the tail is returned.
func (p *Page) Cell(i int) ([]byte, error) {
	off, err := p.CellOffset(i)
	if err != nil {
		return nil, err
	}
	return p.Buf[off:], nil
}
