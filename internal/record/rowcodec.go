package record

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tuannm99/novalite/internal/alias/bx"
	"github.com/tuannm99/novalite/internal/storage"
	"github.com/tuannm99/novalite/internal/varint"
)

// ---- Errors ----
// Every decode failure wraps ErrDecode.
var (
	ErrDecode       = errors.New("record: decode error")
	ErrHeaderBounds = fmt.Errorf("%w: record header length out of bounds", ErrDecode)
	ErrValueBounds  = fmt.Errorf("%w: column value overruns page", ErrDecode)
	ErrInvalidUTF8  = fmt.Errorf("%w: text column is not valid UTF-8", ErrDecode)
)

// ---- DecodeLeafPage(page) -> []Row ----
// Rows come back in cell pointer array order, which need not be rowid order.
// Any malformed cell fails the whole page.
func DecodeLeafPage(p *storage.Page) ([]Row, error) {
	h, err := p.Header()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if h.Kind != storage.LeafTable {
		return nil, fmt.Errorf("%w: page %d is %s: %w", ErrDecode, p.No, h.Kind, storage.ErrUnsupportedPage)
	}

	rows := make([]Row, 0, h.CellCount)
	for i := 0; i < int(h.CellCount); i++ {
		cell, err := p.Cell(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		row, err := DecodeCell(cell)
		if err != nil {
			return nil, fmt.Errorf("page %d cell %d: %w", p.No, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ---- DecodeCell(buf) -> Row ----
// Format:
// [payload len: varint] [rowid: varint] [record]
// buf runs from the start of the cell to the end of the page; the payload
// length is skipped and the page end bounds the record.
func DecodeCell(buf []byte) (Row, error) {
	_, n, err := varint.Decode(buf)
	if err != nil {
		return Row{}, fmt.Errorf("%w: payload length: %w", ErrDecode, err)
	}
	i := n

	rowID, n, err := varint.Decode(buf[i:])
	if err != nil {
		return Row{}, fmt.Errorf("%w: rowid: %w", ErrDecode, err)
	}
	i += n

	values, err := DecodeRecord(buf[i:])
	if err != nil {
		return Row{}, err
	}
	return Row{RowID: int64(rowID), Values: values}, nil
}

// ---- DecodeHeader(buf) -> []TypeDescriptor ----
// Format:
// [header len H: varint, counts itself] [serial type: varint]... up to H
func DecodeHeader(buf []byte) ([]TypeDescriptor, int, error) {
	hlen, n, err := varint.Decode(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: header length: %w", ErrDecode, err)
	}
	if hlen < uint64(n) || hlen > uint64(len(buf)) {
		return nil, 0, fmt.Errorf("%w: %d (have %d bytes)", ErrHeaderBounds, hlen, len(buf))
	}
	end := int(hlen)

	var descs []TypeDescriptor
	for i := n; i < end; {
		// a serial type may not straddle the header end
		code, m, err := varint.Decode(buf[i:end])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: serial type %d: %w", ErrDecode, len(descs), err)
		}
		i += m
		descs = append(descs, Describe(code))
	}
	return descs, end, nil
}

// ---- DecodeRecord(buf) -> []Value ----
func DecodeRecord(buf []byte) ([]Value, error) {
	descs, i, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	out := make([]Value, len(descs))
	for col, d := range descs {
		if d.Width > len(buf)-i {
			return nil, fmt.Errorf("%w: column %d wants %d bytes, %d left", ErrValueBounds, col, d.Width, len(buf)-i)
		}
		body := buf[i : i+d.Width]

		switch {
		case d.Type == TypeNull:
			out[col] = Null()

		case d.Type == TypeText:
			if !utf8.Valid(body) {
				return nil, fmt.Errorf("column %d: %w", col, ErrInvalidUTF8)
			}
			out[col] = Text(string(body))

		case d.Type == TypeZero:
			out[col] = Integer(0)

		case d.Type == TypeOne:
			out[col] = Integer(1)

		case d.Type.IsInteger():
			out[col] = Integer(bx.Int(body))

		case d.Type == TypeFloat64:
			out[col] = Float(math.Float64frombits(bx.U64(body)))

		default:
			// blobs and reserved codes: skip the body, keep the width
			out[col] = Unrecognized(d.Width)
		}
		i += d.Width
	}
	return out, nil
}
