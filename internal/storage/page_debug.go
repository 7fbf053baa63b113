package storage

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Fprintf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *errWriter) Fprintln(a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, a...)
}

func utf8Preview(b []byte) string {
	if !utf8.Valid(b) {
		return ""
	}
	var buf bytes.Buffer
	for _, r := range string(b) { // iterate by rune
		if unicode.IsPrint(r) && r != '\n' && r != '\r' && r != '\t' {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// ASCII preview: printable -> itself, else '.'
func asciiPreview(b []byte) string {
	var buf bytes.Buffer
	for _, c := range b {
		r := rune(c)
		if unicode.IsPrint(r) && r != '\n' && r != '\r' && r != '\t' {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// Debug prints the b-tree header, the cell pointer array and a preview of
// the bytes at each cell to the writer.
func (p *Page) Debug(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.Fprintf("=== Page Debug ===\n")
	h, err := p.Header()
	if err != nil {
		ew.Fprintf("page=%d <error: %v>\n", p.No, err)
		ew.Fprintln("=== End Page Debug ===")
		return ew.err
	}
	ew.Fprintf("page=%d kind=%s(0x%02x) cells=%d contentStart=%d firstFree=%d fragmented=%d\n",
		p.No, h.Kind, uint8(h.Kind), h.CellCount, h.ContentStart, h.FirstFree, h.Fragmented)
	if !h.Kind.IsLeaf() {
		ew.Fprintf("rightMost=%d\n", h.RightMost)
	}
	ew.Fprintf("bufLen=%d start=%d\n", len(p.Buf), p.Start)

	ew.Fprintln("\n-- CellPointers --")
	if h.CellCount == 0 {
		ew.Fprintln("(none)")
	}
	const maxPreview = 32
	for i := 0; i < int(h.CellCount); i++ {
		if ew.err != nil {
			break
		}
		off, err := p.CellOffset(i)
		if err != nil {
			ew.Fprintf("[%d] <error: %v>\n", i, err)
			continue
		}
		preview := p.Buf[off:]
		if len(preview) > maxPreview {
			preview = preview[:maxPreview]
		}
		ew.Fprintf("[%d] off=%d preview(hex)=%s\n", i, off+p.Start, hex.EncodeToString(preview))
		if s := utf8Preview(preview); s != "" {
			ew.Fprintf("     preview(utf8)=\"%s\"\n", s)
		} else {
			ew.Fprintf("     preview(ascii)=\"%s\"\n", asciiPreview(preview))
		}
	}

	ew.Fprintln("=== End Page Debug ===")
	return ew.err
}

func (p *Page) DebugString() string {
	var b bytes.Buffer
	if err := p.Debug(&b); err != nil {
		// best-effort: surface the error in the output so callers see it
		_, _ = b.WriteString("\n<debug write error: " + err.Error() + ">\n")
	}
	return b.String()
}
