package record

import (
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindFloat
	// KindUnrecognized covers every storage class that is not materialized
	// (blobs, reserved codes). Only its width is kept.
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unrecognized"
	}
}

// Value is one decoded column.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
	Width int // body bytes skipped, set for KindUnrecognized only
}

func Null() Value                  { return Value{Kind: KindNull} }
func Text(s string) Value          { return Value{Kind: KindText, Text: s} }
func Integer(v int64) Value        { return Value{Kind: KindInteger, Int: v} }
func Float(v float64) Value        { return Value{Kind: KindFloat, Float: v} }
func Unrecognized(width int) Value { return Value{Kind: KindUnrecognized, Width: width} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsText returns the text and true when v holds text.
func (v Value) AsText() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return v.Text, true
}

// AsInteger returns the integer and true when v holds an integer.
func (v Value) AsInteger() (int64, bool) {
	if v.Kind != KindInteger {
		return 0, false
	}
	return v.Int, true
}

// Any returns v as nil, string, int64 or float64. Unrecognized values map
// to nil as well.
func (v Value) Any() any {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindText:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return "?" + strconv.Itoa(v.Width)
	}
}

// Row is one table-leaf cell: its rowid and its columns in storage order.
type Row struct {
	RowID  int64
	Values []Value
}

// Column returns column i, or an Unrecognized value when the row is shorter.
func (r Row) Column(i int) Value {
	if i < 0 || i >= len(r.Values) {
		return Unrecognized(0)
	}
	return r.Values[i]
}
