package record

import "fmt"

// DataType is the storage class named by a serial type code.
type DataType uint8

const (
	TypeNull DataType = iota
	TypeInt8
	TypeInt16
	TypeInt24
	TypeInt32
	TypeInt48
	TypeInt64
	TypeFloat64
	TypeZero // integer constant 0, no body bytes
	TypeOne  // integer constant 1, no body bytes
	TypeBlob
	TypeText // UTF-8
	TypeUnrecognized
)

func (t DataType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt24:
		return "int24"
	case TypeInt32:
		return "int32"
	case TypeInt48:
		return "int48"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeZero:
		return "zero"
	case TypeOne:
		return "one"
	case TypeBlob:
		return "blob"
	case TypeText:
		return "text"
	default:
		return "unrecognized"
	}
}

// IsInteger reports whether values of t decode to a signed integer.
func (t DataType) IsInteger() bool {
	return t >= TypeInt8 && t <= TypeInt64 || t == TypeZero || t == TypeOne
}

// TypeDescriptor is one decoded entry of a record header.
type TypeDescriptor struct {
	Code  uint64
	Type  DataType
	Width int // body bytes
}

func (d TypeDescriptor) String() string {
	return fmt.Sprintf("%s(%d)", d.Type, d.Width)
}

var fixedWidths = [...]TypeDescriptor{
	0: {Type: TypeNull, Width: 0},
	1: {Type: TypeInt8, Width: 1},
	2: {Type: TypeInt16, Width: 2},
	3: {Type: TypeInt24, Width: 3},
	4: {Type: TypeInt32, Width: 4},
	5: {Type: TypeInt48, Width: 6},
	6: {Type: TypeInt64, Width: 8},
	7: {Type: TypeFloat64, Width: 8},
	8: {Type: TypeZero, Width: 0},
	9: {Type: TypeOne, Width: 0},
	// 10 and 11 are reserved by the format
	10: {Type: TypeUnrecognized, Width: 0},
	11: {Type: TypeUnrecognized, Width: 0},
}

// Describe maps a serial type code to its data type and body width.
// Codes >= 12 are blobs (even) or text (odd) whose width grows with the code.
func Describe(code uint64) TypeDescriptor {
	if code < uint64(len(fixedWidths)) {
		d := fixedWidths[code]
		d.Code = code
		return d
	}
	if code%2 == 0 {
		return TypeDescriptor{Code: code, Type: TypeBlob, Width: int((code - 12) / 2)}
	}
	return TypeDescriptor{Code: code, Type: TypeText, Width: int((code - 13) / 2)}
}
