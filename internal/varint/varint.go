// Package varint implements the container's variable-length integer
// encoding: big-endian groups of 7 bits, high bit set on every byte but the
// last, at most 9 bytes. The 9th byte, when present, carries a full 8 bits.
package varint

import "errors"

const (
	MaxLen = 9

	maskContinue = 0b1000_0000
	maskPayload  = 0b0111_1111
)

var ErrTruncated = errors.New("varint: input ends before the terminating byte")

// Decode reads one varint from the front of b and returns its value together
// with the number of bytes consumed. It never reads past b or past MaxLen.
func Decode(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < MaxLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrTruncated
		}
		c := b[i]
		if i == MaxLen-1 {
			return v<<8 | uint64(c), MaxLen, nil
		}
		v = v<<7 | uint64(c&maskPayload)
		if c&maskContinue == 0 {
			return v, i + 1, nil
		}
	}
	// unreachable: the loop always returns on the 9th byte
	return v, MaxLen, nil
}

// Len returns the number of bytes Append would use for v.
func Len(v uint64) int {
	if v>>56 != 0 {
		return MaxLen
	}
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// Append appends the encoding of v to dst.
func Append(dst []byte, v uint64) []byte {
	if v>>56 != 0 {
		var buf [MaxLen]byte
		buf[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			buf[i] = byte(v&maskPayload) | maskContinue
			v >>= 7
		}
		return append(dst, buf[:]...)
	}

	var buf [MaxLen]byte
	n := Len(v)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v & maskPayload)
		if i != n-1 {
			buf[i] |= maskContinue
		}
		v >>= 7
	}
	return append(dst, buf[:n]...)
}

// Encode returns the encoding of v.
func Encode(v uint64) []byte { return Append(nil, v) }
