// stand for bytes helper
package bx

import "encoding/binary"

// The container format stores every fixed-width integer big-endian.
var BE = binary.BigEndian

// --- BE: read ---
func U16(b []byte) uint16 { return BE.Uint16(b) }
func U32(b []byte) uint32 { return BE.Uint32(b) }
func U64(b []byte) uint64 { return BE.Uint64(b) }

// --- BE: write ---
func PutU16(b []byte, v uint16) { BE.PutUint16(b, v) }
func PutU32(b []byte, v uint32) { BE.PutUint32(b, v) }
func PutU64(b []byte, v uint64) { BE.PutUint64(b, v) }

// --- BE: At (offset) ---
func U16At(b []byte, off int) uint16       { return U16(b[off:]) }
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU16At(b []byte, off int, v uint16) { PutU16(b[off:], v) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }

// Int reads a big-endian two's complement integer of len(b) bytes (1..8)
// and sign-extends it to 64 bits.
func Int(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}
	shift := uint(64 - 8*len(b))
	return int64(u<<shift) >> shift
}

// PutInt writes the low len(b) bytes of v big-endian.
func PutInt(b []byte, v int64) {
	u := uint64(v)
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
}
