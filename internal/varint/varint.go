// Package varint implements Bitcoin's self-describing variable-length
// unsigned integer: a tag byte selects 1, 3, 5, or 9 bytes total.
// Decoding is tolerant of non-minimal (non-canonical) encodings, since
// historical blk*.dat data is permitted to contain them; encoding always
// chooses the shortest legal form. Reads go through the shared
// bytestream.Reader so a truncated varint carries a byte offset.
package varint

import "github.com/smythg/blkscan/internal/bytestream"

// Value is the result of decoding one varint: the integer itself, and
// whether the encoding actually read was the canonical (shortest) one
// for that integer. A non-canonical decode won't round-trip through
// Encode, which always emits the shortest form.
type Value struct {
	N         uint64
	Canonical bool
}

// Decode reads one varint from r. The tag byte selects the width:
// <0xFD is the value itself; 0xFD/0xFE/0xFF select a following
// u16/u32/u64 little-endian payload. No canonicality check gates the
// read — it only annotates the result.
func Decode(r *bytestream.Reader) (Value, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case 0xfd:
		v, err := r.ReadU16LE()
		if err != nil {
			return Value{}, err
		}
		n := uint64(v)
		return Value{N: n, Canonical: n >= 0xfd}, nil
	case 0xfe:
		v, err := r.ReadU32LE()
		if err != nil {
			return Value{}, err
		}
		n := uint64(v)
		return Value{N: n, Canonical: n >= 1<<16}, nil
	case 0xff:
		n, err := r.ReadU64LE()
		if err != nil {
			return Value{}, err
		}
		return Value{N: n, Canonical: n >= 1<<32}, nil
	default:
		return Value{N: uint64(tag), Canonical: true}, nil
	}
}

// Encode returns the shortest legal encoding of v: no tag byte for
// v < 0xFD, otherwise a tag byte (0xFD/0xFE/0xFF) followed by the
// little-endian payload of the narrowest width that holds v.
func Encode(v uint64) []byte {
	switch {
	case v < 0xfd:
		return []byte{byte(v)}
	case v < 1<<16:
		return []byte{0xfd, byte(v), byte(v >> 8)}
	case v < 1<<32:
		return []byte{0xfe, byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	default:
		return []byte{
			0xff,
			byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
			byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
		}
	}
}
