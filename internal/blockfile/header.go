package blockfile

import (
	"fmt"
	"time"

	"github.com/smythg/blkscan/internal/bytestream"
	"github.com/smythg/blkscan/internal/digest"
)

// headerSize is the fixed 80-byte block header: version(4) + prev block
// hash(32) + merkle root(32) + time(4) + bits(4) + nonce(4).
const headerSize = 80

// Header is the block header, decoded verbatim from the 80 fixed bytes
// that open every block payload. Hash fields are kept in raw on-disk
// little-endian order; reverse only for display.
type Header struct {
	Version    uint32
	PrevBlock  [32]byte
	MerkleRoot [32]byte
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

// decodeHeader reads the fixed 80-byte header in wire order.
func decodeHeader(r *bytestream.Reader) (Header, error) {
	var h Header

	version, err := r.ReadU32LE()
	if err != nil {
		return Header{}, err
	}
	h.Version = version

	prev, err := r.ReadFixed(32)
	if err != nil {
		return Header{}, err
	}
	copy(h.PrevBlock[:], prev)

	root, err := r.ReadFixed(32)
	if err != nil {
		return Header{}, err
	}
	copy(h.MerkleRoot[:], root)

	h.Time, err = r.ReadU32LE()
	if err != nil {
		return Header{}, err
	}
	h.Bits, err = r.ReadU32LE()
	if err != nil {
		return Header{}, err
	}
	h.Nonce, err = r.ReadU32LE()
	if err != nil {
		return Header{}, err
	}

	return h, nil
}

// Serialize canonically re-encodes the 80-byte header.
func (h *Header) Serialize() []byte {
	buf := make([]byte, headerSize)
	putU32LE(buf[0:4], h.Version)
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	putU32LE(buf[68:72], h.Time)
	putU32LE(buf[72:76], h.Bits)
	putU32LE(buf[76:80], h.Nonce)
	return buf
}

// Hash returns double-SHA-256 of the serialized header, in on-disk
// little-endian order.
func (h *Header) Hash() []byte {
	return digest.DoubleSHA256(h.Serialize())
}

// ID renders the header hash reversed to the conventional big-endian
// display order, as a hex string.
func (h *Header) ID() string {
	hash := h.Hash()
	reversed := make([]byte, len(hash))
	for i, b := range hash {
		reversed[len(hash)-1-i] = b
	}
	return fmt.Sprintf("%x", reversed)
}

// Timestamp interprets Time as Unix epoch seconds.
func (h *Header) Timestamp() time.Time {
	return time.Unix(int64(h.Time), 0).UTC()
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
