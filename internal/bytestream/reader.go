// Package bytestream implements the decoder's byte reader: a cursor over
// a buffered byte source with typed little-endian reads and the position
// queries the block decoder and stream driver need to detect a partial
// tail. All on-disk integers and lengths in a blk*.dat file are
// little-endian; localizing that here keeps endian handling out of
// every other package.
package bytestream

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/smythg/blkscan/internal/blkerr"
)

// Reader is a stateful cursor over a seekable byte source of known total
// length. It is not safe for concurrent use — decoding one file is
// strictly sequential (block boundaries aren't derivable without
// decoding).
type Reader struct {
	r     *bufio.Reader
	pos   int64
	total int64
}

// NewReader wraps r, buffering reads, and records total as the number of
// bytes the source is known to hold (used by Remaining/Length for the
// stream driver's partial-tail check).
func NewReader(r io.Reader, total int64) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 64*1024), total: total}
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int64 { return r.pos }

// Length returns the total size of the underlying source.
func (r *Reader) Length() int64 { return r.total }

// Remaining returns the number of bytes not yet consumed.
func (r *Reader) Remaining() int64 { return r.total - r.pos }

func (r *Reader) fail(err error) *blkerr.Error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return blkerr.New(blkerr.Truncated, r.pos, "insufficient bytes remaining")
	}
	return blkerr.Wrap(blkerr.Io, r.pos, "underlying read failed", err)
}

// ReadFixed reads exactly n raw bytes with no endian reinterpretation.
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r.r, buf)
	if err != nil {
		return nil, r.fail(err)
	}
	r.pos += int64(got)
	return buf, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, r.fail(err)
	}
	r.pos++
	return b, nil
}

// ReadU16LE reads a 2-byte little-endian unsigned integer.
func (r *Reader) ReadU16LE() (uint16, error) {
	buf, err := r.ReadFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadU32LE reads a 4-byte little-endian unsigned integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	buf, err := r.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadU64LE reads an 8-byte little-endian unsigned integer.
func (r *Reader) ReadU64LE() (uint64, error) {
	buf, err := r.ReadFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// Peek returns, without advancing the cursor, up to n bytes of bounded
// lookahead. Running out of buffered bytes is not an error; the result
// is simply shorter than n.
func (r *Reader) Peek(n int) ([]byte, error) {
	buf, err := r.r.Peek(n)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return buf, r.fail(err)
	}
	return buf, nil
}
