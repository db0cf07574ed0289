package blockfile

import (
	"errors"

	"github.com/smythg/blkscan/internal/blkerr"
	"github.com/smythg/blkscan/internal/bytestream"
)

// Scanner walks a file of consecutive blocks, driving Decode until the
// stream is exhausted or a partial tail is detected. It owns nothing
// beyond the cursor, the running block index, and the skip/emit
// counters.
type Scanner struct {
	r     *bytestream.Reader
	index int
	skip  int
	limit int // remaining emits allowed; negative means unlimited
}

// NewScanner wraps r. start is the number of leading blocks to decode
// and discard; count is the number of blocks to emit afterward, or a
// negative value for "until end of stream".
func NewScanner(r *bytestream.Reader, start, count int) *Scanner {
	return &Scanner{r: r, skip: start, limit: count}
}

// Next decodes the next block to emit, skipping but still fully
// decoding any leading blocks the start offset names: the format isn't
// seekable without decoding, since a block's length field names only
// its own payload. It returns ok=false with a nil error on a clean end
// of stream, and a non-nil error carrying the offending block's index
// on any other failure.
func (s *Scanner) Next() (block Block, ok bool, err error) {
	if s.limit == 0 {
		return Block{}, false, nil
	}

	// Lower-layer failures (Truncated, Io) come back from Decode without
	// a block index; attach the index of the block being decoded.
	withIndex := func(err error) error {
		var de *blkerr.Error
		if errors.As(err, &de) && de.BlockIndex < 0 {
			return de.WithBlockIndex(s.index)
		}
		return err
	}

	for s.skip > 0 {
		if _, err := Decode(s.r, s.index); err != nil {
			if err == ErrEndOfStream {
				return Block{}, false, nil
			}
			return Block{}, false, withIndex(err)
		}
		s.index++
		s.skip--
	}

	b, err := Decode(s.r, s.index)
	if err != nil {
		if err == ErrEndOfStream {
			return Block{}, false, nil
		}
		return Block{}, false, withIndex(err)
	}
	s.index++
	if s.limit > 0 {
		s.limit--
	}
	return b, true, nil
}

// Index returns the zero-based index of the next block Next will decode:
// one past the block it most recently returned, or the index of the
// failing block after Next returns an error.
func (s *Scanner) Index() int { return s.index }
