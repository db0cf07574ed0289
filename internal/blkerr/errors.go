// Package blkerr defines the error kinds shared across the decoder: a
// byte offset and (when known) a block index travel with every failure
// so a caller can say exactly where a blk*.dat file went wrong.
package blkerr

import "fmt"

// Kind identifies one of the decoder's failure modes.
type Kind int

const (
	// Truncated means fewer bytes remained than a field required.
	Truncated Kind = iota
	// BadMagic means a block did not begin with the expected magic number.
	BadMagic
	// BadProofOfWork means the header hash exceeded the target derived from bits.
	BadProofOfWork
	// BadMerkleRoot means the recomputed Merkle root didn't match the header.
	BadMerkleRoot
	// CorruptVarint means a varint tag byte was none of the four legal cases.
	// Unreachable for a single unsigned byte tag; kept for defensive coding.
	CorruptVarint
	// Io means the underlying byte source failed.
	Io
)

func (k Kind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case BadMagic:
		return "bad magic"
	case BadProofOfWork:
		return "bad proof of work"
	case BadMerkleRoot:
		return "bad merkle root"
	case CorruptVarint:
		return "corrupt varint"
	case Io:
		return "io error"
	default:
		return "unknown"
	}
}

// Error lets a bare Kind serve as an errors.Is/errors.As sentinel, e.g.
// errors.Is(err, blkerr.Truncated).
func (k Kind) Error() string {
	return k.String()
}

// Error carries a Kind plus enough context — byte offset, block index,
// and an optional cause — to diagnose a decode failure without rereading
// the file.
type Error struct {
	Kind       Kind
	Offset     int64
	BlockIndex int // -1 when not applicable (failures below block granularity)
	Detail     string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	if e.BlockIndex >= 0 {
		msg = fmt.Sprintf("%s (block %d)", msg, e.BlockIndex)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, blkerr.Truncated) work against a bare Kind by
// comparing Kind values — callers shouldn't need to type-assert *Error.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

// New builds an *Error with no block-index context.
func New(kind Kind, offset int64, detail string) *Error {
	return &Error{Kind: kind, Offset: offset, BlockIndex: -1, Detail: detail}
}

// Wrap builds an *Error around a lower-level cause.
func Wrap(kind Kind, offset int64, detail string, cause error) *Error {
	return &Error{Kind: kind, Offset: offset, BlockIndex: -1, Detail: detail, Cause: cause}
}

// WithBlockIndex returns a copy of e annotated with the index of the
// block being decoded when the failure occurred.
func (e *Error) WithBlockIndex(idx int) *Error {
	cp := *e
	cp.BlockIndex = idx
	return &cp
}
