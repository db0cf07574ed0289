// Package blockfile decodes magic-delimited blocks from a blk*.dat
// stream, verifying each block's proof-of-work and Merkle root against
// the values declared in its header, and drives that decoder across a
// whole file via Scanner.
package blockfile

import (
	"errors"
	"fmt"

	"github.com/smythg/blkscan/internal/blkerr"
	"github.com/smythg/blkscan/internal/bytestream"
	"github.com/smythg/blkscan/internal/difficulty"
	"github.com/smythg/blkscan/internal/txn"
	"github.com/smythg/blkscan/internal/varint"
)

// Magic is the fixed block-separator value, 0xD9B4BEF9 once the four
// on-disk bytes F9 BE B4 D9 are read as a little-endian u32.
const Magic uint32 = 0xd9b4bef9

// blockPrefixSize is the magic(4)+size(4) framing that precedes every
// block's payload.
const blockPrefixSize = 8

// ErrEndOfStream signals a clean, non-error termination of the block
// stream: either fewer than 8 bytes remain, or the declared payload
// size runs past the remaining bytes. Both are legitimate partial
// tails, not corruption.
var ErrEndOfStream = errors.New("blockfile: end of stream")

// Block is one decoded block: declared payload size, header, and the
// ordered transaction list.
type Block struct {
	Size         uint32
	Header       Header
	Transactions []txn.Transaction

	// NonCanonicalVarint is set if the transaction count or any
	// transaction within this block decoded a non-minimal varint. A
	// non-minimal varint inside a transaction changes its canonical
	// re-serialization, so the Merkle check rejects the block; the
	// transaction count is not hashed, so a non-minimal count alone
	// does not.
	NonCanonicalVarint bool
}

// Hash returns the block header's double-SHA-256 hash, on-disk order.
func (b *Block) Hash() []byte {
	return b.Header.Hash()
}

// ID renders the block hash reversed to conventional display order.
func (b *Block) ID() string {
	return b.Header.ID()
}

// Decode reads one magic-delimited block from r:
//
//  1. fewer than 8 bytes remain -> ErrEndOfStream
//  2. magic+size; magic mismatch -> BadMagic
//  3. fewer than size bytes remain -> ErrEndOfStream
//  4. 80-byte header
//  5. proof-of-work check -> BadProofOfWork
//  6. tx_count varint + that many transactions
//  7. Merkle root check -> BadMerkleRoot
//
// blockIndex is attached to the BadMagic, BadProofOfWork and
// BadMerkleRoot errors for diagnostics; errors from the reader and the
// transaction decoder are returned as they come, without it. It plays
// no role in decoding itself.
func Decode(r *bytestream.Reader, blockIndex int) (Block, error) {
	if r.Remaining() < blockPrefixSize {
		return Block{}, ErrEndOfStream
	}

	startPos := r.Position()

	magic, err := r.ReadU32LE()
	if err != nil {
		return Block{}, err
	}
	if magic != Magic {
		return Block{}, blkerr.New(blkerr.BadMagic, startPos,
			fmt.Sprintf("got magic 0x%08x, want 0x%08x", magic, Magic)).
			WithBlockIndex(blockIndex)
	}

	size, err := r.ReadU32LE()
	if err != nil {
		return Block{}, err
	}

	if r.Remaining() < int64(size) {
		return Block{}, ErrEndOfStream
	}

	var b Block
	b.Size = size

	header, err := decodeHeader(r)
	if err != nil {
		return Block{}, err
	}
	b.Header = header

	headerHash := header.Hash()
	if !difficulty.MeetsTarget(headerHash, header.Bits) {
		target := difficulty.Expand(header.Bits)
		return Block{}, blkerr.New(blkerr.BadProofOfWork, startPos,
			fmt.Sprintf("hash %x exceeds target %s (bits 0x%08x)", headerHash, target.Text(16), header.Bits)).
			WithBlockIndex(blockIndex)
	}

	txCount, err := varint.Decode(r)
	if err != nil {
		return Block{}, err
	}
	b.NonCanonicalVarint = !txCount.Canonical

	b.Transactions = make([]txn.Transaction, txCount.N)
	txHashes := make([][]byte, txCount.N)
	for i := range b.Transactions {
		tx, err := txn.Decode(r)
		if err != nil {
			return Block{}, err
		}
		b.NonCanonicalVarint = b.NonCanonicalVarint || tx.NonCanonicalVarint
		b.Transactions[i] = tx
		txHashes[i] = tx.Hash()
	}

	computedRoot := merkleRoot(txHashes)
	if string(computedRoot) != string(header.MerkleRoot[:]) {
		detail := fmt.Sprintf("computed root %x, header declares %x", computedRoot, header.MerkleRoot)
		if b.NonCanonicalVarint {
			detail += "; block contains non-canonical varints"
		}
		return Block{}, blkerr.New(blkerr.BadMerkleRoot, startPos, detail).
			WithBlockIndex(blockIndex)
	}

	return b, nil
}
