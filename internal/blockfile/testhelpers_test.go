package blockfile_test

import (
	"bytes"

	"github.com/smythg/blkscan/internal/blockfile"
	"github.com/smythg/blkscan/internal/digest"
	"github.com/smythg/blkscan/internal/varint"
)

// easyBits expands to 0xffffff * 2^240, strictly larger than any
// 256-bit hash, so every synthetic header in these tests passes the
// proof-of-work check regardless of nonce.
const easyBits uint32 = 0x21ffffff

// coinbaseTxBytes returns one canonically-encoded coinbase transaction:
// version 1, one coinbase input with 4 bytes of arbitrary script, one
// zero-value output with an empty script, locktime 0.
func coinbaseTxBytes(tag byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x00, 0x00, 0x00}) // version
	b.WriteByte(0x01)                       // 1 input
	b.Write(bytes.Repeat([]byte{0x00}, 32)) // prev hash
	b.Write([]byte{0xff, 0xff, 0xff, 0xff}) // prev index: coinbase
	b.WriteByte(0x04)
	b.Write([]byte{tag, tag, tag, tag})
	b.Write([]byte{0xff, 0xff, 0xff, 0xff}) // sequence
	b.WriteByte(0x01)                       // 1 output
	b.Write(make([]byte, 8))                // value 0
	b.WriteByte(0x00)                       // empty script
	b.Write([]byte{0x00, 0x00, 0x00, 0x00}) // locktime
	return b.Bytes()
}

// spendTxBytes returns one canonically-encoded non-coinbase transaction
// with a single input and a single output, varied by tag.
func spendTxBytes(tag byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x00, 0x00, 0x00}) // version
	b.WriteByte(0x01)                       // 1 input
	b.Write(bytes.Repeat([]byte{tag}, 32))  // prev hash
	b.Write([]byte{0x00, 0x00, 0x00, 0x00}) // prev index 0
	b.WriteByte(0x00)                       // empty signature script
	b.Write([]byte{0xff, 0xff, 0xff, 0xff}) // sequence
	b.WriteByte(0x01)                       // 1 output
	b.Write([]byte{0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}) // value
	b.WriteByte(0x00)                       // empty script
	b.Write([]byte{0x00, 0x00, 0x00, 0x00}) // locktime
	return b.Bytes()
}

// merkleRootOf pairs hashes left-to-right one level at a time,
// duplicating the last hash at every odd-sized level, mirroring the
// verification rule the decoder enforces.
func merkleRootOf(hashes [][]byte) []byte {
	for len(hashes) > 1 {
		if len(hashes)%2 == 1 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}
		var next [][]byte
		for i := 0; i < len(hashes); i += 2 {
			next = append(next, digest.DoubleSHA256(append(append([]byte{}, hashes[i]...), hashes[i+1]...)))
		}
		hashes = next
	}
	return hashes[0]
}

// buildBlockTxs assembles one magic+size-framed block over the given
// serialized transactions, declaring their Merkle root and an
// easily-satisfied proof-of-work target.
func buildBlockTxs(txs ...[]byte) []byte {
	hashes := make([][]byte, len(txs))
	for i, tx := range txs {
		hashes[i] = digest.DoubleSHA256(tx)
	}

	header := make([]byte, 0, 80)
	header = append(header, 0x01, 0x00, 0x00, 0x00)            // version
	header = append(header, bytes.Repeat([]byte{0x00}, 32)...) // prev block
	header = append(header, merkleRootOf(hashes)...)
	header = append(header, 0x00, 0x00, 0x00, 0x00) // time
	header = append(header, leU32(easyBits)...)     // bits
	header = append(header, 0x00, 0x00, 0x00, 0x00) // nonce

	payload := append([]byte{}, header...)
	payload = append(payload, varint.Encode(uint64(len(txs)))...)
	for _, tx := range txs {
		payload = append(payload, tx...)
	}

	out := make([]byte, 0, 8+len(payload))
	out = append(out, leU32(blockfile.Magic)...)
	out = append(out, leU32(uint32(len(payload)))...)
	out = append(out, payload...)
	return out
}

// buildBlock assembles a block holding a single coinbase transaction.
func buildBlock(tag byte) []byte {
	return buildBlockTxs(coinbaseTxBytes(tag))
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
