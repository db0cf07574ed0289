// Package txn decodes and canonically re-serializes one transaction:
// version, inputs, outputs, and lock-time. Pre-SegWit layout only.
// Hashes are retained in their raw on-disk little-endian order; any
// human-readable rendering reverses them.
package txn

import (
	"github.com/smythg/blkscan/internal/bytestream"
	"github.com/smythg/blkscan/internal/digest"
	"github.com/smythg/blkscan/internal/varint"
)

// coinbasePrevIndex is the sentinel previous-output index that marks a
// transaction's sole input as a coinbase.
const coinbasePrevIndex uint32 = 0xffffffff

// TxIn is one transaction input.
type TxIn struct {
	PrevTxHash      [32]byte // raw on-disk order; coinbase data when IsCoinbase
	PrevIndex       uint32
	SignatureScript []byte
	Sequence        uint32
}

// IsCoinbase reports whether this input is the coinbase input — its
// previous-output index is 0xFFFFFFFF and its "previous hash" field
// carries arbitrary miner-supplied data rather than a real hash.
func (in *TxIn) IsCoinbase() bool {
	return in.PrevIndex == coinbasePrevIndex
}

func decodeTxIn(r *bytestream.Reader) (TxIn, bool, error) {
	var in TxIn
	prevHash, err := r.ReadFixed(32)
	if err != nil {
		return TxIn{}, false, err
	}
	copy(in.PrevTxHash[:], prevHash)

	in.PrevIndex, err = r.ReadU32LE()
	if err != nil {
		return TxIn{}, false, err
	}

	scriptLen, err := varint.Decode(r)
	if err != nil {
		return TxIn{}, false, err
	}
	in.SignatureScript, err = r.ReadFixed(int(scriptLen.N))
	if err != nil {
		return TxIn{}, false, err
	}

	in.Sequence, err = r.ReadU32LE()
	if err != nil {
		return TxIn{}, false, err
	}
	return in, scriptLen.Canonical, nil
}

func (in *TxIn) serialize() []byte {
	out := make([]byte, 0, 32+4+9+len(in.SignatureScript)+4)
	out = append(out, in.PrevTxHash[:]...)
	out = appendU32LE(out, in.PrevIndex)
	out = append(out, varint.Encode(uint64(len(in.SignatureScript)))...)
	out = append(out, in.SignatureScript...)
	out = appendU32LE(out, in.Sequence)
	return out
}

// TxOut is one transaction output.
type TxOut struct {
	Value        uint64
	PubkeyScript []byte
}

func decodeTxOut(r *bytestream.Reader) (TxOut, bool, error) {
	var out TxOut
	value, err := r.ReadU64LE()
	if err != nil {
		return TxOut{}, false, err
	}
	out.Value = value

	scriptLen, err := varint.Decode(r)
	if err != nil {
		return TxOut{}, false, err
	}
	out.PubkeyScript, err = r.ReadFixed(int(scriptLen.N))
	if err != nil {
		return TxOut{}, false, err
	}
	return out, scriptLen.Canonical, nil
}

func (out *TxOut) serialize() []byte {
	result := make([]byte, 0, 8+9+len(out.PubkeyScript))
	result = appendU64LE(result, out.Value)
	result = append(result, varint.Encode(uint64(len(out.PubkeyScript)))...)
	result = append(result, out.PubkeyScript...)
	return result
}

// Transaction is one parsed transaction: version, inputs, outputs, and
// lock-time, decoded once and retained by value.
type Transaction struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32

	// NonCanonicalVarint records whether any varint within this
	// transaction (input/output counts, script lengths) was decoded in
	// a non-minimal form. Canonical re-serialization cannot reproduce
	// such a transaction byte-for-byte, so the containing block's
	// Merkle check will reject it.
	NonCanonicalVarint bool
}

// Decode reads one transaction: version, input count, inputs, output
// count, outputs, lock-time, in that order. It performs no semantic
// validation (e.g. zero inputs); the block layer catches
// inconsistencies via round-trip and Merkle checks.
func Decode(r *bytestream.Reader) (Transaction, error) {
	var tx Transaction

	version, err := r.ReadU32LE()
	if err != nil {
		return Transaction{}, err
	}
	tx.Version = version

	inCount, err := varint.Decode(r)
	if err != nil {
		return Transaction{}, err
	}
	tx.NonCanonicalVarint = tx.NonCanonicalVarint || !inCount.Canonical

	tx.Inputs = make([]TxIn, inCount.N)
	for i := range tx.Inputs {
		in, canon, err := decodeTxIn(r)
		if err != nil {
			return Transaction{}, err
		}
		tx.NonCanonicalVarint = tx.NonCanonicalVarint || !canon
		tx.Inputs[i] = in
	}

	outCount, err := varint.Decode(r)
	if err != nil {
		return Transaction{}, err
	}
	tx.NonCanonicalVarint = tx.NonCanonicalVarint || !outCount.Canonical

	tx.Outputs = make([]TxOut, outCount.N)
	for i := range tx.Outputs {
		out, canon, err := decodeTxOut(r)
		if err != nil {
			return Transaction{}, err
		}
		tx.NonCanonicalVarint = tx.NonCanonicalVarint || !canon
		tx.Outputs[i] = out
	}

	tx.LockTime, err = r.ReadU32LE()
	if err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// Serialize canonically re-serializes the transaction: the same field
// order as Decode, with every varint encoded in its shortest canonical
// form. For a transaction whose original encoding used non-minimal
// varints (tx.NonCanonicalVarint == true), this does not reproduce the
// original bytes; the block layer's Merkle check then rejects the block
// rather than silently accepting a different transaction.
func (tx *Transaction) Serialize() []byte {
	out := make([]byte, 0, 256)
	out = appendU32LE(out, tx.Version)

	out = append(out, varint.Encode(uint64(len(tx.Inputs)))...)
	for i := range tx.Inputs {
		out = append(out, tx.Inputs[i].serialize()...)
	}

	out = append(out, varint.Encode(uint64(len(tx.Outputs)))...)
	for i := range tx.Outputs {
		out = append(out, tx.Outputs[i].serialize()...)
	}

	out = appendU32LE(out, tx.LockTime)
	return out
}

// Hash returns double-SHA-256 of the canonical serialization, in the
// same on-disk little-endian order as every other hash in this package.
func (tx *Transaction) Hash() []byte {
	return digest.DoubleSHA256(tx.Serialize())
}

func appendU32LE(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendU64LE(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
