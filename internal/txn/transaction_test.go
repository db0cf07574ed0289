package txn_test

import (
	"bytes"
	"testing"

	"github.com/smythg/blkscan/internal/bytestream"
	"github.com/smythg/blkscan/internal/txn"
)

func decode(t *testing.T, b []byte) txn.Transaction {
	t.Helper()
	r := bytestream.NewReader(bytes.NewReader(b), int64(len(b)))
	tx, err := txn.Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return tx
}

func coinbaseBytes() []byte {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x00, 0x00, 0x00}) // version 1
	b.WriteByte(0x01)                       // 1 input
	b.Write(bytes.Repeat([]byte{0x00}, 32)) // prev hash: all zero
	b.Write([]byte{0xff, 0xff, 0xff, 0xff}) // prev index: coinbase sentinel
	b.WriteByte(0x04)                       // script length 4
	b.Write([]byte{0x01, 0x02, 0x03, 0x04}) // arbitrary miner data
	b.Write([]byte{0xff, 0xff, 0xff, 0xff}) // sequence
	b.WriteByte(0x01)                       // 1 output
	b.Write([]byte{0x00, 0xf2, 0x05, 0x2a, 0x01, 0x00, 0x00, 0x00}) // value
	b.WriteByte(0x00)                                              // empty script
	b.Write([]byte{0x00, 0x00, 0x00, 0x00})                        // locktime
	return b.Bytes()
}

func TestDecodeCoinbaseTransaction(t *testing.T) {
	tx := decode(t, coinbaseBytes())
	if len(tx.Inputs) != 1 {
		t.Fatalf("Inputs = %d, want 1", len(tx.Inputs))
	}
	if !tx.Inputs[0].IsCoinbase() {
		t.Error("expected coinbase input")
	}
	if tx.NonCanonicalVarint {
		t.Error("expected canonical varints throughout")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	raw := coinbaseBytes()
	tx := decode(t, raw)
	got := tx.Serialize()
	if !bytes.Equal(got, raw) {
		t.Errorf("Serialize() round trip mismatch\ngot:  %x\nwant: %x", got, raw)
	}
}

func TestHashIsDeterministic(t *testing.T) {
	tx := decode(t, coinbaseBytes())
	h1 := tx.Hash()
	h2 := tx.Hash()
	if !bytes.Equal(h1, h2) {
		t.Error("Hash() must be deterministic")
	}
	if len(h1) != 32 {
		t.Errorf("Hash() length = %d, want 32", len(h1))
	}
}

func TestNonCoinbaseInputPreservesPrevHashOrder(t *testing.T) {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x00, 0x00, 0x00})
	b.WriteByte(0x01)
	prevHash := make([]byte, 32)
	for i := range prevHash {
		prevHash[i] = byte(i)
	}
	b.Write(prevHash)
	b.Write([]byte{0x00, 0x00, 0x00, 0x00})
	b.WriteByte(0x00)
	b.Write([]byte{0xff, 0xff, 0xff, 0xff})
	b.WriteByte(0x00) // no outputs
	b.Write([]byte{0x00, 0x00, 0x00, 0x00})

	tx := decode(t, b.Bytes())
	if tx.Inputs[0].IsCoinbase() {
		t.Fatal("expected a non-coinbase input")
	}
	if !bytes.Equal(tx.Inputs[0].PrevTxHash[:], prevHash) {
		t.Errorf("PrevTxHash = %x, want raw on-disk order %x", tx.Inputs[0].PrevTxHash, prevHash)
	}
}

func TestNonCanonicalVarintIsFlagged(t *testing.T) {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x00, 0x00, 0x00})
	b.WriteByte(0x00) // 0 inputs
	b.WriteByte(0x01) // 1 output
	b.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	// non-canonical 3-byte encoding of script length 0 (0xfd tag requires >= 0xfd to be canonical)
	b.Write([]byte{0xfd, 0x00, 0x00})
	b.Write([]byte{0x00, 0x00, 0x00, 0x00})

	tx := decode(t, b.Bytes())
	if !tx.NonCanonicalVarint {
		t.Error("expected NonCanonicalVarint to be flagged")
	}
}
