package varint_test

import (
	"bytes"
	"testing"

	"github.com/smythg/blkscan/internal/bytestream"
	"github.com/smythg/blkscan/internal/varint"
)

func decode(t *testing.T, b []byte) varint.Value {
	t.Helper()
	r := bytestream.NewReader(bytes.NewReader(b), int64(len(b)))
	v, err := varint.Decode(r)
	if err != nil {
		t.Fatalf("decode(%x): %v", b, err)
	}
	return v
}

func TestVarintBoundaries(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
	}{
		{[]byte{0xfc}, 252},
		{[]byte{0xfd, 0xfd, 0x00}, 253},
		{[]byte{0xfe, 0x00, 0x00, 0x01, 0x00}, 65536},
		{[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, 4294967296},
	}
	for _, c := range cases {
		got := decode(t, c.in)
		if got.N != c.want {
			t.Errorf("decode(%x) = %d, want %d", c.in, got.N, c.want)
		}
		if !got.Canonical {
			t.Errorf("decode(%x): expected canonical", c.in)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xfe, 0xff, 1<<16 - 1, 1 << 16, 1<<32 - 1, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		enc := varint.Encode(v)
		got := decode(t, enc)
		if got.N != v {
			t.Errorf("round trip of %d: got %d", v, got.N)
		}
		if !got.Canonical {
			t.Errorf("Encode(%d) decoded as non-canonical", v)
		}
	}
}

func TestVarintEncodeChoosesShortestForm(t *testing.T) {
	cases := []struct {
		v          uint64
		wantLength int
	}{
		{0, 1},
		{252, 1},
		{253, 3},
		{1<<16 - 1, 3},
		{1 << 16, 5},
		{1<<32 - 1, 5},
		{1 << 32, 9},
	}
	for _, c := range cases {
		got := varint.Encode(c.v)
		if len(got) != c.wantLength {
			t.Errorf("Encode(%d) length = %d, want %d", c.v, len(got), c.wantLength)
		}
	}
}

func TestVarintNonCanonicalIsFlagged(t *testing.T) {
	// 5 encoded the long way, via the 0xFF (u64) tag.
	nonCanon := []byte{0xff, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	got := decode(t, nonCanon)
	if got.N != 5 {
		t.Fatalf("decode value = %d, want 5", got.N)
	}
	if got.Canonical {
		t.Errorf("expected non-canonical encoding to be flagged")
	}
	if !bytes.Equal(varint.Encode(5), []byte{0x05}) {
		t.Errorf("canonical re-encode of 5 should be a single byte")
	}
}
