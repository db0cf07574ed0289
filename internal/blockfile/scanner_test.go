package blockfile_test

import (
	"bytes"
	"testing"

	"github.com/smythg/blkscan/internal/blockfile"
	"github.com/smythg/blkscan/internal/bytestream"
)

func buildFile(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(buildBlock(byte(i)))
	}
	return buf.Bytes()
}

func scanAll(t *testing.T, raw []byte, start, count int) []string {
	t.Helper()
	r := bytestream.NewReader(bytes.NewReader(raw), int64(len(raw)))
	s := blockfile.NewScanner(r, start, count)
	var ids []string
	for {
		b, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		ids = append(ids, b.ID())
	}
	return ids
}

func TestScannerEmitsAllBlocksByDefault(t *testing.T) {
	raw := buildFile(4)
	ids := scanAll(t, raw, 0, -1)
	if len(ids) != 4 {
		t.Fatalf("got %d blocks, want 4", len(ids))
	}
}

func TestScannerSkipEquivalence(t *testing.T) {
	raw := buildFile(6)

	full := scanAll(t, raw, 0, 5) // start=0, count=s+n with s=2,n=3
	windowed := scanAll(t, raw, 2, 3)

	if len(windowed) != 3 {
		t.Fatalf("windowed len = %d, want 3", len(windowed))
	}
	if len(full) != 5 {
		t.Fatalf("full len = %d, want 5", len(full))
	}
	for i, id := range windowed {
		if id != full[2+i] {
			t.Errorf("windowed[%d] = %s, want %s", i, id, full[2+i])
		}
	}
}

func TestScannerStopsCleanlyOnTruncatedTail(t *testing.T) {
	raw := buildFile(2)
	raw = append(raw, 0x01, 0x02, 0x03) // partial tail: < 8 bytes

	ids := scanAll(t, raw, 0, -1)
	if len(ids) != 2 {
		t.Fatalf("got %d blocks, want 2", len(ids))
	}
}

func TestScannerCountZeroEmitsNothing(t *testing.T) {
	raw := buildFile(3)
	ids := scanAll(t, raw, 0, 0)
	if len(ids) != 0 {
		t.Fatalf("got %d blocks, want 0", len(ids))
	}
}
