package blockfile

import "github.com/smythg/blkscan/internal/digest"

// merkleParent combines two child hashes (on-disk little-endian order)
// into their parent via double-SHA-256.
func merkleParent(left, right []byte) []byte {
	combined := make([]byte, 0, len(left)+len(right))
	combined = append(combined, left...)
	combined = append(combined, right...)
	return digest.DoubleSHA256(combined)
}

// nextLevel reduces one level of an ordered hash list to its parents,
// pairing left-to-right. An odd-sized level pairs its last hash with
// itself without ever appending a duplicate onto the input slice —
// reads past the last real index simply reuse hashes[i] directly.
func nextLevel(hashes [][]byte) [][]byte {
	parents := make([][]byte, 0, (len(hashes)+1)/2)
	for i := 0; i < len(hashes); i += 2 {
		left := hashes[i]
		right := left
		if i+1 < len(hashes) {
			right = hashes[i+1]
		}
		parents = append(parents, merkleParent(left, right))
	}
	return parents
}

// merkleRoot computes the Merkle root over an ordered list of
// transaction hashes by recursively reducing one level at a time,
// duplicating the trailing hash at every odd-sized level, until a
// single root remains. A single-transaction block's root is that
// transaction's own hash.
func merkleRoot(hashes [][]byte) []byte {
	switch len(hashes) {
	case 0:
		return nil
	case 1:
		return hashes[0]
	default:
		return merkleRoot(nextLevel(hashes))
	}
}
