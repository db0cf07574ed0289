// Package difficulty expands the compact 4-byte "bits" field of a block
// header into the 256-bit target a block hash must not exceed. The
// exponent and coefficient are derived directly from the little-endian
// uint32 via shifts and masks, never by re-slicing the field as a byte
// array, so there is exactly one view of bits in the codebase.
package difficulty

import "math/big"

// coefficientMask isolates the low 3 bytes of the bits field.
const coefficientMask uint32 = 0x00ffffff

// Expand converts the compact "bits" field into its 256-bit target:
// target = coefficient * 256^(exponent-3), where exponent is the
// high byte of bits and coefficient is its low 3 bytes.
func Expand(bits uint32) *big.Int {
	exponent := bits >> 24
	coefficient := bits & coefficientMask

	target := big.NewInt(int64(coefficient))
	switch {
	case exponent > 3:
		target.Lsh(target, uint(8*(exponent-3)))
	case exponent < 3:
		target.Rsh(target, uint(8*(3-exponent)))
	}
	return target
}

// LEBytesToInt interprets a 32-byte hash stored in on-disk (little
// endian) order as a non-negative little-endian integer, as required to
// compare a block hash against its target.
func LEBytesToInt(hashLE []byte) *big.Int {
	be := make([]byte, len(hashLE))
	for i, b := range hashLE {
		be[len(hashLE)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// MeetsTarget reports whether hashLE (32 bytes, on-disk little-endian
// order) is numerically <= the target expanded from bits.
func MeetsTarget(hashLE []byte, bits uint32) bool {
	return LEBytesToInt(hashLE).Cmp(Expand(bits)) <= 0
}
