// Package digest implements the decoder's cryptographic primitives:
// double-SHA-256, Hash160 (SHA-256 then RIPEMD-160), and Base58Check
// address derivation from a public key.
package digest

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // no RIPEMD-160 in the standard library
)

// DoubleSHA256 applies SHA-256 twice, the ubiquitous Bitcoin hash
// function used for block hashes, transaction ids, and Merkle nodes.
func DoubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 is SHA-256 followed by RIPEMD-160, used to derive pubkey and
// script hashes.
func Hash160(data []byte) []byte {
	h1 := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(h1[:])
	return hasher.Sum(nil)
}

// Version byte prefixes for Base58Check addresses (mainnet).
const (
	VersionP2PKH byte = 0x00
	VersionP2SH  byte = 0x05
)

// AddressFromHash160 encodes a 20-byte hash as a Base58Check address
// under the given version byte: version || hash, checksummed with the
// first 4 bytes of double-SHA-256(version || hash).
func AddressFromHash160(hash160 []byte, version byte) string {
	payload := make([]byte, 0, 1+len(hash160))
	payload = append(payload, version)
	payload = append(payload, hash160...)
	return EncodeBase58Checksum(payload)
}

// PubkeyToAddress derives a mainnet P2PKH address from a raw public key.
func PubkeyToAddress(pubkey []byte) string {
	return AddressFromHash160(Hash160(pubkey), VersionP2PKH)
}
