package digest

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// base58Digit is a reverse lookup from alphabet byte to digit value,
// built once so decode never scans the alphabet string per character.
var base58Digit = func() (tbl [256]int8) {
	for i := range tbl {
		tbl[i] = -1
	}
	for i := 0; i < len(base58Alphabet); i++ {
		tbl[base58Alphabet[i]] = int8(i)
	}
	return
}()

// EncodeBase58 encodes data in Bitcoin's Base58 alphabet, preserving one
// leading '1' per leading zero byte. Digits are accumulated into a byte
// buffer least-significant-first and reversed once, rather than
// repeatedly prepending onto a growing string.
func EncodeBase58(data []byte) string {
	leadingZeros := 0
	for leadingZeros < len(data) && data[leadingZeros] == 0 {
		leadingZeros++
	}

	n := new(big.Int).SetBytes(data)
	fiftyEight := big.NewInt(58)
	mod := new(big.Int)

	digits := make([]byte, 0, len(data)*138/100+1)
	for n.Sign() > 0 {
		n.DivMod(n, fiftyEight, mod)
		digits = append(digits, base58Alphabet[mod.Int64()])
	}
	slices.Reverse(digits)

	out := make([]byte, leadingZeros, leadingZeros+len(digits))
	for i := range out {
		out[i] = '1'
	}
	out = append(out, digits...)
	return string(out)
}

// EncodeBase58Checksum appends the first 4 bytes of double-SHA-256(data)
// to data and Base58-encodes the result.
func EncodeBase58Checksum(data []byte) string {
	checksum := DoubleSHA256(data)[:4]
	return EncodeBase58(append(slices.Clone(data), checksum...))
}

// DecodeBase58Checksum reverses EncodeBase58Checksum, verifying and
// stripping the 4-byte checksum and returning data (including its
// version byte).
func DecodeBase58Checksum(s string) ([]byte, error) {
	n := new(big.Int)
	fiftyEight := big.NewInt(58)
	leadingOnes := 0
	sawDigit := false

	for i := 0; i < len(s); i++ {
		d := base58Digit[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("invalid base58 character: %c", s[i])
		}
		if !sawDigit && s[i] == '1' {
			leadingOnes++
		} else {
			sawDigit = true
		}
		n.Mul(n, fiftyEight)
		n.Add(n, big.NewInt(int64(d)))
	}

	body := n.Bytes()
	combined := make([]byte, leadingOnes+len(body))
	copy(combined[leadingOnes:], body)

	if len(combined) < 4 {
		return nil, errors.New("base58check payload too short")
	}
	payload := combined[:len(combined)-4]
	checksum := combined[len(combined)-4:]

	want := DoubleSHA256(payload)[:4]
	if !slices.Equal(want, checksum) {
		return nil, fmt.Errorf("base58check checksum mismatch: got %x, want %x", checksum, want)
	}
	return payload, nil
}
