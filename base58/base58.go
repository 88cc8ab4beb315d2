// Package base58 provides Base58 encoding and decoding for uint64 values.
// It uses the Bitcoin alphabet which excludes 0, O, I, and l to avoid ambiguity.
package base58

import "errors"

var encode = [58]byte{
	'1', '2', '3', '4', '5', '6', '7', '8', '9', 'A',
	'B', 'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K', 'L',
	'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W',
	'X', 'Y', 'Z', 'a', 'b', 'c', 'd', 'e', 'f', 'g',
	'h', 'i', 'j', 'k', 'm', 'n', 'o', 'p', 'q', 'r',
	's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

var decode [128]int8

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i, c := range encode {
		decode[c] = int8(i)
	}
}

var (
	// ErrInvalidBase58 is returned when decoding a string with invalid Base58 characters.
	ErrInvalidBase58 = errors.New("base58: invalid character")
	// ErrOverflow is returned when the decoded value does not fit in a uint64.
	ErrOverflow = errors.New("base58: value overflows uint64")
	// ErrEmpty is returned when decoding an empty string.
	ErrEmpty = errors.New("base58: empty string")
)

// Encode returns the Base58 encoding of n.
func Encode(n uint64) string {
	if n == 0 {
		return "1"
	}
	var buf [11]byte // max 11 chars for uint64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = encode[n%58]
		n /= 58
	}
	return string(buf[i:])
}

// Decode parses a Base58-encoded string and returns the uint64 value.
func Decode(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrEmpty
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || decode[c] < 0 {
			return 0, ErrInvalidBase58
		}
		v := uint64(decode[c])
		if n > (1<<64-1-v)/58 {
			return 0, ErrOverflow
		}
		n = n*58 + v
	}
	return n, nil
}
