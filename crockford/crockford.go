// Package crockford provides Crockford Base32 encoding and decoding for
// non-negative integers, both as decimal strings and as uint64 values.
// It uses the Crockford alphabet which excludes I, L, O, U to avoid ambiguity.
// Decoding is case-insensitive, ignores hyphens, and reads I and L as 1 and O as 0.
package crockford

import (
	"errors"
	"fmt"
	"strconv"
)

// Alphabet is the Crockford symbol set; a symbol's index is its 5-bit value.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// MaxDigits is the longest decimal string Encode accepts.
const MaxDigits = 10

var encode = [32]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K',
	'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'X',
	'Y', 'Z',
}

// decode maps ASCII to symbol value, -1 for bytes outside the alphabet.
// Hyphens are handled by the callers, not the table.
var decode [128]int8

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i, c := range encode {
		decode[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			decode[c+32] = int8(i)
		}
	}
	decode['I'], decode['i'] = 1, 1
	decode['L'], decode['l'] = 1, 1
	decode['O'], decode['o'] = 0, 0
}

var (
	// ErrInvalidInput is returned for empty input, or for Encode input that is
	// not a decimal string of at most MaxDigits digits.
	ErrInvalidInput = errors.New("crockford: invalid input")
	// ErrInvalidCharacter is wrapped by DecodeError for symbols outside the alphabet.
	ErrInvalidCharacter = errors.New("crockford: invalid character")
	// ErrOverflow is wrapped by DecodeError when the value does not fit in a uint64.
	ErrOverflow = errors.New("crockford: value overflows uint64")
)

// DecodeError reports where decoding failed.
type DecodeError struct {
	Input string
	Pos   int // byte offset into Input
	Err   error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrOverflow) {
		return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Pos, e.Input)
	}
	return fmt.Sprintf("%v %q at offset %d in %q", e.Err, e.Input[e.Pos], e.Pos, e.Input)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode converts a decimal string of at most MaxDigits digits to its
// uppercase Crockford Base32 form. Leading zeros in the input are accepted.
func Encode(numberToEncode string) (string, error) {
	if len(numberToEncode) == 0 {
		return "", fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	if len(numberToEncode) > MaxDigits {
		return "", fmt.Errorf("%w: %d digits exceeds the %d digit limit", ErrInvalidInput, len(numberToEncode), MaxDigits)
	}
	for i := 0; i < len(numberToEncode); i++ {
		if c := numberToEncode[i]; c < '0' || c > '9' {
			return "", fmt.Errorf("%w: non-digit %q at offset %d", ErrInvalidInput, c, i)
		}
	}
	n, err := strconv.ParseUint(numberToEncode, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return EncodeUint64(n), nil
}

// Decode converts a Crockford Base32 string back to its decimal string.
// Returns ErrInvalidInput for empty input and a *DecodeError for symbols
// outside the alphabet or values that overflow a uint64.
func Decode(base32String string) (string, error) {
	n, err := DecodeUint64(base32String)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

// EncodeUint64 returns the Crockford Base32 encoding of n.
func EncodeUint64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [13]byte // max 13 chars for uint64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = encode[n&0x1f]
		n >>= 5
	}
	return string(buf[i:])
}

// DecodeUint64 parses a Crockford Base32 string into a uint64.
func DecodeUint64(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	var (
		n       uint64
		symbols int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			continue
		}
		v := value(c)
		if v < 0 {
			return 0, &DecodeError{Input: s, Pos: i, Err: ErrInvalidCharacter}
		}
		if n > (1<<64-1)>>5 {
			return 0, &DecodeError{Input: s, Pos: i, Err: ErrOverflow}
		}
		n = n<<5 | uint64(v)
		symbols++
	}
	if symbols == 0 {
		return 0, fmt.Errorf("%w: no symbols in %q", ErrInvalidInput, s)
	}
	return n, nil
}

// Normalize returns the canonical form of s: uppercase, without hyphens,
// with I, L and O replaced by 1, 1 and 0. Leading zero symbols are kept.
func Normalize(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			continue
		}
		v := value(c)
		if v < 0 {
			return "", &DecodeError{Input: s, Pos: i, Err: ErrInvalidCharacter}
		}
		out = append(out, encode[v])
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: no symbols in %q", ErrInvalidInput, s)
	}
	return string(out), nil
}

// Valid reports whether s decodes without error.
func Valid(s string) bool {
	_, err := DecodeUint64(s)
	return err == nil
}

// Group inserts a hyphen every size symbols, counting from the right, so
// Group("3G9KAB", 3) is "3G9-KAB". A size below one returns s unchanged.
func Group(s string, size int) string {
	if size < 1 || len(s) <= size {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/size)
	head := len(s) % size
	if head == 0 {
		head = size
	}
	out = append(out, s[:head]...)
	for i := head; i < len(s); i += size {
		out = append(out, '-')
		out = append(out, s[i:i+size]...)
	}
	return string(out)
}

func value(c byte) int8 {
	if c >= 128 {
		return -1
	}
	return decode[c]
}
