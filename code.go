// Package b32 provides Code, a short numeric identifier of at most ten decimal
// digits whose canonical text form is Crockford Base32.
package b32

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/binary"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/paraglidehq/b32/base58"
	"github.com/paraglidehq/b32/crockford"
)

// Compile-time interface checks for Code
var (
	_ fmt.Stringer               = Code(0)
	_ driver.Valuer              = Code(0)
	_ sql.Scanner                = (*Code)(nil)
	_ encoding.TextMarshaler     = Code(0)
	_ encoding.TextUnmarshaler   = (*Code)(nil)
	_ encoding.BinaryMarshaler   = Code(0)
	_ encoding.BinaryUnmarshaler = (*Code)(nil)
	_ json.Marshaler             = Code(0)
	_ json.Unmarshaler           = (*Code)(nil)
	_ gob.GobEncoder             = Code(0)
	_ gob.GobDecoder             = (*Code)(nil)
)

type Format string

const (
	FormatCrockford Format = "crockford"
	FormatBase58    Format = "base58"
	FormatDecimal   Format = "decimal"
)

// DefaultFormat is used by String, Parse and the text marshalers.
var DefaultFormat = FormatCrockford

// Code is a non-negative number of at most ten decimal digits.
type Code uint64

const (
	Nil     Code = 0
	MaxCode Code = 9999999999
)

var (
	ErrEmpty      = errors.New("b32: empty string")
	ErrOutOfRange = errors.New("b32: code out of range")
)

func (c Code) Uint64() uint64 {
	return uint64(c)
}

func (c Code) IsNil() bool {
	return c == Nil
}

// Valid reports whether c is within [0, MaxCode].
func (c Code) Valid() bool {
	return c <= MaxCode
}

// Bytes returns the Code as an 8-byte big-endian slice.
func (c Code) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(c))
	return b
}

func (c Code) String() string {
	return c.Format(DefaultFormat)
}

// Format returns the external representation of c, obfuscated when
// DefaultObfuscator is set.
func (c Code) Format(f Format) string {
	n := uint64(obfuscate(c))
	switch f {
	case FormatDecimal:
		return strconv.FormatUint(n, 10)
	case FormatBase58:
		return base58.Encode(n)
	default:
		return crockford.EncodeUint64(n)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Code) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Code) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Bare JSON numbers are read as
// raw decimal values.
func (c *Code) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = Nil
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		n, err := strconv.ParseUint(string(b), 10, 64)
		if err != nil {
			return errors.New("b32: invalid JSON value")
		}
		parsed, err := FromUint64(n)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("b32: invalid JSON string")
	}
	return c.UnmarshalText(b[1 : len(b)-1])
}

// Value implements driver.Valuer. Codes are stored as raw bigint values.
func (c Code) Value() (driver.Value, error) {
	return int64(c), nil
}

// Scan implements sql.Scanner
func (c *Code) Scan(src interface{}) error {
	if src == nil {
		*c = Nil
		return nil
	}
	switch v := src.(type) {
	case Code:
		*c = v
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: %d", ErrOutOfRange, v)
		}
		parsed, err := FromUint64(uint64(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		return c.UnmarshalText(v)
	case string:
		return c.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("b32: cannot scan %T", src)
	}
}

// Parse parses a string into a Code using DefaultFormat.
func Parse(s string) (Code, error) {
	switch DefaultFormat {
	case FormatDecimal:
		return ParseDecimal(s)
	case FormatBase58:
		return ParseBase58(s)
	default:
		return ParseCrockford(s)
	}
}

// ParseCrockford parses a Crockford Base32 string into a Code. Decoding is
// case-insensitive and ignores hyphens.
func ParseCrockford(s string) (Code, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	n, err := crockford.DecodeUint64(s)
	if err != nil {
		return Nil, err
	}
	return external(n)
}

// ParseBase58 parses a base58-encoded string into a Code.
func ParseBase58(s string) (Code, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	n, err := base58.Decode(s)
	if err != nil {
		return Nil, err
	}
	return external(n)
}

// ParseDecimal parses a decimal string into a Code.
func ParseDecimal(s string) (Code, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Nil, fmt.Errorf("b32: invalid decimal: %w", err)
	}
	return external(n)
}

// Parse parses a string into the Code receiver.
func (c *Code) Parse(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FromString returns a Code parsed from the input string.
// Alias for Parse.
func FromString(s string) (Code, error) {
	return Parse(s)
}

// FromStringOrNil returns a Code parsed from the input string.
// Returns Nil on error.
func FromStringOrNil(s string) Code {
	c, err := Parse(s)
	if err != nil {
		return Nil
	}
	return c
}

// FromUint64 returns n as a Code, or ErrOutOfRange if n exceeds MaxCode.
func FromUint64(n uint64) (Code, error) {
	if n > uint64(MaxCode) {
		return Nil, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return Code(n), nil
}

// FromBytes returns a Code from an 8-byte big-endian slice.
func FromBytes(b []byte) (Code, error) {
	if len(b) != 8 {
		return Nil, fmt.Errorf("b32: code must be exactly 8 bytes, got %d", len(b))
	}
	return FromUint64(binary.BigEndian.Uint64(b))
}

// FromBytesOrNil returns a Code from an 8-byte slice.
// Returns Nil on error.
func FromBytesOrNil(b []byte) Code {
	c, err := FromBytes(b)
	if err != nil {
		return Nil
	}
	return c
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c Code) MarshalBinary() ([]byte, error) {
	return c.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Code) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// GobEncode implements gob.GobEncoder.
func (c Code) GobEncode() ([]byte, error) {
	return c.MarshalBinary()
}

// GobDecode implements gob.GobDecoder.
func (c *Code) GobDecode(data []byte) error {
	return c.UnmarshalBinary(data)
}

// Must panics if err is not nil
func Must(c Code, err error) Code {
	if err != nil {
		panic(err)
	}
	return c
}

// external validates a parsed external value and removes obfuscation.
func external(n uint64) (Code, error) {
	c, err := FromUint64(n)
	if err != nil {
		return Nil, err
	}
	return deobfuscate(c), nil
}
