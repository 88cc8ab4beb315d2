package b32

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
)

// NullCode is a nullable Code for bigint columns and optional JSON fields.
//
// Valid is true only when Code holds a value in [0, MaxCode]. Every decoding
// method resets the pair to (Nil, false) before it reports an error, so a
// failed Scan never leaves a stale Code marked valid.
type NullCode struct {
	Code  Code
	Valid bool
}

var (
	_ driver.Valuer            = NullCode{}
	_ sql.Scanner              = (*NullCode)(nil)
	_ json.Marshaler           = NullCode{}
	_ json.Unmarshaler         = (*NullCode)(nil)
	_ encoding.TextMarshaler   = NullCode{}
	_ encoding.TextUnmarshaler = (*NullCode)(nil)
)

// Value stores the raw, unobfuscated code as a bigint, or NULL.
func (n NullCode) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Code.Value()
}

// Scan accepts NULL, an int64 in [0, MaxCode], or text in DefaultFormat.
// Negative and oversized integers fail with ErrOutOfRange.
func (n *NullCode) Scan(src interface{}) error {
	if src == nil {
		n.Code, n.Valid = Nil, false
		return nil
	}
	return n.set(n.Code.Scan(src))
}

// set records the outcome of decoding into n.Code.
func (n *NullCode) set(err error) error {
	if err != nil {
		n.Code, n.Valid = Nil, false
		return err
	}
	n.Valid = true
	return nil
}

var nullJSON = []byte("null")

// MarshalJSON writes null, or the code as a string in DefaultFormat.
func (n NullCode) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullJSON, nil
	}
	return n.Code.MarshalJSON()
}

// UnmarshalJSON reads null, a quoted code or a bare decimal number.
func (n *NullCode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.Code, n.Valid = Nil, false
		return nil
	}
	return n.set(n.Code.UnmarshalJSON(b))
}

// MarshalText returns an empty slice for a NULL code.
func (n NullCode) MarshalText() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Code.MarshalText()
}

// UnmarshalText treats empty input as NULL.
func (n *NullCode) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		n.Code, n.Valid = Nil, false
		return nil
	}
	return n.set(n.Code.UnmarshalText(b))
}
