// Package models holds the row and payload types of the DWR API.
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a numeric value that browsers may send either as a JSON number or
// as a string (form inputs). It is kept in its textual form and handed to
// PostgreSQL as text, so the column type decides how it is parsed.
// The empty Number stands for "absent" and is written as NULL.
type Number string

// UnmarshalJSON accepts null, a number literal or a string.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("invalid number %s", b)
		}
		*n = Number(num)
	}
	return nil
}

// MarshalJSON writes the number literal, or null when absent.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(n), 64); err != nil {
		return json.Marshal(string(n))
	}
	return []byte(n), nil
}

// Value implements driver.Valuer.
func (n Number) Value() (driver.Value, error) {
	if n == "" {
		return nil, nil
	}
	return string(n), nil
}

// IsZero reports whether n is absent or numerically zero.
func (n Number) IsZero() bool {
	if n == "" {
		return true
	}
	f, err := strconv.ParseFloat(string(n), 64)
	return err == nil && f == 0
}

// OrNull returns nil for a zero Number, the Number otherwise.
func (n Number) OrNull() any {
	if n.IsZero() {
		return nil
	}
	return n
}

// StringOrNull returns nil for a nil or empty string.
func StringOrNull(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// ValueOrNull dereferences p, or returns nil for a nil pointer.
func ValueOrNull[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
