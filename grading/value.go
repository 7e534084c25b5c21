package grading

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a nullable answer scalar as it travels through submissions,
// question definitions and stored audit entries. The zero Value is null.
type Value struct {
	s     string
	valid bool
}

// Text returns a present Value holding s.
func Text(s string) Value {
	return Value{s: s, valid: true}
}

// Valid reports whether the value is present (not null).
func (v Value) Valid() bool { return v.valid }

// String returns the textual form, or "" for null.
func (v Value) String() string { return v.s }

// MarshalJSON writes null or the textual form as a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON accepts strings, numbers, booleans and null. Numbers keep
// the shortest decimal form so that 0 becomes "0" and 1.0 becomes "1".
// Arrays and objects are kept as their raw JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = Text(x)
	case json.Number:
		*v = Text(formatNumber(x))
	case bool:
		*v = Text(strconv.FormatBool(x))
	default:
		*v = Text(string(bytes.TrimSpace(data)))
	}
	return nil
}

func formatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// Scan implements sql.Scanner for nullable TEXT columns.
func (v *Value) Scan(src interface{}) error {
	switch x := src.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = Text(x)
	case []byte:
		*v = Text(string(x))
	case int64:
		*v = Text(strconv.FormatInt(x, 10))
	default:
		return fmt.Errorf("grading: cannot scan %T into Value", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	if !v.valid {
		return nil, nil
	}
	return v.s, nil
}
