package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Int is an integer field that also accepts numeric strings, so both
// {"category_id": 3} and {"category_id": "3"} decode to 3.
type Int int64

// Int64 returns n as int64.
func (n Int) Int64() int64 { return int64(n) }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	raw := string(b)
	kind := "number"
	if len(b) > 0 && b[0] == '"' {
		kind = "string"
		s, err := strconv.Unquote(raw)
		if err != nil {
			return typeError(kind)
		}
		raw = strings.TrimSpace(s)
	} else if len(b) > 0 && (b[0] == '{' || b[0] == '[' || b[0] == 't' || b[0] == 'f') {
		return typeError(valueKind(b[0]))
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Int(v)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int64(f)) {
		return typeError(kind)
	}
	*n = Int(int64(f))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Int) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}

func typeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(Int(0))}
}

func valueKind(c byte) string {
	switch c {
	case '{':
		return "object"
	case '[':
		return "array"
	}
	return "bool"
}
