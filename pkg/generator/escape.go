package generator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Escape encodes a single value as one CSV cell. nil becomes the quoted
// empty cell `""`; everything else is stringified, interior quote characters
// are doubled, and the whole cell is wrapped in quotes. Every cell is always
// quoted regardless of content, trading output size for unconditional
// RFC 4180 compatibility.
func Escape(value any) string {
	if value == nil {
		return `""`
	}
	return `"` + strings.ReplaceAll(Stringify(value), `"`, `""`) + `"`
}

// Stringify renders a primitive in its plain textual form, the same form
// Escape uses inside a cell. Floats use the shortest representation that
// round-trips (42 -> "42", 1.5 -> "1.5").
func Stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprint(v)
	}
}

// coerce converts a resolved, formatted value into a printable form:
// non-nil composite values (maps, slices, structs) are JSON-serialized,
// primitives pass through untouched. A value that cannot be serialized
// aborts generation, since CSV output cannot be produced for it.
func coerce(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value, nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("serialize value of type %T: %w", value, err)
	}
	return string(b), nil
}
