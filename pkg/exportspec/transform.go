package exportspec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hellenic-development/csv-exporter/pkg/generator"
)

// compileTransform turns a transform name into a generator formatter.
// Names are either bare ("upper") or parameterized with a colon
// ("bool:Active/Inactive", "date:2006-01-02").
func compileTransform(name string) (generator.Formatter, error) {
	kind, arg, _ := strings.Cut(name, ":")

	switch kind {
	case "upper":
		return func(v any, _ generator.Row) any {
			return strings.ToUpper(generator.Stringify(v))
		}, nil

	case "lower":
		return func(v any, _ generator.Row) any {
			return strings.ToLower(generator.Stringify(v))
		}, nil

	case "trim":
		return func(v any, _ generator.Row) any {
			return strings.TrimSpace(generator.Stringify(v))
		}, nil

	case "prefix":
		return func(v any, _ generator.Row) any {
			return arg + generator.Stringify(v)
		}, nil

	case "suffix":
		return func(v any, _ generator.Row) any {
			return generator.Stringify(v) + arg
		}, nil

	case "bool":
		trueLabel, falseLabel, ok := strings.Cut(arg, "/")
		if !ok {
			return nil, fmt.Errorf("bool transform needs true/false labels, got %q", arg)
		}
		return func(v any, _ generator.Row) any {
			if truthy(v) {
				return trueLabel
			}
			return falseLabel
		}, nil

	case "date":
		if arg == "" {
			return nil, fmt.Errorf("date transform needs a layout")
		}
		return func(v any, _ generator.Row) any {
			switch t := v.(type) {
			case time.Time:
				return t.Format(arg)
			case string:
				if parsed, err := time.Parse(time.RFC3339, t); err == nil {
					return parsed.Format(arg)
				}
			}
			// Not a recognizable date, leave the value alone.
			return v
		}, nil

	case "number":
		decimals, err := strconv.Atoi(arg)
		if err != nil || decimals < 0 {
			return nil, fmt.Errorf("number transform needs a non-negative decimal count, got %q", arg)
		}
		return func(v any, _ generator.Row) any {
			if f, ok := asFloat(v); ok {
				return strconv.FormatFloat(f, 'f', decimals, 64)
			}
			return v
		}, nil

	default:
		return nil, fmt.Errorf("unknown transform %q (known: upper, lower, trim, prefix, suffix, bool, date, number)", kind)
	}
}

// truthy mirrors the loose truth test callers expect from boolean
// transforms: nil, false, zero and the empty string are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := asFloat(v); ok {
			return f != 0
		}
		return true
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
