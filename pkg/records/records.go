// Package records acquires input rows for CSV generation. Rows are JSON
// arrays of objects, read from a local file or fetched from an HTTP
// endpoint. Parsing preserves the difference between a key that is absent
// and a key that is explicitly null, which drives static fallback in the
// generator.
package records

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hellenic-development/csv-exporter/pkg/generator"
)

// LoadFile reads a JSON array of objects from path.
func LoadFile(path string) ([]generator.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows file: %w", err)
	}

	rows, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// Parse decodes a JSON array of objects into rows. Numbers decode as
// float64, null values stay present in the row as nil, and nested objects
// or arrays decode to maps and slices for later JSON coercion.
func Parse(data []byte) ([]generator.Row, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, errors.New("expected a JSON array of row objects")
	}

	var rows []generator.Row
	var parseErr error

	parsed.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			parseErr = fmt.Errorf("row %d is not an object", len(rows))
			return false
		}

		row := make(generator.Row)
		item.ForEach(func(key, value gjson.Result) bool {
			row[key.String()] = value.Value()
			return true
		})
		rows = append(rows, row)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return rows, nil
}

// IsURL reports whether source should be fetched over HTTP rather than
// read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
