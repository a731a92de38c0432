// Package generator materializes structured records into CSV text.
//
// The caller supplies rows, a field-key to header-label mapping, and an
// explicit header order; Generate resolves every cell through a fixed
// precedence chain (field lookup, static fallback, default-to-empty,
// formatting, printable coercion) and escapes it for CSV output.
package generator

import (
	"fmt"
	"strings"
)

// Row is a single input record: field key to value. A key that is absent
// from the map is treated as "no value" and triggers static fallback; a key
// present with a nil value is a legitimate resolved value and does not.
// Rows are never mutated.
type Row map[string]any

// FieldLabelMap maps internal field keys to the header labels shown in the
// CSV output. Labels must be unique across fields; Generate rejects
// duplicates because the reverse lookup would otherwise be ambiguous.
type FieldLabelMap map[string]string

// Generate builds the full CSV document for rows with the given header
// order. Headers without a field mapping resolve through rules (static
// values or computed fallbacks) or default to an empty cell. Every line,
// including the header line and the last data row, is terminated by \n;
// an empty rows slice yields the header line alone.
//
// The only failure points are an ambiguous fieldLabelMap (two field keys
// sharing one label) and a cell value that cannot be serialized during
// printable coercion. No partial output is returned on error.
func Generate(rows []Row, fieldLabelMap FieldLabelMap, orderedHeaderLabels []string, rules *Rules) (string, error) {
	index, err := reverseIndex(fieldLabelMap)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	cells := make([]string, len(orderedHeaderLabels))

	for i, label := range orderedHeaderLabels {
		cells[i] = Escape(label)
	}
	sb.WriteString(strings.Join(cells, ","))
	sb.WriteByte('\n')

	for _, row := range rows {
		for i, label := range orderedHeaderLabels {
			value, err := resolveCell(row, label, index, rules)
			if err != nil {
				return "", err
			}
			cells[i] = Escape(value)
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// Materialize runs the same resolution pipeline as Generate but returns the
// plain cell texts without CSV escaping: the header row first, then one row
// of cells per input row. Useful for previewing output in another shape.
func Materialize(rows []Row, fieldLabelMap FieldLabelMap, orderedHeaderLabels []string, rules *Rules) ([][]string, error) {
	index, err := reverseIndex(fieldLabelMap)
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), orderedHeaderLabels...))

	for _, row := range rows {
		cells := make([]string, len(orderedHeaderLabels))
		for i, label := range orderedHeaderLabels {
			value, err := resolveCell(row, label, index, rules)
			if err != nil {
				return nil, err
			}
			if value == nil {
				cells[i] = ""
			} else {
				cells[i] = Stringify(value)
			}
		}
		out = append(out, cells)
	}

	return out, nil
}

// resolveCell computes the printable value for one header label of one row,
// applying the resolution precedence in order. The result is ready for
// escaping: nil or a primitive.
func resolveCell(row Row, label string, index map[string]string, rules *Rules) (any, error) {
	var value any
	resolved := false

	// 1. Field lookup via the label->field reverse index.
	if fieldKey, ok := index[label]; ok {
		value, resolved = row[fieldKey]
	}

	// 2. Static fallback, only when the field lookup found nothing at all.
	// A nil field value counts as found and skips this step.
	if !resolved && rules != nil {
		if static, ok := rules.StaticByHeader[label]; ok {
			value = static.resolve(row)
		}
	}

	// 3. Still nothing -> empty cell.
	if value == nil {
		value = ""
	}

	// 4. Formatting supersedes the resolved value entirely.
	if rules != nil {
		if format, ok := rules.FormatByHeader[label]; ok {
			value = format(value, row)
		}
	}

	// 5. Printable coercion.
	printable, err := coerce(value)
	if err != nil {
		return nil, fmt.Errorf("resolve cell %q: %w", label, err)
	}

	return printable, nil
}

// reverseIndex inverts a FieldLabelMap into a label->field-key lookup.
// Duplicate labels are rejected outright: map iteration order would make a
// last-write-wins tie-break nondeterministic between calls.
func reverseIndex(fieldLabelMap FieldLabelMap) (map[string]string, error) {
	index := make(map[string]string, len(fieldLabelMap))
	for fieldKey, label := range fieldLabelMap {
		if prev, ok := index[label]; ok {
			// Order the pair for a stable message.
			if fieldKey < prev {
				prev, fieldKey = fieldKey, prev
			}
			return nil, fmt.Errorf("ambiguous header label %q: mapped by fields %q and %q", label, prev, fieldKey)
		}
		index[label] = fieldKey
	}
	return index, nil
}
