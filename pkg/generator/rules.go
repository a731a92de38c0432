package generator

// Static is a fallback value for a header that has no field-mapped value in
// a given row. It is either a constant or a value derived from the row;
// construct one with Constant or Derived.
type Static struct {
	compute func(Row) any
	value   any
	derived bool
}

// Constant returns a Static that always resolves to v.
func Constant(v any) Static {
	return Static{value: v}
}

// Derived returns a Static that computes its value from the row. A panic
// inside fn propagates to the Generate caller.
func Derived(fn func(Row) any) Static {
	return Static{compute: fn, derived: true}
}

func (s Static) resolve(row Row) any {
	if s.derived {
		return s.compute(row)
	}
	return s.value
}

// Formatter rewrites a resolved cell value before printable coercion. It
// receives the value produced by the field/static/default chain together
// with the full row, and its return value supersedes the resolved value.
type Formatter func(value any, row Row) any

// Rules is the optional per-call configuration, keyed by header label.
type Rules struct {
	// StaticByHeader supplies values for headers whose field lookup found
	// nothing (unmapped labels, or mapped field keys absent from the row).
	StaticByHeader map[string]Static

	// FormatByHeader post-processes resolved values per header.
	FormatByHeader map[string]Formatter
}
