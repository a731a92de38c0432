// Package exportspec loads declarative export specifications. A spec is a
// YAML document binding field keys to header labels, fixing the output
// column order, and optionally attaching static values and named transforms
// per header:
//
//	fields:
//	  first_name: First Name
//	  active: Status
//	headers: [First Name, Country, Status]
//	static:
//	  Country: USA
//	format:
//	  Status: "bool:Active/Inactive"
//
// Transforms are compiled into generator formatters at load time; an
// unknown transform name is a load error, not a silent no-op.
package exportspec

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/csv-exporter/pkg/generator"
)

// Spec is a parsed, validated export specification.
type Spec struct {
	// Fields maps field keys to header labels.
	Fields map[string]string `yaml:"fields"`

	// Headers is the ordered list of output columns.
	Headers []string `yaml:"headers"`

	// Static supplies constant values for headers without a field-mapped
	// value, keyed by header label.
	Static map[string]any `yaml:"static"`

	// Format names a transform per header label, e.g. "upper" or
	// "date:2006-01-02".
	Format map[string]string `yaml:"format"`

	formatters map[string]generator.Formatter
}

// Load reads and parses a spec file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes and validates a YAML spec document.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *Spec) validate() error {
	if len(s.Headers) == 0 {
		return errors.New("spec has no headers")
	}

	seen := make(map[string]string, len(s.Fields))
	for fieldKey, label := range s.Fields {
		if prev, ok := seen[label]; ok {
			if fieldKey < prev {
				prev, fieldKey = fieldKey, prev
			}
			return fmt.Errorf("ambiguous header label %q: mapped by fields %q and %q", label, prev, fieldKey)
		}
		seen[label] = fieldKey
	}

	s.formatters = make(map[string]generator.Formatter, len(s.Format))
	for label, name := range s.Format {
		f, err := compileTransform(name)
		if err != nil {
			return fmt.Errorf("format rule for %q: %w", label, err)
		}
		s.formatters[label] = f
	}

	return nil
}

// FieldLabels returns the field-key to header-label mapping.
func (s *Spec) FieldLabels() generator.FieldLabelMap {
	return generator.FieldLabelMap(s.Fields)
}

// Rules builds the generator rules declared by the spec. Static entries
// become constants; format entries become the compiled transforms.
func (s *Spec) Rules() *generator.Rules {
	rules := &generator.Rules{
		StaticByHeader: make(map[string]generator.Static, len(s.Static)),
		FormatByHeader: make(map[string]generator.Formatter, len(s.formatters)),
	}
	for label, value := range s.Static {
		rules.StaticByHeader[label] = generator.Constant(value)
	}
	for label, f := range s.formatters {
		rules.FormatByHeader[label] = f
	}
	return rules
}
