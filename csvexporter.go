package csvexporter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hellenic-development/csv-exporter/pkg/exportspec"
	"github.com/hellenic-development/csv-exporter/pkg/formatter"
	"github.com/hellenic-development/csv-exporter/pkg/generator"
	"github.com/hellenic-development/csv-exporter/pkg/records"
	"github.com/hellenic-development/csv-exporter/pkg/transport"
)

// Version is the current release of the exporter.
const Version = "0.1.0"

// Options configures the export.
type Options struct {
	Source   string          // rows source: local JSON file or http(s) URL
	Rows     []generator.Row // in-memory rows; takes precedence over Source
	SpecFile string          // YAML export spec path
	Spec     *exportspec.Spec // parsed spec; takes precedence over SpecFile

	Headers []string // optional override of the spec's header order

	OutputFile  string           // write the CSV here; empty = use the transport when Download is set
	Download    bool             // persist via the two-tier save transport
	Dialog      transport.Dialog // confirmable save capability; nil = fallback only
	DownloadDir string           // fallback download directory

	Preview string // "markdown" or "table" to render a preview, empty = none

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the export output.
type Result struct {
	CSV      string   // the full generated CSV document
	FileName string   // suggested or written file name
	Headers  []string // effective header order
	RowCount int      // number of data rows materialized
	Preview  string   // rendered preview, when requested
	Saved    bool     // best-known persistence outcome
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run executes the export pipeline: acquire rows, load the spec, materialize
// the CSV, optionally render a preview, and persist the output.
func Run(opts Options) (*Result, error) {
	ctx := context.Background()

	// Acquire rows.
	rows := opts.Rows
	if rows == nil {
		if opts.Source == "" {
			return nil, fmt.Errorf("no rows: set Rows or Source")
		}
		opts.logInfo("Loading rows from %s...", opts.Source)
		var err error
		rows, err = records.Load(ctx, opts.Source)
		if err != nil {
			return nil, fmt.Errorf("load rows: %w", err)
		}
	}
	opts.logInfo("Loaded %d row(s)", len(rows))

	// Load the export spec.
	spec := opts.Spec
	if spec == nil {
		if opts.SpecFile == "" {
			return nil, fmt.Errorf("no export spec: set Spec or SpecFile")
		}
		opts.logInfo("Loading export spec from %s...", opts.SpecFile)
		var err error
		spec, err = exportspec.Load(opts.SpecFile)
		if err != nil {
			return nil, fmt.Errorf("load spec: %w", err)
		}
	}

	headers := spec.Headers
	if len(opts.Headers) > 0 {
		opts.logInfo("Overriding header order (%d column(s))", len(opts.Headers))
		headers = opts.Headers
	}

	// Materialize the CSV.
	opts.logInfo("Generating CSV (%d column(s) x %d row(s))...", len(headers), len(rows))
	csv, err := generator.Generate(rows, spec.FieldLabels(), headers, spec.Rules())
	if err != nil {
		return nil, fmt.Errorf("generate CSV: %w", err)
	}

	result := &Result{
		CSV:      csv,
		Headers:  headers,
		RowCount: len(rows),
		FileName: records.DefaultFileName(opts.Source),
	}
	if opts.OutputFile != "" {
		result.FileName = opts.OutputFile
	}

	// Optional preview.
	if opts.Preview != "" {
		grid, err := generator.Materialize(rows, spec.FieldLabels(), headers, spec.Rules())
		if err != nil {
			return nil, fmt.Errorf("materialize preview: %w", err)
		}
		switch opts.Preview {
		case "markdown":
			result.Preview = formatter.ToMarkdown(grid)
		case "table":
			result.Preview = formatter.ToTable(grid)
		default:
			return nil, fmt.Errorf("invalid preview format %q (must be markdown or table)", opts.Preview)
		}
	}

	// Persist.
	switch {
	case opts.OutputFile != "":
		opts.logInfo("Writing %s...", opts.OutputFile)
		if err := os.WriteFile(opts.OutputFile, []byte(csv), 0644); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		result.Saved = true
	case opts.Download:
		downloader := &transport.Downloader{
			Dialog: opts.Dialog,
			Dir:    opts.DownloadDir,
			Logger: opts.Logger,
		}
		result.Saved = downloader.Download(ctx, csv, result.FileName)
		if !result.Saved {
			opts.logWarn("Download did not complete")
		}
	}

	return result, nil
}

// ParseHeaders parses a comma-separated string of header labels and returns
// a slice, trimming whitespace and dropping empty entries.
func ParseHeaders(headersStr string) []string {
	parts := strings.Split(headersStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
