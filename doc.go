// Package csvexporter converts sequences of structured records into
// delimited text (CSV) and persists the result through a two-tier save
// strategy (confirmable interactive save, else best-effort drop into a
// download directory).
//
// The CLI lives in cmd/csv-exporter; this root package exposes the same
// pipeline as a Go API so that callers can embed CSV export in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named csvexporter:
//
//	import "github.com/hellenic-development/csv-exporter" // package csvexporter
//
// # Quick start
//
//	result, err := csvexporter.Run(csvexporter.Options{
//	    Source:     "people.json",
//	    SpecFile:   "export.yaml",
//	    OutputFile: "people.csv",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d rows\n", result.RowCount)
//
// # Cell resolution
//
// Each output cell resolves through a fixed precedence: the header's mapped
// row field, then a static or computed fallback when the field is absent,
// then an empty default. A per-header formatter may rewrite the resolved
// value, composite values are JSON-serialized, and every cell is quoted and
// quote-escaped. The pkg/generator package exposes the programmatic rules
// API with derived statics and custom formatters.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Saving
//
// Set [Options.OutputFile] to write the CSV directly, or set
// [Options.Download] to hand it to the transport: a confirmable save dialog
// when [Options.Dialog] provides one, else a collision-safe write into
// [Options.DownloadDir]. The transport reports a best-known boolean outcome;
// a user canceling the dialog is a decision, not an error, and does not
// trigger the fallback.
package csvexporter
