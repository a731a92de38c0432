package csvexporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hellenic-development/csv-exporter/pkg/exportspec"
	"github.com/hellenic-development/csv-exporter/pkg/generator"
)

const testSpec = `
fields:
  first_name: First Name
  active: Status
headers: [First Name, Country, Status]
static:
  Country: USA
format:
  Status: "bool:Active/Inactive"
`

func writeTestFiles(t *testing.T) (rowsPath, specPath string) {
	t.Helper()
	dir := t.TempDir()

	rowsPath = filepath.Join(dir, "people.json")
	if err := os.WriteFile(rowsPath, []byte(`[{"first_name":"Ada","active":true}]`), 0644); err != nil {
		t.Fatal(err)
	}

	specPath = filepath.Join(dir, "export.yaml")
	if err := os.WriteFile(specPath, []byte(testSpec), 0644); err != nil {
		t.Fatal(err)
	}
	return rowsPath, specPath
}

func TestRunEndToEnd(t *testing.T) {
	rowsPath, specPath := writeTestFiles(t)
	outPath := filepath.Join(t.TempDir(), "out.csv")

	result, err := Run(Options{
		Source:     rowsPath,
		SpecFile:   specPath,
		OutputFile: outPath,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "\"First Name\",\"Country\",\"Status\"\n\"Ada\",\"USA\",\"Active\"\n"
	if result.CSV != want {
		t.Errorf("Run() CSV = %q, want %q", result.CSV, want)
	}
	if !result.Saved {
		t.Error("Run() Saved = false, want true")
	}
	if result.RowCount != 1 {
		t.Errorf("Run() RowCount = %d, want 1", result.RowCount)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != want {
		t.Errorf("output file = %q, want %q", string(data), want)
	}
}

func TestRunWithInMemoryRowsAndSpec(t *testing.T) {
	spec, err := exportspec.Parse([]byte(testSpec))
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{
		Rows: []generator.Row{{"first_name": "Grace", "active": false}},
		Spec: spec,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(result.CSV, "\"Grace\",\"USA\",\"Inactive\"") {
		t.Errorf("Run() CSV = %q", result.CSV)
	}
	if result.Saved {
		t.Error("Run() without a destination must not report Saved")
	}
}

func TestRunDownloadFallback(t *testing.T) {
	rowsPath, specPath := writeTestFiles(t)
	dir := t.TempDir()

	result, err := Run(Options{
		Source:      rowsPath,
		SpecFile:    specPath,
		Download:    true,
		DownloadDir: dir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Saved {
		t.Error("Run() Saved = false, want true")
	}
	if result.FileName != "people.csv" {
		t.Errorf("Run() FileName = %q, want people.csv", result.FileName)
	}

	// Fallback writes carry the UTF-8 BOM.
	data, err := os.ReadFile(filepath.Join(dir, "people.csv"))
	if err != nil {
		t.Fatalf("fallback file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "\xEF\xBB\xBF") {
		t.Error("downloaded file is missing the BOM")
	}
}

func TestRunHeaderOverride(t *testing.T) {
	spec, err := exportspec.Parse([]byte(testSpec))
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{
		Rows:    []generator.Row{{"first_name": "Ada", "active": true}},
		Spec:    spec,
		Headers: []string{"Status", "First Name"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasPrefix(result.CSV, "\"Status\",\"First Name\"\n") {
		t.Errorf("header override not applied: %q", result.CSV)
	}
}

func TestRunPreview(t *testing.T) {
	spec, err := exportspec.Parse([]byte(testSpec))
	if err != nil {
		t.Fatal(err)
	}
	rows := []generator.Row{{"first_name": "Ada", "active": true}}

	result, err := Run(Options{Rows: rows, Spec: spec, Preview: "markdown"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(result.Preview, "| Ada | USA | Active |") {
		t.Errorf("markdown preview = %q", result.Preview)
	}

	if _, err := Run(Options{Rows: rows, Spec: spec, Preview: "sparkle"}); err == nil {
		t.Error("invalid preview format must fail")
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	if _, err := Run(Options{SpecFile: "x.yaml"}); err == nil {
		t.Error("Run() without rows must fail")
	}
	if _, err := Run(Options{Rows: []generator.Row{{}}}); err == nil {
		t.Error("Run() without a spec must fail")
	}
}

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "A,B", []string{"A", "B"}},
		{"trims whitespace", " A , B ", []string{"A", "B"}},
		{"drops empties", "A,,B,", []string{"A", "B"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHeaders(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseHeaders(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseHeaders(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
