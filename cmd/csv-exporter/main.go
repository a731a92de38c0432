package main

import (
	"fmt"
	"os"

	csvexporter "github.com/hellenic-development/csv-exporter"
	"github.com/hellenic-development/csv-exporter/pkg/records"
	"github.com/hellenic-development/csv-exporter/pkg/transport"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = csvexporter.Version

var (
	source      string
	specFile    string
	outputFile  string
	headers     string
	download    bool
	downloadDir string
	interactive bool
	preview     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "csv-exporter",
		Short: "Convert structured JSON records into CSV",
		Long:  "A tool to convert JSON arrays of records into CSV using a declarative export spec (field mappings, header order, static values, and per-column transforms)",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&source, "input", "i", "", "Rows source: JSON file path or http(s) URL (required)")
	rootCmd.Flags().StringVarP(&specFile, "spec", "s", "", "Export spec YAML file (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default: derived from the input name)")
	rootCmd.Flags().StringVar(&headers, "headers", "", "Comma-separated header labels overriding the spec's column order")
	rootCmd.Flags().BoolVar(&download, "download", false, "Save through the download transport instead of writing --output")
	rootCmd.Flags().StringVar(&downloadDir, "download-dir", ".", "Fallback download directory for --download")
	rootCmd.Flags().BoolVar(&interactive, "interactive", true, "Offer a save prompt when the terminal supports one (--download only)")
	rootCmd.Flags().StringVar(&preview, "preview", "", "Print a preview of the output: markdown or table")

	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("spec")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("csv-exporter version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📄 CSV Exporter")
	cyan.Println("================")
	cyan.Println()

	opts := csvexporter.Options{
		Source:      source,
		SpecFile:    specFile,
		Preview:     preview,
		DownloadDir: downloadDir,
		Logger:      &cliLogger{},
	}

	if headers != "" {
		opts.Headers = csvexporter.ParseHeaders(headers)
	}

	if download {
		opts.Download = true
		if interactive {
			opts.Dialog = transport.DetectDialog()
		}
	} else {
		opts.OutputFile = outputFile
		if opts.OutputFile == "" {
			opts.OutputFile = records.DefaultFileName(source)
		}
	}

	result, err := csvexporter.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if result.Preview != "" {
		cyan.Println("\n🔍 Preview:")
		fmt.Println(result.Preview)
	}

	cyan.Println("\n📊 Export Summary:")
	fmt.Printf("  • Columns: %d\n", len(result.Headers))
	fmt.Printf("  • Rows: %d\n", result.RowCount)
	fmt.Printf("  • Output: %s\n", result.FileName)

	if result.Saved {
		green.Printf("\n✨ Successfully exported %d row(s) to %s\n\n", result.RowCount, result.FileName)
	} else {
		red.Println("\n✗ Export was not saved")
		os.Exit(1)
	}
}

// cliLogger implements csvexporter.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
