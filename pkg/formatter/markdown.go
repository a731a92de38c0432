// Package formatter renders materialized rows for terminal preview, either
// as a markdown table or as a width-aligned plain-text table. The input is
// the cell grid produced by generator.Materialize: header row first.
package formatter

import (
	"strings"
)

// ToMarkdown renders the cell grid as a markdown table. Pipe characters
// inside cells are escaped so they cannot break the table structure. An
// empty grid renders as an empty string.
func ToMarkdown(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder

	headers := grid[0]
	sb.WriteString("| ")
	sb.WriteString(strings.Join(escapeCells(headers), " | "))
	sb.WriteString(" |\n")

	sb.WriteString("|")
	for range headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range grid[1:] {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(escapeCells(row), " | "))
		sb.WriteString(" |\n")
	}

	return sb.String()
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		c = strings.ReplaceAll(c, "\n", " ")
		out[i] = c
	}
	return out
}
