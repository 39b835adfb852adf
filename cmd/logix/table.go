package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// outputFormats lists the values accepted by --output.
var outputFormats = []string{"table", "markdown", "csv"}

func validOutput(format string) bool {
	return slices.Contains(outputFormats, format)
}

// renderTable writes rows under header in the requested format.
func renderTable(w io.Writer, format string, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.AppendHeader(header)
	t.AppendRows(rows)

	var out string
	switch format {
	case "csv":
		out = t.RenderCSV()
	case "markdown":
		out = t.RenderMarkdown()
	default:
		t.SetStyle(table.StyleLight)
		out = t.Render()
	}
	_, _ = fmt.Fprintln(w, out)
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func joinArgs(parts []string) string {
	return strings.Join(parts, " | ")
}
