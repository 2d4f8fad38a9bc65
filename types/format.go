package types

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatTable renders rows as a markdown table under an optional "# title" line.
func FormatTable(title string, header []string, rows [][]string) string {
	var buf strings.Builder
	if title != "" {
		buf.WriteString("# ")
		buf.WriteString(title)
		buf.WriteString(":\n")
	}
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header(toCells(header)...)
	for _, row := range rows {
		_ = table.Append(toCells(row)...)
	}
	_ = table.Render()
	return buf.String()
}

func FormatMissingFields(fields []FieldInfo) string {
	if len(fields) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field.DisplayName, field.JSONPointer, field.Description})
	}
	return FormatTable("Missing required fields", []string{"Field", "Pointer", "Description"}, rows)
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
