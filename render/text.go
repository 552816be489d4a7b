package render

import (
	"bytes"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"
)

var sheetTemplate = template.Must(template.New("sheet").Funcs(template.FuncMap{
	"underline": underline,
	"details":   detailGrid,
	"row":       sectionRow,
}).Parse(`{{.Heading}}
{{underline .Heading}}

BOOKING DETAILS
{{underline "BOOKING DETAILS"}}
{{details .Details}}
MENU ITEMS TO PREPARE
{{underline "MENU ITEMS TO PREPARE"}}
{{if .Rows}}{{range .Rows}}{{row .}}
{{end}}{{else if .Items}}{{range .Items}}  • {{.}}
{{end}}{{else if .Paragraph}}{{.Paragraph}}
{{else}}{{.Message}}
{{.Guidance}}
{{end}}`))

// Text writes the sheet as a plain-text document, categories laid out two per row.
func Text(w io.Writer, sheet Sheet) error {
	return sheetTemplate.Execute(w, sheet)
}

func underline(s string) string {
	return strings.Repeat("=", len([]rune(s)))
}

func detailGrid(details []Detail) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 4, ' ', 0)
	for i := 0; i < len(details); i += columns {
		cells := make([]string, 0, columns)
		for _, d := range details[i:min(i+columns, len(details))] {
			cells = append(cells, d.Label+": "+d.Value)
		}
		tw.Write([]byte(strings.Join(cells, "\t") + "\n"))
	}
	tw.Flush()
	return buf.String()
}

func sectionRow(row []Section) string {
	cols := make([][]string, len(row))
	height := 0
	for i, section := range row {
		lines := []string{section.Heading}
		for _, item := range section.Items {
			lines = append(lines, "  • "+item)
		}
		cols[i] = lines
		if len(lines) > height {
			height = len(lines)
		}
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 4, ' ', 0)
	for line := 0; line < height; line++ {
		cells := make([]string, len(cols))
		for i, lines := range cols {
			if line < len(lines) {
				cells[i] = lines[line]
			}
		}
		tw.Write([]byte(strings.TrimRight(strings.Join(cells, "\t"), "\t") + "\n"))
	}
	tw.Flush()
	return buf.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
