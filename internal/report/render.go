package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"khata/internal/core"
)

const (
	// TextFile and HTMLFile are the rendered report names inside the
	// account's namespace directory.
	TextFile = "report.txt"
	HTMLFile = "report.html"

	categoryWidth = 10
	amountWidth   = 12
)

// Table is the single shared layout built from a matrix. Console, text
// file, and HTML all render from the same Table, so the three surfaces
// can never disagree on data or ordering.
type Table struct {
	Header []string
	Rows   [][]string
}

// Tabulate performs the one layout pass over the matrix: header label,
// period labels, and per-category rows of formatted amounts.
func Tabulate(m Matrix) Table {
	header := make([]string, 0, len(m.Periods)+1)
	header = append(header, "Category")
	for _, p := range m.Periods {
		header = append(header, p.String())
	}

	rows := make([][]string, 0, len(m.Categories))
	for i, category := range m.Categories {
		row := make([]string, 0, len(m.Periods)+1)
		row = append(row, category)
		for _, cell := range m.Cells[i] {
			row = append(row, cell.String())
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// Text renders the fixed-width table: the category cell left-justified
// in 10 columns (longer labels truncated), every period and amount cell
// right-aligned in 12. Each row is newline-terminated. Console and text
// file share these exact bytes.
func (t Table) Text() string {
	var b strings.Builder
	writeLine := func(cells []string) {
		fmt.Fprintf(&b, "%-*s", categoryWidth, clip(cells[0], categoryWidth))
		for _, cell := range cells[1:] {
			fmt.Fprintf(&b, "%*s", amountWidth, cell)
		}
		b.WriteByte('\n')
	}
	writeLine(t.Header)
	for _, row := range t.Rows {
		writeLine(row)
	}
	return b.String()
}

// WriteConsole echoes the table to w, byte-identical to the text file.
func (t Table) WriteConsole(w io.Writer) error {
	_, err := io.WriteString(w, t.Text())
	return err
}

var htmlTemplate = template.Must(template.New("report").Parse(`<html>
<head>
<style>
    table, th, td {
        margin: auto;
        padding: 5px;
        border: 2px solid black;
        border-collapse: collapse;
    }
</style>
</head>
<body>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

// HTML renders the standalone document: a bordered, collapsed, centered
// table with one header cell per period and one row per category.
func (t Table) HTML() (string, error) {
	var b strings.Builder
	if err := htmlTemplate.Execute(&b, t); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return b.String(), nil
}

// WriteFiles writes report.txt and report.html into dir.
func WriteFiles(dir string, t Table) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", core.ErrStorageUnavailable)
	}
	if err := os.WriteFile(filepath.Join(dir, TextFile), []byte(t.Text()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", TextFile, err)
	}
	html, err := t.HTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, HTMLFile), []byte(html), 0644); err != nil {
		return fmt.Errorf("write %s: %w", HTMLFile, err)
	}
	return nil
}

func clip(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s
}
