package xlpanel

import (
	"fmt"
	"html/template"
	"io"
)

// RenderedCell is one on-screen table cell.
type RenderedCell struct {
	Text string
	Band Band
}

// Background returns the CSS background color, or "" when the cell is not highlighted.
func (c RenderedCell) Background() string {
	return c.Band.CSSColor()
}

// Table is the on-screen grid produced from a ResultSet.
// It always replaces prior content wholesale; there is no incremental update.
type Table struct {
	Headers []string
	Rows    [][]RenderedCell
}

// Render converts a ResultSet into a Table. It is deterministic: rendering the
// same ResultSet twice yields equal Tables.
func Render(rs *ResultSet, opts ...Option) *Table {
	o := buildOptions(opts)
	t := &Table{
		Headers: rs.ColumnNames(),
		Rows:    make([][]RenderedCell, rs.Len()),
	}
	for i := range t.Rows {
		t.Rows[i] = make([]RenderedCell, rs.Width())
	}
	rs.Each(func(row, col int, c Cell) {
		band := o.styleLookup(c.Value)
		t.Rows[row][col] = RenderedCell{Text: c.DisplayText(), Band: band}
		notifyCell(o.cellListeners, row, col, c, band)
	})
	return t
}

// Bands returns the band of every body cell, row-major.
func (t *Table) Bands() [][]Band {
	out := make([][]Band, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]Band, len(row))
		for j, c := range row {
			out[i][j] = c.Band
		}
	}
	return out
}

const tableHTML = `{{define "table"}}<table id="panelTable">
<thead id="tableHeader"><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody id="tableBody">
{{- range .Rows}}
<tr>{{range .}}{{with .Background}}<td style="background-color:{{.}}">{{else}}<td>{{end}}{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>{{end}}`

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 1rem; }
table { border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .375rem .625rem; border: 1px solid #dee2e6; text-align: left; min-width: 100px; }
th { background: #f2f2f2; font-weight: 700; }
.notice { padding: .5rem .75rem; margin-bottom: 1rem; border-radius: 4px; background: #f8d7da; color: #842029; }
.controls { margin-bottom: 1rem; display: flex; gap: .5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Notice}}<div class="notice" role="alert">{{.}}</div>{{end}}
<div class="controls">
<form method="post" action="refresh"><button id="refreshButton" type="submit">Refresh</button></form>
<form method="get" action="export"><button id="exportButton" type="submit">Export</button></form>
</div>
{{if .Table}}{{template "table" .Table}}{{else}}<p>No data loaded.</p>{{end}}
</body>
</html>
`

var (
	tableTmpl = template.Must(template.New("table").Parse(tableHTML))
	pageTmpl  = template.Must(template.Must(template.New("page").Parse(tableHTML)).Parse(pageHTML))
)

// WriteHTML writes the table markup.
func (t *Table) WriteHTML(w io.Writer) error {
	if err := tableTmpl.ExecuteTemplate(w, "table", t); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// Page is a complete HTML document around a Table.
type Page struct {
	Title  string
	Notice string
	Table  *Table
}

// WriteHTML writes the full document. A nil Table renders a placeholder.
func (p Page) WriteHTML(w io.Writer) error {
	if err := pageTmpl.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
