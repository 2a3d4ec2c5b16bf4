package xlpanel

import "fmt"

// ColumnKind is the declared value kind of a column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column describes one named column of a ResultSet.
type Column struct {
	Name string
	Kind ColumnKind
}

// Cell holds a raw value and its optional display-formatted string.
type Cell struct {
	Value     any
	Formatted string
}

// DisplayText returns the formatted value if present, else the raw value.
func (c Cell) DisplayText() string {
	if c.Formatted != "" {
		return c.Formatted
	}
	if c.Value == nil {
		return ""
	}
	if s, ok := c.Value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.Value)
}

// Row is an ordered sequence of cells, positionally aligned with the columns.
type Row []Cell

// ResultSet is the tabular data fetched for one render/export cycle.
// It is not modified after construction; a new fetch yields a new ResultSet.
type ResultSet struct {
	columns []Column
	rows    []Row
}

// NewResultSet builds a ResultSet from copies of columns and rows.
func NewResultSet(columns []Column, rows []Row) *ResultSet {
	rs := &ResultSet{
		columns: make([]Column, len(columns)),
		rows:    make([]Row, len(rows)),
	}
	copy(rs.columns, columns)
	for i, r := range rows {
		rowCopy := make(Row, len(r))
		copy(rowCopy, r)
		rs.rows[i] = rowCopy
	}
	return rs
}

// Columns returns a copy of the column definitions.
func (rs *ResultSet) Columns() []Column {
	out := make([]Column, len(rs.columns))
	copy(out, rs.columns)
	return out
}

// ColumnNames returns the column names in order.
func (rs *ResultSet) ColumnNames() []string {
	names := make([]string, len(rs.columns))
	for i, c := range rs.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the i-th column.
func (rs *ResultSet) Column(i int) Column {
	return rs.columns[i]
}

// Width returns the number of columns.
func (rs *ResultSet) Width() int {
	return len(rs.columns)
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// Cell returns the cell at (row, col). Missing trailing cells read as empty.
func (rs *ResultSet) Cell(row, col int) Cell {
	r := rs.rows[row]
	if col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Each calls fn for every cell in row-major order, padding short rows to Width.
func (rs *ResultSet) Each(fn func(row, col int, c Cell)) {
	for ri := range rs.rows {
		for ci := 0; ci < len(rs.columns); ci++ {
			fn(ri, ci, rs.Cell(ri, ci))
		}
	}
}
