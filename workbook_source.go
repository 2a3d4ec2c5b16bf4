package xlpanel

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads a panel from one sheet of an xlsx workbook.
// Row 1 holds the column names; every following row is a data row.
// A column is numeric when all of its non-empty cells parse as numbers.
//
// Filters are expr-lang predicates evaluated per row. Column names are bound
// as variables (numeric columns as float64, nil when blank) and the whole row
// is available as row["Column Name"] for names that are not identifiers.
type WorkbookSource struct {
	path  string
	panel string
	eval  *predicateEvaluator

	mu      sync.Mutex
	active  []Filter
	pending []Filter
}

// NewWorkbookSource creates a source for the sheet named panel in the workbook at path.
func NewWorkbookSource(path, panel string, filters ...Filter) *WorkbookSource {
	return &WorkbookSource{
		path:    path,
		panel:   panel,
		eval:    newPredicateEvaluator(),
		active:  append([]Filter(nil), filters...),
		pending: append([]Filter(nil), filters...),
	}
}

// Panel returns the sheet name this source reads.
func (s *WorkbookSource) Panel() string { return s.panel }

// SetFilters stages a new filter set; it takes effect on the next ApplyFilters.
func (s *WorkbookSource) SetFilters(filters ...Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append([]Filter(nil), filters...)
}

// ApplyFilters compiles the staged filters and makes them active.
// On a syntax error the previously active filters stay in effect.
func (s *WorkbookSource) ApplyFilters(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, flt := range s.pending {
		if err := s.eval.Check(flt.Expression); err != nil {
			return err
		}
	}
	s.active = append([]Filter(nil), s.pending...)
	return nil
}

// Filters implements DataSource.
func (s *WorkbookSource) Filters(ctx context.Context) ([]Filter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Filter(nil), s.active...), nil
}

// SummaryData opens the workbook, reads the panel sheet and applies the active filters.
// Every call reads the file again and returns a new ResultSet.
func (s *WorkbookSource) SummaryData(ctx context.Context) (*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", s.path, err)
	}
	defer f.Close()

	rs, err := readPanel(f, s.panel)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	filters := append([]Filter(nil), s.active...)
	s.mu.Unlock()
	if len(filters) == 0 {
		return rs, nil
	}
	return s.filterRows(rs, filters)
}

func (s *WorkbookSource) filterRows(rs *ResultSet, filters []Filter) (*ResultSet, error) {
	var kept []Row
	for _, row := range rs.rows {
		env := rowEnv(rs.columns, row)
		match := true
		for _, flt := range filters {
			ok, err := s.eval.Match(flt.Expression, env)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, row)
		}
	}
	return NewResultSet(rs.columns, kept), nil
}

// readPanel converts a sheet into a ResultSet. Formatted text is kept only when
// it differs from the raw value.
func readPanel(f *excelize.File, panel string) (*ResultSet, error) {
	idx, err := f.GetSheetIndex(panel)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrPanelNotFound, panel)
	}
	rawRows, err := f.GetRows(panel, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", panel, err)
	}
	fmtRows, err := f.GetRows(panel)
	if err != nil {
		return nil, fmt.Errorf("read formatted rows from sheet %q: %w", panel, err)
	}
	if len(rawRows) == 0 {
		return NewResultSet(nil, nil), nil
	}

	header := rawRows[0]
	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: KindNumeric}
	}

	rows := make([]Row, 0, len(rawRows)-1)
	for r := 1; r < len(rawRows); r++ {
		row := make(Row, len(columns))
		for c := range columns {
			raw := cellAt(rawRows, r, c)
			if raw == "" {
				continue
			}
			formatted := cellAt(fmtRows, r, c)
			if formatted == raw {
				formatted = ""
			}
			v := parseValue(raw)
			if _, isStr := v.(string); isStr {
				columns[c].Kind = KindText
			}
			row[c] = Cell{Value: v, Formatted: formatted}
		}
		rows = append(rows, row)
	}
	// A column with no values at all carries no evidence of being numeric.
	for c := range columns {
		if columns[c].Kind == KindNumeric && !columnHasValue(rows, c) {
			columns[c].Kind = KindText
		}
	}
	return NewResultSet(columns, rows), nil
}

func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func columnHasValue(rows []Row, c int) bool {
	for _, row := range rows {
		if row[c].Value != nil {
			return true
		}
	}
	return false
}

// parseValue returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
