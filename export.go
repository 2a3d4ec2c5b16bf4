package xlpanel

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteSpreadsheet serializes rs into a single-sheet xlsx document, filling each
// body cell with the color of the band lookup assigns it.
func WriteSpreadsheet(rs *ResultSet, lookup StyleLookup) ([]byte, error) {
	return ExportBytes(rs, WithStyleLookup(lookup))
}

// ExportBytes exports rs and returns the workbook bytes.
func ExportBytes(rs *ResultSet, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(rs, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile exports rs to the file at path.
func ExportFile(rs *ResultSet, path string, opts ...Option) error {
	data, err := ExportBytes(rs, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ExportError{Stage: "save", Err: fmt.Errorf("write %q: %w", path, err)}
	}
	return nil
}

// Export writes rs as an xlsx workbook to w. The sheet has a bold, shaded header
// row followed by one row per data row. An empty ResultSet yields a header-only sheet.
// Output bytes depend only on rs and opts.
func Export(rs *ResultSet, w io.Writer, opts ...Option) error {
	o := buildOptions(opts)

	f := excelize.NewFile()
	defer f.Close()

	wb, err := newWorkbookWriter(f, o)
	if err != nil {
		return err
	}
	if err := wb.writeHeader(rs.ColumnNames()); err != nil {
		return err
	}
	var cellErr error
	rs.Each(func(row, col int, c Cell) {
		if cellErr != nil {
			return
		}
		band := o.styleLookup(c.Value)
		if err := wb.writeCell(row+1, col, c, band); err != nil {
			cellErr = err
			return
		}
		notifyCell(o.cellListeners, row, col, c, band)
	})
	if cellErr != nil {
		return cellErr
	}
	if rs.Width() > 0 {
		last, _ := excelize.ColumnNumberToName(rs.Width())
		if err := f.SetColWidth(o.sheetName, "A", last, o.columnWidth); err != nil {
			return &ExportError{Stage: "style", Err: fmt.Errorf("set column width: %w", err)}
		}
	}

	var raw bytes.Buffer
	if err := f.Write(&raw); err != nil {
		return &ExportError{Stage: "serialize", Err: err}
	}
	if err := canonicalizeZip(raw.Bytes(), w); err != nil {
		return &ExportError{Stage: "canonicalize", Err: err}
	}
	o.logger.Debug("exported workbook",
		"sheet", o.sheetName, "columns", rs.Width(), "rows", rs.Len(), "bytes", raw.Len())
	return nil
}

// workbookWriter writes cells into the single export sheet with cached style ids.
type workbookWriter struct {
	file       *excelize.File
	sheet      string
	headerID   int
	bandStyles map[Band]int
}

func newWorkbookWriter(f *excelize.File, o *Options) (*workbookWriter, error) {
	if err := f.SetSheetName("Sheet1", o.sheetName); err != nil {
		return nil, &ExportError{Stage: "style", Err: fmt.Errorf("rename sheet: %w", err)}
	}
	thin := func(side string) excelize.Border {
		return excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	headerID, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ColorHeader}},
		Border: []excelize.Border{thin("left"), thin("top"), thin("right"), thin("bottom")},
	})
	if err != nil {
		return nil, &ExportError{Stage: "style", Err: fmt.Errorf("header style: %w", err)}
	}
	wb := &workbookWriter{
		file:       f,
		sheet:      o.sheetName,
		headerID:   headerID,
		bandStyles: make(map[Band]int),
	}
	// Create band styles in a fixed order so style ids are stable.
	for _, b := range []Band{BandA, BandB} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{b.Color()}},
		})
		if err != nil {
			return nil, &ExportError{Stage: "style", Err: fmt.Errorf("band %s style: %w", b, err)}
		}
		wb.bandStyles[b] = id
	}
	return wb, nil
}

func (wb *workbookWriter) writeHeader(names []string) error {
	for col, name := range names {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return &ExportError{Stage: "write cell", Err: err}
		}
		if err := wb.file.SetCellStr(wb.sheet, cell, name); err != nil {
			return &ExportError{Stage: "write cell", Err: fmt.Errorf("header %s: %w", cell, err)}
		}
		if err := wb.file.SetCellStyle(wb.sheet, cell, cell, wb.headerID); err != nil {
			return &ExportError{Stage: "style", Err: fmt.Errorf("header %s: %w", cell, err)}
		}
	}
	return nil
}

// writeCell writes one body cell. row is the 0-based sheet row (header is row 0).
func (wb *workbookWriter) writeCell(row, col int, c Cell, band Band) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return &ExportError{Stage: "write cell", Err: err}
	}
	if err := wb.file.SetCellValue(wb.sheet, cell, exportValue(c)); err != nil {
		return &ExportError{Stage: "write cell", Err: fmt.Errorf("%s: %w", cell, err)}
	}
	if id, ok := wb.bandStyles[band]; ok {
		if err := wb.file.SetCellStyle(wb.sheet, cell, cell, id); err != nil {
			return &ExportError{Stage: "style", Err: fmt.Errorf("%s: %w", cell, err)}
		}
	}
	return nil
}

// exportValue picks what is stored in the sheet: the formatted text when present,
// otherwise the raw value for Go numeric types, otherwise the display text.
// Strings are never converted, so "02134" stays text. Integers keep their precision.
func exportValue(c Cell) any {
	if c.Formatted != "" {
		return c.Formatted
	}
	switch v := c.Value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v
	case float32:
		if !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) {
			return v
		}
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return c.DisplayText()
}
