package xlpanel

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sampleResultSet returns a small panel:
//
//	Region  Sales  Units
//	West    1500   12        (A, C)
//	East    750    600       (B, B)
//	North   10     n/a       (C, C)
func sampleResultSet() *ResultSet {
	return NewResultSet(
		[]Column{
			{Name: "Region", Kind: KindText},
			{Name: "Sales", Kind: KindNumeric},
			{Name: "Units", Kind: KindNumeric},
		},
		[]Row{
			{{Value: "West"}, {Value: 1500.0, Formatted: "$1,500.00"}, {Value: int64(12)}},
			{{Value: "East"}, {Value: 750.0, Formatted: "$750.00"}, {Value: int64(600)}},
			{{Value: "North"}, {Value: 10.0, Formatted: "$10.00"}, {Value: "n/a"}},
		},
	)
}

func emptyResultSet() *ResultSet {
	return NewResultSet(
		[]Column{{Name: "Region", Kind: KindText}, {Name: "Sales", Kind: KindNumeric}},
		nil,
	)
}

// openExport reopens exported bytes for inspection.
func openExport(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// fillColor returns the 6-digit uppercase fill color of a cell, or "" if unfilled.
func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	styleID, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	if styleID == 0 {
		return ""
	}
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	c := strings.ToUpper(strings.TrimPrefix(style.Fill.Color[0], "#"))
	if len(c) > 6 {
		c = c[len(c)-6:]
	}
	return c
}

// bandFromFill maps an exported fill color back to its band.
func bandFromFill(color string) Band {
	switch color {
	case ColorBandA:
		return BandA
	case ColorBandB:
		return BandB
	default:
		return BandC
	}
}

// writePanelWorkbook saves a workbook whose sheet holds the given rows and returns its path.
func writePanelWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "panel.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
