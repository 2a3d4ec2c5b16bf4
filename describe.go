package xlpanel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Describe returns a human-readable summary of a ResultSet: its columns,
// row count, and how many cells of each column fall into each band.
// Useful for checking a panel before exporting it.
func Describe(rs *ResultSet, opts ...Option) string {
	o := buildOptions(opts)

	perColumn := make([]map[Band]int, rs.Width())
	for i := range perColumn {
		perColumn[i] = make(map[Band]int)
	}
	rs.Each(func(_, col int, c Cell) {
		perColumn[col][o.styleLookup(c.Value)]++
	})

	var b strings.Builder
	fmt.Fprintf(&b, "ResultSet: %d columns, %d rows\n", rs.Width(), rs.Len())
	for i, col := range rs.columns {
		counts := perColumn[i]
		fmt.Fprintf(&b, "  %s %q (%s) A=%d B=%d C=%d\n",
			ColumnLetter(i), col.Name, col.Kind, counts[BandA], counts[BandB], counts[BandC])
	}

	issues := Validate(rs)
	if len(issues) > 0 {
		b.WriteString("  Issues:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "    %s\n", issue)
		}
	}
	return b.String()
}

// ColumnLetter converts a 0-based column index to a spreadsheet column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA". Out-of-range indexes give "".
func ColumnLetter(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}
