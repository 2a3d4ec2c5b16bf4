package xlpanel

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // ResultSet cannot be displayed faithfully
	SeverityWarning                 // ResultSet may render unexpectedly
)

// ValidationIssue represents a single problem found in a ResultSet.
type ValidationIssue struct {
	Severity Severity
	Row      int // 0-based data row, -1 for column-level issues
	Col      int // 0-based column, -1 for row-level issues
	Message  string
}

// String formats the issue as "[ERROR] row 2 col 1: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	switch {
	case v.Row < 0 && v.Col < 0:
		return fmt.Sprintf("[%s] %s", sev, v.Message)
	case v.Row < 0:
		return fmt.Sprintf("[%s] column %d: %s", sev, v.Col+1, v.Message)
	case v.Col < 0:
		return fmt.Sprintf("[%s] row %d: %s", sev, v.Row+1, v.Message)
	}
	return fmt.Sprintf("[%s] row %d col %d: %s", sev, v.Row+1, v.Col+1, v.Message)
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a ResultSet for structural problems.
// Rows must be exactly as wide as the column list; column names must be
// non-empty and unique. Numeric columns holding non-numeric values are warnings.
func Validate(rs *ResultSet) []ValidationIssue {
	var issues []ValidationIssue
	issues = append(issues, validateColumns(rs)...)
	issues = append(issues, validateRowWidths(rs)...)
	issues = append(issues, validateNumericColumns(rs)...)
	return issues
}

func validateColumns(rs *ResultSet) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]int, len(rs.columns))
	for i, col := range rs.columns {
		if col.Name == "" {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError, Row: -1, Col: i,
				Message: "column name is empty",
			})
			continue
		}
		if first, ok := seen[col.Name]; ok {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError, Row: -1, Col: i,
				Message: fmt.Sprintf("duplicate column name %q (first used by column %d)", col.Name, first+1),
			})
			continue
		}
		seen[col.Name] = i
	}
	return issues
}

func validateRowWidths(rs *ResultSet) []ValidationIssue {
	var issues []ValidationIssue
	for i, row := range rs.rows {
		if len(row) != len(rs.columns) {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError, Row: i, Col: -1,
				Message: fmt.Sprintf("row has %d cells, expected %d", len(row), len(rs.columns)),
			})
		}
	}
	return issues
}

func validateNumericColumns(rs *ResultSet) []ValidationIssue {
	var issues []ValidationIssue
	for ci, col := range rs.columns {
		if col.Kind != KindNumeric {
			continue
		}
		for ri, row := range rs.rows {
			if ci >= len(row) || row[ci].Value == nil {
				continue
			}
			if _, ok := ParseNumber(row[ci].Value); !ok {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning, Row: ri, Col: ci,
					Message: fmt.Sprintf("numeric column %q holds non-numeric value %q", col.Name, row[ci].DisplayText()),
				})
			}
		}
	}
	return issues
}
