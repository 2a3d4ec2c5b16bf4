package xlpanel

import (
	"errors"
	"fmt"
)

// ErrAcquisition matches any failure to obtain a ResultSet from a DataSource.
var ErrAcquisition = errors.New("data acquisition failed")

// ErrExport matches any failure to produce a spreadsheet.
var ErrExport = errors.New("export failed")

// ErrPanelNotFound indicates the requested panel does not exist in the source.
var ErrPanelNotFound = errors.New("panel not found")

// ErrInvalidResultSet indicates a fetched ResultSet failed validation.
var ErrInvalidResultSet = errors.New("invalid result set")

// AcquisitionError represents a failed fetch from a DataSource.
type AcquisitionError struct {
	Op    string // "apply filters", "summary data", "filters"
	Panel string
	Err   error
}

func (e *AcquisitionError) Error() string {
	if e.Panel != "" {
		return fmt.Sprintf("%s for panel %q: %v", e.Op, e.Panel, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Is reports ErrAcquisition as a match so callers can classify without a type assertion.
func (e *AcquisitionError) Is(target error) bool { return target == ErrAcquisition }

// ExportError represents a failure while building or serializing a workbook.
type ExportError struct {
	Stage string // "style", "write cell", "serialize", "canonicalize", "save"
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Is reports ErrExport as a match.
func (e *ExportError) Is(target error) bool { return target == ErrExport }
