package xlreshape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat indicates the input is not a spreadsheet format the loader reads.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrFileTooLarge indicates the input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

// ErrNoInput indicates an operation was called without any input workbook.
var ErrNoInput = errors.New("no input workbook")

// LoadError reports a workbook that could not be read.
type LoadError struct {
	Path  string
	Sheet string // empty when the failure is not sheet specific
	Err   error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %q sheet %q: %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NoSplitColumnError reports a split column that no sheet contains.
type NoSplitColumnError struct {
	Column string
	Sheets []string // sheets that were searched
}

func (e *NoSplitColumnError) Error() string {
	return fmt.Sprintf("column %q not found in any sheet (searched: %s)", e.Column, strings.Join(e.Sheets, ", "))
}

// NoDataError reports a split column that exists but holds no non-null value.
type NoDataError struct {
	Column string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("column %q has no values to split on", e.Column)
}

// NoMergeableDataError reports a merge in which no sheet of any source had rows.
type NoMergeableDataError struct {
	Sources []string
}

func (e *NoMergeableDataError) Error() string {
	if len(e.Sources) == 0 {
		return "no mergeable data: no workbook supplied"
	}
	return fmt.Sprintf("no mergeable data in %d workbook(s): every sheet is empty", len(e.Sources))
}

// CosmeticError reports a formatting copy that failed. It never affects data
// and callers are expected to log or discard it.
type CosmeticError struct {
	Sheet string
	Err   error
}

func (e *CosmeticError) Error() string {
	return fmt.Sprintf("copy formatting for sheet %q: %v", e.Sheet, e.Err)
}

func (e *CosmeticError) Unwrap() error { return e.Err }

// FilterError reports a row filter expression that failed to compile or evaluate.
type FilterError struct {
	Expression string
	Sheet      string
	Row        int // 1-based data row, 0 for compile errors
	Err        error
}

func (e *FilterError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row filter %q on sheet %q row %d: %v", e.Expression, e.Sheet, e.Row, e.Err)
	}
	return fmt.Sprintf("row filter %q: %v", e.Expression, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }
