package xlreshape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{&LoadError{Path: "a.xlsx", Err: cause}, `load "a.xlsx": boom`},
		{&LoadError{Path: "a.xlsx", Sheet: "S", Err: cause}, `load "a.xlsx" sheet "S": boom`},
		{&NoSplitColumnError{Column: "Region", Sheets: []string{"A", "B"}}, `column "Region" not found in any sheet (searched: A, B)`},
		{&NoDataError{Column: "Region"}, `column "Region" has no values to split on`},
		{&NoMergeableDataError{Sources: []string{"a", "b"}}, "no mergeable data in 2 workbook(s): every sheet is empty"},
		{&CosmeticError{Sheet: "S", Err: cause}, `copy formatting for sheet "S": boom`},
		{&FilterError{Expression: "x", Sheet: "S", Row: 3, Err: cause}, `row filter "x" on sheet "S" row 3: boom`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &LoadError{Err: cause}, cause)
	assert.ErrorIs(t, &CosmeticError{Err: cause}, cause)
	assert.ErrorIs(t, &FilterError{Err: cause}, cause)
}

func TestWarningString(t *testing.T) {
	w := missingColumnWarning("book.xlsx", "Notes", "Region")
	assert.Equal(t, `[WARN] book.xlsx/Notes: column "Region" not found, sheet skipped`, w.String())
	assert.Equal(t, "missing-column", w.Kind.String())

	w = emptySheetWarning("", "S")
	assert.Equal(t, "[WARN] S: no data rows, skipped", w.String())
	assert.Equal(t, "empty-sheet", w.Kind.String())
	assert.Equal(t, "header-mismatch", WarnHeaderMismatch.String())
	assert.Equal(t, "sheet-renamed", WarnSheetRenamed.String())
}
