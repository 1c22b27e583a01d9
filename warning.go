package xlreshape

import "fmt"

// WarningKind classifies a non-fatal condition met during split or merge.
type WarningKind int

const (
	WarnMissingColumn     WarningKind = iota // sheet lacks the split column and was skipped
	WarnHeaderMismatch                       // sheet columns differ from the reference and were aligned
	WarnEmptySheetSkipped                    // sheet has no rows and was skipped
	WarnSheetRenamed                         // sheet name clashed case-insensitively and was suffixed
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingColumn:
		return "missing-column"
	case WarnHeaderMismatch:
		return "header-mismatch"
	case WarnEmptySheetSkipped:
		return "empty-sheet"
	case WarnSheetRenamed:
		return "sheet-renamed"
	default:
		return "unknown"
	}
}

// Warning is a recoverable condition returned alongside a result.
type Warning struct {
	Kind    WarningKind
	Source  string
	Sheet   string
	Column  string
	Message string
}

// String formats the warning as "[WARN] source/sheet: message".
func (w Warning) String() string {
	loc := w.Sheet
	if w.Source != "" {
		loc = w.Source + "/" + w.Sheet
	}
	return fmt.Sprintf("[WARN] %s: %s", loc, w.Message)
}

func missingColumnWarning(source, sheet, column string) Warning {
	return Warning{
		Kind:    WarnMissingColumn,
		Source:  source,
		Sheet:   sheet,
		Column:  column,
		Message: fmt.Sprintf("column %q not found, sheet skipped", column),
	}
}

func headerMismatchWarning(source, sheet string, reference, got []string) Warning {
	return Warning{
		Kind:    WarnHeaderMismatch,
		Source:  source,
		Sheet:   sheet,
		Message: fmt.Sprintf("columns %v differ from %v, aligned", got, reference),
	}
}

func emptySheetWarning(source, sheet string) Warning {
	return Warning{
		Kind:    WarnEmptySheetSkipped,
		Source:  source,
		Sheet:   sheet,
		Message: "no data rows, skipped",
	}
}

func sheetRenamedWarning(sheet, renamed string) Warning {
	return Warning{
		Kind:    WarnSheetRenamed,
		Sheet:   sheet,
		Message: fmt.Sprintf("name clashes with another sheet, written as %q", renamed),
	}
}
