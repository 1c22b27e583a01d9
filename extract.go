package xlreshape

import "slices"

// DistinctValues returns the sorted distinct non-null values of column across
// every sheet of wb that has it. Sheets without the column are skipped with a
// warning. A *NoSplitColumnError is returned when no sheet has the column; an
// empty slice with a nil error means the column holds only nulls.
func DistinctValues(wb *Workbook, column string) ([]Value, []Warning, error) {
	var (
		values   []Value
		warnings []Warning
		found    bool
	)
	for _, t := range wb.Tables() {
		col, ok := t.Column(column)
		if !ok {
			warnings = append(warnings, missingColumnWarning(wb.Source, t.Name, column))
			continue
		}
		found = true
		for _, v := range col {
			if !v.IsNull() {
				values = append(values, v)
			}
		}
	}
	if !found {
		return nil, warnings, &NoSplitColumnError{Column: column, Sheets: wb.SheetNames()}
	}
	return sortedUnique(values), warnings, nil
}

// sortedUnique sorts values by Compare and removes Equal neighbours.
func sortedUnique(values []Value) []Value {
	slices.SortStableFunc(values, Value.Compare)
	return slices.CompactFunc(values, Value.Equal)
}
