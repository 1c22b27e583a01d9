package xlreshape

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable tree of the workbook's sheets, their
// columns and row counts. Useful for checking a file before splitting.
func Describe(wb *Workbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workbook: %s (%d sheets, %d rows)\n", wb.Source, wb.Len(), wb.RowCount())
	for _, t := range wb.Tables() {
		fmt.Fprintf(&b, "  %s (%d rows x %d columns)\n", t.Name, t.Len(), len(t.Columns))
		if len(t.Columns) > 0 {
			fmt.Fprintf(&b, "    Columns: %s\n", strings.Join(t.Columns, ", "))
		}
	}
	return b.String()
}

// DescribeSplit summarizes a planned split: sheets searched and the keys found.
func DescribeSplit(wb *Workbook, column string, keys []Value) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Input: %s\n", wb.Source)
	fmt.Fprintf(&b, "Split column: %s\n", column)
	fmt.Fprintf(&b, "Sheets: %d (%s)\n", wb.Len(), strings.Join(wb.SheetNames(), ", "))
	fmt.Fprintf(&b, "Files to create: %d\n", len(keys))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	fmt.Fprintf(&b, "Keys: %s\n", strings.Join(parts, ", "))
	return b.String()
}

// DescribeMerge summarizes a planned merge: every source and, per sheet name,
// how many sources provide it.
func DescribeMerge(sources []Source) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inputs: %d\n", len(sources))
	for i, s := range sources {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s.ID)
	}
	b.WriteString("Sheets:\n")
	for _, name := range sheetNames(sources, SheetOrderSorted) {
		n := 0
		for _, s := range sources {
			if s.Workbook == nil {
				continue
			}
			if _, ok := s.Workbook.Sheet(name); ok {
				n++
			}
		}
		fmt.Fprintf(&b, "  - %s: in %d file(s)\n", name, n)
	}
	return b.String()
}

// Columns returns the columns of the first sheet, the choices offered for a
// split column.
func Columns(wb *Workbook) []string {
	tables := wb.Tables()
	if len(tables) == 0 {
		return nil
	}
	return append([]string(nil), tables[0].Columns...)
}

// AllColumns returns every column name of every sheet, in first-seen order.
func AllColumns(wb *Workbook) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range wb.Tables() {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
