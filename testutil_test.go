package xlreshape

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureSheet describes one sheet of a generated workbook: the first row is
// the header, nil cells are left blank.
type fixtureSheet struct {
	Name string
	Rows [][]any
}

// writeFixture saves sheets as an xlsx file named name under a test temp dir
// and returns its path.
func writeFixture(t *testing.T, name string, sheets ...fixtureSheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.Name, cell, v))
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// buildTable creates an in-memory table; cells are converted with ValueOf.
func buildTable(t *testing.T, name string, columns []string, rows ...[]any) *Table {
	t.Helper()
	tbl, err := NewTable(name, columns)
	require.NoError(t, err)
	for _, row := range rows {
		values := make([]Value, len(row))
		for i, v := range row {
			values[i] = ValueOf(v)
		}
		require.NoError(t, tbl.AppendRow(values...))
	}
	return tbl
}

// buildWorkbook collects tables into a workbook in the given order.
func buildWorkbook(source string, tables ...*Table) *Workbook {
	wb := NewWorkbook(source)
	for _, t := range tables {
		wb.Add(t)
	}
	return wb
}

// rowsOf renders the rows of t as native values for compact assertions.
func rowsOf(t *Table) [][]any {
	out := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]any, len(row))
		for j, v := range row {
			out[i][j] = v.Interface()
		}
	}
	return out
}

// ordersWorkbook is the multi-sheet workbook used across split tests.
func ordersWorkbook(t *testing.T) *Workbook {
	t.Helper()
	orders := buildTable(t, "Orders", []string{"Id", "Region", "Amount"},
		[]any{1, "East", 10},
		[]any{2, "West", 20},
		[]any{3, "East", 30},
		[]any{4, nil, 40},
		[]any{5, "North", 50},
	)
	returns := buildTable(t, "Returns", []string{"Region", "Id"},
		[]any{"West", 2},
		[]any{"East", 3},
		[]any{"West", 9},
	)
	notes := buildTable(t, "Notes", []string{"Text"},
		[]any{"no region column here"},
	)
	return buildWorkbook("orders.xlsx", orders, returns, notes)
}
