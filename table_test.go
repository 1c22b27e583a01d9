package xlreshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_DuplicateColumn(t *testing.T) {
	_, err := NewTable("Sheet1", []string{"A", "B", "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "A"`)
}

func TestTable_AppendRow(t *testing.T) {
	tbl, err := NewTable("Sheet1", []string{"A", "B", "C"})
	require.NoError(t, err)

	require.NoError(t, tbl.AppendRow(Number(1)))
	assert.Equal(t, Row{Number(1), Null(), Null()}, tbl.Rows[0])

	assert.Error(t, tbl.AppendRow(Number(1), Number(2), Number(3), Number(4)))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_ColumnAndValue(t *testing.T) {
	tbl := buildTable(t, "Sheet1", []string{"Id", "Region"},
		[]any{1, "East"},
		[]any{2, nil},
	)

	col, ok := tbl.Column("Region")
	require.True(t, ok)
	assert.Equal(t, []Value{String("East"), Null()}, col)

	_, ok = tbl.Column("Missing")
	assert.False(t, ok)

	assert.Equal(t, Number(2), tbl.Value(1, "Id"))
	assert.True(t, tbl.Value(5, "Id").IsNull())
	assert.True(t, tbl.Value(0, "Missing").IsNull())
}

func TestTable_FilterKeepsOrderAndLayout(t *testing.T) {
	tbl := buildTable(t, "Sheet1", []string{"N"},
		[]any{1}, []any{2}, []any{3}, []any{4},
	)
	tbl.Layout = &Layout{ColumnWidths: []float64{12}, HeaderHeight: 20}

	even := tbl.Filter(func(r Row) bool { return int(r[0].Float())%2 == 0 })

	assert.Equal(t, [][]any{{2.0}, {4.0}}, rowsOf(even))
	assert.Equal(t, "Sheet1", even.Name)
	require.NotNil(t, even.Layout)
	assert.Equal(t, []float64{12}, even.Layout.ColumnWidths)

	even.Layout.ColumnWidths[0] = 99
	even.Columns[0] = "changed"
	assert.Equal(t, 12.0, tbl.Layout.ColumnWidths[0])
	assert.Equal(t, "N", tbl.Columns[0])
	assert.Equal(t, 4, tbl.Len())
}

func TestTable_CloneIsDeep(t *testing.T) {
	tbl := buildTable(t, "Sheet1", []string{"A"}, []any{"x"})
	c := tbl.Clone()
	c.Rows[0][0] = String("y")
	assert.Equal(t, String("x"), tbl.Rows[0][0])
}

func TestWorkbook_AddKeepsOrderAndReplaces(t *testing.T) {
	a := buildTable(t, "A", []string{"x"}, []any{1})
	b := buildTable(t, "B", []string{"x"}, []any{1}, []any{2})
	a2 := buildTable(t, "A", []string{"x"})

	wb := buildWorkbook("book.xlsx", a, b, a2)

	assert.Equal(t, []string{"A", "B"}, wb.SheetNames())
	assert.Equal(t, 2, wb.Len())
	got, ok := wb.Sheet("A")
	require.True(t, ok)
	assert.Same(t, a2, got)
	assert.Equal(t, 2, wb.RowCount())

	_, ok = wb.Sheet("C")
	assert.False(t, ok)
}

func TestWorkbook_ZeroValueAdd(t *testing.T) {
	var wb Workbook
	wb.Add(buildTable(t, "S", []string{"x"}))
	assert.Equal(t, []string{"S"}, wb.SheetNames())
}
