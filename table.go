package xlreshape

import "fmt"

// Row holds one value per table column, in column order.
type Row []Value

// Table is one sheet's data: ordered unique column names and ordered rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
	Layout  *Layout // captured formatting, nil when unknown

	index map[string]int
}

// NewTable creates an empty table with the given columns.
// Column names must be unique.
func NewTable(name string, columns []string) (*Table, error) {
	t := &Table{Name: name, Columns: append([]string(nil), columns...)}
	if err := t.buildIndex(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) buildIndex() error {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; dup {
			return fmt.Errorf("table %q: duplicate column %q", t.Name, c)
		}
		t.index[c] = i
	}
	return nil
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Columns))
		for i, c := range t.Columns {
			if _, ok := t.index[c]; !ok {
				t.index[c] = i
			}
		}
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool { return t.Index(name) >= 0 }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// AppendRow appends values as a new row. Missing trailing values are null and
// extra values are an error.
func (t *Table) AppendRow(values ...Value) error {
	if len(values) > len(t.Columns) {
		return fmt.Errorf("table %q: row has %d values for %d columns", t.Name, len(values), len(t.Columns))
	}
	row := make(Row, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// AppendRows appends rows that already match the table's column layout.
func (t *Table) AppendRows(rows []Row) {
	t.Rows = append(t.Rows, rows...)
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]Value, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, true
}

// Value returns the value at (row, column name).
func (t *Table) Value(row int, column string) Value {
	i := t.Index(column)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return Null()
	}
	return t.Rows[row][i]
}

// Filter returns a new table with the same name, columns and layout holding
// the rows for which keep returns true, in original order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := t.emptyCopy()
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := t.emptyCopy()
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append(Row(nil), row...)
	}
	return out
}

func (t *Table) emptyCopy() *Table {
	out := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
	}
	if t.Layout != nil {
		l := t.Layout.clone()
		out.Layout = &l
	}
	return out
}

// Workbook is an ordered collection of named tables.
type Workbook struct {
	Source string // file name or caller-supplied identity

	order  []string
	tables map[string]*Table
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(source string) *Workbook {
	return &Workbook{Source: source, tables: make(map[string]*Table)}
}

// Add appends t under t.Name. A table with the same name is replaced in place.
func (wb *Workbook) Add(t *Table) {
	if wb.tables == nil {
		wb.tables = make(map[string]*Table)
	}
	if _, ok := wb.tables[t.Name]; !ok {
		wb.order = append(wb.order, t.Name)
	}
	wb.tables[t.Name] = t
}

// Sheet returns the named table.
func (wb *Workbook) Sheet(name string) (*Table, bool) {
	t, ok := wb.tables[name]
	return t, ok
}

// SheetNames returns sheet names in insertion order.
func (wb *Workbook) SheetNames() []string {
	return append([]string(nil), wb.order...)
}

// Tables returns the tables in insertion order.
func (wb *Workbook) Tables() []*Table {
	out := make([]*Table, 0, len(wb.order))
	for _, name := range wb.order {
		out = append(out, wb.tables[name])
	}
	return out
}

// Len returns the number of sheets.
func (wb *Workbook) Len() int { return len(wb.order) }

// RowCount returns the total number of rows across all sheets.
func (wb *Workbook) RowCount() int {
	n := 0
	for _, t := range wb.tables {
		n += t.Len()
	}
	return n
}
