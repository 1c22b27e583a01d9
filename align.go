package xlreshape

// Align returns a new table whose columns are exactly reference. Values of
// reference columns present in t are copied row for row, reference columns
// missing from t are null, and columns of t outside reference are dropped.
// The row count is preserved and t is not modified.
func Align(reference []string, t *Table) *Table {
	out := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), reference...),
		Rows:    make([]Row, len(t.Rows)),
	}
	src := make([]int, len(reference))
	for i, c := range reference {
		src[i] = t.Index(c)
	}
	for r, row := range t.Rows {
		aligned := make(Row, len(reference))
		for i, j := range src {
			if j >= 0 {
				aligned[i] = row[j]
			}
		}
		out.Rows[r] = aligned
	}
	return out
}
