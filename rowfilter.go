package xlreshape

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// RowFilter is a compiled boolean expression evaluated against table rows.
// Every column is bound by name; row maps every column name to its value so
// names that are not identifiers stay reachable (row["Unit Price"]).
type RowFilter struct {
	expression string
	program    *vm.Program
	columns    []string
}

// CompileRowFilter compiles expression. An empty expression yields a nil
// filter that keeps every row.
func CompileRowFilter(expression string) (*RowFilter, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, &FilterError{Expression: expression, Err: err}
	}
	node := program.Node()
	refs := &columnRefs{seen: make(map[string]bool)}
	ast.Walk(&node, refs)
	return &RowFilter{expression: expression, program: program, columns: refs.names}, nil
}

// columnRefs collects identifiers and row["..."] lookups.
type columnRefs struct {
	names []string
	seen  map[string]bool
}

func (c *columnRefs) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value != "row" {
			c.add(n.Value)
		}
	case *ast.MemberNode:
		id, ok := n.Node.(*ast.IdentifierNode)
		if !ok || id.Value != "row" {
			return
		}
		if prop, ok := n.Property.(*ast.StringNode); ok {
			c.add(prop.Value)
		}
	}
}

func (c *columnRefs) add(name string) {
	if !c.seen[name] {
		c.seen[name] = true
		c.names = append(c.names, name)
	}
}

// String returns the source expression.
func (f *RowFilter) String() string { return f.expression }

// Keep evaluates the filter on one row of t. A nil result counts as false, as
// does an evaluation error on a row where a referenced column is null.
func (f *RowFilter) Keep(t *Table, row Row) (bool, error) {
	result, err := expr.Run(f.program, rowEnv(t.Columns, row))
	if err != nil {
		if f.touchesNull(t, row) {
			return false, nil
		}
		return false, err
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("evaluated to %T, expected bool", result)
	}
	return b, nil
}

// touchesNull reports whether a column the expression references is missing
// from t or null in row.
func (f *RowFilter) touchesNull(t *Table, row Row) bool {
	for _, c := range f.columns {
		i := t.Index(c)
		if i < 0 || row[i].IsNull() {
			return true
		}
	}
	return false
}

// Table returns a copy of t holding only the rows the filter keeps.
func (f *RowFilter) Table(t *Table) (*Table, error) {
	if f == nil {
		return t, nil
	}
	out := t.Filter(func(Row) bool { return false })
	for i, row := range t.Rows {
		ok, err := f.Keep(t, row)
		if err != nil {
			return nil, &FilterError{Expression: f.expression, Sheet: t.Name, Row: i + 1, Err: err}
		}
		if ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Workbook applies the filter to every sheet of wb, keeping sheet order.
func (f *RowFilter) Workbook(wb *Workbook) (*Workbook, error) {
	if f == nil {
		return wb, nil
	}
	out := NewWorkbook(wb.Source)
	for _, t := range wb.Tables() {
		ft, err := f.Table(t)
		if err != nil {
			return nil, err
		}
		out.Add(ft)
	}
	return out, nil
}

// rowEnv builds the evaluation environment for one row.
func rowEnv(columns []string, row Row) map[string]any {
	values := make(map[string]any, len(columns))
	for i, c := range columns {
		values[c] = row[i].Interface()
	}
	env := make(map[string]any, len(columns)+1)
	for k, v := range values {
		env[k] = v
	}
	env["row"] = values
	return env
}
