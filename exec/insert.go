package exec

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/eval"
	"github.com/miniql/miniql/table"
	"github.com/miniql/miniql/value"
)

func (d *Database) execPositionalInsert(s *ast.PositionalInsert) *Result {
	t, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}
	// Arity is checked before any expression in the list is evaluated, so a
	// too-long VALUES list never partially evaluates a default or advances
	// an auto-increment counter (see SPEC_FULL.md §5).
	if n := t.Schema.Len(); len(s.Values) > n {
		return errorResult(errs.TooManyValues.New(s.Table, n, len(s.Values)))
	}
	values := make([]*value.Value, len(s.Values))
	for i, src := range s.Values {
		if src == "" {
			continue // DEFAULT sentinel: leave the slot unresolved
		}
		v, err := eval.Evaluate(src, eval.Env{})
		if err != nil {
			return errorResult(wrap(err, "evaluating value %d for table %q", i, s.Table))
		}
		values[i] = &v
	}
	row, err := t.InsertPositional(values, defaultEvaluator())
	if err != nil {
		return errorResult(wrap(err, "inserting into table %q", s.Table))
	}
	d.logger.WithField("table", s.Table).Debug("inserted row")
	return okResult(columnNames(t.Schema), [][]value.Value{row})
}

func (d *Database) execNamedInsert(s *ast.NamedInsert) *Result {
	t, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}
	assignments := make([]table.NamedValue, len(s.Assignments))
	for i, a := range s.Assignments {
		v, err := eval.Evaluate(a.Expr, eval.Env{})
		if err != nil {
			return errorResult(wrap(err, "evaluating column %q for table %q", a.Column, s.Table))
		}
		assignments[i] = table.NamedValue{Column: a.Column, Value: v}
	}
	row, err := t.InsertNamed(assignments, defaultEvaluator())
	if err != nil {
		return errorResult(wrap(err, "inserting into table %q", s.Table))
	}
	d.logger.WithField("table", s.Table).Debug("inserted row")
	return okResult(columnNames(t.Schema), [][]value.Value{row})
}

func columnNames(schema *table.Schema) []string {
	out := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		out[i] = c.Name
	}
	return out
}
