package exec

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/table"
)

func (d *Database) execDelete(s *ast.Delete) *Result {
	t, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}
	pred := func(row table.Row) (bool, error) {
		if s.Where == "" {
			return true, nil
		}
		env := envFromBound(bindRow(s.Table, t.Schema, row))
		return evalPredicate(s.Where, env)
	}
	count, err := t.RemoveMany(pred)
	if err != nil {
		return errorResult(wrap(err, "deleting from table %q", s.Table))
	}
	d.logger.WithField("table", s.Table).WithField("count", count).Debug("deleted rows")
	return okResult(nil, nil)
}
