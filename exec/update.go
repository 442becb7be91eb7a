package exec

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/eval"
	"github.com/miniql/miniql/table"
)

func (d *Database) execUpdate(s *ast.Update) *Result {
	left, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}

	var right *table.Table
	var rightRows []table.Row
	if s.Join != nil {
		right, err = d.resolveTable(s.Join.Table)
		if err != nil {
			return errorResult(err)
		}
		rightRows = right.Rows()
	}

	// rowEnv finds the first right-hand row satisfying the join predicate
	// and returns the combined environment, or ok=false if none matches.
	rowEnv := func(row table.Row) (eval.Env, bool, error) {
		lbound := bindRow(s.Table, left.Schema, row)
		if s.Join == nil {
			return envFromBound(lbound), true, nil
		}
		for _, rrow := range rightRows {
			bound := append(append([]boundColumn(nil), lbound...), bindRow(s.Join.Table, right.Schema, rrow)...)
			ok, err := evalPredicate(s.Join.On, envFromBound(bound))
			if err != nil {
				return nil, false, err
			}
			if ok {
				return envFromBound(bound), true, nil
			}
		}
		return nil, false, nil
	}

	pred := func(row table.Row) (bool, error) {
		env, joined, err := rowEnv(row)
		if err != nil {
			return false, err
		}
		if !joined {
			return false, nil
		}
		if s.Where == "" {
			return true, nil
		}
		return evalPredicate(s.Where, env)
	}

	mutate := func(row table.Row) (table.Row, error) {
		env, joined, err := rowEnv(row)
		if err != nil {
			return nil, err
		}
		if !joined {
			return nil, errs.Internal.New("row matched by predicate but lost its join partner during mutation")
		}
		for _, asn := range s.Assignments {
			v, err := eval.Evaluate(asn.Expr, env)
			if err != nil {
				return nil, err
			}
			pos, ok := left.Schema.Pos(asn.Column)
			if !ok {
				return nil, errs.UnknownColumn.New(asn.Column)
			}
			if v.Kind() != left.Schema.Columns[pos].Type {
				return nil, errs.TypeMismatch.New(left.Schema.Columns[pos].Type, v.Kind())
			}
			row[pos] = v
		}
		return row, nil
	}

	columns := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		columns[i] = a.Column
	}

	count, err := left.UpdateMany(columns, pred, mutate)
	if err != nil {
		return errorResult(wrap(err, "updating table %q", s.Table))
	}
	d.logger.WithField("table", s.Table).WithField("count", count).Debug("updated rows")
	return okResult(nil, nil)
}
