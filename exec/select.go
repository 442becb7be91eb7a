package exec

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/table"
	"github.com/miniql/miniql/value"
)

// selector names one output column by the table and column name it is
// drawn from, resolved once against the schemas up front so the row loop
// below only has to look values up.
type selector struct {
	header string
	table  string
	column string
}

func (d *Database) execSelect(s *ast.Select) *Result {
	left, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}

	var right *table.Table
	if s.Join != nil {
		right, err = d.resolveTable(s.Join.Table)
		if err != nil {
			return errorResult(err)
		}
	}

	selectors, err := resolveSelectors(s.Columns, s.Table, left.Schema, s.Join, right)
	if err != nil {
		return errorResult(wrap(err, "resolving SELECT columns for table %q", s.Table))
	}

	var candidates [][]boundColumn
	if right == nil {
		for _, row := range left.Rows() {
			candidates = append(candidates, bindRow(s.Table, left.Schema, row))
		}
	} else {
		leftRows := left.Rows()
		rightRows := right.Rows()
		for _, lrow := range leftRows {
			lbound := bindRow(s.Table, left.Schema, lrow)
			for _, rrow := range rightRows {
				bound := append(append([]boundColumn(nil), lbound...), bindRow(s.Join.Table, right.Schema, rrow)...)
				ok, err := evalPredicate(s.Join.On, envFromBound(bound))
				if err != nil {
					return errorResult(wrap(err, "evaluating JOIN predicate on %q and %q", s.Table, s.Join.Table))
				}
				if ok {
					candidates = append(candidates, bound)
				}
			}
		}
	}

	var rows [][]value.Value
	for _, bound := range candidates {
		if s.Where != "" {
			ok, err := evalPredicate(s.Where, envFromBound(bound))
			if err != nil {
				return errorResult(wrap(err, "evaluating WHERE for table %q", s.Table))
			}
			if !ok {
				continue
			}
		}
		row := make([]value.Value, len(selectors))
		for i, sel := range selectors {
			v, err := lookup(bound, sel.table, sel.column)
			if err != nil {
				return errorResult(err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	headers := make([]string, len(selectors))
	for i, sel := range selectors {
		headers[i] = sel.header
	}
	return okResult(headers, rows)
}

// resolveSelectors expands cols (including a bare "*") into a concrete,
// ordered list of (table, column) selections, validating every reference
// against the schemas involved.
func resolveSelectors(cols []ast.ColumnRef, leftName string, leftSchema *table.Schema, join *ast.Join, right *table.Table) ([]selector, error) {
	if len(cols) == 1 && cols[0].Column == "*" && cols[0].Table == "" {
		var out []selector
		for _, c := range leftSchema.Columns {
			out = append(out, selector{header: c.Name, table: leftName, column: c.Name})
		}
		if join != nil {
			for _, c := range right.Schema.Columns {
				out = append(out, selector{header: c.Name, table: join.Table, column: c.Name})
			}
		}
		return out, nil
	}

	out := make([]selector, len(cols))
	for i, ref := range cols {
		tableName := ref.Table
		switch tableName {
		case "":
			if _, ok := leftSchema.Pos(ref.Column); ok {
				tableName = leftName
			} else if join != nil {
				if _, ok := right.Schema.Pos(ref.Column); ok {
					tableName = join.Table
				} else {
					return nil, errs.UnknownColumn.New(ref.Column)
				}
			} else {
				return nil, errs.UnknownColumn.New(ref.Column)
			}
		case leftName:
			if _, ok := leftSchema.Pos(ref.Column); !ok {
				return nil, errs.UnknownColumn.New(ref.Table + "." + ref.Column)
			}
		default:
			if join == nil || tableName != join.Table {
				return nil, errs.UnknownTable.New(tableName)
			}
			if _, ok := right.Schema.Pos(ref.Column); !ok {
				return nil, errs.UnknownColumn.New(ref.Table + "." + ref.Column)
			}
		}
		header := ref.Column
		if ref.Table != "" {
			header = ref.Table + "." + ref.Column
		}
		out[i] = selector{header: header, table: tableName, column: ref.Column}
	}
	return out, nil
}
