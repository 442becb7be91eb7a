package exec

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/table"
	"github.com/miniql/miniql/value"
)

func (d *Database) execCreateTable(s *ast.CreateTable) *Result {
	if _, exists := d.tables[s.Table]; exists {
		return errorResult(errs.TableExists.New(s.Table))
	}
	cols := make([]table.Column, len(s.Columns))
	for i, cd := range s.Columns {
		kind, err := value.ParseKind(cd.Type)
		if err != nil {
			return errorResult(wrap(err, "table %q column %q", s.Table, cd.Name))
		}
		col, err := table.NewColumn(cd.Name, kind, cd.Unique, cd.Key, cd.AutoIncrement, cd.HasDefault, cd.DefaultExpr)
		if err != nil {
			return errorResult(wrap(err, "table %q column %q", s.Table, cd.Name))
		}
		cols[i] = col
	}
	schema, err := table.NewSchema(cols)
	if err != nil {
		return errorResult(wrap(err, "table %q", s.Table))
	}
	d.tables[s.Table] = table.New(s.Table, schema)
	d.logger.WithField("table", s.Table).Debug("created table")
	return okResult(nil, nil)
}

func (d *Database) execCreateIndex(s *ast.CreateIndex) *Result {
	t, err := d.resolveTable(s.Table)
	if err != nil {
		return errorResult(err)
	}
	kind, err := table.ParseKind(s.Kind)
	if err != nil {
		return errorResult(err)
	}
	if err := t.CreateIndex(kind, s.Columns); err != nil {
		return errorResult(wrap(err, "creating index on table %q", s.Table))
	}
	d.logger.WithField("table", s.Table).WithField("columns", s.Columns).Debug("created index")
	return okResult(nil, nil)
}
