package exec

import (
	"github.com/miniql/miniql/eval"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/table"
	"github.com/miniql/miniql/value"
)

// boundColumn pairs a live value with the table and column name it came
// from, the unit the join/projection/environment logic is built from.
type boundColumn struct {
	table  string
	column string
	value  value.Value
}

// bindRow pairs every value in row with its owning table and column name.
func bindRow(tableName string, schema *table.Schema, row table.Row) []boundColumn {
	out := make([]boundColumn, len(schema.Columns))
	for i, col := range schema.Columns {
		out[i] = boundColumn{table: tableName, column: col.Name, value: row[i]}
	}
	return out
}

// envFromBound builds an evaluator environment from bound columns, one
// entry per unqualified column name and one per "table.column" qualified
// name, so WHERE/ON predicates and UPDATE SET assignments can use either form.
func envFromBound(bound []boundColumn) eval.Env {
	env := make(eval.Env, len(bound)*2)
	for _, bc := range bound {
		s := bc.value.String()
		env[bc.column] = s
		env[bc.table+"."+bc.column] = s
	}
	return env
}

// evalPredicate evaluates expr against env and requires a BOOL result.
func evalPredicate(expr string, env eval.Env) (bool, error) {
	v, err := eval.Evaluate(expr, env)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// defaultEvaluator adapts eval.Evaluate to table.Evaluator for resolving
// DEFAULT column expressions with an empty environment.
func defaultEvaluator() table.Evaluator {
	return func(expr string) (value.Value, error) {
		return eval.Evaluate(expr, eval.Env{})
	}
}

// lookup finds the bound column matching name, optionally qualified by
// table. An unqualified lookup returns the first match.
func lookup(bound []boundColumn, tableName, name string) (value.Value, error) {
	for _, bc := range bound {
		if bc.column != name {
			continue
		}
		if tableName != "" && bc.table != tableName {
			continue
		}
		return bc.value, nil
	}
	if tableName != "" {
		return value.Value{}, errs.UnknownColumn.New(tableName + "." + name)
	}
	return value.Value{}, errs.UnknownColumn.New(name)
}
