package exec

import "github.com/miniql/miniql/value"

// Result is the outcome of executing one statement: either an error, or a
// (possibly empty) set of named columns with zero or more rows of values.
// CREATE/UPDATE/DELETE return an ok Result with no columns; INSERT returns
// every column of the table and the one row it inserted; SELECT returns the
// projected columns and matching rows.
type Result struct {
	err     error
	columns []string
	rows    [][]value.Value
}

func okResult(columns []string, rows [][]value.Value) *Result {
	return &Result{columns: columns, rows: rows}
}

func errorResult(err error) *Result {
	return &Result{err: err}
}

// IsOk reports whether the statement executed without error.
func (r *Result) IsOk() bool { return r.err == nil }

// ErrorMessage returns the error text, or "" if IsOk.
func (r *Result) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Err returns the underlying error, or nil if IsOk.
func (r *Result) Err() error { return r.err }

// Columns returns the result's column names, in projection order.
func (r *Result) Columns() []string { return r.columns }

// RowCount returns the number of rows in the result.
func (r *Result) RowCount() int { return len(r.rows) }

// Row returns a copy of row i's values.
func (r *Result) Row(i int) []value.Value {
	row := r.rows[i]
	out := make([]value.Value, len(row))
	copy(out, row)
	return out
}

// Rows returns every row's values.
func (r *Result) Rows() [][]value.Value { return r.rows }

// Payload returns the result's projected rows as an ordered sequence of
// column-name-to-value maps, independent of the underlying table: each map
// is a fresh copy and survives subsequent mutation of the source table.
func (r *Result) Payload() []map[string]value.Value {
	out := make([]map[string]value.Value, len(r.rows))
	for i, row := range r.rows {
		m := make(map[string]value.Value, len(r.columns))
		for j, col := range r.columns {
			m[col] = row[j]
		}
		out[i] = m
	}
	return out
}
