package table

import "github.com/miniql/miniql/value"

// Row is a positional sequence of values, one per schema column.
type Row []value.Value

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}
