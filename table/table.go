package table

import (
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/value"
)

// Evaluator resolves a default-expression source string to a Value, with an
// empty identifier environment. The table engine never imports the
// evaluator package directly; the executor supplies this closure so that
// default expressions are evaluated lazily, at insert time, as spec'd.
type Evaluator func(expr string) (value.Value, error)

// NamedValue is one column=expr assignment already reduced to a Value, used
// by both named INSERT and UPDATE SET lists.
type NamedValue struct {
	Column string
	Value  value.Value
}

// Table is a schema-bound, in-memory row store. Rows are identified
// internally by a stable, monotonically increasing ID so that secondary
// indexes can reference a row across deletes of other rows without having
// to renumber.
type Table struct {
	Name   string
	Schema *Schema

	rows     map[int64]Row
	order    []int64                     // live row IDs, insertion order
	nextID   int64
	counters map[string]int64            // auto-increment columns: next value to assign
	keyIndex map[string]map[string]int64 // KEY columns: value string -> row ID
	indexes  map[string]*Index           // user-created secondary indexes, keyed by indexKey(columns)
}

// New constructs an empty Table for schema.
func New(name string, schema *Schema) *Table {
	t := &Table{
		Name:     name,
		Schema:   schema,
		rows:     make(map[int64]Row),
		counters: make(map[string]int64),
		keyIndex: make(map[string]map[string]int64),
		indexes:  make(map[string]*Index),
	}
	for _, c := range schema.Columns {
		if c.AutoIncrement {
			t.counters[c.Name] = 0
		}
		if c.Key {
			t.keyIndex[c.Name] = make(map[string]int64)
		}
	}
	return t
}

// Len reports the number of live rows.
func (t *Table) Len() int { return len(t.order) }

// Rows returns a fresh copy of every live row, in insertion order.
func (t *Table) Rows() []Row {
	out, _ := t.Filter(func(Row) (bool, error) { return true, nil })
	return out
}

// Filter returns fresh copies of every live row for which pred holds, in
// insertion order. pred may fail (e.g. a malformed WHERE predicate); the
// first error aborts the scan.
func (t *Table) Filter(pred func(Row) (bool, error)) ([]Row, error) {
	var out []Row
	for _, id := range t.order {
		row := t.rows[id]
		ok, err := pred(row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row.Clone())
		}
	}
	return out, nil
}

// CreateIndex adds a secondary index over columns, populated by a full scan
// of the table's current rows, then maintained incrementally thereafter.
func (t *Table) CreateIndex(kind Kind, columns []string) error {
	if len(columns) == 0 {
		return errs.BadIndexColumns.New()
	}
	for _, col := range columns {
		if _, ok := t.Schema.Pos(col); !ok {
			return errs.UnknownColumn.New(col)
		}
	}
	key := indexKey(columns)
	idx := newIndex(kind, columns)
	for _, id := range t.order {
		row := t.rows[id]
		k, err := idx.key(t.Schema, row)
		if err != nil {
			return err
		}
		idx.insert(k, id)
	}
	t.indexes[key] = idx
	return nil
}

// padPositional builds a schema-length slice of provided values from a
// partial positional list, padding the tail with nils ("use default").
func (t *Table) padPositional(values []*value.Value) ([]*value.Value, error) {
	n := t.Schema.Len()
	if len(values) > n {
		return nil, errs.TooManyValues.New(t.Name, n, len(values))
	}
	out := make([]*value.Value, n)
	copy(out, values)
	return out, nil
}

// InsertPositional inserts a row from a positional value list. A nil entry
// means "no value supplied"; the column falls back to auto-increment,
// default, or MissingValue in that order. values may be shorter than the
// schema; missing tail entries are treated the same as explicit nils.
func (t *Table) InsertPositional(values []*value.Value, evalDefault Evaluator) (Row, error) {
	provided, err := t.padPositional(values)
	if err != nil {
		return nil, err
	}
	return t.insert(provided, evalDefault, false)
}

// InsertNamed inserts a row from a name=expr assignment list. Duplicate
// column names and unknown column names are rejected before anything else
// is evaluated. Any column without an assignment falls back to
// auto-increment, default, or its declared type's zero value, in that order
// — unlike InsertPositional, a named insert never fails with MissingValue.
func (t *Table) InsertNamed(assignments []NamedValue, evalDefault Evaluator) (Row, error) {
	provided := make([]*value.Value, t.Schema.Len())
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		pos, ok := t.Schema.Pos(a.Column)
		if !ok {
			return nil, errs.UnknownColumn.New(a.Column)
		}
		if seen[a.Column] {
			return nil, errs.DuplicateAssignment.New(a.Column)
		}
		seen[a.Column] = true
		v := a.Value
		provided[pos] = &v
	}
	return t.insert(provided, evalDefault, true)
}

// insert builds a full row from provided (one slot per schema column, nil
// meaning "resolve a value"), enforces constraints in spec order, and
// commits the row and its index entries atomically on success. zeroFallback
// selects the named-insert policy of falling back to the column's typed
// zero value, rather than MissingValue, when neither an explicit value, an
// auto-increment, nor a default applies.
func (t *Table) insert(provided []*value.Value, evalDefault Evaluator, zeroFallback bool) (Row, error) {
	row := make(Row, t.Schema.Len())
	counterUpdates := make(map[string]int64)

	for i, col := range t.Schema.Columns {
		switch {
		case provided[i] != nil:
			v := *provided[i]
			if v.Kind() != col.Type {
				return nil, errs.TypeMismatch.New(col.Type, v.Kind())
			}
			if col.AutoIncrement {
				n, err := v.AsInt()
				if err != nil {
					return nil, err
				}
				if n < t.counters[col.Name] {
					return nil, errs.AutoIncrementRegression.New(n, col.Name, t.counters[col.Name])
				}
				counterUpdates[col.Name] = n + 1
			}
			row[i] = v
		case col.AutoIncrement:
			row[i] = value.NewInt(t.counters[col.Name])
			counterUpdates[col.Name] = t.counters[col.Name] + 1
		case col.HasDefault:
			v, err := evalDefault(col.DefaultExpr)
			if err != nil {
				return nil, err
			}
			if v.Kind() != col.Type {
				return nil, errs.TypeMismatch.New(col.Type, v.Kind())
			}
			row[i] = v
		case zeroFallback:
			row[i] = value.Zero(col.Type)
		default:
			return nil, errs.MissingValue.New(col.Name)
		}
	}

	for _, col := range t.Schema.Columns {
		if !col.Unique {
			continue
		}
		pos, _ := t.Schema.Pos(col.Name)
		for _, id := range t.order {
			eq, err := value.Equal(t.rows[id][pos], row[pos])
			if err != nil {
				return nil, err
			}
			if eq {
				return nil, errs.UniqueViolation.New(col.Name, row[pos].String())
			}
		}
	}

	for _, col := range t.Schema.Columns {
		if !col.Key {
			continue
		}
		pos, _ := t.Schema.Pos(col.Name)
		key := row[pos].String()
		if _, exists := t.keyIndex[col.Name][key]; exists {
			return nil, errs.KeyViolation.New(col.Name, key)
		}
	}

	id := t.nextID
	t.nextID++
	t.rows[id] = row
	t.order = append(t.order, id)
	for name, next := range counterUpdates {
		t.counters[name] = next
	}
	for _, col := range t.Schema.Columns {
		if !col.Key {
			continue
		}
		pos, _ := t.Schema.Pos(col.Name)
		t.keyIndex[col.Name][row[pos].String()] = id
	}
	t.indexInsert(id, row)
	return row.Clone(), nil
}

// UpdateMany applies mutate to every live row for which pred holds, after
// validating that none of columns names a protected (auto-increment, key,
// or unique) column. Matching rows are collected (evaluating pred against
// every live row) before any mutation is applied, so a predicate error
// leaves the table untouched. It returns the number of rows updated.
func (t *Table) UpdateMany(columns []string, pred func(Row) (bool, error), mutate func(Row) (Row, error)) (int, error) {
	for _, name := range columns {
		col, ok := t.Schema.Column(name)
		if !ok {
			return 0, errs.UnknownColumn.New(name)
		}
		if col.AutoIncrement || col.Key || col.Unique {
			return 0, errs.ProtectedColumn.New(name)
		}
	}

	var matched []int64
	for _, id := range t.order {
		ok, err := pred(t.rows[id])
		if err != nil {
			return 0, err
		}
		if ok {
			matched = append(matched, id)
		}
	}

	count := 0
	for _, id := range matched {
		row := t.rows[id]
		newRow, err := mutate(row.Clone())
		if err != nil {
			return count, err
		}
		if err := t.Schema.ValidateRow(newRow); err != nil {
			return count, err
		}
		t.indexRemove(id, row)
		t.rows[id] = newRow
		t.indexInsert(id, newRow)
		count++
	}
	return count, nil
}

// RemoveMany deletes every live row for which pred holds and removes it
// from every index. Matching rows are collected before anything is removed,
// so a predicate error leaves the table untouched. It returns the number of
// rows removed and the first predicate error, if any.
func (t *Table) RemoveMany(pred func(Row) (bool, error)) (int, error) {
	toRemove := make(map[int64]bool)
	for _, id := range t.order {
		ok, err := pred(t.rows[id])
		if err != nil {
			return 0, err
		}
		if ok {
			toRemove[id] = true
		}
	}

	kept := t.order[:0:0]
	removed := 0
	for _, id := range t.order {
		if toRemove[id] {
			t.indexRemove(id, t.rows[id])
			delete(t.rows, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed, nil
}

func (t *Table) indexInsert(id int64, row Row) {
	for _, col := range t.Schema.Columns {
		if !col.Key {
			continue
		}
		pos, _ := t.Schema.Pos(col.Name)
		t.keyIndex[col.Name][row[pos].String()] = id
	}
	for _, idx := range t.indexes {
		k, err := idx.key(t.Schema, row)
		if err != nil {
			continue
		}
		idx.insert(k, id)
	}
}

func (t *Table) indexRemove(id int64, row Row) {
	for _, col := range t.Schema.Columns {
		if !col.Key {
			continue
		}
		pos, _ := t.Schema.Pos(col.Name)
		delete(t.keyIndex[col.Name], row[pos].String())
	}
	for _, idx := range t.indexes {
		k, err := idx.key(t.Schema, row)
		if err != nil {
			continue
		}
		idx.remove(k, id)
	}
}

// Index returns the secondary index registered over columns, if any.
func (t *Table) Index(columns []string) (*Index, bool) {
	idx, ok := t.indexes[indexKey(columns)]
	return idx, ok
}
