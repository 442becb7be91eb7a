// Package table implements the table engine: schema-bound row storage with
// constraint enforcement, predicate filter/update/delete, and secondary
// indexes.
package table

import (
	"strings"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/value"
)

// Column is a single column definition within a Schema.
//
// Invariants enforced by NewColumn: AutoIncrement implies Type == value.Int;
// Key implies Unique (Unique is forced true rather than erroring).
// AutoIncrement and Key may be combined on the same column.
type Column struct {
	Name          string
	Type          value.Kind
	Unique        bool
	Key           bool
	AutoIncrement bool
	HasDefault    bool
	DefaultExpr   string
}

// NewColumn validates and constructs a Column. AUTOINCREMENT and KEY may be
// combined on the same column (spec.md's own worked example does exactly
// this: "ID INT AUTOINCREMENT KEY") — see DESIGN.md's Open Question note on
// this combination.
func NewColumn(name string, kind value.Kind, unique, key, autoIncrement, hasDefault bool, defaultExpr string) (Column, error) {
	if autoIncrement && kind != value.Int {
		return Column{}, errs.TypeMismatch.New(value.Int, kind)
	}
	if key {
		unique = true
	}
	return Column{
		Name:          name,
		Type:          kind,
		Unique:        unique,
		Key:           key,
		AutoIncrement: autoIncrement,
		HasDefault:    hasDefault,
		DefaultExpr:   defaultExpr,
	}, nil
}

// Schema is an ordered sequence of column definitions with an O(1)
// name→position lookup maintained alongside it.
type Schema struct {
	Columns []Column
	posOf   map[string]int
}

// NewSchema builds a Schema, rejecting duplicate column names.
func NewSchema(columns []Column) (*Schema, error) {
	posOf := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := posOf[c.Name]; dup {
			return nil, errs.ParseStatement.New(c.Name, "duplicate column name")
		}
		posOf[c.Name] = i
	}
	return &Schema{Columns: columns, posOf: posOf}, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.Columns) }

// Pos returns the ordinal position of name, if present.
func (s *Schema) Pos(name string) (int, bool) {
	i, ok := s.posOf[name]
	return i, ok
}

// Column returns the column definition for name, if present.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.posOf[name]
	if !ok {
		return Column{}, false
	}
	return s.Columns[i], true
}

// ValidateRow checks that row has schema length and each value's case
// matches the declared column type.
func (s *Schema) ValidateRow(row Row) error {
	if len(row) != len(s.Columns) {
		return errs.TypeMismatch.New(len(s.Columns), len(row))
	}
	for i, v := range row {
		if v.Kind() != s.Columns[i].Type {
			return errs.TypeMismatch.New(s.Columns[i].Type, v.Kind())
		}
	}
	return nil
}

// indexKey returns the comma-joined column-name key a Table's index set is
// keyed by.
func indexKey(columns []string) string {
	return strings.Join(columns, ",")
}
