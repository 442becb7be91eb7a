// Package ast defines the sum-typed statement tree produced by the parser.
// Expressions and predicates are kept as raw, uninterpreted source
// substrings (see spec §9's Open Question) rather than built into their own
// expression tree; the evaluator package re-parses them against an
// identifier environment at execution time.
package ast

import "github.com/miniql/miniql/token"

// Statement is the marker interface every statement case implements.
type Statement interface {
	statementNode()
	Pos() token.Pos
	End() token.Pos
}

// ColumnDef is one column definition within a CREATE TABLE statement.
type ColumnDef struct {
	Name          string
	Type          string // INT, DOUBLE, BOOL, VARCHAR, BYTEBUFFER
	Unique        bool
	Key           bool
	AutoIncrement bool
	HasDefault    bool
	DefaultExpr   string // raw source, evaluated lazily at insert time
}

// CreateTable represents CREATE TABLE name (col type [flags...], ...).
type CreateTable struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Columns  []ColumnDef
}

func (*CreateTable) statementNode()   {}
func (s *CreateTable) Pos() token.Pos { return s.StartPos }
func (s *CreateTable) End() token.Pos { return s.EndPos }

// PositionalInsert is INSERT INTO table VALUES (expr, DEFAULT, ...).
// Empty-string entries mark the DEFAULT sentinel.
type PositionalInsert struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Values   []string // raw source per slot; "" means DEFAULT
}

func (*PositionalInsert) statementNode()   {}
func (s *PositionalInsert) Pos() token.Pos { return s.StartPos }
func (s *PositionalInsert) End() token.Pos { return s.EndPos }

// Assignment is one column = expr pair, shared by named INSERT and UPDATE.
type Assignment struct {
	Column string
	Expr   string // raw source
}

// NamedInsert is INSERT INTO table (col = expr, ...).
type NamedInsert struct {
	StartPos    token.Pos
	EndPos      token.Pos
	Table       string
	Assignments []Assignment
}

func (*NamedInsert) statementNode()   {}
func (s *NamedInsert) Pos() token.Pos { return s.StartPos }
func (s *NamedInsert) End() token.Pos { return s.EndPos }

// ColumnRef is a column reference, optionally qualified by a table name
// (used to disambiguate a joined SELECT/UPDATE's output and environment).
type ColumnRef struct {
	Table  string // "" if unqualified
	Column string
}

// Join is the optional JOIN clause of a SELECT or UPDATE.
type Join struct {
	Table string
	On    string // raw predicate source
}

// Select represents SELECT columns FROM table [JOIN ... ON ...] [WHERE ...].
// A single "*" entry in Columns means "all columns".
type Select struct {
	StartPos token.Pos
	EndPos   token.Pos
	Columns  []ColumnRef
	Table    string
	Join     *Join
	Where    string // raw source, "" if absent
}

func (*Select) statementNode()   {}
func (s *Select) Pos() token.Pos { return s.StartPos }
func (s *Select) End() token.Pos { return s.EndPos }

// Update represents UPDATE table [JOIN ... ON ...] SET (col = expr, ...) [WHERE ...].
type Update struct {
	StartPos    token.Pos
	EndPos      token.Pos
	Table       string
	Join        *Join
	Assignments []Assignment
	Where       string
}

func (*Update) statementNode()   {}
func (s *Update) Pos() token.Pos { return s.StartPos }
func (s *Update) End() token.Pos { return s.EndPos }

// Delete represents DELETE FROM table [WHERE ...].
type Delete struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Where    string
}

func (*Delete) statementNode()   {}
func (s *Delete) Pos() token.Pos { return s.StartPos }
func (s *Delete) End() token.Pos { return s.EndPos }

// CreateIndex represents CREATE (ORDERED|UNORDERED) INDEX ON table BY col, ....
type CreateIndex struct {
	StartPos token.Pos
	EndPos   token.Pos
	Kind     string // "ORDERED" or "UNORDERED"
	Table    string
	Columns  []string
}

func (*CreateIndex) statementNode()   {}
func (s *CreateIndex) Pos() token.Pos { return s.StartPos }
func (s *CreateIndex) End() token.Pos { return s.EndPos }
