// Package miniql is the public, language-neutral front door: a single-
// process, in-memory SQL-like database engine. Construct a Database and
// call Execute with statement text; the Result reports success, an error
// message, and any projected rows.
package miniql

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/exec"
	"github.com/miniql/miniql/parser"
)

// Database is the engine: a named set of tables plus the CREATE TABLE,
// CREATE INDEX, INSERT, SELECT, UPDATE, and DELETE operations over them.
type Database = exec.Database

// Result is the outcome of one Execute call.
type Result = exec.Result

// Option configures a Database at construction time.
type Option = exec.Option

// WithLogger installs an optional diagnostic logger on a Database.
var WithLogger = exec.WithLogger

// NewDatabase constructs an empty Database.
func NewDatabase(opts ...Option) *Database {
	return exec.NewDatabase(opts...)
}

// Parse parses statement text without executing it, for callers that want
// to inspect or cache the statement tree themselves.
func Parse(text string) (ast.Statement, error) {
	return parser.Parse(text)
}
