// Package errs defines the typed error kinds raised across the lexer,
// parser, evaluator, table engine, and executor. Every kind is backed by
// gopkg.in/src-d/go-errors.v1 so a caller can classify an error with
// (*errors.Kind).Is regardless of how many layers wrapped it with
// github.com/pkg/errors on the way out.
package errs

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ParseStatement covers malformed SQL statement text.
	ParseStatement = errors.NewKind("parse error at %v: %s")
	// ParseExpression covers malformed expression/predicate text.
	ParseExpression = errors.NewKind("could not parse expression %q: %s")

	// UnknownTable is raised when a statement names a table that was
	// never created.
	UnknownTable = errors.NewKind("unknown table %q")
	// UnknownColumn is raised when a statement names a column absent from
	// the resolved table's schema.
	UnknownColumn = errors.NewKind("unknown column %q")
	// UnknownIdentifier is raised when an expression references a name
	// absent from the evaluator's environment.
	UnknownIdentifier = errors.NewKind("unknown identifier %q")

	// TableExists is raised by CREATE TABLE naming an existing table.
	TableExists = errors.NewKind("table %q already exists")

	// TypeMismatch is raised when a value's case differs from the
	// expected case, or an operator is applied to incompatible cases.
	TypeMismatch = errors.NewKind("type mismatch: expected %v, got %v")

	// TooManyValues is raised by a positional INSERT supplying more
	// values than the schema has columns.
	TooManyValues = errors.NewKind("too many values: table %q has %d columns, got %d")
	// MissingValue is raised when a column has no supplied value, no
	// auto-increment, and no default.
	MissingValue = errors.NewKind("missing value for column %q")

	// DuplicateAssignment is raised when a named insert/update assigns
	// the same column twice.
	DuplicateAssignment = errors.NewKind("duplicate assignment to column %q")

	// UniqueViolation is raised when an inserted value collides with an
	// existing value in a UNIQUE column.
	UniqueViolation = errors.NewKind("unique violation on column %q: value %v already present")
	// KeyViolation is raised when an inserted value collides with an
	// existing value in a KEY column's index.
	KeyViolation = errors.NewKind("key violation on column %q: value %v already present")

	// AutoIncrementRegression is raised when an explicit value for an
	// auto-increment column is less than the column's current counter.
	AutoIncrementRegression = errors.NewKind("value %d for auto-increment column %q is below current counter %d")

	// ProtectedColumn is raised when an UPDATE targets an
	// auto-increment, key, or unique column.
	ProtectedColumn = errors.NewKind("column %q is protected and cannot be updated")

	// DivByZero is raised by / or % with a zero right-hand operand.
	DivByZero = errors.NewKind("division by zero")

	// BadIndexKind is raised by CREATE INDEX naming an unsupported kind.
	BadIndexKind = errors.NewKind("unsupported index kind %q")
	// BadIndexColumns is raised by CREATE INDEX with an empty column list.
	BadIndexColumns = errors.NewKind("index must name at least one column")

	// Internal wraps a recovered panic so it never crosses the public
	// API boundary as anything other than a Result.
	Internal = errors.NewKind("internal error: %v")
)
