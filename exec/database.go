// Package exec binds the parser, evaluator, and table engine together into
// a Database that accepts SQL statement text and produces a Result, the way
// the teacher pack's sqlparser.go front door reshapes parsing into a single
// callable surface.
package exec

import (
	"fmt"
	"io"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/parser"
	"github.com/miniql/miniql/table"
)

// Option configures a Database at construction time.
type Option func(*Database)

// WithLogger installs l as the Database's diagnostic logger. By default a
// Database logs nowhere: this engine has no ambient IO, so logging is an
// opt-in hook rather than something enabled by default.
func WithLogger(l *logrus.Logger) Option {
	return func(d *Database) { d.logger = l }
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Database is the single-process, in-memory engine: a named set of tables,
// guarded by a coarse-grained lock so Execute is safe to call concurrently.
type Database struct {
	mu     sync.Mutex
	tables map[string]*table.Table
	logger *logrus.Logger
}

// NewDatabase constructs an empty Database.
func NewDatabase(opts ...Option) *Database {
	d := &Database{
		tables: make(map[string]*table.Table),
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute parses text and runs the resulting statement.
func (d *Database) Execute(text string) *Result {
	stmt, err := parser.Parse(text)
	if err != nil {
		return errorResult(err)
	}
	return d.ExecuteStatement(stmt)
}

// ExecuteStatement runs an already-parsed statement. A panic anywhere below
// this point is recovered and reported as errs.Internal rather than
// crossing the public API boundary.
func (d *Database) ExecuteStatement(stmt ast.Statement) (res *Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Error("recovered from panic executing statement")
			res = errorResult(errs.Internal.New(r))
		}
	}()

	d.logger.WithField("stmt", fmt.Sprintf("%T", stmt)).Debug("dispatching statement")

	switch s := stmt.(type) {
	case *ast.CreateTable:
		return d.execCreateTable(s)
	case *ast.CreateIndex:
		return d.execCreateIndex(s)
	case *ast.PositionalInsert:
		return d.execPositionalInsert(s)
	case *ast.NamedInsert:
		return d.execNamedInsert(s)
	case *ast.Select:
		return d.execSelect(s)
	case *ast.Update:
		return d.execUpdate(s)
	case *ast.Delete:
		return d.execDelete(s)
	default:
		return errorResult(pkgerrors.Errorf("unsupported statement type %T", stmt))
	}
}

func (d *Database) resolveTable(name string) (*table.Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, errs.UnknownTable.New(name)
	}
	return t, nil
}

// wrap adds call-site context to err via github.com/pkg/errors, preserving
// the underlying errs.Kind for classification by errors.Cause.
func wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}
