// Package parser implements the hand-written recursive-descent parser that
// turns SQL statement text into an ast.Statement. It scans over a private
// character cursor rather than reusing the token/lexer packages built for
// the expression evaluator: the statement grammar's vocabulary (keywords
// like SELECT, FROM, WHERE) is unrelated to the evaluator's operators, and
// expressions/predicates are captured here as raw source substrings instead
// of being tokenized at this layer.
package parser

import (
	"strings"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/token"
)

// Parser scans src into a single ast.Statement.
type Parser struct {
	src     string
	pos     int
	line    int
	linePos int
}

// New constructs a Parser over src.
func New(src string) *Parser {
	return &Parser{src: src, line: 1}
}

// Parse scans src and returns the single statement it contains. One
// optional ';' may follow the statement; any other trailing non-whitespace
// input is an error.
func Parse(src string) (ast.Statement, error) {
	p := New(src)
	p.skipSpace()
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	p.matchByte(';')
	if !p.atEnd() {
		return nil, p.errorf("unexpected trailing input")
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.matchKeyword("CREATE"):
		return p.parseCreate()
	case p.matchKeyword("INSERT"):
		return p.parseInsert()
	case p.matchKeyword("SELECT"):
		return p.parseSelect()
	case p.matchKeyword("UPDATE"):
		return p.parseUpdate()
	case p.matchKeyword("DELETE"):
		return p.parseDelete()
	default:
		return nil, p.errorf("expected a statement keyword")
	}
}

func (p *Parser) parseCreate() (ast.Statement, error) {
	start := p.curPos()
	switch {
	case p.matchKeyword("TABLE"):
		return p.parseCreateTable(start)
	case p.matchKeyword("ORDERED"):
		return p.parseCreateIndex(start, "ORDERED")
	case p.matchKeyword("UNORDERED"):
		return p.parseCreateIndex(start, "UNORDERED")
	default:
		return nil, p.errorf("expected TABLE, ORDERED, or UNORDERED after CREATE")
	}
}

func (p *Parser) parseCreateTable(start token.Pos) (ast.Statement, error) {
	name, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var columns []ast.ColumnDef
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		p.skipSpace()
		if p.matchByte(',') {
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return &ast.CreateTable{StartPos: start, EndPos: p.curPos(), Table: name, Columns: columns}, nil
}

func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	p.skipSpace()
	name, err := p.scanIdent()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	typ, err := p.scanIdent()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	col := ast.ColumnDef{Name: name, Type: strings.ToUpper(typ)}
	for {
		switch {
		case p.matchKeyword("UNIQUE"):
			col.Unique = true
		case p.matchKeyword("AUTOINCREMENT"):
			col.AutoIncrement = true
		case p.matchKeyword("KEY"):
			col.Key = true
		case p.matchKeyword("DEFAULT"):
			expr, err := p.scanExprUntil(",)")
			if err != nil {
				return ast.ColumnDef{}, err
			}
			col.HasDefault = true
			col.DefaultExpr = expr
			return col, nil
		default:
			return col, nil
		}
		p.skipSpace()
	}
}

func (p *Parser) parseCreateIndex(start token.Pos, kind string) (ast.Statement, error) {
	if err := p.expectKeyword("INDEX"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("BY"); err != nil {
		return nil, err
	}
	columns, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	return &ast.CreateIndex{StartPos: start, EndPos: p.curPos(), Kind: kind, Table: table, Columns: columns}, nil
}

func (p *Parser) parseIdentList() ([]string, error) {
	var out []string
	for {
		id, err := p.scanIdent()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		p.skipSpace()
		if p.matchByte(',') {
			continue
		}
		return out, nil
	}
}

// parseJoin parses an optional JOIN table ON predicate clause.
func (p *Parser) parseJoin() (*ast.Join, error) {
	if !p.matchKeyword("JOIN") {
		return nil, nil
	}
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	on, err := p.scanExprUntil("", "WHERE")
	if err != nil {
		return nil, err
	}
	return &ast.Join{Table: table, On: on}, nil
}

// parseWhere parses an optional trailing WHERE predicate running to the end
// of the statement.
func (p *Parser) parseWhere() (string, error) {
	if !p.matchKeyword("WHERE") {
		return "", nil
	}
	return p.scanExprUntil("")
}
