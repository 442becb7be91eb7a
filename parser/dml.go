package parser

import "github.com/miniql/miniql/ast"

func (p *Parser) parseInsert() (ast.Statement, error) {
	start := p.curPos()
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	if p.matchKeyword("VALUES") {
		if err := p.expectByte('('); err != nil {
			return nil, err
		}
		values, err := p.parseValuesList()
		if err != nil {
			return nil, err
		}
		if err := p.expectByte(')'); err != nil {
			return nil, err
		}
		return &ast.PositionalInsert{StartPos: start, EndPos: p.curPos(), Table: table, Values: values}, nil
	}
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	assignments, err := p.parseAssignmentList()
	if err != nil {
		return nil, err
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return &ast.NamedInsert{StartPos: start, EndPos: p.curPos(), Table: table, Assignments: assignments}, nil
}

// parseValuesList scans a positional VALUES list. A bare DEFAULT or NULL
// keyword in a slot, or a genuinely empty slot between commas, is recorded
// as "", the sentinel the table engine treats as "resolve a value for me"
// (auto-increment, then DEFAULT, then MissingValue).
func (p *Parser) parseValuesList() ([]string, error) {
	var out []string
	for {
		p.skipSpace()
		if p.matchByte(',') {
			// Genuinely empty slot: "(, ...)" or "(..., ...)".
			out = append(out, "")
			continue
		}
		if len(out) > 0 && p.pos < len(p.src) && p.src[p.pos] == ')' {
			// Trailing empty slot: "(1, )".
			out = append(out, "")
			return out, nil
		}
		if p.matchKeyword("DEFAULT") || p.matchKeyword("NULL") {
			out = append(out, "")
		} else {
			expr, err := p.scanExprUntil(",)")
			if err != nil {
				return nil, err
			}
			out = append(out, expr)
		}
		if p.matchByte(',') {
			continue
		}
		return out, nil
	}
}

func (p *Parser) parseAssignmentList() ([]ast.Assignment, error) {
	var out []ast.Assignment
	for {
		name, err := p.scanIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectByte('='); err != nil {
			return nil, err
		}
		expr, err := p.scanExprUntil(",)")
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Assignment{Column: name, Expr: expr})
		if p.matchByte(',') {
			continue
		}
		return out, nil
	}
}

func (p *Parser) parseUpdate() (ast.Statement, error) {
	start := p.curPos()
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	join, err := p.parseJoin()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	assignments, err := p.parseAssignmentList()
	if err != nil {
		return nil, err
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	return &ast.Update{StartPos: start, EndPos: p.curPos(), Table: table, Join: join, Assignments: assignments, Where: where}, nil
}

func (p *Parser) parseDelete() (ast.Statement, error) {
	start := p.curPos()
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	return &ast.Delete{StartPos: start, EndPos: p.curPos(), Table: table, Where: where}, nil
}
