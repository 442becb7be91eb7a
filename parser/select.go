package parser

import "github.com/miniql/miniql/ast"

func (p *Parser) parseSelect() (ast.Statement, error) {
	start := p.curPos()
	columns, err := p.parseSelectColumns()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.scanIdent()
	if err != nil {
		return nil, err
	}
	join, err := p.parseJoin()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	return &ast.Select{StartPos: start, EndPos: p.curPos(), Columns: columns, Table: table, Join: join, Where: where}, nil
}

func (p *Parser) parseSelectColumns() ([]ast.ColumnRef, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '*' {
		p.pos++
		p.skipSpace()
		return []ast.ColumnRef{{Column: "*"}}, nil
	}
	var out []ast.ColumnRef
	for {
		ref, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
		if p.matchByte(',') {
			continue
		}
		return out, nil
	}
}

func (p *Parser) parseColumnRef() (ast.ColumnRef, error) {
	first, err := p.scanIdent()
	if err != nil {
		return ast.ColumnRef{}, err
	}
	if p.matchByte('.') {
		second, err := p.scanIdent()
		if err != nil {
			return ast.ColumnRef{}, err
		}
		return ast.ColumnRef{Table: first, Column: second}, nil
	}
	return ast.ColumnRef{Column: first}, nil
}
