package parser

import (
	"fmt"
	"strings"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/token"
)

func (p *Parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *Parser) curPos() token.Pos {
	return token.Pos{Offset: p.pos, Line: p.line, Column: p.pos - p.linePos + 1}
}

// errorf builds an errs.ParseStatement error carrying the current cursor
// position, the kind Execute's caller can classify with errors.Is.
func (p *Parser) errorf(format string, args ...interface{}) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return errs.ParseStatement.New(p.curPos(), msg)
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r':
			p.pos++
		case '\n':
			p.pos++
			p.line++
			p.linePos = p.pos
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// matchKeyword consumes kw if it appears at the current position (preceded
// by whitespace already skipped by the caller's prior matches), matched
// case-sensitively and followed by a non-identifier byte (a word boundary).
// On success it also skips the whitespace that follows.
func (p *Parser) matchKeyword(kw string) bool {
	p.skipSpace()
	end := p.pos + len(kw)
	if end > len(p.src) || p.src[p.pos:end] != kw {
		return false
	}
	if end < len(p.src) && isIdentChar(p.src[end]) {
		return false
	}
	p.pos = end
	p.skipSpace()
	return true
}

func (p *Parser) expectKeyword(kw string) error {
	if p.matchKeyword(kw) {
		return nil
	}
	return p.errorf("expected keyword %s", kw)
}

func (p *Parser) matchByte(b byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == b {
		p.pos++
		p.skipSpace()
		return true
	}
	return false
}

func (p *Parser) expectByte(b byte) error {
	if p.matchByte(b) {
		return nil
	}
	return p.errorf("expected %q", string(b))
}

// scanIdent scans an identifier and skips the whitespace following it.
func (p *Parser) scanIdent() (string, error) {
	p.skipSpace()
	if p.atEnd() || !isIdentStart(p.src[p.pos]) {
		return "", p.errorf("expected an identifier")
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	id := p.src[start:p.pos]
	p.skipSpace()
	return id, nil
}

// scanExprUntil captures a raw expression/predicate substring, tracking
// parenthesis depth and double-quoted string literals so that a comma or
// paren inside a string or a nested call does not end the expression early.
// Scanning stops, without consuming the terminator, when paren depth is 0
// and either the current byte is in stopChars, or the upcoming text matches
// one of stopKeywords at a word boundary, or input is exhausted.
func (p *Parser) scanExprUntil(stopChars string, stopKeywords ...string) (string, error) {
	p.skipSpace()
	start := p.pos
	depth := 0
	inString := false
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if inString {
			if ch == '\\' && p.pos+1 < len(p.src) {
				p.pos += 2
				continue
			}
			if ch == '"' {
				inString = false
			}
			p.pos++
			continue
		}
		if ch == '"' {
			inString = true
			p.pos++
			continue
		}
		if depth == 0 {
			// ';' always terminates a top-level expression/predicate: it is
			// the statement terminator and never appears inside one.
			if ch == ';' || strings.IndexByte(stopChars, ch) >= 0 {
				break
			}
			if matched := p.matchesKeywordAt(p.pos, stopKeywords); matched {
				break
			}
		}
		switch ch {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				// An unbalanced close at depth 0 belongs to an enclosing
				// construct (e.g. the statement's own VALUES list), not to
				// this expression.
				goto done
			}
			depth--
		}
		p.pos++
	}
done:
	if inString {
		return "", p.errorf("unterminated string literal")
	}
	expr := strings.TrimSpace(p.src[start:p.pos])
	if expr == "" {
		return "", p.errorf("expected an expression")
	}
	return expr, nil
}

func (p *Parser) matchesKeywordAt(pos int, keywords []string) bool {
	for _, kw := range keywords {
		end := pos + len(kw)
		if end > len(p.src) || p.src[pos:end] != kw {
			continue
		}
		if end < len(p.src) && isIdentChar(p.src[end]) {
			continue
		}
		if pos > 0 && isIdentChar(p.src[pos-1]) {
			continue
		}
		return true
	}
	return false
}
