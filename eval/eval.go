// Package eval implements the expression evaluator: a small tokenizer,
// shunting-yard infix-to-postfix conversion, and a stack-based reduction
// over value.Value. It is pure and stateless — the same (expr, env) pair
// always yields the same result or the same error.
package eval

import (
	"strconv"
	"strings"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/lexer"
	"github.com/miniql/miniql/token"
	"github.com/miniql/miniql/value"
)

// Env maps an identifier name to its literal-source representation, already
// stringified the way value.Value.String produces it. Evaluate re-tokenizes
// the looked-up string as a literal, so Env keeps the evaluator ignorant of
// column typing.
type Env map[string]string

// Evaluate parses expr and reduces it against env.
func Evaluate(expr string, env Env) (value.Value, error) {
	items, err := tokenize(expr)
	if err != nil {
		return value.Value{}, err
	}
	if len(items) == 0 {
		return value.Value{}, errs.ParseExpression.New(expr, "empty expression")
	}
	postfix, err := toPostfix(items)
	if err != nil {
		return value.Value{}, err
	}
	return reduce(expr, postfix, env)
}

// itemKind classifies an element of the shunting-yard working stacks.
type itemKind int

const (
	itemValue itemKind = iota
	itemIdent
	itemOp
	itemNegate
	itemLParen
	itemRParen
)

type item struct {
	kind itemKind
	op   token.Token
	val  value.Value
	name string
}

// tokenize scans expr into a flat item list, resolving unary minus into a
// distinct pseudo-operator based on its position: start-of-expression,
// directly after '(', or directly after another operator.
func tokenize(expr string) ([]item, error) {
	l := lexer.Get(expr)
	defer lexer.Put(l)

	var items []item
	for {
		tok := l.Next()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			return nil, errs.ParseExpression.New(expr, "illegal token "+tok.Value)
		}
		switch tok.Type {
		case token.INT:
			n, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, errs.ParseExpression.New(expr, "invalid integer literal "+tok.Value)
			}
			items = append(items, item{kind: itemValue, val: value.NewInt(n)})
		case token.FLOAT:
			f, err := strconv.ParseFloat(tok.Value, 64)
			if err != nil {
				return nil, errs.ParseExpression.New(expr, "invalid double literal "+tok.Value)
			}
			items = append(items, item{kind: itemValue, val: value.NewDouble(f)})
		case token.STRING:
			items = append(items, item{kind: itemValue, val: value.NewStr(tok.Value)})
		case token.TRUE:
			items = append(items, item{kind: itemValue, val: value.NewBool(true)})
		case token.FALSE:
			items = append(items, item{kind: itemValue, val: value.NewBool(false)})
		case token.IDENT:
			items = append(items, item{kind: itemIdent, name: tok.Value})
		case token.LPAREN:
			items = append(items, item{kind: itemLParen})
		case token.RPAREN:
			items = append(items, item{kind: itemRParen})
		case token.MINUS:
			if isUnaryPosition(items) {
				items = append(items, item{kind: itemNegate})
			} else {
				items = append(items, item{kind: itemOp, op: token.MINUS})
			}
		case token.PLUS, token.ASTERISK, token.SLASH, token.PERCENT,
			token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE,
			token.AND, token.OR, token.XOR:
			items = append(items, item{kind: itemOp, op: tok.Type})
		default:
			return nil, errs.ParseExpression.New(expr, "unexpected token "+tok.Type.String())
		}
	}
	return items, nil
}

// isUnaryPosition reports whether the next '-' token, given the items
// scanned so far, is a prefix negation rather than binary subtraction.
func isUnaryPosition(items []item) bool {
	if len(items) == 0 {
		return true
	}
	last := items[len(items)-1]
	return last.kind == itemLParen || last.kind == itemOp || last.kind == itemNegate
}

// precedence returns the binding power of a binary operator; higher binds
// tighter. spec.md's table is silent on '^^' (logical xor), so it is placed
// between '||' and '&&' — see DESIGN.md.
func precedence(op token.Token) int {
	switch op {
	case token.OR:
		return 1
	case token.XOR:
		return 2
	case token.AND:
		return 3
	case token.EQ, token.NEQ:
		return 4
	case token.LT, token.LTE, token.GT, token.GTE:
		return 5
	case token.PLUS, token.MINUS:
		return 6
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return 7
	default:
		return 0
	}
}

const precNegate = 8 // binds tighter than every binary operator

// toPostfix runs Dijkstra's shunting-yard algorithm over items, producing
// the postfix token sequence reduce walks.
func toPostfix(items []item) ([]item, error) {
	var output []item
	var ops []item

	pop := func() item {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return top
	}

	for _, it := range items {
		switch it.kind {
		case itemValue, itemIdent:
			output = append(output, it)
		case itemLParen:
			ops = append(ops, it)
		case itemRParen:
			found := false
			for len(ops) > 0 {
				top := pop()
				if top.kind == itemLParen {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, errs.ParseExpression.New("", "mismatched parentheses")
			}
		case itemOp, itemNegate:
			newPrec := precedence(it.op)
			leftAssoc := true
			if it.kind == itemNegate {
				newPrec = precNegate
				leftAssoc = false
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind == itemLParen {
					break
				}
				topPrec := precedence(top.op)
				if top.kind == itemNegate {
					topPrec = precNegate
				}
				if topPrec > newPrec || (topPrec == newPrec && leftAssoc) {
					output = append(output, pop())
					continue
				}
				break
			}
			ops = append(ops, it)
		}
	}
	for len(ops) > 0 {
		top := pop()
		if top.kind == itemLParen {
			return nil, errs.ParseExpression.New("", "mismatched parentheses")
		}
		output = append(output, top)
	}
	return output, nil
}

// reduce walks postfix, pushing literal/identifier values and collapsing
// each operator against its popped operands.
func reduce(expr string, postfix []item, env Env) (value.Value, error) {
	var stack []value.Value

	push := func(v value.Value) { stack = append(stack, v) }
	pop := func() (value.Value, error) {
		if len(stack) == 0 {
			return value.Value{}, errs.ParseExpression.New(expr, "operator with no operand")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for _, it := range postfix {
		switch it.kind {
		case itemValue:
			push(it.val)
		case itemIdent:
			v, err := resolveIdent(it.name, env)
			if err != nil {
				return value.Value{}, err
			}
			push(v)
		case itemNegate:
			a, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			v, err := negate(a)
			if err != nil {
				return value.Value{}, err
			}
			push(v)
		case itemOp:
			b, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			a, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			v, err := applyOp(it.op, a, b)
			if err != nil {
				return value.Value{}, err
			}
			push(v)
		}
	}

	if len(stack) != 1 {
		return value.Value{}, errs.ParseExpression.New(expr, "incomplete expression")
	}
	return stack[0], nil
}

// resolveIdent looks up name in env and re-tokenizes the literal-source
// string it finds, per spec.md §4.2's two-step identifier resolution.
func resolveIdent(name string, env Env) (value.Value, error) {
	src, ok := env[name]
	if !ok {
		return value.Value{}, errs.UnknownIdentifier.New(name)
	}
	return parseLiteral(src), nil
}

// parseLiteral re-parses a stringified environment value as a number, bool,
// or — failing both — a raw string, mirroring Evaluate's own literal
// tokenization. A VARCHAR value that happens to look numeric therefore
// re-resolves as a number; this ambiguity is inherent to the stringified
// environment model (see DESIGN.md) and is not treated as a bug.
func parseLiteral(s string) value.Value {
	switch s {
	case "true":
		return value.NewBool(true)
	case "false":
		return value.NewBool(false)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.NewInt(n)
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.NewDouble(f)
		}
	}
	return value.NewStr(s)
}

func negate(a value.Value) (value.Value, error) {
	switch {
	case a.IsInt():
		i, _ := a.AsInt()
		return value.NewInt(-i), nil
	case a.IsDouble():
		f, _ := a.AsDouble()
		return value.NewDouble(-f), nil
	default:
		return value.Value{}, errs.TypeMismatch.New("INT or DOUBLE", a.Kind())
	}
}

func applyOp(op token.Token, a, b value.Value) (value.Value, error) {
	switch op {
	case token.PLUS:
		return applyPlus(a, b)
	case token.MINUS:
		return applyArith(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
	case token.ASTERISK:
		return applyArith(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
	case token.SLASH:
		return applyDivide(a, b)
	case token.PERCENT:
		return applyModulo(a, b)
	case token.AND, token.OR, token.XOR:
		return applyLogical(op, a, b)
	case token.EQ, token.NEQ:
		eq, err := value.Equal(a, b)
		if err != nil {
			return value.Value{}, err
		}
		if op == token.NEQ {
			eq = !eq
		}
		return value.NewBool(eq), nil
	case token.LT, token.LTE, token.GT, token.GTE:
		cmp, err := value.Compare(a, b)
		if err != nil {
			return value.Value{}, err
		}
		switch op {
		case token.LT:
			return value.NewBool(cmp < 0), nil
		case token.LTE:
			return value.NewBool(cmp <= 0), nil
		case token.GT:
			return value.NewBool(cmp > 0), nil
		default:
			return value.NewBool(cmp >= 0), nil
		}
	default:
		return value.Value{}, errs.ParseExpression.New("", "unsupported operator "+op.String())
	}
}

func applyPlus(a, b value.Value) (value.Value, error) {
	if a.IsStr() && b.IsStr() {
		as, _ := a.AsStr()
		bs, _ := b.AsStr()
		return value.NewStr(as + bs), nil
	}
	return applyArith(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}

func applyArith(a, b value.Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (value.Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return value.Value{}, errs.TypeMismatch.New("numeric", pickNonNumericKind(a, b))
	}
	if a.IsInt() && b.IsInt() {
		ai, _ := a.AsInt()
		bi, _ := b.AsInt()
		return value.NewInt(intOp(ai, bi)), nil
	}
	af, _ := a.AsDouble()
	bf, _ := b.AsDouble()
	return value.NewDouble(floatOp(af, bf)), nil
}

func applyDivide(a, b value.Value) (value.Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return value.Value{}, errs.TypeMismatch.New("numeric", pickNonNumericKind(a, b))
	}
	if a.IsInt() && b.IsInt() {
		bi, _ := b.AsInt()
		if bi == 0 {
			return value.Value{}, errs.DivByZero.New()
		}
		ai, _ := a.AsInt()
		return value.NewInt(ai / bi), nil // Go's / truncates toward zero
	}
	bf, _ := b.AsDouble()
	if bf == 0 {
		return value.Value{}, errs.DivByZero.New()
	}
	af, _ := a.AsDouble()
	return value.NewDouble(af / bf), nil
}

func applyModulo(a, b value.Value) (value.Value, error) {
	if !a.IsInt() || !b.IsInt() {
		return value.Value{}, errs.TypeMismatch.New("INT", pickNonNumericKind(a, b))
	}
	bi, _ := b.AsInt()
	if bi == 0 {
		return value.Value{}, errs.DivByZero.New()
	}
	ai, _ := a.AsInt()
	return value.NewInt(ai % bi), nil
}

func applyLogical(op token.Token, a, b value.Value) (value.Value, error) {
	if !a.IsBool() || !b.IsBool() {
		return value.Value{}, errs.TypeMismatch.New("BOOL", pickNonNumericKind(a, b))
	}
	ab, _ := a.AsBool()
	bb, _ := b.AsBool()
	switch op {
	case token.AND:
		return value.NewBool(ab && bb), nil
	case token.OR:
		return value.NewBool(ab || bb), nil
	default: // XOR
		return value.NewBool(ab != bb), nil
	}
}

func pickNonNumericKind(a, b value.Value) value.Kind {
	if a.IsNumeric() {
		return b.Kind()
	}
	return a.Kind()
}
