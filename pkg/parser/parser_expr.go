package parser

import (
	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels (low to high):
//
//	PrecPipeline       = 1   |                       left
//	PrecTernary        = 2   x if c else y           right
//	PrecOr             = 3   or                      left
//	PrecAnd            = 4   and                     left
//	PrecNot            = 5   not x                   prefix
//	PrecCompare        = 6   < > <= >= == !=         left
//	PrecShift          = 7   >> (lag) << (lead)      left
//	PrecAdditive       = 8   + -                     left
//	PrecMultiplicative = 9   * / %                   left
//	PrecUnary          = 10  -x +x                   prefix
//	PrecPower          = 11  **                      right
//	PrecPostfix        = 12  f(x) x[i] x.y           postfix, parsed with the primary
const (
	PrecNone = iota
	PrecPipeline
	PrecTernary
	PrecOr
	PrecAnd
	PrecNot
	PrecCompare
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPower
	PrecPostfix
)

var compareOps = map[token.TokenType]core.CompareOp{
	token.LT: core.OpLt,
	token.GT: core.OpGt,
	token.LE: core.OpLe,
	token.GE: core.OpGe,
	token.EQ: core.OpEq,
	token.NE: core.OpNe,
}

var binaryOps = map[token.TokenType]core.BinaryOp{
	token.PLUS:    core.OpAdd,
	token.MINUS:   core.OpSub,
	token.STAR:    core.OpMul,
	token.SLASH:   core.OpDiv,
	token.PERCENT: core.OpMod,
}

// parseExpression parses a full expression.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(PrecPipeline)
}

// parseExpressionWithPrecedence implements precedence climbing: it folds
// infix operators whose precedence is at least minPrecedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for !p.failed() {
		prec := infixPrecedence(p.token.Type)
		if prec == PrecNone || prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			return nil
		}
	}

	return left
}

// parsePrefixExpr parses prefix operators and postfix-chained primaries.
func (p *Parser) parsePrefixExpr() core.Expr {
	start := p.token.Pos

	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(PrecNot)
		if operand == nil {
			return nil
		}
		return &core.NotExpr{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, X: operand}

	case token.MINUS, token.PLUS:
		op := core.OpNeg
		if p.check(token.PLUS) {
			op = core.OpPos
		}
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(PrecUnary)
		if operand == nil {
			return nil
		}
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Op: op, X: operand}

	default:
		primary := p.parsePrimary()
		if primary == nil {
			return nil
		}
		return p.parsePostfix(primary)
	}
}

// infixPrecedence returns the precedence of t as an infix operator, or PrecNone.
func infixPrecedence(t token.TokenType) int {
	switch t {
	case token.PIPE:
		return PrecPipeline
	case token.IF:
		return PrecTernary
	case token.OR:
		return PrecOr
	case token.AND:
		return PrecAnd
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE:
		return PrecCompare
	case token.SHR, token.SHL:
		return PrecShift
	case token.PLUS, token.MINUS:
		return PrecAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return PrecMultiplicative
	case token.POWER:
		return PrecPower
	default:
		return PrecNone
	}
}

// parseInfixExpr parses the operator at the current token and its right operand.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	op := p.token.Type

	if op == token.IF {
		return p.parseTernary(left)
	}

	p.nextToken()

	// ** is right-associative: the right operand may contain another **.
	// Everything else is left-associative.
	rightPrec := prec + 1
	if op == token.POWER {
		rightPrec = PrecPower
	}
	right := p.parseExpressionWithPrecedence(rightPrec)
	if right == nil {
		return nil
	}

	info := core.NodeInfo{Span: core.SpanOf(left, right)}
	switch op {
	case token.PIPE:
		return &core.PipelineExpr{NodeInfo: info, Left: left, Right: right}
	case token.OR:
		return &core.OrExpr{NodeInfo: info, Left: left, Right: right}
	case token.AND:
		return &core.AndExpr{NodeInfo: info, Left: left, Right: right}
	case token.SHR:
		return &core.LagExpr{NodeInfo: info, Value: left, Periods: right}
	case token.SHL:
		return &core.LeadExpr{NodeInfo: info, Value: left, Periods: right}
	case token.POWER:
		return &core.PowerExpr{NodeInfo: info, Base: left, Exponent: right}
	}
	if cmp, ok := compareOps[op]; ok {
		return &core.CompareExpr{NodeInfo: info, Op: cmp, Left: left, Right: right}
	}
	return &core.BinaryExpr{NodeInfo: info, Op: binaryOps[op], Left: left, Right: right}
}

// parseTernary parses `if cond else orelse` after its body.
// The condition runs up to "else"; the else branch binds at ternary level so
// `a if x else b if y else c` nests to the right.
func (p *Parser) parseTernary(body core.Expr) core.Expr {
	p.nextToken() // consume IF

	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.check(token.ELSE) {
		p.unexpected(`"else"`)
		return nil
	}
	p.nextToken()

	orelse := p.parseExpressionWithPrecedence(PrecTernary)
	if orelse == nil {
		return nil
	}

	return &core.TernaryExpr{
		NodeInfo: core.NodeInfo{Span: core.SpanOf(body, orelse)},
		Body:     body,
		Cond:     cond,
		Else:     orelse,
	}
}
