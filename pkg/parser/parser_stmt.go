package parser

import (
	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Statement parsing.
//
// Grammar:
//
//	module        → statement*
//	statement     → assignment | expr
//	assignment    → target "=" expr
//	target        → IDENT | tuple_pattern
//	tuple_pattern → IDENT ("," IDENT)+ [","]

// parseModule parses statements until EOF or the first error.
func (p *Parser) parseModule() *core.Module {
	mod := &core.Module{}
	start := p.token.Pos

	for !p.check(token.EOF) && !p.failed() {
		// A token that cannot continue the previous statement or start a new one.
		if len(mod.Statements) > 0 && !startsExpression(p.token.Type) {
			p.unexpected("operator", `"if"`, `"."`, "expression", describeEOF)
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		mod.Statements = append(mod.Statements, stmt)
	}
	if p.failed() {
		return nil
	}

	mod.Span = token.Span{Start: start, End: p.token.Pos}
	mod.Comments = p.lexer.Comments
	return mod
}

// parseStatement parses one assignment or expression statement.
func (p *Parser) parseStatement() core.Stmt {
	start := p.token.Pos

	// a, b = ...
	if p.check(token.IDENT) && p.checkPeek(token.COMMA) {
		target := p.parseTuplePattern()
		if target == nil {
			return nil
		}
		return p.finishAssignment(start, target)
	}

	// x = ...
	if p.check(token.IDENT) && p.checkPeek(token.ASSIGN) {
		return p.finishAssignment(start, p.identFromToken())
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if !p.check(token.ASSIGN) {
		return &core.ExprStmt{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, X: expr}
	}

	p.structural(expr.Pos(), ErrInvalidTarget, targetDesc(expr))
	return nil
}

// finishAssignment consumes "=" and the value expression.
func (p *Parser) finishAssignment(start token.Position, target core.AssignTarget) core.Stmt {
	if !p.expect(token.ASSIGN) {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return &core.AssignStmt{
		NodeInfo: core.NodeInfo{Span: p.spanFrom(start)},
		Target:   target,
		Value:    value,
	}
}

// parseTuplePattern parses IDENT ("," IDENT)* [","] and requires two or more names.
func (p *Parser) parseTuplePattern() *core.TuplePattern {
	start := p.token.Pos
	pattern := &core.TuplePattern{}

	for {
		if !p.check(token.IDENT) {
			p.unexpected("identifier", `"="`)
			return nil
		}
		pattern.Names = append(pattern.Names, p.identFromToken())

		if !p.match(token.COMMA) {
			break
		}
		// Trailing comma before "="
		if p.check(token.ASSIGN) {
			break
		}
	}

	if len(pattern.Names) < 2 {
		p.structural(start, ErrSingleNamePattern)
		return nil
	}
	if !p.check(token.ASSIGN) {
		p.unexpected(`","`, `"="`)
		return nil
	}

	pattern.Span = p.spanFrom(start)
	return pattern
}

// targetDesc names an expression kind for assignment errors.
func targetDesc(e core.Expr) string {
	switch e.(type) {
	case *core.Ident:
		// A bare name is taken on the token path, so this one was parenthesized.
		return "parenthesized name"
	case *core.BuiltinType:
		return "reserved type name"
	case *core.BuiltinFunc:
		return "reserved function name"
	case *core.CallExpr:
		return "call"
	case *core.AttributeExpr:
		return "attribute"
	case *core.SubscriptExpr:
		return "subscript"
	case *core.TupleLit:
		return "tuple literal (use a, b = ...)"
	case *core.IntLit, *core.FloatLit, *core.StringLit, *core.BoolLit,
		*core.NoneLit, *core.TimeframeLit, *core.ListLit, *core.DictLit:
		return "literal"
	default:
		return "expression"
	}
}

// startsExpression reports whether t can begin an expression.
func startsExpression(t token.TokenType) bool {
	switch t {
	case token.INT, token.FLOAT, token.STRING, token.TIMEFRAME,
		token.TRUE, token.FALSE, token.NONE,
		token.IDENT, token.BUILTIN_TYPE, token.BUILTIN_FUNC,
		token.LPAREN, token.LBRACKET, token.LBRACE,
		token.NOT, token.MINUS, token.PLUS:
		return true
	default:
		return false
	}
}
