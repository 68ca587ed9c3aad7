// Package parser turns EpochScript source into the canonical syntax tree.
//
// # Usage
//
//	mod, err := parser.Parse(src)
//	if err != nil {
//	    pos, _ := parser.Position(err)
//	    // report err at pos
//	}
//
// Parse returns the canonical tree, in which pipeline, lag and lead forms
// have been rewritten into nested calls. ParseRaw returns the tree exactly as
// written, before that rewrite.
//
// # Grammar Overview
//
//	module      → statement*
//	statement   → IDENT ("," IDENT)+ [","] "=" expr
//	            | IDENT "=" expr
//	            | expr
//	expr        → see parser_expr.go for the precedence table
//
// Statements carry no separator: one ends where its expression can no longer
// continue. Parsing stops at the first error and never returns a partial tree.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/desugar"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Parser parses EpochScript into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token    // current token
	peek    token.Token    // lookahead token
	prevEnd token.Position // end of the last consumed token
	err     error          // first error; parsing stops once set
}

// NewParser creates a new parser for the given source.
func NewParser(src string) *Parser {
	p := &Parser{lexer: NewLexer(src)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses src and returns the canonical (desugared) module.
func Parse(src string) (*core.Module, error) {
	mod, err := ParseRaw(src)
	if err != nil {
		return nil, err
	}
	return desugar.Module(mod), nil
}

// ParseRaw parses src without desugaring. The result may contain
// PipelineExpr, LagExpr and LeadExpr nodes.
func ParseRaw(src string) (*core.Module, error) {
	p := NewParser(src)
	mod := p.parseModule()
	if p.err != nil {
		return nil, p.err
	}
	return mod, nil
}

// ParseExpr parses src as exactly one expression and returns its canonical form.
func ParseExpr(src string) (core.Expr, error) {
	expr, err := ParseExprRaw(src)
	if err != nil {
		return nil, err
	}
	return desugar.Expr(expr), nil
}

// ParseExprRaw parses src as exactly one expression without desugaring.
func ParseExprRaw(src string) (core.Expr, error) {
	p := NewParser(src)
	expr := p.parseExpression()
	if p.err == nil && !p.check(token.EOF) {
		p.unexpected(describeEOF)
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prevEnd = p.token.End
	p.token = p.peek
	p.peek = p.lexer.NextToken()

	if p.token.Type == token.ILLEGAL {
		p.fail(p.lexer.Err())
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records a syntax error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.unexpected(fmt.Sprintf("%q", t.String()))
	return false
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// ---------- Error Helpers ----------

func (p *Parser) failed() bool {
	return p.err != nil
}

// fail records err unless an earlier error is already recorded.
func (p *Parser) fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

// unexpected records a syntax error at the current token.
func (p *Parser) unexpected(expected ...string) {
	if p.check(token.ILLEGAL) {
		p.fail(p.lexer.Err())
		return
	}
	p.fail(&SyntaxError{
		Pos:      p.token.Pos,
		Found:    describe(p.token),
		Expected: expected,
	})
}

// structural records a structural error at pos.
func (p *Parser) structural(pos token.Position, format string, args ...any) {
	p.fail(&StructuralError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}
