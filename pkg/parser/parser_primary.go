package parser

import (
	"strconv"

	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Primary expression parsing: literals, names, grouping and containers,
// followed by any chain of postfix operations.
//
// Grammar:
//
//	primary   → literal | IDENT | BUILTIN_TYPE | BUILTIN_FUNC
//	          | "(" ")" | "(" expr ")" | "(" expr "," [expr_list] ")"
//	          | "[" [expr_list] "]" | "{" [entry_list] "}"
//	literal   → INT | FLOAT | STRING | TIMEFRAME | True | False | None
//	postfix   → primary ( "(" [arg_list] ")" | "[" expr "]" | "." IDENT )*
//	arg       → expr | IDENT "=" expr
//	entry     → (IDENT | STRING) ":" expr

// parsePrimary parses a single primary expression.
func (p *Parser) parsePrimary() core.Expr {
	tok := p.token
	info := core.NodeInfo{Span: tok.Span()}

	switch tok.Type {
	case token.INT:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			// The lexer range-checks integers; this only guards direct token input.
			p.fail(&LexError{Pos: tok.Pos, Message: err.Error()})
			return nil
		}
		p.nextToken()
		return &core.IntLit{NodeInfo: info, Value: v, Raw: tok.Literal}

	case token.FLOAT:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.fail(&LexError{Pos: tok.Pos, Message: err.Error()})
			return nil
		}
		p.nextToken()
		return &core.FloatLit{NodeInfo: info, Value: v, Raw: tok.Literal}

	case token.STRING:
		p.nextToken()
		return stringLit(tok)

	case token.TIMEFRAME:
		_, parts := scanTimeframe(tok.Literal)
		tf, err := parts.build(tok.Literal)
		if err != nil {
			p.fail(&LexError{Pos: tok.Pos, Message: err.Error()})
			return nil
		}
		tf.NodeInfo = info
		p.nextToken()
		return tf

	case token.TRUE, token.FALSE:
		p.nextToken()
		return &core.BoolLit{NodeInfo: info, Value: tok.Type == token.TRUE}

	case token.NONE:
		p.nextToken()
		return &core.NoneLit{NodeInfo: info}

	case token.IDENT:
		return p.identFromToken()

	case token.BUILTIN_TYPE:
		p.nextToken()
		return &core.BuiltinType{NodeInfo: info, Name: tok.Literal}

	case token.BUILTIN_FUNC:
		p.nextToken()
		return &core.BuiltinFunc{NodeInfo: info, Name: tok.Literal}

	case token.LPAREN:
		return p.parseParenExpr()

	case token.LBRACKET:
		return p.parseListLit()

	case token.LBRACE:
		return p.parseDictLit()

	default:
		p.unexpected("expression")
		return nil
	}
}

// identFromToken consumes the current IDENT token.
func (p *Parser) identFromToken() *core.Ident {
	id := &core.Ident{NodeInfo: core.NodeInfo{Span: p.token.Span()}, Name: p.token.Literal}
	p.nextToken()
	return id
}

// stringLit splits a STRING token into delimiter and raw content.
func stringLit(tok token.Token) *core.StringLit {
	quoteLen := 1
	if len(tok.Literal) >= 6 && tok.Literal[1] == tok.Literal[0] && tok.Literal[2] == tok.Literal[0] {
		quoteLen = 3
	}
	lit := tok.Literal
	return &core.StringLit{
		NodeInfo: core.NodeInfo{Span: tok.Span()},
		Value:    lit[quoteLen : len(lit)-quoteLen],
		Quote:    lit[:quoteLen],
	}
}

// parsePostfix folds calls, subscripts and attribute accesses onto expr, left to right.
func (p *Parser) parsePostfix(expr core.Expr) core.Expr {
	for !p.failed() {
		switch p.token.Type {
		case token.LPAREN:
			args, ok := p.parseArgList()
			if !ok {
				return nil
			}
			expr = &core.CallExpr{
				NodeInfo: core.NodeInfo{Span: p.spanFrom(expr.Pos())},
				Fun:      expr,
				Args:     args,
			}

		case token.LBRACKET:
			p.nextToken()
			index := p.parseExpression()
			if index == nil || !p.expect(token.RBRACKET) {
				return nil
			}
			expr = &core.SubscriptExpr{
				NodeInfo: core.NodeInfo{Span: p.spanFrom(expr.Pos())},
				X:        expr,
				Index:    index,
			}

		case token.DOT:
			p.nextToken()
			if !p.check(token.IDENT) {
				p.unexpected("attribute name")
				return nil
			}
			name := p.identFromToken()
			expr = &core.AttributeExpr{
				NodeInfo: core.NodeInfo{Span: p.spanFrom(expr.Pos())},
				X:        expr,
				Name:     name,
			}

		default:
			return expr
		}
	}
	return nil
}

// parseArgList parses "(" [arg ("," arg)* [","]] ")".
// Positional and keyword arguments may appear in any order.
func (p *Parser) parseArgList() ([]*core.Arg, bool) {
	p.nextToken() // consume (

	var args []*core.Arg
	for !p.check(token.RPAREN) {
		arg := p.parseArg()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		if !p.match(token.COMMA) {
			break
		}
	}

	if !p.check(token.RPAREN) {
		p.unexpected(`","`, `")"`)
		return nil, false
	}
	p.nextToken()
	return args, true
}

// parseArg parses a positional argument or `name = value`.
func (p *Parser) parseArg() *core.Arg {
	start := p.token.Pos

	if p.check(token.IDENT) && p.checkPeek(token.ASSIGN) {
		name := p.identFromToken()
		p.nextToken() // consume =

		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return &core.Arg{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Keyword: name, Value: value}
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}
	if p.check(token.ASSIGN) {
		p.structural(value.Pos(), ErrKeywordNotIdent, targetDesc(value))
		return nil
	}
	return &core.Arg{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Value: value}
}

// parseParenExpr resolves "(" between grouping and tuple literals:
//
//	()       empty tuple
//	(x)      x itself, no wrapper node
//	(x,)     one-element tuple
//	(x, y)   tuple, trailing comma optional
func (p *Parser) parseParenExpr() core.Expr {
	start := p.token.Pos
	p.nextToken() // consume (

	if p.match(token.RPAREN) {
		return &core.TupleLit{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}}
	}

	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if p.match(token.RPAREN) {
		return first
	}
	if !p.check(token.COMMA) {
		p.unexpected(`","`, `")"`)
		return nil
	}

	elems, ok := p.parseExprListTail([]core.Expr{first}, token.RPAREN)
	if !ok {
		return nil
	}
	return &core.TupleLit{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Elems: elems}
}

// parseListLit parses "[" [expr ("," expr)* [","]] "]".
func (p *Parser) parseListLit() core.Expr {
	start := p.token.Pos
	p.nextToken() // consume [

	var elems []core.Expr
	if !p.check(token.RBRACKET) {
		first := p.parseExpression()
		if first == nil {
			return nil
		}
		var ok bool
		if elems, ok = p.parseExprListTail([]core.Expr{first}, token.RBRACKET); !ok {
			return nil
		}
	} else {
		p.nextToken()
	}
	return &core.ListLit{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Elems: elems}
}

// parseExprListTail continues a comma-separated list after its first element
// and consumes the closing token.
func (p *Parser) parseExprListTail(elems []core.Expr, closing token.TokenType) ([]core.Expr, bool) {
	for p.match(token.COMMA) {
		if p.check(closing) {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil, false
		}
		elems = append(elems, e)
	}
	if !p.check(closing) {
		p.unexpected(`","`, strconv.Quote(closing.String()))
		return nil, false
	}
	p.nextToken()
	return elems, true
}

// parseDictLit parses "{" [entry ("," entry)* [","]] "}".
func (p *Parser) parseDictLit() core.Expr {
	start := p.token.Pos
	p.nextToken() // consume {

	dict := &core.DictLit{}
	for !p.check(token.RBRACE) {
		entry := p.parseDictEntry()
		if entry == nil {
			return nil
		}
		dict.Entries = append(dict.Entries, entry)

		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.check(token.RBRACE) {
		p.unexpected(`","`, `"}"`)
		return nil
	}
	p.nextToken()

	dict.Span = p.spanFrom(start)
	return dict
}

// parseDictEntry parses `key: value` where key is an identifier or string.
func (p *Parser) parseDictEntry() *core.DictEntry {
	start := p.token.Pos

	var key core.Expr
	switch {
	case p.check(token.IDENT):
		key = p.identFromToken()
	case p.check(token.STRING):
		key = stringLit(p.token)
		p.nextToken()
	default:
		// Parse the offending key so the error can name what it is.
		bad := p.parseExpression()
		if bad == nil {
			return nil
		}
		p.structural(bad.Pos(), ErrDictKey, targetDesc(bad))
		return nil
	}

	if !p.check(token.COLON) {
		p.unexpected(`":"`)
		return nil
	}
	p.nextToken()

	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return &core.DictEntry{NodeInfo: core.NodeInfo{Span: p.spanFrom(start)}, Key: key, Value: value}
}
