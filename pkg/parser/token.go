package parser

import (
	"fmt"

	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Token is an alias for token.Token so callers of Tokenize need not import pkg/token.
type Token = token.Token

const describeEOF = "end of input"

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return describeEOF
	case token.IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case token.BUILTIN_TYPE:
		return fmt.Sprintf("type %q", tok.Literal)
	case token.BUILTIN_FUNC:
		return fmt.Sprintf("function %q", tok.Literal)
	case token.INT, token.FLOAT:
		return fmt.Sprintf("number %s", tok.Literal)
	case token.STRING:
		return "string " + tok.Literal
	case token.TIMEFRAME:
		return "timeframe " + tok.Literal
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}
