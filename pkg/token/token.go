// Package token defines the token types for EpochScript lexing.
//
// Reserved type and function names are closed sets: they are classified at
// tokenization time and never reach the parser as IDENT.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Names
	IDENT        // sma, src, fast_ma
	BUILTIN_TYPE // Time, Session, ...
	BUILTIN_FUNC // abs, crossover, ...

	// Literals
	INT       // 0, 20
	FLOAT     // 1.5, .5, 1e5
	STRING    // 'a', "a", '''a''', """a"""
	TIMEFRAME // 1D, 15Min, 1W-MON-1st

	// Operators
	PIPE    // |
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	POWER   // **
	SHR     // >> (lag)
	SHL     // << (lead)
	EQ      // ==
	NE      // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	ASSIGN  // =

	// Punctuation
	DOT      // .
	COMMA    // ,
	COLON    // :
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }

	// Keywords
	AND
	ELSE
	FALSE
	IF
	NONE
	NOT
	OR
	TRUE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:        "IDENT",
	BUILTIN_TYPE: "BUILTIN_TYPE",
	BUILTIN_FUNC: "BUILTIN_FUNC",

	INT:       "INT",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	TIMEFRAME: "TIMEFRAME",

	PIPE:    "|",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	POWER:   "**",
	SHR:     ">>",
	SHL:     "<<",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	ASSIGN:  "=",

	DOT:      ".",
	COMMA:    ",",
	COLON:    ":",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",

	AND:   "and",
	ELSE:  "else",
	FALSE: "False",
	IF:    "if",
	NONE:  "None",
	NOT:   "not",
	OR:    "or",
	TRUE:  "True",
}

// keywords maps keyword spellings to their token types. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"and":   AND,
	"else":  ELSE,
	"False": FALSE,
	"if":    IF,
	"None":  NONE,
	"not":   NOT,
	"or":    OR,
	"True":  TRUE,
}

// LookupIdent classifies a complete identifier-shaped word.
// Keywords win over builtin types, builtin types over builtin functions,
// and anything else is IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if IsBuiltinType(ident) {
		return BUILTIN_TYPE
	}
	if IsBuiltinFunc(ident) {
		return BUILTIN_FUNC
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= TRUE
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PIPE && t <= RBRACE
}

// IsLiteral returns true if the token type carries a literal value.
func IsLiteral(t TokenType) bool {
	return t >= INT && t <= TIMEFRAME
}

// Token represents a lexical token with position information.
// End is the position immediately after the last byte of the token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case IDENT, BUILTIN_TYPE, BUILTIN_FUNC, INT, FLOAT, STRING, TIMEFRAME:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
