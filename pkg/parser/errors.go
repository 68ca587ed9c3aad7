package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/epochscript/pkg/token"
)

// LexError reports a character sequence that forms no valid token.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// SyntaxError reports a token that no production accepts at its position.
// Expected lists the continuations that would have been valid.
type SyntaxError struct {
	Pos      token.Position
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at line %d, column %d: unexpected %s", e.Pos.Line, e.Pos.Column, e.Found)
	switch len(e.Expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ", expected %s", e.Expected[0])
	default:
		fmt.Fprintf(&b, ", expected one of %s", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// StructuralError reports a well-tokenized construct that violates a
// structural rule, such as a tuple pattern with a single name.
type StructuralError struct {
	Pos     token.Position
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Position extracts the source position from any error produced by this
// package. It returns false for other errors.
func Position(err error) (token.Position, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Pos, true
	}
	var structErr *StructuralError
	if errors.As(err, &structErr) {
		return structErr.Pos, true
	}
	return token.Position{}, false
}

// Incomplete reports whether err was caused by the input ending before a
// construct was closed, so that more input could make it parse.
func Incomplete(err error) bool {
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Found == describeEOF
	}
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Message == ErrUnterminatedString
	}
	return false
}

// Common error messages
const (
	ErrUnexpectedChar     = "unexpected character %q"
	ErrUnterminatedString = "unterminated string literal"
	ErrLeadingZero        = "integer literal %q has a leading zero"
	ErrIntegerRange       = "integer literal %q out of range"
	ErrFloatRange         = "float literal %q out of range"
	ErrTimeframeRange     = "timeframe count in %q out of range"
	ErrSingleNamePattern  = "tuple pattern needs at least two names"
	ErrInvalidTarget      = "cannot assign to %s"
	ErrKeywordNotIdent    = "keyword argument name must be an identifier, got %s"
	ErrDictKey            = "dict key must be an identifier or string, got %s"
)
