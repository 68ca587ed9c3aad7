package parser

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Lexer tokenizes EpochScript source.
//
// After the first error NextToken returns a single ILLEGAL token and EOF
// from then on; Err reports what went wrong.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch (1-based, in bytes)

	err *LexError

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Err returns the lexical error that stopped the lexer, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos > len(l.input) {
		return // already at EOF
	}
	if l.pos < len(l.input) && l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos == len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

// peekAt returns the character n bytes after the current one.
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// advance consumes n characters.
func (l *Lexer) advance(n int) {
	for range n {
		l.readChar()
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	if l.err != nil {
		pos := l.currentPos()
		return token.Token{Type: token.EOF, Pos: pos, End: pos}
	}

	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.eof() {
		return token.Token{Type: token.EOF, Pos: pos, End: pos}
	}

	switch {
	case isDigit(l.ch):
		if n, _ := scanTimeframe(l.input[l.pos:]); n > 0 {
			l.advance(n)
			return l.emit(token.TIMEFRAME, pos)
		}
		return l.readNumber(pos)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(pos)
	case isIdentStart(l.ch):
		l.readIdentifier()
		tok := l.emit(token.IDENT, pos)
		tok.Type = token.LookupIdent(tok.Literal)
		return tok
	case l.ch == '\'' || l.ch == '"':
		return l.readString(pos)
	}

	if typ, n := matchOperator(l.input[l.pos:]); n > 0 {
		l.advance(n)
		return l.emit(typ, pos)
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.advance(size)
	return l.fail(pos, fmt.Sprintf(ErrUnexpectedChar, r))
}

// emit builds a token spanning from start to the current position.
func (l *Lexer) emit(typ token.TokenType, start token.Position) token.Token {
	return token.Token{
		Type:    typ,
		Literal: l.input[start.Offset:l.pos],
		Pos:     start,
		End:     l.currentPos(),
	}
}

// fail records the first lexical error and returns an ILLEGAL token for it.
func (l *Lexer) fail(start token.Position, msg string) token.Token {
	if l.err == nil {
		l.err = &LexError{Pos: start, Message: msg}
	}
	return l.emit(token.ILLEGAL, start)
}

// operators lists multi-character operators before their single-character prefixes.
var operators = []struct {
	text string
	typ  token.TokenType
}{
	{"**", token.POWER},
	{">>", token.SHR},
	{"<<", token.SHL},
	{"<=", token.LE},
	{">=", token.GE},
	{"==", token.EQ},
	{"!=", token.NE},
	{"|", token.PIPE},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"<", token.LT},
	{">", token.GT},
	{"=", token.ASSIGN},
	{".", token.DOT},
	{",", token.COMMA},
	{":", token.COLON},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
}

// matchOperator returns the longest operator at the start of s.
func matchOperator(s string) (token.TokenType, int) {
	for _, op := range operators {
		if strings.HasPrefix(s, op.text) {
			return op.typ, len(op.text)
		}
	}
	return token.ILLEGAL, 0
}

// skipWhitespaceAndComments skips whitespace and collects # comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		switch l.ch {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			l.readChar()
		case '#':
			l.collectLineComment()
		default:
			return
		}
	}
}

// collectLineComment collects a comment running to end of line.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()

	for !l.eof() && l.ch != '\n' {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Text: strings.TrimRight(l.input[startPos.Offset:l.pos], "\r"),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readIdentifier consumes [a-zA-Z_][a-zA-Z0-9_]*.
func (l *Lexer) readIdentifier() {
	for !l.eof() && (isIdentStart(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
}

// readNumber reads an integer or float literal.
//
//	integer → "0" | [1-9][0-9]*
//	float   → digits "." [digits] [exp] | "." digits [exp] | digits exp
//	exp     → ("e"|"E") ["+"|"-"] digits
func (l *Lexer) readNumber(start token.Position) token.Token {
	isFloat := false

	for isDigit(l.ch) && !l.eof() {
		l.readChar()
	}

	if l.ch == '.' && !l.eof() {
		isFloat = true
		l.readChar() // skip '.'
		for isDigit(l.ch) && !l.eof() {
			l.readChar()
		}
	}

	// Only consume the exponent if digits follow, so 2else stays 2 else.
	if l.ch == 'e' || l.ch == 'E' {
		switch {
		case isDigit(l.peekAt(1)):
			isFloat = true
			l.advance(1)
		case (l.peekAt(1) == '+' || l.peekAt(1) == '-') && isDigit(l.peekAt(2)):
			isFloat = true
			l.advance(2)
		}
		for isDigit(l.ch) && !l.eof() {
			l.readChar()
		}
	}

	text := l.input[start.Offset:l.pos]
	if isFloat {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return l.fail(start, fmt.Sprintf(ErrFloatRange, text))
		}
		return l.emit(token.FLOAT, start)
	}

	if len(text) > 1 && text[0] == '0' {
		return l.fail(start, fmt.Sprintf(ErrLeadingZero, text))
	}
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		return l.fail(start, fmt.Sprintf(ErrIntegerRange, text))
	}
	return l.emit(token.INT, start)
}

// readString reads a quoted string. Triple-quoted forms are tried first and
// take no escapes; single-quoted forms honour backslash escapes, which are
// kept verbatim in the literal.
func (l *Lexer) readString(start token.Position) token.Token {
	quote := l.ch

	if l.peekAt(1) == quote && l.peekAt(2) == quote {
		closing := strings.Repeat(string(quote), 3)
		end := strings.Index(l.input[l.pos+3:], closing)
		if end < 0 {
			l.advance(len(l.input) - l.pos)
			return l.fail(start, ErrUnterminatedString)
		}
		l.advance(3 + end + 3)
		return l.emit(token.STRING, start)
	}

	l.readChar() // skip opening quote
	for {
		switch {
		case l.eof():
			return l.fail(start, ErrUnterminatedString)
		case l.ch == '\\':
			l.readChar()
			if l.eof() {
				return l.fail(start, ErrUnterminatedString)
			}
			l.readChar()
		case l.ch == quote:
			l.readChar() // skip closing quote
			return l.emit(token.STRING, start)
		default:
			l.readChar()
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokens returns a lazy token sequence over src, ending with EOF. A lexical
// error is yielded alongside the ILLEGAL token and ends the sequence. Each
// range over the result lexes src again from the start.
func Tokens(src string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		l := NewLexer(src)
		for {
			tok := l.NextToken()
			if tok.Type == token.ILLEGAL {
				yield(tok, l.Err())
				return
			}
			if !yield(tok, nil) || tok.Type == token.EOF {
				return
			}
		}
	}
}

// Tokenize returns all tokens from the input, including the final EOF.
func Tokenize(src string) ([]token.Token, error) {
	var tokens []token.Token
	for tok, err := range Tokens(src) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
