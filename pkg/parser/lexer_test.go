package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/epochscript/pkg/token"
)

// lexTypes returns the token types of src, without the trailing EOF.
func lexTypes(t *testing.T, src string) []token.TokenType {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Type)

	types := make([]token.TokenType, 0, len(toks)-1)
	for _, tok := range toks[:len(toks)-1] {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_Classification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{
			name:  "assignment with pipeline",
			input: "fast = src.c | ema(12)",
			want: []token.TokenType{
				token.IDENT, token.ASSIGN, token.IDENT, token.DOT, token.IDENT,
				token.PIPE, token.IDENT, token.LPAREN, token.INT, token.RPAREN,
			},
		},
		{
			name:  "reserved names are whole words",
			input: "Session Sessions abs absolute crossover_x",
			want:  []token.TokenType{token.BUILTIN_TYPE, token.IDENT, token.BUILTIN_FUNC, token.IDENT, token.IDENT},
		},
		{
			name:  "keywords are case sensitive",
			input: "True true None none if IF",
			want:  []token.TokenType{token.TRUE, token.IDENT, token.NONE, token.IDENT, token.IF, token.IDENT},
		},
		{
			name:  "longest operator wins",
			input: "** * >> > << < <= >= == = != |",
			want: []token.TokenType{
				token.POWER, token.STAR, token.SHR, token.GT, token.SHL, token.LT,
				token.LE, token.GE, token.EQ, token.ASSIGN, token.NE, token.PIPE,
			},
		},
		{
			name:  "punctuation",
			input: "( ) [ ] { } , : . % / + -",
			want: []token.TokenType{
				token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET, token.LBRACE,
				token.RBRACE, token.COMMA, token.COLON, token.DOT, token.PERCENT,
				token.SLASH, token.PLUS, token.MINUS,
			},
		},
		{
			name:  "comments are skipped",
			input: "# header\nx = 1 # trailing\n# footer",
			want:  []token.TokenType{token.IDENT, token.ASSIGN, token.INT},
		},
		{
			name:  "adjacent operators without spaces",
			input: "a>>1<<2",
			want:  []token.TokenType{token.IDENT, token.SHR, token.INT, token.SHL, token.INT},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexTypes(t, tt.input))
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.TokenType
		literal string
	}{
		{"0", token.INT, "0"},
		{"20", token.INT, "20"},
		{"1.5", token.FLOAT, "1.5"},
		{"1.", token.FLOAT, "1."},
		{".5", token.FLOAT, ".5"},
		{"0.25", token.FLOAT, "0.25"},
		{"1e5", token.FLOAT, "1e5"},
		{"2.5e-3", token.FLOAT, "2.5e-3"},
		{".5E+2", token.FLOAT, ".5E+2"},
		{"007.5", token.FLOAT, "007.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.typ, toks[0].Type)
			assert.Equal(t, tt.literal, toks[0].Literal)
		})
	}
}

func TestLexer_ExponentNeedsDigits(t *testing.T) {
	// "2else" must not swallow the e as an exponent.
	assert.Equal(t, []token.TokenType{token.INT, token.ELSE}, lexTypes(t, "2else"))
}

func TestLexer_Timeframes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1D", "1D"},
		{"4H", "4H"},
		{"30s", "30s"},
		{"15Min", "15Min"},
		{"1ME", "1ME"},
		{"1MS", "1MS"},
		{"2QE", "2QE"},
		{"1YS", "1YS"},
		{"1W", "1W"},
		{"1W-MON", "1W-MON"},
		{"1W-MON-1st", "1W-MON-1st"},
		{"1W-FRI-Last", "1W-FRI-Last"},
		{"12M", "12M"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, 2, "expected a single timeframe token")
			assert.Equal(t, token.TIMEFRAME, toks[0].Type)
			assert.Equal(t, tt.want, toks[0].Literal)
		})
	}
}

func TestLexer_TimeframeFallbacks(t *testing.T) {
	// A count with no unit is a plain integer.
	assert.Equal(t, []token.TokenType{token.INT, token.IDENT}, lexTypes(t, "15 Min"))
	// Zero is never a timeframe count.
	assert.Equal(t, []token.TokenType{token.INT, token.IDENT}, lexTypes(t, "0D"))
	// An unknown anchor falls back to the plain weekly unit.
	assert.Equal(t, []token.TokenType{token.TIMEFRAME, token.MINUS, token.IDENT}, lexTypes(t, "1W-XYZ"))
	// An unknown ordinal leaves the anchored frame intact.
	assert.Equal(t, []token.TokenType{token.TIMEFRAME, token.MINUS, token.INT, token.IDENT}, lexTypes(t, "1W-MON-5th"))
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{"single", `'abc'`, `'abc'`},
		{"double", `"abc"`, `"abc"`},
		{"empty", `''`, `''`},
		{"escaped quote kept raw", `'it\'s'`, `'it\'s'`},
		{"escaped backslash", `"a\\"`, `"a\\"`},
		{"triple single", `'''say 'hi' now'''`, `'''say 'hi' now'''`},
		{"triple double multiline", "\"\"\"line1\nline2\"\"\"", "\"\"\"line1\nline2\"\"\""},
		{"triple takes no escapes", `'''a\'''`, `'''a\'''`},
		{"empty triple", `""""""`, `""""""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, token.STRING, toks[0].Type)
			assert.Equal(t, tt.literal, toks[0].Literal)
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"leading zero", "x = 007", 1, 5, "leading zero"},
		{"unknown character", "x = $", 1, 5, "unexpected character"},
		{"lone bang", "a ! b", 1, 3, "unexpected character"},
		{"unterminated single", "s = 'abc", 1, 5, "unterminated"},
		{"unterminated triple", "s = '''abc''", 1, 5, "unterminated"},
		{"dangling escape", `s = "abc\`, 1, 5, "unterminated"},
		{"integer overflow", "99999999999999999999", 1, 1, "out of range"},
		{"error on later line", "a = 1\nb = @", 2, 5, "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.line, lexErr.Pos.Line)
			assert.Equal(t, tt.column, lexErr.Pos.Column)
			assert.Contains(t, lexErr.Message, tt.message)
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	toks, err := Tokenize("a = 1\n  bb = '''x\ny'''")
	require.NoError(t, err)
	require.Len(t, toks, 7)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 5, Offset: 4}, toks[2].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 8}, toks[3].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 5, Offset: 10}, toks[3].End)

	str := toks[5]
	assert.Equal(t, token.Position{Line: 2, Column: 8, Offset: 13}, str.Pos)
	assert.Equal(t, token.Position{Line: 3, Column: 5, Offset: 22}, str.End)
	assert.Equal(t, "'''x\ny'''", str.Span().Text("a = 1\n  bb = '''x\ny'''"))
}

func TestLexer_Comments(t *testing.T) {
	l := NewLexer("# one\nx = 1  # two\r\n")
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		require.NotEqual(t, token.ILLEGAL, tok.Type)
	}

	require.Len(t, l.Comments, 2)
	assert.Equal(t, "# one", l.Comments[0].Text)
	assert.Equal(t, 1, l.Comments[0].Span.Start.Line)
	assert.Equal(t, "# two", l.Comments[1].Text)
	assert.Equal(t, "two", l.Comments[1].Body())
}

func TestTokens_IsRestartable(t *testing.T) {
	seq := Tokens("a | b")

	collect := func() []string {
		var out []string
		for tok, err := range seq {
			require.NoError(t, err)
			out = append(out, tok.Literal)
		}
		return out
	}

	first := collect()
	assert.Equal(t, []string{"a", "|", "b", ""}, first)
	assert.Equal(t, first, collect())
}

func TestTokens_StopsEarly(t *testing.T) {
	count := 0
	for range Tokens("a b c d e") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTokens_YieldsErrorOnce(t *testing.T) {
	var errs []error
	var types []token.TokenType
	for tok, err := range Tokens("a ? b") {
		types = append(types, tok.Type)
		if err != nil {
			errs = append(errs, err)
		}
	}
	assert.Equal(t, []token.TokenType{token.IDENT, token.ILLEGAL}, types)
	require.Len(t, errs, 1)
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("1W-TUE-3rd")
	require.NoError(t, err)
	assert.Equal(t, 1, tf.Count)
	assert.Equal(t, "W", string(tf.Unit))
	assert.Equal(t, "TUE", tf.Weekday)
	assert.Equal(t, "3rd", tf.Ordinal)
	require.NoError(t, tf.Validate())

	tf, err = ParseTimeframe("15Min")
	require.NoError(t, err)
	assert.Equal(t, 15, tf.Count)
	assert.Equal(t, "Min", string(tf.Unit))

	for _, bad := range []string{"", "Min", "0D", "15", "1Dx", "1W-MON-"} {
		_, err := ParseTimeframe(bad)
		assert.Error(t, err, bad)
	}
}
