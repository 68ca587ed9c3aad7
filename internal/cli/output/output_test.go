package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"text", ModeText, false},
		{"json", ModeJSON, false},
		{"yaml", ModeYAML, false},
		{"sexpr", ModeSExpr, false},
		{"markdown", "", true},
		{"JSON", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, true, "").EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&buf, &buf, false, ModeJSON).EffectiveMode())
}

func TestNewRenderer_NonFileIsNotTTY(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestRenderer_PlainWhenNotTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Header("Tokens")
	r.Success("parsed")
	r.StatusLine(false, "a.eps", "1:3")
	r.Error("boom")
	r.Warning("careful")

	assert.False(t, ansi.MatchString(out.String()), "stdout has ANSI codes: %q", out.String())
	assert.False(t, ansi.MatchString(errOut.String()), "stderr has ANSI codes: %q", errOut.String())
	assert.Equal(t, "Tokens\n✓ parsed\n✗ a.eps 1:3\n", out.String())
	assert.Equal(t, "✗ boom\n! careful\n", errOut.String())
}

func TestRenderer_Structured(t *testing.T) {
	v := map[string]any{"type": "Ident", "name": "x"}

	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeJSON)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"type":"Ident","name":"x"}`, out.String())

	out.Reset()
	r = NewRendererWithTTY(&out, &out, false, ModeYAML)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "name: x\ntype: Ident\n", out.String())

	out.Reset()
	r = NewRendererWithTTY(&out, &out, false, ModeText)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestFormatSourceExcerpt(t *testing.T) {
	var buf bytes.Buffer
	s := NewRendererWithTTY(&buf, &buf, false, ModeText).Styles()

	got := s.FormatSourceExcerpt("a = 1\nb = $\n", 2, 5)
	assert.Equal(t, "   2 | b = $\n"+strings.Repeat(" ", 11)+"^", got)

	assert.Empty(t, s.FormatSourceExcerpt("a", 3, 1))
	assert.Equal(t, "   1 | a\n"+strings.Repeat(" ", 8)+"^", s.FormatSourceExcerpt("a", 1, 99), "column clamps to end of line")
}

func TestFormatKeyValue(t *testing.T) {
	var buf bytes.Buffer
	s := NewRendererWithTTY(&buf, &buf, false, ModeText).Styles()
	assert.Equal(t, "kind: IDENT", s.FormatKeyValue("kind", "IDENT"))
}
