package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/epochscript/pkg/token"
)

func TestBuiltinCatalog_MatchesReservedNames(t *testing.T) {
	for _, name := range token.BuiltinFuncs {
		info, ok := LookupBuiltin(name)
		require.True(t, ok, "function %q missing from catalog", name)
		assert.Equal(t, KindFunction, info.Kind, name)
	}
	for _, name := range token.BuiltinTypes {
		info, ok := LookupBuiltin(name)
		require.True(t, ok, "type %q missing from catalog", name)
		assert.Equal(t, KindType, info.Kind, name)
	}
	assert.Len(t, BuiltinCatalog, len(token.BuiltinFuncs)+len(token.BuiltinTypes))
}

func TestBuiltinCatalog_EntriesLexAsReserved(t *testing.T) {
	for _, b := range BuiltinCatalog {
		toks, err := Tokenize(b.Name)
		require.NoError(t, err)
		require.Len(t, toks, 2)

		want := token.BUILTIN_FUNC
		if b.Kind == KindType {
			want = token.BUILTIN_TYPE
		}
		assert.Equal(t, want, toks[0].Type, b.Name)
		assert.NotEmpty(t, b.Description, b.Name)
	}
}

func TestLookupBuiltin_Unknown(t *testing.T) {
	_, ok := LookupBuiltin("sma")
	assert.False(t, ok)
}

func TestBuiltinsByCategory(t *testing.T) {
	signals := BuiltinsByCategory(CategorySignal)
	names := make([]string, len(signals))
	for i, s := range signals {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"crossover", "crossunder", "crossany"}, names)

	all := BuiltinsByCategory("")
	assert.Len(t, all, len(BuiltinCatalog))
	all[0].Name = "changed"
	assert.Equal(t, "abs", BuiltinCatalog[0].Name, "result is a copy")
}

func TestBuiltinsWithPrefix(t *testing.T) {
	assert.Equal(t, []string{"crossany", "crossover", "crossunder"}, BuiltinsWithPrefix("cross"))
	assert.Equal(t, []string{"Session", "SessionAnchor"}, BuiltinsWithPrefix("Sess"))
	assert.Empty(t, BuiltinsWithPrefix("zzz"))
}
