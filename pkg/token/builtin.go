package token

import "slices"

// BuiltinTypes are the schema type names reserved by the language.
var BuiltinTypes = []string{
	"Time",
	"Duration",
	"Session",
	"SessionAnchor",
	"EventMarkerSchema",
	"SqlStatement",
	"TableReportSchema",
	"CardColumnSchema",
}

// BuiltinFuncs are the function names reserved by the language. They are
// applied directly as fn(args) rather than through the two-stage fn()(args) form.
var BuiltinFuncs = []string{
	// Unary math
	"abs", "acos", "asin", "atan", "ceil", "cos", "cosh",
	"exp", "floor", "ln", "log10", "round", "sin", "sinh",
	"sqrt", "tan", "tanh", "todeg", "torad", "trunc",
	// Unary data
	"ffill",
	// Binary signals
	"crossover", "crossunder", "crossany",
	// N-ary
	"coalesce", "conditional_select",
}

var (
	builtinTypeSet = toSet(BuiltinTypes)
	builtinFuncSet = toSet(BuiltinFuncs)
)

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// IsBuiltinType reports whether name is a reserved schema type.
func IsBuiltinType(name string) bool {
	_, ok := builtinTypeSet[name]
	return ok
}

// IsBuiltinFunc reports whether name is a reserved function.
func IsBuiltinFunc(name string) bool {
	_, ok := builtinFuncSet[name]
	return ok
}

// ReservedWords returns every word the lexer never classifies as IDENT, sorted.
func ReservedWords() []string {
	words := make([]string, 0, len(keywords)+len(BuiltinTypes)+len(BuiltinFuncs))
	for k := range keywords {
		words = append(words, k)
	}
	words = append(words, BuiltinTypes...)
	words = append(words, BuiltinFuncs...)
	slices.Sort(words)
	return words
}
