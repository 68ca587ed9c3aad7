package parser

import (
	"slices"
	"strings"
)

// This file contains the catalog of reserved names for completions and the
// `builtins` command.

// BuiltinCategory classifies reserved names by purpose.
type BuiltinCategory string

// BuiltinCategory constants.
const (
	CategoryMath      BuiltinCategory = "math"
	CategoryData      BuiltinCategory = "data"
	CategorySignal    BuiltinCategory = "signal"
	CategorySelection BuiltinCategory = "selection"
	CategorySchema    BuiltinCategory = "schema"
)

// BuiltinKind separates reserved functions from reserved type names.
type BuiltinKind string

// BuiltinKind constants.
const (
	KindFunction BuiltinKind = "function"
	KindType     BuiltinKind = "type"
)

// BuiltinInfo describes one reserved name.
type BuiltinInfo struct {
	Name        string          `json:"name" yaml:"name"`
	Kind        BuiltinKind     `json:"kind" yaml:"kind"`
	Category    BuiltinCategory `json:"category" yaml:"category"`
	Signature   string          `json:"signature" yaml:"signature"`
	Description string          `json:"description" yaml:"description"`
}

// BuiltinCatalog lists every reserved function and type name.
var BuiltinCatalog = []BuiltinInfo{
	// ==================== UNARY MATH ====================
	{Name: "abs", Kind: KindFunction, Category: CategoryMath, Signature: "abs(x)", Description: "Absolute value"},
	{Name: "acos", Kind: KindFunction, Category: CategoryMath, Signature: "acos(x)", Description: "Arc cosine in radians"},
	{Name: "asin", Kind: KindFunction, Category: CategoryMath, Signature: "asin(x)", Description: "Arc sine in radians"},
	{Name: "atan", Kind: KindFunction, Category: CategoryMath, Signature: "atan(x)", Description: "Arc tangent in radians"},
	{Name: "ceil", Kind: KindFunction, Category: CategoryMath, Signature: "ceil(x)", Description: "Smallest integer not less than x"},
	{Name: "cos", Kind: KindFunction, Category: CategoryMath, Signature: "cos(x)", Description: "Cosine of an angle in radians"},
	{Name: "cosh", Kind: KindFunction, Category: CategoryMath, Signature: "cosh(x)", Description: "Hyperbolic cosine"},
	{Name: "exp", Kind: KindFunction, Category: CategoryMath, Signature: "exp(x)", Description: "e raised to the power x"},
	{Name: "floor", Kind: KindFunction, Category: CategoryMath, Signature: "floor(x)", Description: "Largest integer not greater than x"},
	{Name: "ln", Kind: KindFunction, Category: CategoryMath, Signature: "ln(x)", Description: "Natural logarithm"},
	{Name: "log10", Kind: KindFunction, Category: CategoryMath, Signature: "log10(x)", Description: "Base 10 logarithm"},
	{Name: "round", Kind: KindFunction, Category: CategoryMath, Signature: "round(x)", Description: "Round half away from zero"},
	{Name: "sin", Kind: KindFunction, Category: CategoryMath, Signature: "sin(x)", Description: "Sine of an angle in radians"},
	{Name: "sinh", Kind: KindFunction, Category: CategoryMath, Signature: "sinh(x)", Description: "Hyperbolic sine"},
	{Name: "sqrt", Kind: KindFunction, Category: CategoryMath, Signature: "sqrt(x)", Description: "Square root"},
	{Name: "tan", Kind: KindFunction, Category: CategoryMath, Signature: "tan(x)", Description: "Tangent of an angle in radians"},
	{Name: "tanh", Kind: KindFunction, Category: CategoryMath, Signature: "tanh(x)", Description: "Hyperbolic tangent"},
	{Name: "todeg", Kind: KindFunction, Category: CategoryMath, Signature: "todeg(x)", Description: "Convert radians to degrees"},
	{Name: "torad", Kind: KindFunction, Category: CategoryMath, Signature: "torad(x)", Description: "Convert degrees to radians"},
	{Name: "trunc", Kind: KindFunction, Category: CategoryMath, Signature: "trunc(x)", Description: "Drop the fractional part"},

	// ==================== DATA ====================
	{Name: "ffill", Kind: KindFunction, Category: CategoryData, Signature: "ffill(x)", Description: "Carry the last non-null value forward"},

	// ==================== SIGNALS ====================
	{Name: "crossover", Kind: KindFunction, Category: CategorySignal, Signature: "crossover(a, b)", Description: "True on the bar where a moves above b"},
	{Name: "crossunder", Kind: KindFunction, Category: CategorySignal, Signature: "crossunder(a, b)", Description: "True on the bar where a moves below b"},
	{Name: "crossany", Kind: KindFunction, Category: CategorySignal, Signature: "crossany(a, b)", Description: "True on the bar where a crosses b in either direction"},

	// ==================== SELECTION ====================
	{Name: "coalesce", Kind: KindFunction, Category: CategorySelection, Signature: "coalesce(x, ...)", Description: "First non-null argument"},
	{Name: "conditional_select", Kind: KindFunction, Category: CategorySelection, Signature: "conditional_select(cond, value, ..., [default])", Description: "Value paired with the first true condition"},

	// ==================== SCHEMA TYPES ====================
	{Name: "Time", Kind: KindType, Category: CategorySchema, Signature: "Time(...)", Description: "Time of day"},
	{Name: "Duration", Kind: KindType, Category: CategorySchema, Signature: "Duration(...)", Description: "Length of time"},
	{Name: "Session", Kind: KindType, Category: CategorySchema, Signature: "Session(...)", Description: "Trading session window"},
	{Name: "SessionAnchor", Kind: KindType, Category: CategorySchema, Signature: "SessionAnchor(...)", Description: "Anchor point within a session"},
	{Name: "EventMarkerSchema", Kind: KindType, Category: CategorySchema, Signature: "EventMarkerSchema(...)", Description: "Event marker report layout"},
	{Name: "SqlStatement", Kind: KindType, Category: CategorySchema, Signature: "SqlStatement(...)", Description: "SQL query over node outputs"},
	{Name: "TableReportSchema", Kind: KindType, Category: CategorySchema, Signature: "TableReportSchema(...)", Description: "Table report layout"},
	{Name: "CardColumnSchema", Kind: KindType, Category: CategorySchema, Signature: "CardColumnSchema(...)", Description: "Card column layout"},
}

// LookupBuiltin finds a catalog entry by exact name.
func LookupBuiltin(name string) (BuiltinInfo, bool) {
	i := slices.IndexFunc(BuiltinCatalog, func(b BuiltinInfo) bool { return b.Name == name })
	if i < 0 {
		return BuiltinInfo{}, false
	}
	return BuiltinCatalog[i], true
}

// BuiltinsByCategory returns the catalog entries in category, or all entries
// when category is empty.
func BuiltinsByCategory(category BuiltinCategory) []BuiltinInfo {
	if category == "" {
		return slices.Clone(BuiltinCatalog)
	}
	var out []BuiltinInfo
	for _, b := range BuiltinCatalog {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// BuiltinsWithPrefix returns the names that start with prefix, sorted.
func BuiltinsWithPrefix(prefix string) []string {
	var names []string
	for _, b := range BuiltinCatalog {
		if strings.HasPrefix(b.Name, prefix) {
			names = append(names, b.Name)
		}
	}
	slices.Sort(names)
	return names
}
