package core

// ---------- Operators ----------

// BinaryOp names an arithmetic operator.
type BinaryOp string

// Arithmetic operators (levels 8 and 9).
const (
	OpAdd BinaryOp = "add"
	OpSub BinaryOp = "sub"
	OpMul BinaryOp = "mul"
	OpDiv BinaryOp = "div"
	OpMod BinaryOp = "mod"
)

// CompareOp names a comparison operator.
type CompareOp string

// Comparison operators (level 6).
const (
	OpLt CompareOp = "lt"
	OpGt CompareOp = "gt"
	OpLe CompareOp = "le"
	OpGe CompareOp = "ge"
	OpEq CompareOp = "eq"
	OpNe CompareOp = "ne"
)

// UnaryOp names a prefix sign operator.
type UnaryOp string

// Unary operators (level 10).
const (
	OpNeg UnaryOp = "neg"
	OpPos UnaryOp = "pos"
)

// ---------- Surface-only forms ----------
// PipelineExpr, LagExpr and LeadExpr only exist in the raw tree. The desugarer
// replaces each with nested CallExpr nodes before the tree leaves the parser.

// PipelineExpr is `Left | Right`.
type PipelineExpr struct {
	NodeInfo
	Left  Expr
	Right Expr
}

func (*PipelineExpr) exprNode() {}

// LagExpr is `Value >> Periods`.
type LagExpr struct {
	NodeInfo
	Value   Expr
	Periods Expr
}

func (*LagExpr) exprNode() {}

// LeadExpr is `Value << Periods`.
type LeadExpr struct {
	NodeInfo
	Value   Expr
	Periods Expr
}

func (*LeadExpr) exprNode() {}

// ---------- Expression Types ----------

// TernaryExpr is `Body if Cond else Else`.
type TernaryExpr struct {
	NodeInfo
	Body Expr
	Cond Expr
	Else Expr
}

func (*TernaryExpr) exprNode() {}

// OrExpr is `Left or Right`.
type OrExpr struct {
	NodeInfo
	Left  Expr
	Right Expr
}

func (*OrExpr) exprNode() {}

// AndExpr is `Left and Right`.
type AndExpr struct {
	NodeInfo
	Left  Expr
	Right Expr
}

func (*AndExpr) exprNode() {}

// NotExpr is `not X`.
type NotExpr struct {
	NodeInfo
	X Expr
}

func (*NotExpr) exprNode() {}

// CompareExpr is a single (non-chained) comparison.
// `a < b < c` nests left: CompareExpr{Lt, CompareExpr{Lt, a, b}, c}.
type CompareExpr struct {
	NodeInfo
	Op    CompareOp
	Left  Expr
	Right Expr
}

func (*CompareExpr) exprNode() {}

// BinaryExpr is an additive or multiplicative expression.
type BinaryExpr struct {
	NodeInfo
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a prefix sign applied to X.
type UnaryExpr struct {
	NodeInfo
	Op UnaryOp
	X  Expr
}

func (*UnaryExpr) exprNode() {}

// PowerExpr is `Base ** Exponent` (right-associative).
type PowerExpr struct {
	NodeInfo
	Base     Expr
	Exponent Expr
}

func (*PowerExpr) exprNode() {}

// CallExpr applies Fun to Args. Fun may itself be a CallExpr, which is how
// the two-stage `transform(options)(inputs)` form is represented.
type CallExpr struct {
	NodeInfo
	Fun  Expr
	Args []*Arg
}

func (*CallExpr) exprNode() {}

// Positional returns the positional arguments in order.
func (c *CallExpr) Positional() []Expr {
	var out []Expr
	for _, a := range c.Args {
		if a.Keyword == nil {
			out = append(out, a.Value)
		}
	}
	return out
}

// KeywordArg returns the value of the first keyword argument with the given name.
func (c *CallExpr) KeywordArg(name string) (Expr, bool) {
	for _, a := range c.Args {
		if a.Keyword != nil && a.Keyword.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Arg is one call argument: positional when Keyword is nil, `name = value` otherwise.
type Arg struct {
	NodeInfo
	Keyword *Ident
	Value   Expr
}

// IsKeyword reports whether the argument was passed by name.
func (a *Arg) IsKeyword() bool { return a.Keyword != nil }

// AttributeExpr is `X.Name`.
type AttributeExpr struct {
	NodeInfo
	X    Expr
	Name *Ident
}

func (*AttributeExpr) exprNode() {}

// SubscriptExpr is `X[Index]`.
type SubscriptExpr struct {
	NodeInfo
	X     Expr
	Index Expr
}

func (*SubscriptExpr) exprNode() {}

// Ident is a user-defined name.
type Ident struct {
	NodeInfo
	Name string
}

func (*Ident) exprNode()   {}
func (*Ident) targetNode() {}

// BuiltinType is a reserved schema type name such as Session or Time.
type BuiltinType struct {
	NodeInfo
	Name string
}

func (*BuiltinType) exprNode() {}

// BuiltinFunc is a reserved function name such as abs or crossover.
type BuiltinFunc struct {
	NodeInfo
	Name string
}

func (*BuiltinFunc) exprNode() {}
