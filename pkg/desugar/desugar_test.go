package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/desugar"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

func ident(name string) *core.Ident { return &core.Ident{Name: name} }

func intLit(v int64) *core.IntLit { return &core.IntLit{Value: v} }

func TestExpr_Pipeline(t *testing.T) {
	src := &core.AttributeExpr{X: ident("src"), Name: ident("c")}
	sma := &core.CallExpr{Fun: ident("sma"), Args: []*core.Arg{{Value: intLit(20)}}}
	raw := &core.PipelineExpr{Left: src, Right: sma}

	got := desugar.Expr(raw)

	call, ok := got.(*core.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "(call (call sma 20) (. src c))", core.SExpr(call))
	require.Len(t, call.Args, 1)
	assert.False(t, call.Args[0].IsKeyword())
	assert.Equal(t, src, call.Args[0].Value)
}

func TestExpr_LagLead(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr
		want string
	}{
		{
			name: "lag",
			expr: &core.LagExpr{Value: ident("v"), Periods: intLit(1)},
			want: "(call (call lag period=1) v)",
		},
		{
			name: "lead",
			expr: &core.LeadExpr{Value: ident("v"), Periods: intLit(1)},
			want: "(call (call lag period=(neg 1)) v)",
		},
		{
			name: "lead of compound period",
			expr: &core.LeadExpr{Value: ident("v"), Periods: &core.BinaryExpr{Op: core.OpAdd, Left: ident("a"), Right: ident("b")}},
			want: "(call (call lag period=(neg (add a b))) v)",
		},
		{
			name: "lead of lag",
			expr: &core.LeadExpr{Value: &core.LagExpr{Value: ident("v"), Periods: intLit(2)}, Periods: ident("n")},
			want: "(call (call lag period=(neg n)) (call (call lag period=2) v))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := desugar.Expr(tt.expr)
			assert.Equal(t, tt.want, core.SExpr(got))
			assert.True(t, desugar.Canonical(got))
		})
	}
}

func TestLead_NeverFolds(t *testing.T) {
	periods := &core.UnaryExpr{Op: core.OpNeg, X: intLit(3)}
	call := desugar.Lead(core.NodeInfo{}, ident("v"), periods)

	inner := call.Fun.(*core.CallExpr)
	value, ok := inner.KeywordArg(desugar.PeriodKeyword)
	require.True(t, ok)

	neg, ok := value.(*core.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, core.OpNeg, neg.Op)
	assert.Same(t, periods, neg.X, "the original period expression is wrapped, not evaluated")
}

func TestModule_DoesNotMutateInput(t *testing.T) {
	pipe := &core.PipelineExpr{Left: ident("a"), Right: ident("f")}
	assign := &core.AssignStmt{Target: ident("x"), Value: pipe}
	mod := &core.Module{Statements: []core.Stmt{assign, &core.ExprStmt{X: &core.LagExpr{Value: ident("x"), Periods: intLit(1)}}}}
	before := core.SExpr(mod)

	out := desugar.Module(mod)

	assert.Equal(t, before, core.SExpr(mod), "input tree is unchanged")
	assert.Same(t, pipe, assign.Value)
	assert.NotSame(t, mod, out)
	assert.Equal(t, "(= x (call f a))\n(call (call lag period=1) x)", core.SExpr(out))
	assert.False(t, desugar.Canonical(mod))
	assert.True(t, desugar.Canonical(out))
}

func TestExpr_RewritesNestedForms(t *testing.T) {
	nested := &core.TernaryExpr{
		Body: &core.ListLit{Elems: []core.Expr{&core.PipelineExpr{Left: ident("a"), Right: ident("f")}}},
		Cond: &core.NotExpr{X: &core.LagExpr{Value: ident("b"), Periods: intLit(1)}},
		Else: &core.DictLit{Entries: []*core.DictEntry{{Key: ident("k"), Value: &core.LeadExpr{Value: ident("c"), Periods: intLit(2)}}}},
	}

	got := desugar.Expr(nested)
	assert.True(t, desugar.Canonical(got))
	assert.Equal(t,
		"(ternary [(call f a)] (not (call (call lag period=1) b)) (dict (k (call (call lag period=(neg 2)) c))))",
		core.SExpr(got))
}

func TestExpr_PreservesSpans(t *testing.T) {
	span := token.Span{
		Start: token.Position{Line: 1, Column: 1, Offset: 0},
		End:   token.Position{Line: 1, Column: 7, Offset: 6},
	}
	lag := &core.LagExpr{NodeInfo: core.NodeInfo{Span: span}, Value: ident("v"), Periods: intLit(1)}

	got := desugar.Expr(lag)
	assert.Equal(t, span.Start, got.Pos())
	assert.Equal(t, span.End, got.End())
}

func TestExpr_LeavesAreShared(t *testing.T) {
	lit := intLit(7)
	assert.Same(t, lit, desugar.Expr(lit))
	assert.Nil(t, desugar.Expr(nil))
	assert.Nil(t, desugar.Module(nil))
}
