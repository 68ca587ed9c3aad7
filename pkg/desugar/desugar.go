// Package desugar rewrites surface syntax into the canonical call form.
//
//	left | right     → right(left)
//	value >> p       → lag(period=p)(value)
//	value << p       → lag(period=-p)(value)
//
// The rewrite is a post-order pass that builds new nodes and never edits its
// input. Lead wraps the whole period expression in a negation node; nothing is
// folded or evaluated. No other forms are touched.
package desugar

import (
	"github.com/leapstack-labs/epochscript/pkg/core"
)

// LagFunc is the callee name shared by lag and lead rewrites.
const LagFunc = "lag"

// PeriodKeyword is the keyword carrying the shift amount.
const PeriodKeyword = "period"

// Module returns a canonical copy of mod.
func Module(mod *core.Module) *core.Module {
	if mod == nil {
		return nil
	}
	out := &core.Module{
		NodeInfo:   mod.NodeInfo,
		Statements: make([]core.Stmt, len(mod.Statements)),
		Comments:   mod.Comments,
	}
	for i, s := range mod.Statements {
		out.Statements[i] = Stmt(s)
	}
	return out
}

// Stmt returns a canonical copy of s.
func Stmt(s core.Stmt) core.Stmt {
	switch n := s.(type) {
	case *core.AssignStmt:
		return &core.AssignStmt{NodeInfo: n.NodeInfo, Target: n.Target, Value: Expr(n.Value)}
	case *core.ExprStmt:
		return &core.ExprStmt{NodeInfo: n.NodeInfo, X: Expr(n.X)}
	default:
		return s
	}
}

// Expr returns a canonical copy of e. Children are rewritten before their parent.
func Expr(e core.Expr) core.Expr {
	switch n := e.(type) {
	case nil:
		return nil

	// Surface forms
	case *core.PipelineExpr:
		return Pipeline(n.NodeInfo, Expr(n.Left), Expr(n.Right))
	case *core.LagExpr:
		return Lag(n.NodeInfo, Expr(n.Value), Expr(n.Periods))
	case *core.LeadExpr:
		return Lead(n.NodeInfo, Expr(n.Value), Expr(n.Periods))

	// Structural copies
	case *core.TernaryExpr:
		return &core.TernaryExpr{NodeInfo: n.NodeInfo, Body: Expr(n.Body), Cond: Expr(n.Cond), Else: Expr(n.Else)}
	case *core.OrExpr:
		return &core.OrExpr{NodeInfo: n.NodeInfo, Left: Expr(n.Left), Right: Expr(n.Right)}
	case *core.AndExpr:
		return &core.AndExpr{NodeInfo: n.NodeInfo, Left: Expr(n.Left), Right: Expr(n.Right)}
	case *core.NotExpr:
		return &core.NotExpr{NodeInfo: n.NodeInfo, X: Expr(n.X)}
	case *core.CompareExpr:
		return &core.CompareExpr{NodeInfo: n.NodeInfo, Op: n.Op, Left: Expr(n.Left), Right: Expr(n.Right)}
	case *core.BinaryExpr:
		return &core.BinaryExpr{NodeInfo: n.NodeInfo, Op: n.Op, Left: Expr(n.Left), Right: Expr(n.Right)}
	case *core.UnaryExpr:
		return &core.UnaryExpr{NodeInfo: n.NodeInfo, Op: n.Op, X: Expr(n.X)}
	case *core.PowerExpr:
		return &core.PowerExpr{NodeInfo: n.NodeInfo, Base: Expr(n.Base), Exponent: Expr(n.Exponent)}
	case *core.CallExpr:
		args := make([]*core.Arg, len(n.Args))
		for i, a := range n.Args {
			args[i] = &core.Arg{NodeInfo: a.NodeInfo, Keyword: a.Keyword, Value: Expr(a.Value)}
		}
		return &core.CallExpr{NodeInfo: n.NodeInfo, Fun: Expr(n.Fun), Args: args}
	case *core.AttributeExpr:
		return &core.AttributeExpr{NodeInfo: n.NodeInfo, X: Expr(n.X), Name: n.Name}
	case *core.SubscriptExpr:
		return &core.SubscriptExpr{NodeInfo: n.NodeInfo, X: Expr(n.X), Index: Expr(n.Index)}
	case *core.ListLit:
		return &core.ListLit{NodeInfo: n.NodeInfo, Elems: exprs(n.Elems)}
	case *core.TupleLit:
		return &core.TupleLit{NodeInfo: n.NodeInfo, Elems: exprs(n.Elems)}
	case *core.DictLit:
		entries := make([]*core.DictEntry, len(n.Entries))
		for i, ent := range n.Entries {
			entries[i] = &core.DictEntry{NodeInfo: ent.NodeInfo, Key: ent.Key, Value: Expr(ent.Value)}
		}
		return &core.DictLit{NodeInfo: n.NodeInfo, Entries: entries}

	// Leaves are immutable and shared.
	default:
		return e
	}
}

func exprs(in []core.Expr) []core.Expr {
	if in == nil {
		return nil
	}
	out := make([]core.Expr, len(in))
	for i, e := range in {
		out[i] = Expr(e)
	}
	return out
}

// Pipeline builds right(left). right is not checked for being callable.
func Pipeline(info core.NodeInfo, left, right core.Expr) *core.CallExpr {
	return &core.CallExpr{
		NodeInfo: info,
		Fun:      right,
		Args:     []*core.Arg{{NodeInfo: nodeInfo(left), Value: left}},
	}
}

// Lag builds lag(period=periods)(value).
func Lag(info core.NodeInfo, value, periods core.Expr) *core.CallExpr {
	return shift(info, value, periods)
}

// Lead builds lag(period=-(periods))(value).
func Lead(info core.NodeInfo, value, periods core.Expr) *core.CallExpr {
	neg := &core.UnaryExpr{NodeInfo: nodeInfo(periods), Op: core.OpNeg, X: periods}
	return shift(info, value, neg)
}

func shift(info core.NodeInfo, value, periods core.Expr) *core.CallExpr {
	configure := &core.CallExpr{
		NodeInfo: info,
		Fun:      &core.Ident{NodeInfo: info, Name: LagFunc},
		Args: []*core.Arg{{
			NodeInfo: nodeInfo(periods),
			Keyword:  &core.Ident{NodeInfo: nodeInfo(periods), Name: PeriodKeyword},
			Value:    periods,
		}},
	}
	return &core.CallExpr{
		NodeInfo: info,
		Fun:      configure,
		Args:     []*core.Arg{{NodeInfo: nodeInfo(value), Value: value}},
	}
}

// nodeInfo copies the span of n onto a synthesized node.
func nodeInfo(n core.Node) core.NodeInfo {
	if n == nil {
		return core.NodeInfo{}
	}
	return core.NodeInfo{Span: core.SpanOf(n, n)}
}

// Canonical reports whether the tree rooted at n is free of surface-only nodes.
func Canonical(n core.Node) bool {
	ok := true
	core.Walk(n, func(node core.Node) bool {
		switch node.(type) {
		case *core.PipelineExpr, *core.LagExpr, *core.LeadExpr:
			ok = false
		}
		return ok
	})
	return ok
}
