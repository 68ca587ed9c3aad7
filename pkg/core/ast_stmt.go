package core

import "github.com/leapstack-labs/epochscript/pkg/token"

// ---------- Module ----------

// Module is the root of a parsed script: an ordered sequence of statements.
type Module struct {
	NodeInfo
	Statements []Stmt
	Comments   []*token.Comment
}

// ---------- Statement Types ----------

// AssignStmt binds the value of an expression to a name or a tuple of names.
//
//	fast = src.c | ema(12)
//	upper, mid, lower = bbands(period=20)(src.c)
type AssignStmt struct {
	NodeInfo
	Target AssignTarget
	Value  Expr
}

func (*AssignStmt) stmtNode() {}

// ExprStmt is an expression evaluated for its effect (typically a report or sink call).
type ExprStmt struct {
	NodeInfo
	X Expr
}

func (*ExprStmt) stmtNode() {}

// TuplePattern is an unpacking target. It always holds at least two names.
type TuplePattern struct {
	NodeInfo
	Names []*Ident
}

func (*TuplePattern) targetNode() {}

// Assigned returns the names bound by an assignment target in source order.
func Assigned(target AssignTarget) []string {
	switch t := target.(type) {
	case *Ident:
		return []string{t.Name}
	case *TuplePattern:
		names := make([]string, len(t.Names))
		for i, n := range t.Names {
			names[i] = n.Name
		}
		return names
	default:
		return nil
	}
}
