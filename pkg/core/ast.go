package core

import "github.com/leapstack-labs/epochscript/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// AssignTarget is the left-hand side of an assignment: *Ident or *TuplePattern.
type AssignTarget interface {
	Node
	targetNode()
}

// NodeInfo provides the source span shared by all node types.
// Nodes synthesized by the desugarer inherit the span of the construct they replace.
type NodeInfo struct {
	Span token.Span
}

// Pos implements Node.
func (n *NodeInfo) Pos() token.Position { return n.Span.Start }

// End implements Node.
func (n *NodeInfo) End() token.Position { return n.Span.End }

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span { return n.Span }

// SpanOf builds a span from the start of first to the end of last.
func SpanOf(first, last Node) token.Span {
	return token.Span{Start: first.Pos(), End: last.End()}
}
