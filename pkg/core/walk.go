package core

import "reflect"

// Walk traverses an AST depth-first and calls fn for each node.
// If fn returns false, the children of that node are skipped.
func Walk(node Node, fn func(node Node) bool) {
	if isNil(node) {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkNode(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *Module:
		for _, s := range n.Statements {
			Walk(s, fn)
		}

	case *AssignStmt:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *ExprStmt:
		Walk(n.X, fn)

	case *TuplePattern:
		for _, name := range n.Names {
			Walk(name, fn)
		}

	case *PipelineExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *LagExpr:
		Walk(n.Value, fn)
		Walk(n.Periods, fn)

	case *LeadExpr:
		Walk(n.Value, fn)
		Walk(n.Periods, fn)

	case *TernaryExpr:
		Walk(n.Body, fn)
		Walk(n.Cond, fn)
		Walk(n.Else, fn)

	case *OrExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *AndExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *NotExpr:
		Walk(n.X, fn)

	case *CompareExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.X, fn)

	case *PowerExpr:
		Walk(n.Base, fn)
		Walk(n.Exponent, fn)

	case *CallExpr:
		Walk(n.Fun, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}

	case *Arg:
		if n.Keyword != nil {
			Walk(n.Keyword, fn)
		}
		Walk(n.Value, fn)

	case *AttributeExpr:
		Walk(n.X, fn)
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *SubscriptExpr:
		Walk(n.X, fn)
		Walk(n.Index, fn)

	case *ListLit:
		for _, e := range n.Elems {
			Walk(e, fn)
		}

	case *TupleLit:
		for _, e := range n.Elems {
			Walk(e, fn)
		}

	case *DictLit:
		for _, e := range n.Entries {
			Walk(e, fn)
		}

	case *DictEntry:
		Walk(n.Key, fn)
		Walk(n.Value, fn)

	// Leaf nodes: no children
	case *Ident, *BuiltinType, *BuiltinFunc,
		*IntLit, *FloatLit, *StringLit, *BoolLit, *NoneLit, *TimeframeLit:
	}
}

// Inspect collects every node of type T reachable from root, in walk order.
func Inspect[T Node](root Node) []T {
	var out []T
	Walk(root, func(n Node) bool {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

// isNil catches both untyped nil and typed nil pointers stored in an interface.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
