package core

import (
	"strconv"
	"strings"
)

// ---------- S-expressions ----------

// SExpr renders a node as a compact, span-free s-expression. It is the form
// used by tests and the `parse --output sexpr` command to compare tree shapes.
//
//	1 + 2 * 3          -> (add 1 (mul 2 3))
//	src.c | sma(20)    -> (call (call sma 20) (. src c))
//	x if c else y      -> (ternary x c y)
func SExpr(node Node) string {
	var b strings.Builder
	writeSExpr(&b, node)
	return b.String()
}

func writeSExpr(b *strings.Builder, node Node) {
	if isNil(node) {
		b.WriteString("<nil>")
		return
	}
	switch n := node.(type) {
	case *Module:
		for i, s := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeSExpr(b, s)
		}
	case *AssignStmt:
		list(b, "=", n.Target, n.Value)
	case *ExprStmt:
		writeSExpr(b, n.X)
	case *TuplePattern:
		b.WriteString("(unpack")
		for _, name := range n.Names {
			b.WriteByte(' ')
			b.WriteString(name.Name)
		}
		b.WriteByte(')')

	case *PipelineExpr:
		list(b, "pipe", n.Left, n.Right)
	case *LagExpr:
		list(b, "lag", n.Value, n.Periods)
	case *LeadExpr:
		list(b, "lead", n.Value, n.Periods)
	case *TernaryExpr:
		list(b, "ternary", n.Body, n.Cond, n.Else)
	case *OrExpr:
		list(b, "or", n.Left, n.Right)
	case *AndExpr:
		list(b, "and", n.Left, n.Right)
	case *NotExpr:
		list(b, "not", n.X)
	case *CompareExpr:
		list(b, string(n.Op), n.Left, n.Right)
	case *BinaryExpr:
		list(b, string(n.Op), n.Left, n.Right)
	case *UnaryExpr:
		list(b, string(n.Op), n.X)
	case *PowerExpr:
		list(b, "pow", n.Base, n.Exponent)

	case *CallExpr:
		b.WriteString("(call ")
		writeSExpr(b, n.Fun)
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeSExpr(b, a)
		}
		b.WriteByte(')')
	case *Arg:
		if n.Keyword != nil {
			b.WriteString(n.Keyword.Name)
			b.WriteByte('=')
		}
		writeSExpr(b, n.Value)
	case *AttributeExpr:
		b.WriteString("(. ")
		writeSExpr(b, n.X)
		b.WriteByte(' ')
		b.WriteString(n.Name.Name)
		b.WriteByte(')')
	case *SubscriptExpr:
		list(b, "index", n.X, n.Index)

	case *Ident:
		b.WriteString(n.Name)
	case *BuiltinType:
		b.WriteString(n.Name)
	case *BuiltinFunc:
		b.WriteString(n.Name)

	case *IntLit:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLit:
		b.WriteString(n.Raw)
	case *StringLit:
		b.WriteString(n.Raw())
	case *BoolLit:
		if n.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *NoneLit:
		b.WriteString("None")
	case *TimeframeLit:
		b.WriteString(n.String())

	case *ListLit:
		b.WriteByte('[')
		for i, e := range n.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSExpr(b, e)
		}
		b.WriteByte(']')
	case *TupleLit:
		b.WriteString("(tuple")
		for _, e := range n.Elems {
			b.WriteByte(' ')
			writeSExpr(b, e)
		}
		b.WriteByte(')')
	case *DictLit:
		b.WriteString("(dict")
		for _, e := range n.Entries {
			b.WriteByte(' ')
			writeSExpr(b, e)
		}
		b.WriteByte(')')
	case *DictEntry:
		list(b, "", n.Key, n.Value)

	default:
		b.WriteString("<?>")
	}
}

// list writes (head a b ...). An empty head yields (a b ...).
func list(b *strings.Builder, head string, items ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for i, it := range items {
		if i > 0 || head != "" {
			b.WriteByte(' ')
		}
		writeSExpr(b, it)
	}
	b.WriteByte(')')
}

// ---------- Generic maps ----------

// ToMap converts a node into nested maps and slices suitable for JSON or YAML
// encoding. Every map carries a "type" key naming the node kind and a "span"
// key of the form "line:col-line:col".
func ToMap(node Node) map[string]any {
	if isNil(node) {
		return nil
	}
	m := map[string]any{"type": TypeName(node)}
	if s := spanString(node); s != "" {
		m["span"] = s
	}

	switch n := node.(type) {
	case *Module:
		m["statements"] = mapSlice(n.Statements)
		if len(n.Comments) > 0 {
			comments := make([]string, len(n.Comments))
			for i, c := range n.Comments {
				comments[i] = c.Text
			}
			m["comments"] = comments
		}
	case *AssignStmt:
		m["target"] = ToMap(n.Target)
		m["value"] = ToMap(n.Value)
	case *ExprStmt:
		m["expr"] = ToMap(n.X)
	case *TuplePattern:
		names := make([]string, len(n.Names))
		for i, name := range n.Names {
			names[i] = name.Name
		}
		m["names"] = names

	case *PipelineExpr:
		m["left"], m["right"] = ToMap(n.Left), ToMap(n.Right)
	case *LagExpr:
		m["value"], m["periods"] = ToMap(n.Value), ToMap(n.Periods)
	case *LeadExpr:
		m["value"], m["periods"] = ToMap(n.Value), ToMap(n.Periods)
	case *TernaryExpr:
		m["body"], m["cond"], m["else"] = ToMap(n.Body), ToMap(n.Cond), ToMap(n.Else)
	case *OrExpr:
		m["left"], m["right"] = ToMap(n.Left), ToMap(n.Right)
	case *AndExpr:
		m["left"], m["right"] = ToMap(n.Left), ToMap(n.Right)
	case *NotExpr:
		m["operand"] = ToMap(n.X)
	case *CompareExpr:
		m["op"] = string(n.Op)
		m["left"], m["right"] = ToMap(n.Left), ToMap(n.Right)
	case *BinaryExpr:
		m["op"] = string(n.Op)
		m["left"], m["right"] = ToMap(n.Left), ToMap(n.Right)
	case *UnaryExpr:
		m["op"] = string(n.Op)
		m["operand"] = ToMap(n.X)
	case *PowerExpr:
		m["base"], m["exponent"] = ToMap(n.Base), ToMap(n.Exponent)

	case *CallExpr:
		m["func"] = ToMap(n.Fun)
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = ToMap(a)
		}
		m["args"] = args
	case *Arg:
		if n.Keyword != nil {
			m["keyword"] = n.Keyword.Name
		}
		m["value"] = ToMap(n.Value)
	case *AttributeExpr:
		m["object"] = ToMap(n.X)
		m["name"] = n.Name.Name
	case *SubscriptExpr:
		m["object"], m["index"] = ToMap(n.X), ToMap(n.Index)

	case *Ident:
		m["name"] = n.Name
	case *BuiltinType:
		m["name"] = n.Name
	case *BuiltinFunc:
		m["name"] = n.Name

	case *IntLit:
		m["value"] = n.Value
	case *FloatLit:
		m["value"] = n.Value
		m["raw"] = n.Raw
	case *StringLit:
		m["value"] = n.Value
		m["quote"] = n.Quote
	case *BoolLit:
		m["value"] = n.Value
	case *NoneLit:
	case *TimeframeLit:
		m["count"] = n.Count
		m["unit"] = string(n.Unit)
		if n.Weekday != "" {
			m["weekday"] = n.Weekday
		}
		if n.Ordinal != "" {
			m["ordinal"] = n.Ordinal
		}
		m["raw"] = n.Raw

	case *ListLit:
		m["elements"] = mapSlice(n.Elems)
	case *TupleLit:
		m["elements"] = mapSlice(n.Elems)
	case *DictLit:
		entries := make([]any, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = ToMap(e)
		}
		m["entries"] = entries
	case *DictEntry:
		m["key"], m["value"] = ToMap(n.Key), ToMap(n.Value)
	}
	return m
}

func mapSlice[T Node](nodes []T) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}
	return out
}

func spanString(node Node) string {
	start, end := node.Pos(), node.End()
	if !start.IsValid() {
		return ""
	}
	return start.String() + "-" + end.String()
}

// TypeName returns the short kind name of a node, e.g. "CallExpr".
func TypeName(node Node) string {
	switch node.(type) {
	case *Module:
		return "Module"
	case *AssignStmt:
		return "AssignStmt"
	case *ExprStmt:
		return "ExprStmt"
	case *TuplePattern:
		return "TuplePattern"
	case *PipelineExpr:
		return "PipelineExpr"
	case *LagExpr:
		return "LagExpr"
	case *LeadExpr:
		return "LeadExpr"
	case *TernaryExpr:
		return "TernaryExpr"
	case *OrExpr:
		return "OrExpr"
	case *AndExpr:
		return "AndExpr"
	case *NotExpr:
		return "NotExpr"
	case *CompareExpr:
		return "CompareExpr"
	case *BinaryExpr:
		return "BinaryExpr"
	case *UnaryExpr:
		return "UnaryExpr"
	case *PowerExpr:
		return "PowerExpr"
	case *CallExpr:
		return "CallExpr"
	case *Arg:
		return "Arg"
	case *AttributeExpr:
		return "AttributeExpr"
	case *SubscriptExpr:
		return "SubscriptExpr"
	case *Ident:
		return "Ident"
	case *BuiltinType:
		return "BuiltinType"
	case *BuiltinFunc:
		return "BuiltinFunc"
	case *IntLit:
		return "IntLit"
	case *FloatLit:
		return "FloatLit"
	case *StringLit:
		return "StringLit"
	case *BoolLit:
		return "BoolLit"
	case *NoneLit:
		return "NoneLit"
	case *TimeframeLit:
		return "TimeframeLit"
	case *ListLit:
		return "ListLit"
	case *TupleLit:
		return "TupleLit"
	case *DictLit:
		return "DictLit"
	case *DictEntry:
		return "DictEntry"
	default:
		return "Unknown"
	}
}
