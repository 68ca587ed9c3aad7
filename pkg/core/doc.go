// Package core defines the EpochScript syntax tree.
//
// This package contains:
//   - Base node interfaces (Node, Expr, Stmt)
//   - Statement and expression node types
//   - Traversal (Walk) and debug encodings (ToMap, SExpr)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// Parsing lives in pkg/parser, rewriting in pkg/desugar; both depend on core.
package core
