//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestGovernance_NoTypeAliasReexports ensures the producer packages don't
// re-export core node types as aliases. Consumers use core.X directly.
func TestGovernance_NoTypeAliasReexports(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	nodeTypes := []string{
		"Node", "Expr", "Stmt", "Module", "AssignStmt", "ExprStmt", "TuplePattern",
		"PipelineExpr", "LagExpr", "LeadExpr", "TernaryExpr", "OrExpr", "AndExpr",
		"NotExpr", "CompareExpr", "BinaryExpr", "UnaryExpr", "PowerExpr",
		"CallExpr", "Arg", "AttributeExpr", "SubscriptExpr", "Ident",
		"IntLit", "FloatLit", "StringLit", "TimeframeLit", "ListLit", "TupleLit", "DictLit",
	}
	forbiddenSet := make(map[string]bool, len(nodeTypes))
	for _, name := range nodeTypes {
		forbiddenSet[name] = true
	}
	producers := map[string]bool{
		modulePath + "/pkg/parser":  true,
		modulePath + "/pkg/desugar": true,
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || !producers[pkg.PkgPath] {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			if typeName, ok := obj.(*types.TypeName); ok && typeName.IsAlias() && forbiddenSet[name] {
				t.Errorf("PURITY VIOLATION: Package '%s' re-exports type alias '%s'.\n"+
					"   Fix: Remove the alias. Consumers should use core.%s directly.",
					strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), name, name)
			}
		}
	}
}

// TestGovernance_CoreNodesAreUsed reports exported core types that no other
// package touches.
func TestGovernance_CoreNodesAreUsed(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	coreDefs := make(map[types.Object]string)
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj := scope.Lookup(name); obj.Exported() {
				coreDefs[obj] = name
			}
		}
	}
	if len(coreDefs) == 0 {
		t.Fatal("Could not find pkg/core")
	}

	used := make(map[string]bool)
	for _, p := range pkgs {
		if p.PkgPath == modulePath+"/pkg/core" || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreDefs[obj]; ok {
				used[name] = true
			}
		}
	}
	for _, name := range coreDefs {
		if !used[name] {
			t.Logf("WARNING: Unused Core Type: %s (consider deleting)", name)
		}
	}
}
