package testutil

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// LoadSSAFromSource type checks a single-file package without imports
// and builds its SSA representation.
func LoadSSAFromSource(t *testing.T, importPath string, content string) *ssa.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(
		fset,
		"main.go",
		content,
		parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	files := []*ast.File{file}

	// First argument is package path, the second is name.
	pkg := types.NewPackage(importPath, file.Name.Name)
	spkg, _, err := ssautil.BuildPackage(
		&types.Config{Importer: importer.Default()},
		fset, pkg, files, ssa.SanityCheckFunctions)
	if err != nil {
		t.Fatal(err)
	}

	return spkg
}

// Function retrieves the function with the given name from a package built with
// LoadSSAFromSource, failing the test if it is absent.
func Function(t *testing.T, pkg *ssa.Package, name string) *ssa.Function {
	t.Helper()

	fun := pkg.Func(name)
	if fun == nil {
		t.Fatalf("No function %s in package %s", name, pkg.Pkg.Path())
	}
	return fun
}
