package testkit

import (
	"testing"

	"ddd/internal/ast"
	"ddd/internal/parser"
	"ddd/internal/source"
)

func TestCheckTreeInvariantsOnParsedSource(t *testing.T) {
	srcs := []string{
		"",
		"namespace A.B;\n// trailing",
		"entity Order { id } {\n  command Place { int Qty }\n}\n",
		"entity { broken\ncommand X {",
		"}} ;; command",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		id := fs.AddVirtual("t.ddd", []byte(src))
		res := parser.Parse(fs.Get(id), parser.Options{})
		if err := CheckTreeInvariants(res.Tree, fs.Get(id)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeInvariantsDetectsBadLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ddd", []byte("namespace A;\nnamespace B;"))
	res := parser.Parse(fs.Get(id), parser.Options{})
	second := res.Tree.Children(res.Tree.Root)[1]
	res.Tree.Node(second).Line = 7
	if err := CheckTreeInvariants(res.Tree, fs.Get(id)); err == nil {
		t.Fatal("expected line mismatch")
	}
}

func TestCheckTreeInvariantsRejectsNil(t *testing.T) {
	if err := CheckTreeInvariants(nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if err := CheckTreeInvariants(ast.NewTree(0, 0), &source.File{}); err == nil {
		t.Fatal("expected error for tree without root")
	}
}
