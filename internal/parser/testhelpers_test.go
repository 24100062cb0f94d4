package parser

import (
	"fmt"
	"strings"
	"testing"

	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/source"
)

func parseSource(t *testing.T, src string, keywords ...string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	return parseWith(t, src, Options{Keywords: keywords})
}

func parseWith(t *testing.T, src string, opts Options) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ddd", []byte(src))
	bag := diag.NewBag(100)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	res := Parse(fs.Get(id), opts)
	if res.Tree == nil {
		t.Fatalf("nil tree")
	}
	if res.Bag != bag {
		t.Fatalf("result bag is not the reporter's bag")
	}
	return res.Tree, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
