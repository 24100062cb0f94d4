package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ddd/internal/diag"
	"ddd/internal/lexer"
	"ddd/internal/parser"
	"ddd/internal/sema"
	"ddd/internal/source"
)

const sample = "namespace A\nentity B {}\n"

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ddd", []byte(sample))
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectSemicolon,
		Message:  "expected ';'",
		Primary:  source.Span{File: id, Start: 12, End: 18},
		Notes:    []diag.Note{{Span: source.Span{File: id, Start: 0, End: 9}, Msg: "namespace declared here"}},
	})
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := "a.ddd:2:1: ERROR SYN2002: expected ';'\n" +
		"2 | entity B {}\n" +
		"  | ^~~~~~\n" +
		"note a.ddd:1:1: namespace declared here\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyContextAndColor(t *testing.T) {
	bag, fs := sampleBag(t)
	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain.String(), "1 | namespace A\n") {
		t.Errorf("context line missing:\n%s", plain.String())
	}
	if strings.Contains(plain.String(), "note") {
		t.Error("notes printed without ShowNotes")
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("expected ANSI escapes with Color enabled")
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	want := LocationJSON{File: "a.ddd", StartByte: 12, EndByte: 18, StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 7}
	if diff := cmp.Diff(want, d.Location); diff != "" {
		t.Errorf("location mismatch (-want +got):\n%s", diff)
	}
	if d.Code != "SYN2002" || d.Title != "Missing semicolon" || len(d.Notes) != 1 {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SynInfo, Message: "second"})
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("out = %+v", out)
	}
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		path string
		mode PathMode
		base string
		want string
	}{
		{"/p/src/a.ddd", PathModeBasename, "", "a.ddd"},
		{"/p/src/a.ddd", PathModeRelative, "/p", "src/a.ddd"},
		{"/p/src/a.ddd", PathModeAuto, "/p", "src/a.ddd"},
		{"/q/a.ddd", PathModeAuto, "/p", "/q/a.ddd"},
		{"a.ddd", PathModeAuto, "", "a.ddd"},
	}
	for _, tt := range tests {
		if got := displayPath(tt.path, tt.mode, tt.base); got != tt.want {
			t.Errorf("displayPath(%q, %d, %q) = %q, want %q", tt.path, tt.mode, tt.base, got, tt.want)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ddd", []byte("// c\nnamespace A;"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], "KwNamespace") || !strings.Contains(lines[0], "leading: LineComment, Newline") {
		t.Errorf("first line = %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[1].Kind != "Ident" || out[1].Text != "A" {
		t.Fatalf("tokens = %+v", out)
	}
}

func TestFormatTree(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ddd", []byte("namespace A.B;"))
	tree := parser.Parse(fs.Get(id), parser.Options{}).Tree

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, tree); err != nil {
		t.Fatal(err)
	}
	want := "File \"t.ddd\" @1\n  Namespace \"namespace\" @1\n    Ident \"A\" @1\n    Ident \"B\" @1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := FormatTreeJSON(&buf, tree); err != nil {
		t.Fatal(err)
	}
	var root NodeJSON
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "File" || len(root.Children) != 1 || len(root.Children[0].Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
}

func TestFormatModelPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ddd", []byte(`namespace Shop;
fragment id = Guid OrderId;
entity Order { id } {
	modifier ? = IOrderCommand;
	command Place (?) { int Qty; display Qty }
}`))
	ctx, err := sema.Build(parser.Parse(fs.Get(id), parser.Options{}).Tree, sema.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatModelPretty(&buf, ctx, false); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"namespace Shop\n",
		"fragment id = Guid OrderId\n",
		"entity Order\n  fixed Guid OrderId\n  modifier ? = IOrderCommand\n  command Place\n",
		"command Place (IOrderCommand)\n  Guid OrderId <- id\n  int Qty\n  display Qty\n",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("model dump lacks %q:\n%s", want, buf.String())
		}
	}
}
