package parser

import (
	"slices"
	"testing"

	"ddd/internal/ast"
	"ddd/internal/diag"
)

func TestParseWellFormed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "directives",
			src:  `namespace Shop.Orders; extern "Shop"; using System.Text;`,
			want: `(File (Namespace Ident:Shop Ident:Orders) (Extern String:"Shop") (Using Ident:System Ident:Text))`,
		},
		{
			name: "extern identifier",
			src:  `extern Shop;`,
			want: `(File (Extern Ident:Shop))`,
		},
		{
			name: "fragment",
			src:  `fragment id = Guid Id;`,
			want: `(File (Fragment Ident:id TypeRef:Guid Ident:Id))`,
		},
		{
			name: "modifier with symbol name",
			src:  `modifier ? = IQuery<Order>, ICacheable;`,
			want: `(File (Modifier Ident:? TypeRef:IQuery<Order> TypeRef:ICacheable))`,
		},
		{
			name: "bang modifier",
			src:  `modifier ! = ICommand;`,
			want: `(File (Modifier Ident:! TypeRef:ICommand))`,
		},
		{
			name: "entity with nested declarations",
			src: `entity Order { id; string Name } {
	command Place (?) { id, ref Base; display Name }
}`,
			want: `(File (Entity Ident:Order (Block (FragmentRef Ident:id) (Field TypeRef:string Ident:Name)) ` +
				`(Type Ident:command Ident:Place (Block (FragmentRef Ident:id) (Field TypeRef:ref Ident:Base) (Display Ident:Name)) Ident:?)))`,
		},
		{
			name: "entity with nested fragment",
			src:  `entity A {} { fragment x = int X; }`,
			want: `(File (Entity Ident:A Block (Fragment Ident:x TypeRef:int Ident:X)))`,
		},
		{
			name: "event with several modifier refs and trailing separator",
			src:  `event Placed (a, b) { int Count, }`,
			want: `(File (Type Ident:event Ident:Placed (Block (Field TypeRef:int Ident:Count)) Ident:a Ident:b))`,
		},
		{
			name: "empty message",
			src:  `command Ping {}`,
			want: `(File (Type Ident:command Ident:Ping Block))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			if got := tree.Sexpr(tree.Root); got != tt.want {
				t.Errorf("tree mismatch\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestTypeRefTextIsSourceSlice(t *testing.T) {
	src := `command C {
	List<Dictionary<string, int>> Items;
	Guid? Maybe;
	int[] Arr;
	System.DateTime At;
	Map<string,int[]>? Odd
}`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	var got []string
	tree.Walk(tree.Root, func(id ast.NodeID, _ int) bool {
		if tree.Kind(id) == ast.NodeTypeRef {
			got = append(got, tree.Text(id))
		}
		return true
	})
	want := []string{"List<Dictionary<string, int>>", "Guid?", "int[]", "System.DateTime", "Map<string,int[]>?"}
	if !slices.Equal(got, want) {
		t.Errorf("typeref texts = %q, want %q", got, want)
	}
}

func TestCustomKeywords(t *testing.T) {
	tree, bag := parseSource(t, "command X {}\nquery Find { int N }", "query")
	want := `(File Error:command (Type Ident:query Ident:Find (Block (Field TypeRef:int Ident:N))))`
	if got := tree.Sexpr(tree.Root); got != want {
		t.Errorf("tree mismatch\n got: %s\nwant: %s", got, want)
	}
	if got := codes(bag); !slices.Equal(got, []diag.Code{diag.SynUnexpectedTopLevel}) {
		t.Errorf("codes = %v (%s)", got, diagnosticsSummary(bag))
	}
}

func TestNodeLines(t *testing.T) {
	tree, _ := parseSource(t, "\n\nentity A {\n  int X\n}")
	ent := tree.Child(tree.Root, 0)
	if n := tree.Node(ent); n == nil || n.Line != 3 {
		t.Fatalf("entity line = %+v", n)
	}
	field := tree.Child(tree.Child(ent, 1), 0)
	if n := tree.Node(field); n.Line != 4 {
		t.Errorf("field line = %d, want 4", n.Line)
	}
}

func TestParseRecovery(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		codes []diag.Code
	}{
		{
			name:  "missing semicolon",
			src:   "namespace Shop\nentity A {}",
			want:  `(File Error:entity (Entity Ident:A Block))`,
			codes: []diag.Code{diag.SynExpectSemicolon},
		},
		{
			name:  "member without name",
			src:   `command C { List<int>; string Name }`,
			want:  `(File (Type Ident:command Ident:C (Block Error:; (Field TypeRef:string Ident:Name))))`,
			codes: []diag.Code{diag.SynExpectIdentifier},
		},
		{
			name:  "missing member separator",
			src:   `command C { string A string B }`,
			want:  `(File (Type Ident:command Ident:C (Block (Field TypeRef:string Ident:A) Error:string)))`,
			codes: []diag.Code{diag.SynExpectSemicolon},
		},
		{
			name:  "stray closing brace",
			src:   `} using X;`,
			want:  `(File Error:} (Using Ident:X))`,
			codes: []diag.Code{diag.SynUnexpectedTopLevel},
		},
		{
			name:  "lexical error is not reported twice",
			src:   `entity A { # }`,
			want:  `(File (Entity Ident:A (Block Error:#)))`,
			codes: []diag.Code{diag.LexUnknownChar},
		},
		{
			name:  "unclosed modifier list",
			src:   `command C (a { } using X;`,
			want:  `(File Error:{ (Using Ident:X))`,
			codes: []diag.Code{diag.SynUnclosedParen},
		},
		{
			name:  "missing extern name",
			src:   `extern ; using X;`,
			want:  `(File Error:; (Using Ident:X))`,
			codes: []diag.Code{diag.SynExpectExternName},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if got := tree.Sexpr(tree.Root); got != tt.want {
				t.Errorf("tree mismatch\n got: %s\nwant: %s", got, tt.want)
			}
			if got := codes(bag); !slices.Equal(got, tt.codes) {
				t.Errorf("codes = %v, want %v (%s)", got, tt.codes, diagnosticsSummary(bag))
			}
		})
	}
}

func TestUnclosedBlockAtEOF(t *testing.T) {
	tree, bag := parseSource(t, `entity A { string X`)
	if !slices.Contains(codes(bag), diag.SynUnclosedBrace) {
		t.Fatalf("expected unclosed brace, got %s", diagnosticsSummary(bag))
	}
	if len(tree.Errors()) == 0 {
		t.Fatal("expected an error node in the tree")
	}
}

func TestUnclosedBlockBeforeDeclaration(t *testing.T) {
	tree, bag := parseSource(t, "entity A { string X\nusing Y;")
	want := `(File (Entity Ident:A (Block (Field TypeRef:string Ident:X) Error:using)) (Using Ident:Y))`
	if got := tree.Sexpr(tree.Root); got != want {
		t.Errorf("tree mismatch\n got: %s\nwant: %s", got, want)
	}
	if got := codes(bag); !slices.Equal(got, []diag.Code{diag.SynUnclosedBrace}) {
		t.Errorf("codes = %v", got)
	}
}

func TestMaxErrors(t *testing.T) {
	opts := Options{MaxErrors: 1}
	_, bag := parseWith(t, "} } }", opts)
	if bag.Len() != 1 {
		t.Errorf("expected 1 diagnostic, got %d: %s", bag.Len(), diagnosticsSummary(bag))
	}
}
