package lexer_test

import (
	"testing"

	"ddd/internal/diag"
	"ddd/internal/lexer"
	"ddd/internal/source"
	"ddd/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ddd", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// expectTokens проверяет последовательность токенов (EOF добавляется автоматически)
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	toks := lx.All()
	expected = append(expected, token.EOF)
	if len(toks) != len(expected) {
		t.Fatalf("input %q: got %d tokens %v, want %d", input, len(toks), kinds(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Kind != want {
			t.Errorf("input %q: token %d = %v (%q), want %v", input, i, toks[i].Kind, toks[i].Text, want)
		}
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("input %q: unexpected diagnostics %+v", input, reporter.diagnostics)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestDirectives(t *testing.T) {
	expectTokens(t, "namespace Shop.Orders;",
		token.KwNamespace, token.Ident, token.Dot, token.Ident, token.Semicolon)
	toks := expectTokens(t, `extern "Shop";`, token.KwExtern, token.StringLit, token.Semicolon)
	if toks[1].Text != `"Shop"` {
		t.Errorf("string text = %q, quotes must be kept", toks[1].Text)
	}
	expectTokens(t, "using System.Runtime.Serialization;",
		token.KwUsing, token.Ident, token.Dot, token.Ident, token.Dot, token.Ident, token.Semicolon)
}

func TestDeclarations(t *testing.T) {
	expectTokens(t, "fragment id = string OrderId;",
		token.KwFragment, token.Ident, token.Assign, token.Ident, token.Ident, token.Semicolon)
	expectTokens(t, "modifier ? = ICommand<OrderId>, IAudited;",
		token.KwModifier, token.Question, token.Assign, token.Ident, token.Lt, token.Ident, token.Gt,
		token.Comma, token.Ident, token.Semicolon)
	expectTokens(t, "command Place (flag) { int qty; display qty }",
		token.Ident, token.Ident, token.LParen, token.Ident, token.RParen,
		token.LBrace, token.Ident, token.Ident, token.Semicolon, token.KwDisplay, token.Ident, token.RBrace)
}

func TestNestedGenericsStaySplit(t *testing.T) {
	expectTokens(t, "List<List<int>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
	expectTokens(t, "int[] Guid?",
		token.Ident, token.LBracket, token.RBracket, token.Ident, token.Question)
}

func TestCommentsAreTrivia(t *testing.T) {
	input := "// header\nentity /* nested /* twice */ */ Order\n\n{ }"
	toks := expectTokens(t, input, token.KwEntity, token.Ident, token.LBrace, token.RBrace)
	if len(toks[0].Leading) != 2 {
		t.Fatalf("entity leading trivia = %d, want comment+newline", len(toks[0].Leading))
	}
	if toks[0].Leading[0].Kind != token.TriviaLineComment {
		t.Errorf("first trivia = %v", toks[0].Leading[0].Kind)
	}
	var sawBlock bool
	for _, tr := range toks[1].Leading {
		if tr.Kind == token.TriviaBlockComment {
			sawBlock = true
			if tr.Text != "/* nested /* twice */ */" {
				t.Errorf("block comment text = %q", tr.Text)
			}
		}
	}
	if !sawBlock {
		t.Error("expected block comment before Order")
	}
}

func TestUnicodeIdent(t *testing.T) {
	toks := expectTokens(t, "fragment naïve = string Größe;",
		token.KwFragment, token.Ident, token.Assign, token.Ident, token.Ident, token.Semicolon)
	if toks[4].Text != "Größe" {
		t.Errorf("ident = %q", toks[4].Text)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated string", `extern "Shop`, diag.LexUnterminatedString},
		{"newline in string", "extern \"Sh\nop\";", diag.LexUnterminatedString},
		{"unknown char", "entity # Order", diag.LexUnknownChar},
		{"unterminated comment", "/* open", diag.LexUnterminatedBlockComment},
		{"lone slash", "a / b", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			lx.All()
			if len(rep.diagnostics) == 0 {
				t.Fatal("expected a diagnostic")
			}
			if rep.diagnostics[0].Code != tt.code {
				t.Errorf("code = %v, want %v", rep.diagnostics[0].Code, tt.code)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("using A;")
	if lx.Peek().Kind != token.KwUsing || lx.Peek().Kind != token.KwUsing {
		t.Fatal("Peek must be idempotent")
	}
	if lx.Next().Kind != token.KwUsing || lx.Next().Kind != token.Ident {
		t.Fatal("Next after Peek returned wrong sequence")
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "entity Order { id }"
	lx, _ := makeTestLexer(input)
	for _, tok := range lx.All() {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v covers %q, text %q", tok.Span, got, tok.Text)
		}
	}
}
