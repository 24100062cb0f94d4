package driver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ddd/internal/buildpipeline"
	"ddd/internal/diag"
	"ddd/internal/render"
	"ddd/internal/sema"
)

const orderSource = `namespace Shop.Orders;
fragment id = string OrderId;
entity Order { id } {
	modifier ? = IOrderCommand;
	command Place (?) { int Qty; display Qty }
}
`

func compile(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Compile(context.Background(), "test.ddd", []byte(src), Options{Templates: render.DefaultTemplates()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return res
}

func TestCompileProducesOutput(t *testing.T) {
	res := compile(t, orderSource)
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	for _, want := range []string{
		"public interface IOrderAggregate",
		"void When(Place c);",
		"public partial record Place : IOrderCommand",
		"[DataMember(Order = 1)] public string OrderId { get; init; }",
		"[DataMember(Order = 2)] public int Qty { get; init; }",
		`public override string ToString() => $"{Qty}";`,
	} {
		if !strings.Contains(res.Output, want) {
			t.Errorf("output lacks %q:\n%s", want, res.Output)
		}
	}
	if res.Model == nil || len(res.Model.Contracts) != 1 {
		t.Fatalf("model not populated: %+v", res.Model)
	}
	for _, phase := range []string{"parse", "build", "render"} {
		found := false
		for _, p := range res.Timer.Phases() {
			if p.Name == phase {
				found = true
			}
		}
		if !found {
			t.Errorf("phase %q not timed", phase)
		}
	}
}

func TestCompileSemanticError(t *testing.T) {
	res := compile(t, "entity A { missing }")
	if !errors.Is(res.Err, sema.ErrUnknownFragment) {
		t.Fatalf("expected unknown fragment, got %v", res.Err)
	}
	if res.Output != "" || res.Model != nil {
		t.Fatal("failed compile must not produce output or model")
	}
	d, ok := res.Bag.FirstError()
	if !ok || d.Code != diag.SemaUnknownFragment {
		t.Fatalf("expected %v diagnostic, got %v (ok=%v)", diag.SemaUnknownFragment, d.Code, ok)
	}
}

func TestCompileSyntaxErrorReportedOnce(t *testing.T) {
	res := compile(t, "entity A { id\n")
	if !errors.Is(res.Err, sema.ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", res.Err)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynErrorNode {
			t.Fatalf("build error duplicated a parser diagnostic: %s", d.Message)
		}
	}
}

func TestCompileLexicalErrorIsSyntaxError(t *testing.T) {
	res := compile(t, "namespace A;\n/* never closed")
	if !errors.Is(res.Err, sema.ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", res.Err)
	}
	var se *sema.Error
	if !errors.As(res.Err, &se) || se.Line != 2 {
		t.Fatalf("expected error on line 2, got %+v", res.Err)
	}
}

func TestCompileCustomKeywords(t *testing.T) {
	res, err := Compile(context.Background(), "q.ddd", []byte("query Find { int Id }"), Options{
		Keywords:  []string{"query"},
		Templates: render.DefaultTemplates(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.Model.Contracts[0].Kind != "query" {
		t.Fatalf("custom keyword not honoured: %v", res.Err)
	}
}

func TestCompileInvalidTemplates(t *testing.T) {
	tpl := render.DefaultTemplates()
	tpl.Member = "{7}"
	if _, err := Compile(context.Background(), "x.ddd", nil, Options{Templates: tpl}); err == nil {
		t.Fatal("expected template error")
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compile(ctx, "x.ddd", nil, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompileEmitsStageEvents(t *testing.T) {
	rec := &buildpipeline.Recorder{}
	_, err := Compile(context.Background(), "x.ddd", []byte(orderSource), Options{
		Templates: render.DefaultTemplates(),
		Sink:      rec,
	})
	if err != nil {
		t.Fatal(err)
	}
	var done []buildpipeline.Stage
	for _, evt := range rec.Events() {
		if evt.Status == buildpipeline.StatusDone {
			done = append(done, evt.Stage)
		}
	}
	want := []buildpipeline.Stage{buildpipeline.StageParse, buildpipeline.StageBuild, buildpipeline.StageRender}
	if len(done) != len(want) {
		t.Fatalf("done stages = %v, want %v", done, want)
	}
	for i := range want {
		if done[i] != want[i] {
			t.Fatalf("done stages = %v, want %v", done, want)
		}
	}
}

func TestTokenizeAndParse(t *testing.T) {
	_, toks, bag := Tokenize("t.ddd", []byte("namespace A;"), 0)
	if bag.Len() != 0 || len(toks) != 4 {
		t.Fatalf("tokens = %d, diagnostics = %d", len(toks), bag.Len())
	}
	_, tree, bag := Parse("t.ddd", []byte("namespace A.B;"), nil, 0)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if got := tree.Sexpr(tree.Root); got != "(File (Namespace Ident:A Ident:B))" {
		t.Fatalf("tree = %s", got)
	}
}
