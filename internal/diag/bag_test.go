package diag

import (
	"testing"

	"ddd/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectSemicolon})
	if b.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatal("expected warnings")
	}
	b.Add(Diagnostic{Severity: SevError, Code: SemaUnknownFragment, Message: "first"})
	if ok := b.Add(Diagnostic{Severity: SevError, Code: SemaUnknownInclude}); ok {
		t.Fatal("expected limit to reject third diagnostic")
	}
	d, ok := b.FirstError()
	if !ok || d.Message != "first" {
		t.Fatalf("FirstError = %+v, %v", d, ok)
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for range 100 {
		b.Add(Diagnostic{})
	}
	if b.Len() != 100 {
		t.Fatalf("Len = %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectSemicolon, Primary: source.Span{Start: 10, End: 11}})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 2, End: 3}, Message: "x"})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 2, End: 3}, Message: "x"})
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Primary.Start != 2 {
		t.Errorf("first diagnostic should start at 2, got %d", items[0].Primary.Start)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynErrorNode:        "SYN2012",
		SemaUnknownInclude:  "SEM3002",
		IOWriteFileError:    "IO4002",
		ProjTemplateInvalid: "PRJ5002",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if SemaUnknownFragment.Title() != "Unknown fragment" {
		t.Errorf("Title = %q", SemaUnknownFragment.Title())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("orders.ddd", []byte("entity A {\n  missing\n}\n"))
	diags := []Diagnostic{{
		Severity: SevError,
		Code:     SemaUnknownFragment,
		Message:  "unknown fragment 'missing'",
		Primary:  source.Span{File: id, Start: 13, End: 20},
		Notes:    []Note{{Span: source.Span{File: id, Start: 0, End: 6}, Msg: "in entity\nA"}},
	}}
	got := FormatShort(diags, fs, true)
	want := "ERROR SEM3001 orders.ddd:2:3 unknown fragment 'missing'\nNOTE SEM3001 orders.ddd:1:1 in entity A"
	if got != want {
		t.Errorf("FormatShort =\n%s\nwant\n%s", got, want)
	}
}
