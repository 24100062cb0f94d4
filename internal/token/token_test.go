package token_test

import (
	"testing"

	"ddd/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want token.Kind
		ok   bool
	}{
		{"namespace", token.KwNamespace, true},
		{"entity", token.KwEntity, true},
		{"display", token.KwDisplay, true},
		{"Entity", 0, false},
		{"command", 0, false},
		{"ref", 0, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(token.Token{Kind: token.KwUsing}).IsKeyword() {
		t.Error("using must be a keyword")
	}
	if (token.Token{Kind: token.Ident}).IsKeyword() {
		t.Error("ident must not be a keyword")
	}
	if !(token.Token{Kind: token.Question}).IsPunct() {
		t.Error("? must be punctuation")
	}
	if !(token.Token{Kind: token.Ident}).IsDeclStarter() {
		t.Error("ident starts message declarations")
	}
	if (token.Token{Kind: token.KwDisplay}).IsDeclStarter() {
		t.Error("display is a member marker, not a declaration")
	}
}

func TestKindString(t *testing.T) {
	if got := token.LBrace.String(); got != "LBrace" {
		t.Errorf("LBrace.String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("unknown kind = %q", got)
	}
}
