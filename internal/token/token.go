package token

import (
	"ddd/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwNamespace, KwExtern, KwUsing, KwFragment, KwModifier, KwEntity, KwDisplay:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Assign, Semicolon, Comma, Dot, Question, Bang, LParen, RParen,
		LBrace, RBrace, LBracket, RBracket, Lt, Gt:
		return true
	default:
		return false
	}
}

// IsDeclStarter reports whether the token can begin a declaration.
// Message declarations start with a plain identifier, so Ident counts.
func (t Token) IsDeclStarter() bool {
	switch t.Kind {
	case KwNamespace, KwExtern, KwUsing, KwFragment, KwModifier, KwEntity, Ident:
		return true
	default:
		return false
	}
}
