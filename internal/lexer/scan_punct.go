package lexer

import (
	"ddd/internal/diag"
	"ddd/internal/token"
)

var punct = [256]token.Kind{
	'=': token.Assign,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'?': token.Question,
	'!': token.Bang,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
}

// scanPunct emits single-byte punctuation. The notation has no multi-byte
// operators: `>>` in `List<List<int>>` must stay two tokens.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if k := punct[ch]; k != token.Invalid {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+text)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
