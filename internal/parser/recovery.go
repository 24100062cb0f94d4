package parser

import (
	"ddd/internal/token"
)

// resyncDecl пропускает токены до ';' (съедая его), до '}' или до начала
// следующей декларации. Вложенные {...} пропускаются целиком.
func (p *Parser) resyncDecl() {
	depth := 0
	for {
		switch {
		case p.at(token.EOF):
			return
		case p.at(token.LBrace):
			depth++
		case p.at(token.RBrace):
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case depth > 0:
		case p.at(token.Semicolon):
			p.advance()
			return
		case p.atDeclStart():
			return
		}
		p.advance()
	}
}

// resyncMember пропускает токены до разделителя членов (съедая его) или до '}'.
func (p *Parser) resyncMember() {
	for {
		switch {
		case p.at(token.EOF), p.at(token.RBrace):
			return
		case p.atOr(token.Semicolon, token.Comma):
			p.advance()
			return
		case p.atOr(token.KwNamespace, token.KwExtern, token.KwUsing, token.KwFragment, token.KwModifier, token.KwEntity):
			return
		}
		p.advance()
	}
}
