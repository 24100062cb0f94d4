package parser

import (
	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/token"
)

// parseQualifiedIdent разбирает `a.b.c` и возвращает по Ident-узлу на сегмент.
// При ошибке возвращает токен, на котором споткнулись.
func (p *Parser) parseQualifiedIdent() ([]ast.NodeID, token.Token, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
	if !ok {
		return nil, first, false
	}
	segs := []ast.NodeID{p.ident(first)}
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after '.'")
		if !ok {
			return nil, seg, false
		}
		segs = append(segs, p.ident(seg))
	}
	return segs, token.Token{}, true
}

// parseTypeRef разбирает `qident <T, ...> [] ?`. Текст узла — точный срез
// исходника, пробелы внутри сохраняются как есть.
func (p *Parser) parseTypeRef() (ast.NodeID, token.Token, bool) {
	start := p.lx.Peek().Span
	if _, bad, ok := p.parseQualifiedIdent(); !ok {
		return ast.NoNodeID, bad, false
	}
	if p.at(token.Lt) {
		p.advance()
		for {
			if _, bad, ok := p.parseTypeRef(); !ok {
				return ast.NoNodeID, bad, false
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if tok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close type arguments"); !ok {
			return ast.NoNodeID, tok, false
		}
	}
	for {
		switch {
		case p.at(token.LBracket):
			p.advance()
			if tok, ok := p.expect(token.RBracket, diag.SynExpectType, "expected ']' in array type"); !ok {
				return ast.NoNodeID, tok, false
			}
			continue
		case p.at(token.Question):
			p.advance()
			continue
		}
		break
	}
	sp := start.Cover(p.lastSpan)
	text := string(p.file.Content[sp.Start:sp.End])
	return p.node(ast.NodeTypeRef, text, sp), token.Token{}, true
}
