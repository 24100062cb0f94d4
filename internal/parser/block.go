package parser

import (
	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/token"
)

// parseBlock разбирает `{ member (; member)* }`. Разделитель — ';' или ','.
// Сломанные члены превращаются в Error-узлы внутри блока, поэтому блок
// возвращается даже при ошибках; false только если нет открывающей скобки.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return p.errorNode(open), false
	}
	block := p.node(ast.NodeBlock, open.Text, open.Span)
	for {
		if p.at(token.RBrace) {
			p.advance()
			break
		}
		if p.at(token.EOF) || p.atNestedDecl() {
			tok := p.lx.Peek()
			p.errAt(diag.SynUnclosedBrace, tok, "expected '}' to close block, found "+describe(tok))
			p.tree.Append(block, p.errorNode(tok))
			break
		}
		member, ok := p.parseMember()
		p.tree.Append(block, member)
		if !ok {
			p.resyncMember()
			continue
		}
		if p.atOr(token.Semicolon, token.Comma) {
			p.advance()
			continue
		}
		if p.atOr(token.RBrace, token.EOF) || p.atNestedDecl() {
			continue
		}
		tok := p.lx.Peek()
		p.errAt(diag.SynExpectSemicolon, tok, "expected ';' or ',' between members, found "+describe(tok))
		p.tree.Append(block, p.errorNode(tok))
		p.resyncMember()
	}
	return p.cover(block), true
}

// atNestedDecl: внутри блока членов встретилось ключевое слово декларации.
func (p *Parser) atNestedDecl() bool {
	return p.atOr(token.KwNamespace, token.KwExtern, token.KwUsing, token.KwFragment, token.KwModifier, token.KwEntity)
}

// parseMember разбирает один член блока:
//
//	display Name  -> Display(Ident)
//	Type Name     -> Field(TypeRef, Ident)
//	Ident         -> FragmentRef(Ident)
func (p *Parser) parseMember() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwDisplay:
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after display")
		if !ok {
			return p.fail(name)
		}
		return p.cover(p.node(ast.NodeDisplay, tok.Text, tok.Span, p.ident(name))), true
	case token.Ident:
	default:
		p.errAt(diag.SynExpectType, tok, "expected member, found "+describe(tok))
		return p.fail(tok)
	}

	typ, bad, ok := p.parseTypeRef()
	if !ok {
		return p.fail(bad)
	}
	if p.atOr(token.Semicolon, token.Comma, token.RBrace) && p.tree.Text(typ) == tok.Text {
		id := p.ident(tok)
		return p.node(ast.NodeFragmentRef, tok.Text, tok.Span, id), true
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
	if !ok {
		return p.fail(name)
	}
	field := p.node(ast.NodeField, name.Text, tok.Span, typ, p.ident(name))
	return p.cover(field), true
}
