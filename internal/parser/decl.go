package parser

import (
	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/token"
)

func (p *Parser) fail(tok token.Token) (ast.NodeID, bool) {
	return p.errorNode(tok), false
}

// parseNamespace разбирает `namespace qident ;`.
func (p *Parser) parseNamespace() (ast.NodeID, bool) {
	kw := p.advance()
	segs, bad, ok := p.parseQualifiedIdent()
	if !ok {
		return p.fail(bad)
	}
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after namespace"); !ok {
		return p.fail(tok)
	}
	return p.cover(p.node(ast.NodeNamespace, kw.Text, kw.Span, segs...)), true
}

// parseUsing разбирает `using qident ;`.
func (p *Parser) parseUsing() (ast.NodeID, bool) {
	kw := p.advance()
	segs, bad, ok := p.parseQualifiedIdent()
	if !ok {
		return p.fail(bad)
	}
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after using"); !ok {
		return p.fail(tok)
	}
	return p.cover(p.node(ast.NodeUsing, kw.Text, kw.Span, segs...)), true
}

// parseExtern разбирает `extern "Name" ;` или `extern Name ;`.
// Строковый литерал сохраняется вместе с кавычками.
func (p *Parser) parseExtern() (ast.NodeID, bool) {
	kw := p.advance()
	var child ast.NodeID
	switch tok := p.lx.Peek(); tok.Kind {
	case token.StringLit:
		p.advance()
		child = p.node(ast.NodeString, tok.Text, tok.Span)
	case token.Ident:
		p.advance()
		child = p.ident(tok)
	default:
		p.errAt(diag.SynExpectExternName, tok, "expected string or identifier after extern, found "+describe(tok))
		return p.fail(tok)
	}
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern"); !ok {
		return p.fail(tok)
	}
	return p.cover(p.node(ast.NodeExtern, kw.Text, kw.Span, child)), true
}

// parseFragment разбирает `fragment id = Type Name ;`.
func (p *Parser) parseFragment() (ast.NodeID, bool) {
	kw := p.advance()
	id, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected fragment identifier")
	if !ok {
		return p.fail(id)
	}
	if tok, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after fragment identifier"); !ok {
		return p.fail(tok)
	}
	typ, bad, ok := p.parseTypeRef()
	if !ok {
		return p.fail(bad)
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected fragment member name")
	if !ok {
		return p.fail(name)
	}
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after fragment"); !ok {
		return p.fail(tok)
	}
	return p.cover(p.node(ast.NodeFragment, kw.Text, kw.Span, p.ident(id), typ, p.ident(name))), true
}

// parseModifier разбирает `modifier name = T1, T2 ;`. Имя может быть `?` или `!`.
func (p *Parser) parseModifier() (ast.NodeID, bool) {
	kw := p.advance()
	name, ok := p.parseModifierName()
	if !ok {
		return p.fail(name)
	}
	if tok, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after modifier name"); !ok {
		return p.fail(tok)
	}
	children := []ast.NodeID{p.ident(name)}
	for {
		typ, bad, ok := p.parseTypeRef()
		if !ok {
			return p.fail(bad)
		}
		children = append(children, typ)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after modifier values"); !ok {
		return p.fail(tok)
	}
	return p.cover(p.node(ast.NodeModifier, kw.Text, kw.Span, children...)), true
}

func (p *Parser) parseModifierName() (token.Token, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.Question, token.Bang:
		return p.advance(), true
	}
	p.errAt(diag.SynExpectIdentifier, tok, "expected modifier name, found "+describe(tok))
	return tok, false
}

// parseEntity разбирает `entity Name { members } { decls }`; второй блок необязателен.
func (p *Parser) parseEntity() (ast.NodeID, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected entity name")
	if !ok {
		return p.fail(name)
	}
	block, ok := p.parseBlock()
	if !ok {
		return block, false
	}
	children := []ast.NodeID{p.ident(name), block}
	if p.at(token.LBrace) {
		p.advance()
		for !p.atOr(token.RBrace, token.EOF) {
			children = append(children, p.parseDecl())
		}
		if tok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close entity declarations"); !ok {
			children = append(children, p.errorNode(tok))
		}
	}
	return p.cover(p.node(ast.NodeEntity, kw.Text, kw.Span, children...)), true
}

// parseTypeDecl разбирает `command Name (mod, ...) { members }`.
// Дети: ключевое слово, имя, блок, затем ссылки на модификаторы.
func (p *Parser) parseTypeDecl() (ast.NodeID, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+kw.Text+" name")
	if !ok {
		return p.fail(name)
	}
	var refs []ast.NodeID
	if p.at(token.LParen) {
		p.advance()
		for {
			mod, ok := p.parseModifierName()
			if !ok {
				return p.fail(mod)
			}
			refs = append(refs, p.ident(mod))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if tok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after modifier list"); !ok {
			return p.fail(tok)
		}
	}
	block, ok := p.parseBlock()
	if !ok {
		return block, false
	}
	children := append([]ast.NodeID{p.ident(kw), p.ident(name), block}, refs...)
	return p.cover(p.node(ast.NodeType, kw.Text, kw.Span, children...)), true
}
