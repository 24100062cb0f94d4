package parser

import (
	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/source"
	"ddd/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (tok,false),
// где tok — тот токен, что стоит на его месте.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	peek := p.lx.Peek()
	p.errAt(code, peek, msg+", found "+describe(peek))
	return peek, false
}

// errAt reports a syntax error at tok. Invalid tokens were already reported
// by the lexer and are not reported twice.
func (p *Parser) errAt(code diag.Code, tok token.Token, msg string) bool {
	if tok.Kind == token.Invalid {
		return false
	}
	sp := tok.Span
	if tok.Kind == token.EOF {
		sp = p.getDiagnosticSpan()
	}
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// node allocates a tree node with the line derived from its span.
func (p *Parser) node(kind ast.NodeKind, text string, sp source.Span, children ...ast.NodeID) ast.NodeID {
	return p.tree.New(kind, text, sp, p.file.Line(sp.Start), children...)
}

func (p *Parser) ident(tok token.Token) ast.NodeID {
	return p.node(ast.NodeIdent, tok.Text, tok.Span)
}

// errorNode marks a broken construct; its text is the offending token.
func (p *Parser) errorNode(tok token.Token) ast.NodeID {
	return p.node(ast.NodeError, tok.Text, tok.Span)
}

// cover extends the span of id to end at the last consumed token.
func (p *Parser) cover(id ast.NodeID) ast.NodeID {
	if n := p.tree.Node(id); n != nil {
		n.Span = n.Span.Cover(p.lastSpan)
	}
	return id
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.StringLit:
		return "string " + tok.Text
	default:
		return "'" + tok.Text + "'"
	}
}
