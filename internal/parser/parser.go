package parser

import (
	"slices"

	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/lexer"
	"ddd/internal/source"
	"ddd/internal/token"
)

// DefaultKeywords are the message keywords recognised when Options.Keywords is empty.
var DefaultKeywords = []string{"command", "event"}

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Keywords is the set of identifiers that start a message declaration.
	Keywords []string
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	tree     *ast.Tree
	opts     Options
	keywords []string
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	kw := opts.Keywords
	if len(kw) == 0 {
		kw = DefaultKeywords
	}
	p := Parser{
		lx:       lx,
		file:     lx.File(),
		tree:     ast.NewTree(lx.File().ID, uint(len(lx.File().Content)/4)),
		opts:     opts,
		keywords: kw,
		lastSpan: lx.EmptySpan(),
	}

	p.parseFile()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		Tree: p.tree,
		Bag:  bag,
	}
}

// Parse lexes and parses file with a single reporter for both stages.
func Parse(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(lx, opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// isMessageKeyword reports whether tok opens a message declaration.
func (p *Parser) isMessageKeyword(tok token.Token) bool {
	return tok.Kind == token.Ident && slices.Contains(p.keywords, tok.Text)
}

// atDeclStart отличается от token.IsDeclStarter: обычный идентификатор
// начинает декларацию только если он входит в набор ключевых слов сообщений.
func (p *Parser) atDeclStart() bool {
	tok := p.lx.Peek()
	if tok.Kind == token.Ident {
		return p.isMessageKeyword(tok)
	}
	return tok.IsDeclStarter()
}

// parseFile — основной цикл верхнего уровня: пока не EOF — parseDecl.
func (p *Parser) parseFile() {
	start := p.lx.Peek().Span
	root := p.tree.New(ast.NodeFile, p.file.Path, start, 1)
	p.tree.Root = root
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			tok := p.advance()
			p.errAt(diag.SynUnexpectedTopLevel, tok, "unmatched '}' at top level")
			p.tree.Append(root, p.errorNode(tok))
			continue
		}
		p.tree.Append(root, p.parseDecl())
	}
	if n := p.tree.Node(root); n != nil {
		n.Span = start.Cover(p.lastSpan)
	}
}

// parseDecl выбирает по первому токену нужный распознаватель декларации.
// При ошибке возвращает Error-узел и пересинхронизируется.
func (p *Parser) parseDecl() ast.NodeID {
	tok := p.lx.Peek()
	var (
		id ast.NodeID
		ok bool
	)
	switch tok.Kind {
	case token.KwNamespace:
		id, ok = p.parseNamespace()
	case token.KwExtern:
		id, ok = p.parseExtern()
	case token.KwUsing:
		id, ok = p.parseUsing()
	case token.KwFragment:
		id, ok = p.parseFragment()
	case token.KwModifier:
		id, ok = p.parseModifier()
	case token.KwEntity:
		id, ok = p.parseEntity()
	case token.Ident:
		if p.isMessageKeyword(tok) {
			id, ok = p.parseTypeDecl()
			break
		}
		p.errAt(diag.SynUnexpectedTopLevel, tok, "expected declaration, found '"+tok.Text+"'")
		p.advance()
	default:
		p.errAt(diag.SynUnexpectedTopLevel, tok, "expected declaration, found "+describe(tok))
		p.advance()
	}
	if ok {
		return id
	}
	if !id.IsValid() {
		id = p.errorNode(tok)
	}
	p.resyncDecl()
	return id
}
