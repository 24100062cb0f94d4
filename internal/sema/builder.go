package sema

import (
	"strings"

	"ddd/internal/ast"
	"ddd/internal/diag"
	"ddd/internal/model"
)

// Options configure a build.
type Options struct {
	// Reporter, when set, receives the build error as a diagnostic.
	Reporter diag.Reporter
}

// Build interprets tree into a populated Context. The first error aborts the
// build and no Context is returned.
func Build(tree *ast.Tree, opts Options) (*model.Context, error) {
	b := builder{
		tree: tree,
		ctx:  model.NewContext(),
	}
	if err := b.run(); err != nil {
		if opts.Reporter != nil {
			opts.Reporter.Report(err.Code(), diag.SevError, err.Span, err.Message(), nil)
		}
		return nil, err
	}
	return b.ctx, nil
}

type builder struct {
	tree *ast.Tree
	ctx  *model.Context
}

func (b *builder) run() *Error {
	root := b.tree.Node(b.tree.Root)
	if root == nil {
		return nil
	}
	if root.Kind == ast.NodeError {
		return b.errorAt(KindSyntax, b.tree.Root)
	}
	for _, child := range root.Children {
		if err := b.walkDeclaration(child); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) walkDeclaration(id ast.NodeID) *Error {
	switch b.tree.Kind(id) {
	case ast.NodeNamespace:
		b.ctx.Namespace = b.joined(id)
	case ast.NodeExtern:
		b.ctx.Extern = b.tree.Text(b.tree.Child(id, 0))
	case ast.NodeUsing:
		b.ctx.Usings = append(b.ctx.Usings, b.joined(id))
	case ast.NodeFragment:
		b.ctx.DeclareFragment(b.childText(id, 0), model.Fragment{
			Type: b.childText(id, 1),
			Name: b.childText(id, 2),
		})
	case ast.NodeModifier:
		texts := b.tree.ChildTexts(id)
		if len(texts) > 0 {
			b.ctx.CurrentEntity().Modifiers.Declare(texts[0], texts[1:]...)
		}
	case ast.NodeEntity:
		return b.walkEntity(id)
	case ast.NodeType:
		return b.walkType(id)
	case ast.NodeError:
		return b.errorAt(KindSyntax, id)
	case ast.NodeInvalid, ast.NodeFile, ast.NodeBlock, ast.NodeFragmentRef, ast.NodeField,
		ast.NodeDisplay, ast.NodeIdent, ast.NodeTypeRef, ast.NodeString:
		return b.errorAt(KindUnexpectedToken, id)
	default:
		return b.errorAt(KindUnexpectedToken, id)
	}
	return nil
}

// walkEntity collects the field members of the entity block, pushes the entity
// and visits the nested declarations in its scope.
func (b *builder) walkEntity(id ast.NodeID) *Error {
	children := b.tree.Children(id)
	entity := model.NewEntity(b.childText(id, 0), b.ctx.CurrentEntity())
	for _, m := range b.tree.Children(b.tree.Child(id, 1)) {
		members, err := b.resolveMember(m)
		if err != nil {
			return err
		}
		for _, member := range members {
			if member.IsField() {
				entity.FixedMembers = append(entity.FixedMembers, member)
			}
		}
	}
	b.ctx.PushEntity(entity)

	if len(children) > 2 {
		for _, nested := range children[2:] {
			if err := b.walkDeclaration(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) walkType(id ast.NodeID) *Error {
	children := b.tree.Children(id)
	current := b.ctx.CurrentEntity()
	name := b.childText(id, 1)

	var modifiers []model.Modifier
	if len(children) > 3 {
		for _, ref := range children[3:] {
			mod := b.tree.Text(ref)
			values := current.Modifiers.Values(mod)
			if len(values) == 0 {
				err := b.errorAt(KindUndeclaredModifierReference, ref)
				err.Name = mod
				err.Entity = current.Name
				return err
			}
			for _, v := range values {
				modifiers = append(modifiers, model.Modifier{Name: mod, Value: v})
			}
		}
	}

	msg := model.NewMessage(b.childText(id, 0), name, modifiers)
	if msg.HasModifiers() {
		msg.AddMembers(current.FixedMembers...)
	}

	var reprs []model.Member
	for _, m := range b.tree.Children(b.tree.Child(id, 2)) {
		members, err := b.resolveMember(m)
		if err != nil {
			return err
		}
		for _, member := range members {
			if member.IsField() {
				msg.AddMembers(member)
			} else {
				reprs = append(reprs, member)
			}
		}
	}
	switch len(reprs) {
	case 0:
	case 1:
		msg.StringRepresentation = reprs[0].Name
	default:
		err := b.errorAt(KindMultipleStringRepresentations, id)
		err.Name = name
		return err
	}

	b.ctx.AddContract(msg)
	return nil
}

func (b *builder) joined(id ast.NodeID) string {
	return strings.Join(b.tree.ChildTexts(id), ".")
}

func (b *builder) childText(id ast.NodeID, i int) string {
	return b.tree.Text(b.tree.Child(id, i))
}

func (b *builder) errorAt(kind ErrorKind, id ast.NodeID) *Error {
	err := &Error{Kind: kind}
	if n := b.tree.Node(id); n != nil {
		err.Line = n.Line
		err.Span = n.Span
		err.Text = n.Text
	}
	return err
}
