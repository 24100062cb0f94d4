package sema

import (
	"ddd/internal/ast"
	"ddd/internal/model"
)

// includeType is the field type that splices in the members of another message.
const includeType = "ref"

// resolveMember turns one block child into zero or more members, in order.
func (b *builder) resolveMember(id ast.NodeID) ([]model.Member, *Error) {
	switch b.tree.Kind(id) {
	case ast.NodeFragmentRef:
		fid := b.childText(id, 0)
		fragment, ok := b.ctx.Fragments[fid]
		if !ok {
			err := b.errorAt(KindUnknownFragment, id)
			err.Name = fid
			return nil, err
		}
		return []model.Member{fragment.Member(fid)}, nil
	case ast.NodeField:
		typ, name := b.childText(id, 0), b.childText(id, 1)
		if typ != includeType {
			return []model.Member{model.NewField(typ, name, name)}, nil
		}
		match := b.ctx.MessagesNamed(name)
		if len(match) != 1 {
			err := b.errorAt(KindUnknownInclude, id)
			err.Name = name
			return nil, err
		}
		// copy so later appends to the including message never alias the target
		return append([]model.Member(nil), match[0].Members...), nil
	case ast.NodeDisplay:
		return []model.Member{model.NewStringRepresentation(b.childText(id, 0))}, nil
	case ast.NodeError:
		return nil, b.errorAt(KindSyntax, id)
	case ast.NodeInvalid, ast.NodeFile, ast.NodeNamespace, ast.NodeExtern, ast.NodeUsing,
		ast.NodeFragment, ast.NodeModifier, ast.NodeEntity, ast.NodeType, ast.NodeBlock,
		ast.NodeIdent, ast.NodeTypeRef, ast.NodeString:
		return nil, b.errorAt(KindUnexpectedToken, id)
	default:
		return nil, b.errorAt(KindUnexpectedToken, id)
	}
}
