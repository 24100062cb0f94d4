package ast

import (
	"ddd/internal/source"
)

type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// NodeKind is the type tag of a parse tree node. The set is closed: consumers
// switch over every kind explicitly.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeFile
	NodeNamespace   // Ident...
	NodeExtern      // String | Ident
	NodeUsing       // Ident...
	NodeFragment    // Ident(id), TypeRef, Ident(name)
	NodeModifier    // Ident(name), TypeRef(value)...
	NodeEntity      // Ident(name), Block, decl...
	NodeType        // Ident(keyword), Ident(name), Block, Ident(modifier ref)...
	NodeBlock       // member...
	NodeFragmentRef // Ident(id)
	NodeField       // TypeRef, Ident(name)
	NodeDisplay     // Ident(name)
	NodeIdent
	NodeTypeRef
	NodeString
	NodeError // syntax error marker; Text is the offending token
)

var nodeKindNames = [...]string{
	NodeInvalid:     "Invalid",
	NodeFile:        "File",
	NodeNamespace:   "Namespace",
	NodeExtern:      "Extern",
	NodeUsing:       "Using",
	NodeFragment:    "Fragment",
	NodeModifier:    "Modifier",
	NodeEntity:      "Entity",
	NodeType:        "Type",
	NodeBlock:       "Block",
	NodeFragmentRef: "FragmentRef",
	NodeField:       "Field",
	NodeDisplay:     "Display",
	NodeIdent:       "Ident",
	NodeTypeRef:     "TypeRef",
	NodeString:      "String",
	NodeError:       "Error",
}

// IsLeaf reports whether the kind carries its meaning in Text alone.
func (k NodeKind) IsLeaf() bool {
	switch k {
	case NodeIdent, NodeTypeRef, NodeString, NodeError:
		return true
	default:
		return false
	}
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Invalid"
}

// Node is one parse tree node: type tag, literal text, ordered children and
// location. Nodes are immutable once the parser returns the tree.
type Node struct {
	Kind     NodeKind
	Text     string
	Span     source.Span
	Line     uint32
	Children []NodeID
}
