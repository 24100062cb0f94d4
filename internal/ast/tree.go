package ast

import (
	"ddd/internal/source"
)

// Tree owns every node of one parsed file.
type Tree struct {
	Nodes *Arena[Node]
	Root  NodeID
	File  source.FileID
}

func NewTree(file source.FileID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Tree{
		Nodes: NewArena[Node](capHint),
		File:  file,
	}
}

// New allocates a node and returns its id.
func (t *Tree) New(kind NodeKind, text string, sp source.Span, line uint32, children ...NodeID) NodeID {
	return NodeID(t.Nodes.Allocate(Node{
		Kind:     kind,
		Text:     text,
		Span:     sp,
		Line:     line,
		Children: children,
	}))
}

// Append adds child to the end of parent's children.
func (t *Tree) Append(parent, child NodeID) {
	if n := t.Node(parent); n != nil {
		n.Children = append(n.Children, child)
	}
}

// Node returns the node for id, nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind is a nil-safe shortcut.
func (t *Tree) Kind(id NodeID) NodeKind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return NodeInvalid
}

// Text is a nil-safe shortcut.
func (t *Tree) Text(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.Text
	}
	return ""
}

// Children returns the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Child returns the i-th child or NoNodeID.
func (t *Tree) Child(id NodeID, i int) NodeID {
	ch := t.Children(id)
	if i < 0 || i >= len(ch) {
		return NoNodeID
	}
	return ch[i]
}

// ChildTexts collects the text of every child of id.
func (t *Tree) ChildTexts(id NodeID) []string {
	ch := t.Children(id)
	out := make([]string, len(ch))
	for i, c := range ch {
		out[i] = t.Text(c)
	}
	return out
}

// Walk visits id and its descendants depth-first, pre-order. Returning false
// from fn skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	var visit func(NodeID, int)
	visit = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range t.Children(id) {
			visit(c, depth+1)
		}
	}
	visit(id, 0)
}

// Errors returns every NodeError in document order.
func (t *Tree) Errors() []NodeID {
	var out []NodeID
	t.Walk(t.Root, func(id NodeID, _ int) bool {
		if t.Kind(id) == NodeError {
			out = append(out, id)
		}
		return true
	})
	return out
}
