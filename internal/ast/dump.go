package ast

import (
	"strings"
)

// Sexpr renders the subtree at id as a compact s-expression:
// leaf kinds print as Kind:text, everything else as (Kind children...)
// or a bare Kind when it has no children.
func (t *Tree) Sexpr(id NodeID) string {
	var b strings.Builder
	t.sexpr(&b, id)
	return b.String()
}

func (t *Tree) sexpr(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	if len(n.Children) == 0 {
		b.WriteString(n.Kind.String())
		if n.Kind.IsLeaf() {
			b.WriteByte(':')
			b.WriteString(n.Text)
		}
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		t.sexpr(b, c)
	}
	b.WriteByte(')')
}
