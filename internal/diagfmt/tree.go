package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ddd/internal/ast"
)

// FormatTreePretty печатает дерево разбора с отступами, по узлу на строку:
// <Kind> "<text>" @<line>
func FormatTreePretty(w io.Writer, tree *ast.Tree) error {
	var b strings.Builder
	tree.Walk(tree.Root, func(id ast.NodeID, depth int) bool {
		n := tree.Node(id)
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Kind.String())
		if n.Text != "" {
			fmt.Fprintf(&b, " %q", n.Text)
		}
		fmt.Fprintf(&b, " @%d\n", n.Line)
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}

// NodeJSON is the nested JSON form of a tree node.
type NodeJSON struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Line     uint32     `json:"line"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Children []NodeJSON `json:"children,omitempty"`
}

func nodeJSON(tree *ast.Tree, id ast.NodeID) NodeJSON {
	n := tree.Node(id)
	out := NodeJSON{
		Kind:  n.Kind.String(),
		Text:  n.Text,
		Line:  n.Line,
		Start: n.Span.Start,
		End:   n.Span.End,
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, nodeJSON(tree, child))
	}
	return out
}

// FormatTreeJSON выводит дерево в JSON формате
func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeJSON(tree, tree.Root))
}
