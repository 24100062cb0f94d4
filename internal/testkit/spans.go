package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ddd/internal/ast"
	"ddd/internal/source"
)

// CheckTreeInvariants runs a minimal set of invariants on a parsed file:
// 1) every node span lies within the file content
// 2) every well-formed top-level declaration lies within the File node span
// 3) every node below the root carries the line of its span start
func CheckTreeInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root)
	if root == nil || root.Kind != ast.NodeFile {
		return fmt.Errorf("root is not a File node")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) и 3)
	var walkErr error
	tree.Walk(tree.Root, func(id ast.NodeID, depth int) bool {
		n := tree.Node(id)
		if n.Span.Start > n.Span.End || n.Span.End > lenContent {
			walkErr = fmt.Errorf("%s node %d span %v outside content of %d bytes", n.Kind, id, n.Span, lenContent)
			return false
		}
		if depth > 0 {
			if want := sf.Line(n.Span.Start); n.Line != want {
				walkErr = fmt.Errorf("%s node %d on line %d, span starts on line %d", n.Kind, id, n.Line, want)
				return false
			}
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	// 2) declarations inside the file span
	for _, id := range root.Children {
		n := tree.Node(id)
		if n.Kind == ast.NodeError {
			continue
		}
		if n.Span.Start < root.Span.Start || n.Span.End > root.Span.End {
			return fmt.Errorf("%s span %v is outside file span %v", n.Kind, n.Span, root.Span)
		}
	}
	return nil
}
