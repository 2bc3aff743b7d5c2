package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Visitor receives enter/exit callbacks during a Walk.
//
// Enter may return false to skip the node's subtree; Exit is not called for
// skipped subtrees.
type Visitor interface {
	Enter(n *sitter.Node) bool
	Exit(n *sitter.Node)
}

// Walk performs a single depth-first, order-preserving traversal over the
// named nodes of the tree. Visitation is strictly pre-order: a node's Enter
// always fires before any of its children are entered, and children are
// visited in source order. The escape analysis relies on this guarantee to
// classify a call expression before descending into its callback arguments.
func Walk(root *sitter.Node, v Visitor) {
	if root == nil {
		return
	}
	if !v.Enter(root) {
		return
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		Walk(root.NamedChild(i), v)
	}
	v.Exit(root)
}
