package jsast

import (
	"cmp"
	"slices"
)

// WalkFunc is called for each node in pre-order. Returning false skips the
// node's children.
type WalkFunc func(n *Node) bool

// Walk visits root and all of its descendants, children in source order.
func Walk(root *Node, fn WalkFunc) {
	if root == nil || !fn(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, fn)
	}
}

// Children returns the nodes of every slot ordered by start offset.
func (n *Node) Children() []*Node {
	var children []*Node
	for _, f := range n.Fields() {
		children = append(children, n.List(f)...)
	}
	slices.SortStableFunc(children, func(a, b *Node) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return children
}

// Find returns the first node in pre-order for which match returns true.
func Find(root *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
