package ast

import (
	"errors"

	"orbit/internal/diag"
)

// SkipChildren returned from a Walk callback prunes the current subtree.
var SkipChildren = errors.New("ast: skip children")

// Walk visits root and its descendants in pre-order. fn may return
// SkipChildren to prune; any other error stops the walk and is returned.
// The tree must be acyclic.
func Walk[V any](root Node[V], fn func(Node[V]) error) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range root.Children() {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// PostOrder visits children before their parent.
func PostOrder[V any](root Node[V], fn func(Node[V]) error) error {
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if err := PostOrder(c, fn); err != nil {
			return err
		}
	}
	return fn(root)
}

// CheckTree verifies that no node is reachable twice from root, which rules
// out both shared subtrees and cycles.
func CheckTree[V any](root Node[V]) error {
	seen := make(map[NodeID]struct{})
	var check func(n Node[V]) error
	check = func(n Node[V]) error {
		if n == nil {
			return nil
		}
		if _, dup := seen[n.ID()]; dup {
			return diag.Fatalf(diag.ASTNotATree, "%s node %s is reachable more than once", n.Kind(), n.ID())
		}
		seen[n.ID()] = struct{}{}
		for _, c := range n.Children() {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root)
}

// Count returns the number of nodes under root, root included.
func Count[V any](root Node[V]) int {
	n := 0
	_ = Walk(root, func(Node[V]) error {
		n++
		return nil
	})
	return n
}
