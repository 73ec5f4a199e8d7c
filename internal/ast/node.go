// Package ast provides the node and visitor scaffolding for tree-shaped
// intermediate representations.
//
// A node family is defined by its visitor interface V, with one method per
// node variant. Every node of the family implements Node[V] and dispatches
// itself in Accept by calling the method for its own variant, so the set of
// variants a visitor must handle is checked by the compiler. Nodes never
// recurse on their own: a visitor decides whether, when and in what order to
// visit children.
//
// Nodes own their children and form a strict tree; CheckTree verifies that.
package ast

import (
	"slices"

	"orbit/internal/diag"
)

// Kind names a node variant, e.g. "int" or "op".
type Kind string

// Node is a tree element of the family whose visitor interface is V.
type Node[V any] interface {
	ID() NodeID
	Kind() Kind
	Data() *DataSet
	Children() []Node[V]
	Accept(v V) error
}

// Base implements everything in Node except Accept. Embed it in concrete
// nodes and use those by pointer.
type Base[V any] struct {
	id       NodeID
	kind     Kind
	data     DataSet
	children []Node[V]
}

// NewBase creates a base with a fresh identity.
func NewBase[V any](kind Kind, children ...Node[V]) Base[V] {
	return Base[V]{
		id:       NewNodeID(),
		kind:     kind,
		children: slices.Clone(children),
	}
}

func (b *Base[V]) ID() NodeID     { return b.id }
func (b *Base[V]) Kind() Kind     { return b.kind }
func (b *Base[V]) Data() *DataSet { return &b.data }

// Children returns the children in order. The slice is a copy.
func (b *Base[V]) Children() []Node[V] { return slices.Clone(b.children) }

func (b *Base[V]) NumChildren() int { return len(b.children) }

// Child returns the i-th child, or nil when out of range.
func (b *Base[V]) Child(i int) Node[V] {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// AppendChild adds n as the last child.
func (b *Base[V]) AppendChild(n Node[V]) {
	b.children = append(b.children, n)
}

// Attach adds d to n's data set. See DataSet.Add.
func Attach[V any](n Node[V], d NodeData) bool {
	return n.Data().Add(d)
}

// Same reports whether a and b are the same node. Structural equality is
// never considered.
func Same[V any](a, b Node[V]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// Unhandled is what a visitor returns for a node variant it refuses to
// process. It is always fatal.
func Unhandled(kind Kind, id NodeID) *diag.Diagnostic {
	return diag.Fatalf(diag.ASTUnhandledNode, "visitor cannot handle %s node %s", kind, id)
}
