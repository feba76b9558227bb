// Package autoviv provides a nested mapping that creates missing levels on
// access, so deep paths can be written without declaring each level first:
//
//	idx := autoviv.New[string, float64]()
//	idx.Get("c").Get("glc__D_c").Set("EX_glc", -1)
//
// Reads through Get are not pure: a missing key is inserted as an empty
// child. Use Lookup to probe without creating anything.
package autoviv

import "iter"

// Node is one level of the tree. A node may hold children, a leaf value, or
// both. The zero value is ready to use.
type Node[K comparable, V any] struct {
	children map[K]*Node[K, V]
	order    []K
	value    V
	hasValue bool
}

// New returns an empty root node.
func New[K comparable, V any]() *Node[K, V] {
	return &Node[K, V]{}
}

// Get returns the child at k, inserting an empty node if there is none.
func (n *Node[K, V]) Get(k K) *Node[K, V] {
	if child, ok := n.children[k]; ok {
		return child
	}
	child := &Node[K, V]{}
	n.put(k, child)
	return child
}

// Lookup returns the child at k without creating it.
func (n *Node[K, V]) Lookup(k K) (*Node[K, V], bool) {
	child, ok := n.children[k]
	return child, ok
}

// Set stores v as the leaf value of the child at k, creating the child if
// needed. Existing grandchildren are kept.
func (n *Node[K, V]) Set(k K, v V) {
	child := n.Get(k)
	child.value = v
	child.hasValue = true
}

// Value returns the node's own leaf value.
func (n *Node[K, V]) Value() (V, bool) {
	return n.value, n.hasValue
}

// Has reports whether k is a direct child.
func (n *Node[K, V]) Has(k K) bool {
	_, ok := n.children[k]
	return ok
}

// Delete removes the child at k and everything below it.
func (n *Node[K, V]) Delete(k K) bool {
	if _, ok := n.children[k]; !ok {
		return false
	}
	delete(n.children, k)
	for i, key := range n.order {
		if key == k {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of direct children.
func (n *Node[K, V]) Len() int {
	return len(n.order)
}

// Keys returns direct child keys in insertion order.
func (n *Node[K, V]) Keys() []K {
	out := make([]K, len(n.order))
	copy(out, n.order)
	return out
}

// All iterates direct children in insertion order.
func (n *Node[K, V]) All() iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		for _, k := range n.order {
			if !yield(k, n.children[k]) {
				return
			}
		}
	}
}

// Path walks keys from n, creating every missing level.
func (n *Node[K, V]) Path(keys ...K) *Node[K, V] {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// Walk calls fn for every node that holds a leaf value, depth first in
// insertion order, with the full key path to it.
func (n *Node[K, V]) Walk(fn func(path []K, v V)) {
	n.walk(nil, fn)
}

func (n *Node[K, V]) walk(prefix []K, fn func([]K, V)) {
	if n.hasValue {
		fn(append([]K(nil), prefix...), n.value)
	}
	for _, k := range n.order {
		n.children[k].walk(append(prefix, k), fn)
	}
}

func (n *Node[K, V]) put(k K, child *Node[K, V]) {
	if n.children == nil {
		n.children = make(map[K]*Node[K, V])
	}
	n.children[k] = child
	n.order = append(n.order, k)
}
