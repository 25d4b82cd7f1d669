// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

const (
	// staticDepth is the size of the static array to use for keeping track
	// of the parent stack during treap traversal.  Since a treap has a very
	// high probability that the tree height is logarithmic, it is
	// exceedingly unlikely that the parent stack will ever exceed this size
	// even for extremely large numbers of items.
	staticDepth = 128
)

// treapNode represents a node in the treap.  The key and priority of a node
// never change once it has been created.
type treapNode[K, V, W any] struct {
	key      K
	value    V
	priority W
	size     int // Count of items within this subtree - the node itself counts as 1.
	left     *treapNode[K, V, W]
	right    *treapNode[K, V, W]
}

// newTreapNode returns a new node from the given key, value, and priority.  The
// node is not initially linked to any others.
func newTreapNode[K, V, W any](key K, value V, priority W) *treapNode[K, V, W] {
	return &treapNode[K, V, W]{key: key, value: value, priority: priority, size: 1}
}

// nodeSize returns the size of the subtree rooted at the passed node and zero
// for an empty subtree.
func nodeSize[K, V, W any](node *treapNode[K, V, W]) int {
	if node == nil {
		return 0
	}
	return node.size
}

// leftSize returns the size of the subtree on the left-hand side, and zero if
// there is no tree present there.
func (n *treapNode[K, V, W]) leftSize() int {
	return nodeSize(n.left)
}

// rightSize returns the size of the subtree on the right-hand side, and zero if
// there is no tree present there.
func (n *treapNode[K, V, W]) rightSize() int {
	return nodeSize(n.right)
}

// updateSize recomputes the cached subtree size from the node's children.  The
// children must already hold correct sizes.
func (n *treapNode[K, V, W]) updateSize() {
	n.size = 1 + n.leftSize() + n.rightSize()
}

// parentStack represents a stack of treap nodes that are used during
// traversal.  It consists of a static array for holding the nodes and a
// dynamic overflow slice.  It is extremely unlikely the overflow will ever be
// hit during normal operation, however, since a treap's height is
// probabilistic, the overflow case needs to be handled properly.  This approach
// is used because it is much more efficient for the majority case than
// dynamically allocating heap space every time the treap is traversed.
type parentStack[K, V, W any] struct {
	index    int
	items    [staticDepth]*treapNode[K, V, W]
	overflow []*treapNode[K, V, W]
}

// Len returns the current number of items in the stack.
func (s *parentStack[K, V, W]) Len() int {
	return s.index
}

// At returns the item n number of items from the top of the stack, where 0 is
// the topmost item, without removing it.  It returns nil if n exceeds the
// number of items on the stack.
func (s *parentStack[K, V, W]) At(n int) *treapNode[K, V, W] {
	index := s.index - n - 1
	if index < 0 {
		return nil
	}

	if index < staticDepth {
		return s.items[index]
	}

	return s.overflow[index-staticDepth]
}

// Pop removes the top item from the stack.  It returns nil if the stack is
// empty.
func (s *parentStack[K, V, W]) Pop() *treapNode[K, V, W] {
	if s.index == 0 {
		return nil
	}

	s.index--
	if s.index < staticDepth {
		node := s.items[s.index]
		s.items[s.index] = nil
		return node
	}

	node := s.overflow[s.index-staticDepth]
	s.overflow[s.index-staticDepth] = nil
	return node
}

// Push pushes the passed item onto the top of the stack.
func (s *parentStack[K, V, W]) Push(node *treapNode[K, V, W]) {
	if s.index < staticDepth {
		s.items[s.index] = node
		s.index++
		return
	}

	// Only increase the cap one item at a time since the max number of
	// items is related to the tree depth which requires exponentially more
	// items to increase.
	index := s.index - staticDepth
	if index+1 > cap(s.overflow) {
		overflow := make([]*treapNode[K, V, W], index+1)
		copy(overflow, s.overflow)
		s.overflow = overflow
	}
	s.overflow[index] = node
	s.index++
}

// resize pops every node off the stack, recomputing the cached subtree size
// of each one.  Nodes must have been pushed in top-down order so every node is
// popped after all of its pushed descendants.
func (s *parentStack[K, V, W]) resize() {
	for s.Len() > 0 {
		s.Pop().updateSize()
	}
}
