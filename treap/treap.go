// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"cmp"
	"fmt"
)

// Treap represents a treap data structure which is used to hold ordered
// key/value pairs using a combination of binary search tree and heap semantics.
// Keys are kept in binary search tree order according to the key comparator
// while the priorities form a min-heap according to the priority comparator,
// so the node with the smallest priority is always the root.  Search, insert,
// and delete operations are all O(log n) expected when the priorities are
// independent of the keys.
//
// Every mutation is expressed as a split of the tree around a key followed by
// merges of the resulting pieces.  Node keys and priorities are never changed
// once a node has been created.
//
// Both comparators must define a strict total order and must return a
// negative number, zero, or a positive number when the first argument is
// respectively less than, equal to, or greater than the second.  This is not
// verified and an inconsistent comparator silently corrupts the treap.
//
// A Treap is not safe for concurrent access.  Callers must serialize Insert,
// Remove, and Reset with an exclusive lock and only perform reads while no
// mutation is in progress.
type Treap[K, V, W any] struct {
	root              *treapNode[K, V, W]
	compareKeys       func(a, b K) int
	comparePriorities func(a, b W) int
}

// Len returns the number of items stored in the treap.
func (t *Treap[K, V, W]) Len() int {
	return nodeSize(t.root)
}

// split partitions the tree rooted at the passed node into three trees: one
// with all keys less than the split key, the node with a key equal to the
// split key, if any, and one with all keys greater than the split key.  The
// passed tree is consumed and must not be used by the caller afterwards.
//
// The nodes along the search path are unlinked on the way down: a node whose
// key is greater than the split key becomes the new left-most attachment point
// of the greater tree and a node whose key is less becomes the new right-most
// attachment point of the less tree.  Their cached sizes are recomputed
// bottom-up once the descent is complete.
func (t *Treap[K, V, W]) split(node *treapNode[K, V, W], key K) (less, equal, greater *treapNode[K, V, W]) {
	var lessTail, greaterHead *treapNode[K, V, W]
	var path parentStack[K, V, W]
	for node != nil {
		compareResult := t.compareKeys(key, node.key)
		if compareResult < 0 {
			// The node and its entire right subtree belong to the
			// greater tree.  Its left subtree still needs to be split
			// and the greater part of it will become its new left
			// child.
			if greaterHead == nil {
				greater = node
			} else {
				greaterHead.left = node
			}
			greaterHead = node
			path.Push(node)

			next := node.left
			node.left = nil
			node = next
			continue
		}
		if compareResult > 0 {
			if lessTail == nil {
				less = node
			} else {
				lessTail.right = node
			}
			lessTail = node
			path.Push(node)

			next := node.right
			node.right = nil
			node = next
			continue
		}

		// The key exists.  Its subtrees are already entirely less and
		// greater than the split key, so attach them as-is and detach
		// the node itself.
		if lessTail == nil {
			less = node.left
		} else {
			lessTail.right = node.left
		}
		if greaterHead == nil {
			greater = node.right
		} else {
			greaterHead.left = node.right
		}
		node.left, node.right = nil, nil
		node.size = 1
		equal = node
		break
	}

	if path.Len() > staticDepth {
		log.Debugf("Split traversed %d levels -- priorities are likely "+
			"correlated with keys", path.Len())
	}
	path.resize()
	return less, equal, greater
}

// merge combines the two passed trees into a single tree and returns its root.
// Every key in left must be less than every key in right.  This is NOT checked
// and violating it breaks the binary search tree ordering.
//
// The root with the smaller priority wins each step, with ties going to the
// right tree, and the remainder is merged into the winner's inner child.
func (t *Treap[K, V, W]) merge(left, right *treapNode[K, V, W]) *treapNode[K, V, W] {
	var root, parent *treapNode[K, V, W]
	var parentFromLeft bool
	var path parentStack[K, V, W]

	// link attaches the passed node to the open child slot of the most
	// recent winner, or makes it the root when there is none.
	link := func(node *treapNode[K, V, W]) {
		switch {
		case parent == nil:
			root = node
		case parentFromLeft:
			parent.right = node
		default:
			parent.left = node
		}
	}

	for left != nil && right != nil {
		var winner *treapNode[K, V, W]
		fromLeft := t.comparePriorities(left.priority, right.priority) < 0
		if fromLeft {
			winner, left = left, left.right
		} else {
			winner, right = right, right.left
		}

		link(winner)
		path.Push(winner)
		parent, parentFromLeft = winner, fromLeft
	}

	// At most one of the trees is non-empty at this point and it is
	// attached unchanged.
	if left != nil {
		link(left)
	} else {
		link(right)
	}

	if path.Len() > staticDepth {
		log.Debugf("Merge traversed %d levels -- priorities are likely "+
			"correlated with keys", path.Len())
	}
	path.resize()
	return root
}

// Insert adds the passed key/value pair with the given priority.
//
// Inserting a key that already exists replaces the existing pair, including
// its priority, with the new one (last write wins).  In that case the value
// that was replaced is returned along with true.  Otherwise the zero value and
// false are returned.
func (t *Treap[K, V, W]) Insert(key K, value V, priority W) (V, bool) {
	less, existing, greater := t.split(t.root, key)
	node := newTreapNode(key, value, priority)
	t.root = t.merge(t.merge(less, node), greater)

	if existing == nil {
		var zero V
		return zero, false
	}
	return existing.value, true
}

// Remove removes the passed key if it exists and returns the removed key/value
// pair along with true.  Removing a key that does not exist is not an error;
// the zero values and false are returned in that case.
func (t *Treap[K, V, W]) Remove(key K) (K, V, bool) {
	less, found, greater := t.split(t.root, key)
	t.root = t.merge(less, greater)

	if found == nil {
		var zeroKey K
		var zeroValue V
		return zeroKey, zeroValue, false
	}
	return found.key, found.value, true
}

// get returns the treap node that contains the passed key.  It will return nil
// when the key does not exist.
func (t *Treap[K, V, W]) get(key K) *treapNode[K, V, W] {
	for node := t.root; node != nil; {
		// Traverse left or right depending on the result of the
		// comparison.
		compareResult := t.compareKeys(key, node.key)
		if compareResult < 0 {
			node = node.left
			continue
		}
		if compareResult > 0 {
			node = node.right
			continue
		}

		// The key exists.
		return node
	}

	// A nil node was reached which means the key does not exist.
	return nil
}

// Has returns whether or not the passed key exists.
func (t *Treap[K, V, W]) Has(key K) bool {
	return t.get(key) != nil
}

// Get returns the value for the passed key along with true, or the zero value
// and false when the key does not exist.
func (t *Treap[K, V, W]) Get(key K) (V, bool) {
	if node := t.get(key); node != nil {
		return node.value, true
	}
	var zero V
	return zero, false
}

// FindGreaterOrEqual returns the pair with the smallest key that is greater
// than or equal to the passed key.  False is returned when every key in the
// treap is less than the passed key.
func (t *Treap[K, V, W]) FindGreaterOrEqual(key K) (K, V, bool) {
	// The most recent node passed on the way left is the tightest known
	// upper bound.
	var candidate *treapNode[K, V, W]
	for node := t.root; node != nil; {
		compareResult := t.compareKeys(key, node.key)
		if compareResult < 0 {
			candidate = node
			node = node.left
			continue
		}
		if compareResult > 0 {
			node = node.right
			continue
		}

		candidate = node
		break
	}

	if candidate == nil {
		var zeroKey K
		var zeroValue V
		return zeroKey, zeroValue, false
	}
	return candidate.key, candidate.value, true
}

// CountLess returns the number of keys in the treap that are strictly less
// than the passed key.  It uses the cached subtree sizes, so it only visits
// the nodes on the search path.
func (t *Treap[K, V, W]) CountLess(key K) int {
	var count int
	for node := t.root; node != nil; {
		compareResult := t.compareKeys(key, node.key)
		if compareResult < 0 {
			node = node.left
			continue
		}
		if compareResult > 0 {
			// Everything except the right subtree is less.
			count += node.size - node.rightSize()
			node = node.right
			continue
		}

		return count + node.leftSize()
	}
	return count
}

// GetByIndex returns the key/value pair at the given position in ascending key
// order, where 0 is the smallest key.  It panics if idx is out of bounds.
func (t *Treap[K, V, W]) GetByIndex(idx int) (K, V) {
	if idx < 0 || idx >= t.Len() {
		panic(fmt.Sprintf("GetByIndex(%v) index out of bounds", idx))
	}

	node := t.root
	for {
		leftSize := node.leftSize()
		switch {
		case idx < leftSize:
			node = node.left
		case idx == leftSize:
			return node.key, node.value
		default:
			node, idx = node.right, idx-leftSize-1
		}
	}
}

// ForEach invokes the passed function with every key/value pair in the treap
// in ascending order.  Iteration stops early when the function returns false.
func (t *Treap[K, V, W]) ForEach(fn func(k K, v V) bool) {
	// Add the root node and all children to the left of it to the list of
	// nodes to traverse and loop until they, and all of their child nodes,
	// have been traversed.
	var parents parentStack[K, V, W]
	for node := t.root; node != nil; node = node.left {
		parents.Push(node)
	}
	for parents.Len() > 0 {
		node := parents.Pop()
		if !fn(node.key, node.value) {
			return
		}

		// Extend the nodes to traverse by all children to the left of
		// the current node's right child.
		for node := node.right; node != nil; node = node.left {
			parents.Push(node)
		}
	}
}

// Reset efficiently removes all items in the treap.
func (t *Treap[K, V, W]) Reset() {
	t.root = nil
}

// NewFunc returns a new empty treap ordered by the passed key and priority
// comparators.  See the documentation for the Treap structure for the
// requirements on the comparators.
func NewFunc[K, V, W any](compareKeys func(a, b K) int, comparePriorities func(a, b W) int) *Treap[K, V, W] {
	return &Treap[K, V, W]{
		compareKeys:       compareKeys,
		comparePriorities: comparePriorities,
	}
}

// New returns a new empty treap for keys and priorities with a natural
// ordering.
func New[K cmp.Ordered, V any, W cmp.Ordered]() *Treap[K, V, W] {
	return NewFunc[K, V, W](cmp.Compare[K], cmp.Compare[W])
}
