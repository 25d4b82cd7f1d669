// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import "cmp"

const (
	// DefaultSeed is the initial state of the priority generator used by a
	// RandomTreap when no other source is provided.
	DefaultSeed uint32 = 1415811

	lcgMultiplier uint32 = 22695477
	lcgIncrement  uint32 = 1
)

// PrioritySource supplies the priority for each node inserted into a
// RandomTreap.  It is called exactly once per insertion.
type PrioritySource interface {
	NextPriority() uint32
}

// LCG is a linear congruential generator that produces priorities using the
// recurrence state = state*22695477 + 1 (mod 2^32).
//
// The sequence is fully determined by the seed, which makes treap shapes
// reproducible.  It is NOT suitable when priorities must be unpredictable to
// an adversary who controls the inserted keys.
type LCG struct {
	state uint32
}

// NextPriority advances the generator and returns the new state.
func (g *LCG) NextPriority() uint32 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

// NewLCG returns a generator seeded with the passed state.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// RandomTreap is a treap that assigns the priority of each inserted node from
// a PrioritySource it owns.  See the documentation for Treap for the ordering
// and concurrency requirements.
type RandomTreap[K, V any] struct {
	treap  *Treap[K, V, uint32]
	source PrioritySource
}

// Insert adds the passed key/value pair with the next priority from the
// treap's source.  An existing key is replaced and its previous value is
// returned along with true.
func (t *RandomTreap[K, V]) Insert(key K, value V) (V, bool) {
	return t.treap.Insert(key, value, t.source.NextPriority())
}

// Remove removes the passed key if it exists and returns the removed key/value
// pair along with true.
func (t *RandomTreap[K, V]) Remove(key K) (K, V, bool) {
	return t.treap.Remove(key)
}

// FindGreaterOrEqual returns the pair with the smallest key that is greater
// than or equal to the passed key.
func (t *RandomTreap[K, V]) FindGreaterOrEqual(key K) (K, V, bool) {
	return t.treap.FindGreaterOrEqual(key)
}

// CountLess returns the number of keys strictly less than the passed key.
func (t *RandomTreap[K, V]) CountLess(key K) int {
	return t.treap.CountLess(key)
}

// Len returns the number of items stored in the treap.
func (t *RandomTreap[K, V]) Len() int {
	return t.treap.Len()
}

// Has returns whether or not the passed key exists.
func (t *RandomTreap[K, V]) Has(key K) bool {
	return t.treap.Has(key)
}

// Get returns the value for the passed key along with whether it exists.
func (t *RandomTreap[K, V]) Get(key K) (V, bool) {
	return t.treap.Get(key)
}

// GetByIndex returns the key/value pair at the given position in ascending key
// order.  It panics if idx is out of bounds.
func (t *RandomTreap[K, V]) GetByIndex(idx int) (K, V) {
	return t.treap.GetByIndex(idx)
}

// ForEach invokes the passed function with every key/value pair in ascending
// order until it returns false.
func (t *RandomTreap[K, V]) ForEach(fn func(k K, v V) bool) {
	t.treap.ForEach(fn)
}

// Iterator returns a new iterator limited to [startKey, limitKey).  See
// Treap.Iterator.
func (t *RandomTreap[K, V]) Iterator(startKey, limitKey *K) *Iterator[K, V, uint32] {
	return t.treap.Iterator(startKey, limitKey)
}

// Reset removes all items.  The priority source is not rewound.
func (t *RandomTreap[K, V]) Reset() {
	t.treap.Reset()
}

// NewRandomFunc returns a new empty random treap ordered by the passed key
// comparator.  Priorities are drawn from source, or from a new LCG seeded with
// DefaultSeed when source is nil.
func NewRandomFunc[K, V any](compareKeys func(a, b K) int, source PrioritySource) *RandomTreap[K, V] {
	if source == nil {
		source = NewLCG(DefaultSeed)
	}
	return &RandomTreap[K, V]{
		treap:  NewFunc[K, V, uint32](compareKeys, cmp.Compare[uint32]),
		source: source,
	}
}

// NewRandom returns a new empty random treap for keys with a natural ordering
// using the default LCG priority source.
func NewRandom[K cmp.Ordered, V any]() *RandomTreap[K, V] {
	return NewRandomFunc[K, V](cmp.Compare[K], nil)
}
