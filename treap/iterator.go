// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

// Iterator is a bidirectional cursor over the key/value pairs of a treap,
// optionally limited to the range [startKey, limitKey).
//
// The cursor only remembers the key it is positioned at.  Every move locates
// the neighboring pair by rank through CountLess and GetByIndex, so the treap
// may be freely modified between moves: Next and Prev continue from the
// remembered key whether or not it is still present.  Key and Value report
// the pair as it was when the iterator was last positioned.
type Iterator[K, V, W any] struct {
	t        *Treap[K, V, W]
	startKey *K
	limitKey *K
	key      K
	value    V
	valid    bool
	isNew    bool
}

// inRange returns whether the passed key lies within the iterator's limits.
func (iter *Iterator[K, V, W]) inRange(key K) bool {
	if iter.startKey != nil && iter.t.compareKeys(key, *iter.startKey) < 0 {
		return false
	}
	return iter.limitKey == nil || iter.t.compareKeys(key, *iter.limitKey) < 0
}

// moveTo positions the iterator at the pair with rank idx.  The iterator is
// exhausted when no such pair exists or it falls outside the limits.
func (iter *Iterator[K, V, W]) moveTo(idx int) bool {
	iter.isNew = false
	iter.valid = false
	if idx < 0 || idx >= iter.t.Len() {
		return false
	}
	key, value := iter.t.GetByIndex(idx)
	if !iter.inRange(key) {
		return false
	}
	iter.key, iter.value, iter.valid = key, value, true
	return true
}

// First moves the iterator to the first pair within the limits and returns
// whether there is one.
func (iter *Iterator[K, V, W]) First() bool {
	if iter.startKey == nil {
		return iter.moveTo(0)
	}
	return iter.moveTo(iter.t.CountLess(*iter.startKey))
}

// Last moves the iterator to the last pair within the limits and returns
// whether there is one.
func (iter *Iterator[K, V, W]) Last() bool {
	if iter.limitKey == nil {
		return iter.moveTo(iter.t.Len() - 1)
	}
	return iter.moveTo(iter.t.CountLess(*iter.limitKey) - 1)
}

// Next moves the iterator to the next pair and returns whether it is valid.
// A new iterator moves to the first pair.  An exhausted iterator stays
// exhausted.
func (iter *Iterator[K, V, W]) Next() bool {
	if iter.isNew {
		return iter.First()
	}
	if !iter.valid {
		return false
	}

	// Skip the current key when it is still in the treap.
	idx := iter.t.CountLess(iter.key)
	if idx < iter.t.Len() {
		if key, _ := iter.t.GetByIndex(idx); iter.t.compareKeys(key, iter.key) == 0 {
			idx++
		}
	}
	return iter.moveTo(idx)
}

// Prev moves the iterator to the previous pair and returns whether it is
// valid.  A new iterator moves to the last pair.  An exhausted iterator stays
// exhausted.
func (iter *Iterator[K, V, W]) Prev() bool {
	if iter.isNew {
		return iter.Last()
	}
	if !iter.valid {
		return false
	}
	return iter.moveTo(iter.t.CountLess(iter.key) - 1)
}

// Seek moves the iterator to the first pair whose key is greater than or equal
// to the given key, never before startKey, and returns whether it is valid.
func (iter *Iterator[K, V, W]) Seek(key K) bool {
	if iter.startKey != nil && iter.t.compareKeys(key, *iter.startKey) < 0 {
		key = *iter.startKey
	}
	return iter.moveTo(iter.t.CountLess(key))
}

// Key returns the key of the current pair, or the zero value when the
// iterator is not positioned at one.
func (iter *Iterator[K, V, W]) Key() K {
	if !iter.valid {
		var zero K
		return zero
	}
	return iter.key
}

// Value returns the value of the current pair, or the zero value when the
// iterator is not positioned at one.
func (iter *Iterator[K, V, W]) Value() V {
	if !iter.valid {
		var zero V
		return zero
	}
	return iter.value
}

// Valid indicates whether the iterator is positioned at a pair.
func (iter *Iterator[K, V, W]) Valid() bool {
	return iter.valid
}

// Iterator returns a new unpositioned iterator over the treap.  Nil limits
// leave that side of the range open.  Calling Next or Prev first moves it to
// the first or last pair in the range respectively.
//
// Each move costs O(log n) expected time.
func (t *Treap[K, V, W]) Iterator(startKey, limitKey *K) *Iterator[K, V, W] {
	return &Iterator[K, V, W]{
		t:        t,
		startKey: startKey,
		limitKey: limitKey,
		isNew:    true,
	}
}
