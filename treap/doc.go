// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package treap implements an in-memory ordered map backed by a treap, a binary
search tree on keys that is simultaneously a min-heap on an independent
priority stored in every node.  When the priorities are independent of the
keys, the expected height of the tree is logarithmic without any explicit
rebalancing rules.

Every mutation is built from two primitives.  Split partitions a tree into the
keys less than a pivot, the node equal to the pivot, and the keys greater than
the pivot.  Merge joins two trees where every key of the first is less than
every key of the second, choosing the root with the smaller priority at each
level.  Insert is a split followed by two merges and Remove is a split
followed by one merge.  Both primitives run on an explicit stack rather than
the call stack, so even a degenerate priority order can not exhaust the
goroutine stack.

Every node caches the size of its subtree, which provides rank queries
(CountLess) and selection (GetByIndex) in O(log n) expected time alongside the
successor query FindGreaterOrEqual.

Two flavors are provided.  Treap takes the priority of every node explicitly,
which is useful when the caller already has well distributed values such as
hashes or when tests need a specific shape.  RandomTreap draws priorities from
a PrioritySource it owns, by default a linear congruential generator with a
fixed seed, so the shape of the tree is reproducible for a given sequence of
operations.

Inserting a key that already exists replaces the previous pair and returns the
value that was replaced.  Removing or looking up a key that does not exist is
not an error.

Neither flavor is safe for concurrent access.  Callers must serialize all
mutations with an exclusive lock and must not read while a mutation is in
progress.
*/
package treap
