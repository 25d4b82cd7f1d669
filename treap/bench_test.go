// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"sync"
	"testing"
)

// numBenchKeys is the number of keys to generate for use in the benchmarks.
const numBenchKeys = 42500

// benchKey is a hash sized key so comparisons cost about what they would
// when a treap indexes hashes.
type benchKey [sha256.Size]byte

// compareBenchKeys orders bench keys lexicographically.
func compareBenchKeys(a, b benchKey) int {
	return bytes.Compare(a[:], b[:])
}

var (
	// generatedBenchKeys is used to store keys generated for use in the
	// benchmarks so that they only need to be generated once for all
	// benchmarks that use them.
	genBenchKeysLock   sync.Mutex
	generatedBenchKeys []benchKey
)

// genBenchKeys generates and returns 'numBenchKeys' along with memoizing them
// so that future calls return the cached data.
func genBenchKeys() []benchKey {
	// Return generated keys if already done.
	genBenchKeysLock.Lock()
	defer genBenchKeysLock.Unlock()
	if generatedBenchKeys != nil {
		return generatedBenchKeys
	}

	// Generate the keys and cache them for future invocations.
	keys := make([]benchKey, 0, numBenchKeys)
	var buf [4]byte
	for i := 0; i < numBenchKeys; i++ {
		binary.LittleEndian.PutUint32(buf[:], uint32(i))
		keys = append(keys, benchKey(sha256.Sum256(buf[:])))
	}
	generatedBenchKeys = keys
	return keys
}

// populatedBenchTreap returns a random treap containing every bench key.
func populatedBenchTreap() *RandomTreap[benchKey, uint32] {
	testTreap := NewRandomFunc[benchKey, uint32](compareBenchKeys, nil)
	for j, key := range genBenchKeys() {
		testTreap.Insert(key, uint32(j))
	}
	return testTreap
}

// BenchmarkInsert benchmarks how long it takes to populate a treap with
// 'numBenchKeys' entries.
func BenchmarkInsert(b *testing.B) {
	keys := genBenchKeys()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		testTreap := NewRandomFunc[benchKey, uint32](compareBenchKeys, nil)
		for j, key := range keys {
			testTreap.Insert(key, uint32(j))
		}
	}
}

// BenchmarkRemove benchmarks how long it takes to remove every entry from a
// treap that contains 'numBenchKeys' entries.
func BenchmarkRemove(b *testing.B) {
	keys := genBenchKeys()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		testTreap := populatedBenchTreap()
		b.StartTimer()
		for _, key := range keys {
			testTreap.Remove(key)
		}
	}
}

// BenchmarkFindGreaterOrEqual benchmarks successor queries against a treap
// that contains 'numBenchKeys' entries.
func BenchmarkFindGreaterOrEqual(b *testing.B) {
	testTreap := populatedBenchTreap()
	keys := genBenchKeys()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		testTreap.FindGreaterOrEqual(keys[i%len(keys)])
	}
}

// BenchmarkCountLess benchmarks rank queries against a treap that contains
// 'numBenchKeys' entries.
func BenchmarkCountLess(b *testing.B) {
	testTreap := populatedBenchTreap()
	keys := genBenchKeys()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		testTreap.CountLess(keys[i%len(keys)])
	}
}

// BenchmarkIterate benchmarks how long it takes to iterate a treap when it
// contains 'numBenchKeys' entries.
func BenchmarkIterate(b *testing.B) {
	testTreap := populatedBenchTreap()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		testTreap.ForEach(func(k benchKey, v uint32) bool {
			return true
		})
	}
}
