// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap_test

import (
	"fmt"
	"strings"

	"github.com/btcsuite/treapmap/treap"
)

// This example demonstrates creating a treap with explicit priorities and
// using the successor and rank queries.
func Example_basicUsage() {
	t := treap.New[int64, string, int]()
	t.Insert(2, "two", 1)
	t.Insert(833, "eight hundred thirty three", 12)
	t.Insert(-15, "minus fifteen", 123)
	t.Insert(7, "seven", 124)

	// Find the smallest key that is at least -16.
	k, v, ok := t.FindGreaterOrEqual(-16)
	fmt.Println(k, v, ok)

	// Count the keys below 800.
	fmt.Println(t.CountLess(800))

	// Removing a missing key is not an error.
	_, _, ok = t.Remove(1000)
	fmt.Println(ok)

	// Output:
	// -15 minus fifteen true
	// 3
	// false
}

// This example demonstrates the last write wins behavior of inserting a key
// that already exists.
func ExampleRandomTreap_Insert() {
	t := treap.NewRandom[string, int]()
	t.Insert("apples", 3)
	old, replaced := t.Insert("apples", 5)
	fmt.Println(old, replaced)

	v, _ := t.Get("apples")
	fmt.Println(v, t.Len())

	// Output:
	// 3 true
	// 5 1
}

// This example demonstrates iterating a range of keys ordered by a custom
// comparator.
func ExampleRandomTreap_Iterator() {
	t := treap.NewRandomFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}, treap.NewLCG(42))
	for i, name := range []string{"delta", "Alpha", "charlie", "Bravo", "echo"} {
		t.Insert(name, i)
	}

	start, limit := "b", "D"
	iter := t.Iterator(&start, &limit)
	for iter.Next() {
		fmt.Println(iter.Key(), iter.Value())
	}

	// Output:
	// Bravo 3
	// charlie 2
}
