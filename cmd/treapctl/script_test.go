// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/treapmap/treap"
	"github.com/stretchr/testify/require"
)

// TestScriptRun ensures a well formed script produces the expected output for
// every command.
func TestScriptRun(t *testing.T) {
	t.Parallel()

	script := `
# Keys, values and priorities.
insert 2 1 1
insert 3 11 100
insert 14 9 150
insert 77777 2 7812
insert 7 8 124
insert 9 4 1111
insert 833 2 12
insert -15 2 123

find -16
remove -15
remove 3
count 834
remove 3
get 9
get 10
at 0
at 5
len
range 5 800
range 800 5
insert 9 nine
find 78000
`
	want := strings.Join([]string{
		"inserted 2",
		"inserted 3",
		"inserted 14",
		"inserted 77777",
		"inserted 7",
		"inserted 9",
		"inserted 833",
		"inserted -15",
		"-15 2",
		"removed -15 2",
		"removed 3 11",
		"5",
		"absent 3",
		"4",
		"absent 10",
		"2 1",
		"77777 2",
		"6",
		"7 8",
		"9 4",
		"14 9",
		"replaced 9 (old 4)",
		"none",
	}, "\n") + "\n"

	runner := newScriptRunner(treap.DefaultSeed, defaultOverwriteCache)
	var out bytes.Buffer
	require.NoError(t, runner.Run(strings.NewReader(script), &out))
	require.Equal(t, want, out.String())
	require.Equal(t, 22, runner.numCommands)
	require.Equal(t, 6, runner.treap.Len())
}

// TestScriptErrors ensures malformed lines stop the run with the expected
// error code and line number, after the output of the preceding commands.
func TestScriptErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		code ErrorCode
	}{
		{name: "unknown command", line: "bogus 1", code: ErrUnknownCommand},
		{name: "insert missing value", line: "insert 1", code: ErrArgCount},
		{name: "insert extra arg", line: "insert 1 a 2 3", code: ErrArgCount},
		{name: "insert bad key", line: "insert x a", code: ErrBadKey},
		{name: "key overflow", line: "get 9223372036854775808", code: ErrBadKey},
		{name: "negative priority", line: "insert 1 a -3", code: ErrBadPriority},
		{name: "priority overflow", line: "insert 1 a 4294967296", code: ErrBadPriority},
		{name: "remove no args", line: "remove", code: ErrArgCount},
		{name: "find bad key", line: "find 1.5", code: ErrBadKey},
		{name: "count bad key", line: "count ten", code: ErrBadKey},
		{name: "len with args", line: "len 1", code: ErrArgCount},
		{name: "at past end", line: "at 1", code: ErrBadIndex},
		{name: "at negative", line: "at -1", code: ErrBadIndex},
		{name: "at not a number", line: "at first", code: ErrBadIndex},
		{name: "range one arg", line: "range 1", code: ErrArgCount},
		{name: "range bad limit", line: "range 1 z", code: ErrBadKey},
	}

	for _, test := range tests {
		script := "insert 1 a\n\n# comment\n" + test.line + "\nlen\n"
		runner := newScriptRunner(treap.DefaultSeed, defaultOverwriteCache)
		var out bytes.Buffer
		err := runner.Run(strings.NewReader(script), &out)

		var scriptErr ScriptError
		if !errors.As(err, &scriptErr) {
			t.Errorf("%q: unexpected error - got %v, want ScriptError",
				test.name, err)
			continue
		}
		if scriptErr.ErrorCode != test.code {
			t.Errorf("%q: unexpected error code - got %v, want %v",
				test.name, scriptErr.ErrorCode, test.code)
			continue
		}
		if scriptErr.Line != 4 {
			t.Errorf("%q: unexpected line - got %d, want %d", test.name,
				scriptErr.Line, 4)
			continue
		}
		if out.String() != "inserted 1\n" {
			t.Errorf("%q: unexpected output - got %q, want %q",
				test.name, out.String(), "inserted 1\n")
			continue
		}
	}
}

// TestScriptImplicitPriorities ensures the priority generator is only advanced
// by inserts that do not specify a priority.
func TestScriptImplicitPriorities(t *testing.T) {
	t.Parallel()

	const seed = 99
	script := "insert 1 a\ninsert 2 b 5\ninsert 3 c\ninsert 1 d\n"
	runner := newScriptRunner(seed, defaultOverwriteCache)
	var out bytes.Buffer
	require.NoError(t, runner.Run(strings.NewReader(script), &out))

	// Three implicit priorities were drawn so the runner's generator must be
	// on the fourth value.
	ref := treap.NewLCG(seed)
	for i := 0; i < 3; i++ {
		ref.NextPriority()
	}
	require.Equal(t, ref.NextPriority(), runner.source.NextPriority())
}

// TestScriptOverwriteCache ensures replaced keys are tracked in the bounded
// recently replaced set and forgotten once removed or evicted.
func TestScriptOverwriteCache(t *testing.T) {
	t.Parallel()

	runner := newScriptRunner(treap.DefaultSeed, 1)
	run := func(script string) {
		t.Helper()
		var out bytes.Buffer
		require.NoError(t, runner.Run(strings.NewReader(script), &out))
	}

	run("insert 1 a\ninsert 1 b\n")
	require.True(t, runner.replaced.Contains(int64(1)))

	// Replacing a second key evicts the first from the single entry set.
	run("insert 2 a\ninsert 2 b\n")
	require.True(t, runner.replaced.Contains(int64(2)))
	require.False(t, runner.replaced.Contains(int64(1)))

	// Removing a key forgets that it was replaced.
	run("remove 2\n")
	require.False(t, runner.replaced.Contains(int64(2)))

	// Fresh inserts are never tracked.
	run("insert 3 a\n")
	require.False(t, runner.replaced.Contains(int64(3)))
}

// TestScriptInterrupt ensures a closed interrupt channel stops the script
// before any further commands run.
func TestScriptInterrupt(t *testing.T) {
	t.Parallel()

	interrupt := make(chan struct{})
	close(interrupt)
	runner := newScriptRunner(treap.DefaultSeed, defaultOverwriteCache)
	runner.interrupt = interrupt

	var out bytes.Buffer
	err := runner.Run(strings.NewReader("insert 1 a\nlen\n"), &out)
	require.ErrorIs(t, err, errInterrupted)
	require.Empty(t, out.String())
	require.Zero(t, runner.treap.Len())
}

// TestScriptContents ensures the trace dump lists the pairs in key order.
func TestScriptContents(t *testing.T) {
	t.Parallel()

	runner := newScriptRunner(treap.DefaultSeed, defaultOverwriteCache)
	require.Contains(t, runner.contents().String(), "[]main.kvPair")

	script := "insert 7 seven\ninsert -3 minus\ninsert 7 again\n"
	var out bytes.Buffer
	require.NoError(t, runner.Run(strings.NewReader(script), &out))

	dump := runner.contents().String()
	first := strings.Index(dump, "Key: (int64) -3,")
	second := strings.Index(dump, "Key: (int64) 7,")
	require.NotEqual(t, -1, first, dump)
	require.Greater(t, second, first, dump)
	require.Contains(t, dump, `"again"`)
	require.NotContains(t, dump, `"seven"`)
}
