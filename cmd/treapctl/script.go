// Copyright (c) 2016-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/btcsuite/treapmap/internal/log"
	"github.com/btcsuite/treapmap/treap"
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/lru"
)

// scriptRunner executes command scripts against a single treap keyed by
// signed 64-bit integers.
type scriptRunner struct {
	treap  *treap.Treap[int64, string, uint32]
	source treap.PrioritySource

	// replaced tracks keys recently overwritten so the warning for
	// repeatedly replacing the same key is only logged once.
	replaced lru.Cache

	// interrupt, when closed, stops a running script before its next
	// command.  A nil channel never interrupts.
	interrupt <-chan struct{}

	// numCommands is the number of commands executed so far.
	numCommands int
}

// errInterrupted is returned by Run when the script is stopped early by the
// interrupt channel.
var errInterrupted = errors.New("script interrupted")

// newScriptRunner returns a runner with an empty treap whose implicit
// priorities are drawn from an LCG started at seed.
func newScriptRunner(seed uint32, overwriteCache uint) *scriptRunner {
	return &scriptRunner{
		treap:    treap.New[int64, string, uint32](),
		source:   treap.NewLCG(seed),
		replaced: lru.NewCache(overwriteCache),
	}
}

// kvPair is a key/value pair of the treap as shown in trace dumps.
type kvPair struct {
	Key   int64
	Value string
}

// contents returns a closure that dumps the pairs of the treap in key order.
// The dump is only built when the closure is formatted, so it costs nothing
// unless trace logging is enabled.
func (s *scriptRunner) contents() log.LogClosure {
	return log.NewLogClosure(func() string {
		pairs := make([]kvPair, 0, s.treap.Len())
		s.treap.ForEach(func(k int64, v string) bool {
			pairs = append(pairs, kvPair{Key: k, Value: v})
			return true
		})
		return spew.Sdump(pairs)
	})
}

// parseKey parses a key argument.
func parseKey(line int, arg string) (int64, error) {
	key, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		str := fmt.Sprintf("invalid key %q", arg)
		return 0, scriptError(line, ErrBadKey, str)
	}
	return key, nil
}

// checkArgs ensures the number of arguments for a command falls within
// [minArgs, maxArgs].
func checkArgs(line int, cmd string, args []string, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		str := fmt.Sprintf("%s: wrong number of arguments %d", cmd,
			len(args))
		return scriptError(line, ErrArgCount, str)
	}
	return nil
}

// Run reads commands line by line from r, executes them in order, and writes
// their results to w.  Blank lines and lines starting with # are skipped.
// Execution stops at the first malformed line, which is reported as a
// ScriptError.
func (s *scriptRunner) Run(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		if interruptRequested(s.interrupt) {
			out.Flush()
			return errInterrupted
		}

		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		log.TctlLog.Tracef("Line %d: %v", lineNum, fields)
		if err := s.execute(out, lineNum, fields[0], fields[1:]); err != nil {
			// Flush the results of the commands that succeeded so
			// the failing line is easy to spot.
			out.Flush()
			return err
		}
		s.numCommands++
		if cmd := fields[0]; cmd == "insert" || cmd == "remove" {
			log.TctlLog.Tracef("Line %d: contents after %s: %v", lineNum,
				cmd, s.contents())
		}
	}
	if err := scanner.Err(); err != nil {
		out.Flush()
		return fmt.Errorf("unable to read script: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("unable to write results: %w", err)
	}
	return nil
}

// execute runs a single command.
func (s *scriptRunner) execute(out io.Writer, line int, cmd string, args []string) error {
	switch cmd {
	case "insert":
		if err := checkArgs(line, cmd, args, 2, 3); err != nil {
			return err
		}
		key, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		var priority uint32
		if len(args) == 3 {
			p, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				str := fmt.Sprintf("invalid priority %q", args[2])
				return scriptError(line, ErrBadPriority, str)
			}
			priority = uint32(p)
		} else {
			priority = s.source.NextPriority()
		}

		old, replaced := s.treap.Insert(key, args[1], priority)
		if !replaced {
			fmt.Fprintf(out, "inserted %d\n", key)
			return nil
		}
		if !s.replaced.Contains(key) {
			log.TctlLog.Warnf("Line %d: replacing value %q of key %d",
				line, old, key)
			s.replaced.Add(key)
		}
		fmt.Fprintf(out, "replaced %d (old %s)\n", key, old)

	case "remove":
		if err := checkArgs(line, cmd, args, 1, 1); err != nil {
			return err
		}
		key, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		if _, v, ok := s.treap.Remove(key); ok {
			s.replaced.Delete(key)
			fmt.Fprintf(out, "removed %d %s\n", key, v)
			return nil
		}
		fmt.Fprintf(out, "absent %d\n", key)

	case "find":
		if err := checkArgs(line, cmd, args, 1, 1); err != nil {
			return err
		}
		key, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		if k, v, ok := s.treap.FindGreaterOrEqual(key); ok {
			fmt.Fprintf(out, "%d %s\n", k, v)
			return nil
		}
		fmt.Fprintln(out, "none")

	case "count":
		if err := checkArgs(line, cmd, args, 1, 1); err != nil {
			return err
		}
		key, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s.treap.CountLess(key))

	case "get":
		if err := checkArgs(line, cmd, args, 1, 1); err != nil {
			return err
		}
		key, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		if v, ok := s.treap.Get(key); ok {
			fmt.Fprintln(out, v)
			return nil
		}
		fmt.Fprintf(out, "absent %d\n", key)

	case "at":
		if err := checkArgs(line, cmd, args, 1, 1); err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < 0 || idx >= s.treap.Len() {
			str := fmt.Sprintf("index %q out of range [0, %d)", args[0],
				s.treap.Len())
			return scriptError(line, ErrBadIndex, str)
		}
		k, v := s.treap.GetByIndex(idx)
		fmt.Fprintf(out, "%d %s\n", k, v)

	case "len":
		if err := checkArgs(line, cmd, args, 0, 0); err != nil {
			return err
		}
		fmt.Fprintln(out, s.treap.Len())

	case "range":
		if err := checkArgs(line, cmd, args, 2, 2); err != nil {
			return err
		}
		start, err := parseKey(line, args[0])
		if err != nil {
			return err
		}
		limit, err := parseKey(line, args[1])
		if err != nil {
			return err
		}
		iter := s.treap.Iterator(&start, &limit)
		for iter.Next() {
			fmt.Fprintf(out, "%d %s\n", iter.Key(), iter.Value())
		}

	default:
		str := fmt.Sprintf("unknown command %q", cmd)
		return scriptError(line, ErrUnknownCommand, str)
	}

	return nil
}
