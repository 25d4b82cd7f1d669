// Copyright (c) 2014 Conformal Systems LLC.
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific ScriptError.
const (
	// ErrUnknownCommand indicates a script line starts with a command the
	// driver does not recognize.
	ErrUnknownCommand ErrorCode = iota

	// ErrArgCount indicates a command was given the wrong number of
	// arguments.
	ErrArgCount

	// ErrBadKey indicates a key argument is not a valid signed 64-bit
	// integer.
	ErrBadKey

	// ErrBadPriority indicates an explicit priority is not a valid unsigned
	// 32-bit integer.
	ErrBadPriority

	// ErrBadIndex indicates a rank argument is not an integer or is outside
	// the range of keys currently in the map.
	ErrBadIndex
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnknownCommand: "ErrUnknownCommand",
	ErrArgCount:       "ErrArgCount",
	ErrBadKey:         "ErrBadKey",
	ErrBadPriority:    "ErrBadPriority",
	ErrBadIndex:       "ErrBadIndex",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// ScriptError identifies a malformed script line.  The caller can use
// errors.As to determine if a failure was specifically due to the script
// contents and access the ErrorCode field to ascertain the specific reason.
type ScriptError struct {
	Line        int       // 1-based line number of the offending line
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Description)
}

// scriptError creates a ScriptError given a set of arguments.
func scriptError(line int, c ErrorCode, desc string) ScriptError {
	return ScriptError{Line: line, ErrorCode: c, Description: desc}
}
