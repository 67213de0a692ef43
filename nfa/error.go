// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// over rune ranges.
//
// The NFA is compiled from regexp/syntax.Regexp patterns and is the input of
// the subset construction in package dfa. It never runs on input itself:
// string generation only needs its states and rune-range transitions.
package nfa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern reports a pattern rejected by regexp/syntax or a
	// repetition the compiler cannot expand.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrTooComplex reports a pattern exceeding the state or nesting limits.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrUnsupported reports a construct that matches a position rather than
	// text (word boundaries), which no generated string can honour.
	ErrUnsupported = errors.New("construct cannot be generated")
)

// CompileError carries the pattern that failed to compile.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return "compile: " + errString(e.Err)
	}
	return fmt.Sprintf("compile %q: %s", e.Pattern, errString(e.Err))
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError reports an inconsistent NFA assembled with Builder.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID == InvalidState {
		return "nfa builder: " + e.Message
	}
	return fmt.Sprintf("nfa builder: state %d: %s", e.StateID, e.Message)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
