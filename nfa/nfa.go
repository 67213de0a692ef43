package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF
)

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch represents a match state (accepting state)
	StateMatch StateKind = iota

	// StateRuneRange represents a single rune or rune range transition [lo, hi]
	StateRuneRange

	// StateSparse represents multiple rune range transitions to one target
	// e.g., [a-zA-Z0-9] would use this with a list of rune ranges
	StateSparse

	// StateSplit represents an epsilon transition to 2 states (alternation)
	// Used for alternation (a|b) and optional patterns (a?)
	StateSplit

	// StateEpsilon represents an epsilon transition to 1 state
	// Used for sequencing without consuming input
	StateEpsilon

	// StateFail represents a dead state (no valid transitions)
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateRuneRange:
		return "RuneRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For RuneRange: single rune or range [lo, hi]
	lo, hi rune
	next   StateID // target state for RuneRange/Sparse/Epsilon

	// For Sparse: several rune ranges sharing next
	ranges []RuneRange

	// For Split: epsilon transitions to two states
	left, right StateID
}

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	Lo rune
	Hi rune
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// RuneRange returns the rune range for RuneRange states.
// Returns (0, 0, InvalidState) for other states.
func (s *State) RuneRange() (lo, hi rune, next StateID) {
	if s.kind == StateRuneRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Sparse returns the ranges and shared target for Sparse states.
// Returns (nil, InvalidState) for other states.
func (s *State) Sparse() (ranges []RuneRange, next StateID) {
	if s.kind == StateSparse {
		return s.ranges, s.next
	}
	return nil, InvalidState
}

// Split returns the two target states for Split states.
// Returns (InvalidState, InvalidState) for non-Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target state for Epsilon states.
// Returns InvalidState for non-Epsilon states.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Consumes reports whether the state reads a rune (RuneRange or Sparse).
func (s *State) Consumes() bool {
	return s.kind == StateRuneRange || s.kind == StateSparse
}

// Ranges calls f for every rune range the state consumes, with its target.
func (s *State) Ranges(f func(lo, hi rune, next StateID)) {
	switch s.kind {
	case StateRuneRange:
		f(s.lo, s.hi, s.next)
	case StateSparse:
		for _, r := range s.ranges {
			f(r.Lo, r.Hi, s.next)
		}
	}
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateRuneRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, RuneRange %q -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, RuneRange [%q-%q] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d ranges -> %d)", s.id, len(s.ranges), s.next)
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA over runes.
// It is the result of compiling a regexp/syntax.Regexp pattern.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	// start is the entry state of the compiled pattern
	start StateID

	// pattern is the source text, if compiled from a string
	pattern string
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Pattern returns the pattern the NFA was compiled from, if any.
func (n *NFA) Pattern() string {
	return n.pattern
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d}", len(n.states), n.start)
}
