// Package automaton defines the read-only finite-state graph that string
// generation walks.
//
// A Graph is deterministic: transitions leaving a state carry non-overlapping
// rune ranges and are stored in ascending order of their lower bound. Graphs
// produced by Builder contain only live states (reachable from the start state
// and able to reach an accepting state), with the start state kept even when
// the language is empty.
package automaton

import (
	"fmt"
	"strings"
)

// StateID identifies a state within a Graph.
type StateID uint32

// InvalidState marks an unset state reference.
const InvalidState StateID = 0xFFFFFFFF

// Transition is a labelled edge: every rune in [Lo, Hi] leads to Next.
type Transition struct {
	Lo   rune
	Hi   rune
	Next StateID
}

// Width returns the number of runes in the transition's range.
func (t Transition) Width() int64 {
	return int64(t.Hi) - int64(t.Lo) + 1
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	if t.Lo == t.Hi {
		return fmt.Sprintf("%q -> %d", t.Lo, t.Next)
	}
	return fmt.Sprintf("[%q-%q] -> %d", t.Lo, t.Hi, t.Next)
}

// View is the read-only automaton abstraction consumed by the traversal
// packages.
//
// Implementations must return transitions sorted ascending by Lo with
// non-overlapping ranges. State IDs are dense in [0, NumStates()).
type View interface {
	Start() StateID
	NumStates() int
	IsAccept(id StateID) bool
	Transitions(id StateID) []Transition
	// IsFinite reports whether the accepted language is finite.
	IsFinite() bool
}

type state struct {
	accept      bool
	transitions []Transition
}

// Graph is the concrete View built by Builder. It is immutable and safe for
// concurrent use.
type Graph struct {
	states []state
	start  StateID
	finite bool
}

// Start returns the initial state.
func (g *Graph) Start() StateID {
	return g.start
}

// NumStates returns the number of states in the graph.
func (g *Graph) NumStates() int {
	return len(g.states)
}

// IsAccept reports whether id is an accepting state.
func (g *Graph) IsAccept(id StateID) bool {
	if int(id) >= len(g.states) {
		return false
	}
	return g.states[id].accept
}

// Transitions returns the outgoing transitions of id, sorted by Lo.
// The returned slice must not be modified.
func (g *Graph) Transitions(id StateID) []Transition {
	if int(id) >= len(g.states) {
		return nil
	}
	return g.states[id].transitions
}

// IsFinite reports whether the graph accepts finitely many strings.
func (g *Graph) IsFinite() bool {
	return g.finite
}

// IsEmpty reports whether the graph accepts no string at all.
func (g *Graph) IsEmpty() bool {
	s := g.states[g.start]
	return !s.accept && len(s.transitions) == 0
}

// Step returns the state reached from id on r, or InvalidState.
func (g *Graph) Step(id StateID, r rune) StateID {
	return Step(g, id, r)
}

// Accepts reports whether the whole of s is accepted by the graph.
func (g *Graph) Accepts(s string) bool {
	return Accepts(g, s)
}

// Step returns the state of v reached from id on r, or InvalidState.
// Transitions are binary searched, relying on their sorted order.
func Step(v View, id StateID, r rune) StateID {
	ts := v.Transitions(id)
	lo, hi := 0, len(ts)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r < ts[mid].Lo:
			hi = mid
		case r > ts[mid].Hi:
			lo = mid + 1
		default:
			return ts[mid].Next
		}
	}
	return InvalidState
}

// Accepts reports whether v accepts the whole of s.
func Accepts(v View, s string) bool {
	id := v.Start()
	for _, r := range s {
		id = Step(v, id, r)
		if id == InvalidState {
			return false
		}
	}
	return v.IsAccept(id)
}

// String returns a multi-line dump of the graph, one state per line.
func (g *Graph) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Graph{states: %d, start: %d, finite: %v}\n", len(g.states), g.start, g.finite)
	for i, s := range g.states {
		mark := " "
		if s.accept {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s%d:", mark, i)
		for _, t := range s.transitions {
			sb.WriteString(" ")
			sb.WriteString(t.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
