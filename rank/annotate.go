// Package rank counts the strings accepted by a finite automaton and maps
// 1-based ranks to strings in lexicographic order.
//
// Annotate builds a Table that records, for every state, how many accepted
// strings start there. Counts are memoized per state, so shared
// sub-automata are counted once. At and First then walk the automaton,
// using the counts to pick the right transition and rune at every step
// without enumerating the strings before the requested one.
//
// Ordering: at a state, stopping (if the state accepts) sorts before any
// continuation; continuations follow transition order, then rune order
// within a transition's range.
package rank

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/coregx/generex/automaton"
)

// DefaultBudget is the default number of transitions Annotate may visit.
const DefaultBudget = 1_000_000

// Edge is one annotated transition.
type Edge struct {
	Lo   rune
	Hi   rune
	Next automaton.StateID

	// Per is the number of accepted strings after consuming one rune of the
	// range, i.e. the count of Next.
	Per uint64

	// Span is Width × Per, the strings reachable through the whole range.
	Span uint64
}

// Node is the annotation of one automaton state.
type Node struct {
	Accept bool

	// Count is the number of accepted strings reachable from this state,
	// including the empty continuation when Accept is set. Saturates at
	// math.MaxUint64.
	Count uint64

	Edges []Edge
}

// Table holds one Node per automaton state.
// A Table is immutable once built and safe for concurrent reads.
type Table struct {
	nodes     []Node
	start     automaton.StateID
	saturated bool
}

// Annotate computes the count table for v.
//
// The traversal is an iterative post-order DFS over an explicit stack. It
// fails with ErrInfiniteLanguage when it meets a cycle and with
// ErrBudgetExceeded after visiting more than budget transitions
// (budget <= 0 selects DefaultBudget).
func Annotate(v automaton.View, budget int) (*Table, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	t := &Table{
		nodes: make([]Node, v.NumStates()),
		start: v.Start(),
	}

	const (
		white = iota
		grey
		black
	)
	colour := make([]uint8, v.NumStates())

	type frame struct {
		id   automaton.StateID
		next int
	}
	stack := []frame{{id: t.start}}
	colour[t.start] = grey
	visited := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		ts := v.Transitions(top.id)

		if top.next < len(ts) {
			dest := ts[top.next].Next
			top.next++

			visited++
			if visited > budget {
				return nil, &BudgetError{Budget: budget}
			}

			switch colour[dest] {
			case grey:
				return nil, fmt.Errorf("%w: cycle through state %d", ErrInfiniteLanguage, dest)
			case white:
				colour[dest] = grey
				stack = append(stack, frame{id: dest})
			}
			continue
		}

		// All successors are annotated.
		id := top.id
		stack = stack[:len(stack)-1]
		colour[id] = black

		node := Node{Accept: v.IsAccept(id)}
		if node.Accept {
			node.Count = 1
		}
		node.Edges = make([]Edge, len(ts))
		for i, tr := range ts {
			per := t.nodes[tr.Next].Count
			span, over := mulSat(uint64(tr.Width()), per)
			node.Edges[i] = Edge{Lo: tr.Lo, Hi: tr.Hi, Next: tr.Next, Per: per, Span: span}
			var sumOver bool
			node.Count, sumOver = addSat(node.Count, span)
			if over || sumOver {
				t.saturated = true
			}
		}
		t.nodes[id] = node
	}

	return t, nil
}

// Total returns the number of accepted strings, saturated at math.MaxUint64.
func (t *Table) Total() uint64 {
	return t.nodes[t.start].Count
}

// Saturated reports whether some count overflowed uint64. Rank lookups are
// refused on a saturated table.
func (t *Table) Saturated() bool {
	return t.saturated
}

// Node returns the annotation of state id.
func (t *Table) Node(id automaton.StateID) Node {
	return t.nodes[id]
}

// mulSat returns a*b, saturating at math.MaxUint64.
func mulSat(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64, true
	}
	return lo, false
}

// addSat returns a+b, saturating at math.MaxUint64.
func addSat(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64, true
	}
	return sum, false
}
