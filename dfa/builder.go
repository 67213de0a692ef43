// Package dfa turns a rune-range Thompson NFA into a deterministic
// automaton.Graph by eager subset construction.
//
// Each DFA state is the epsilon closure of a set of NFA states. Outgoing
// transitions are computed per equivalence class of runes (see
// nfa.RuneClassSet), so the resulting graph has non-overlapping, sorted
// transitions and can be walked by the generation packages directly.
package dfa

import (
	"fmt"
	"slices"

	"github.com/coregx/generex/automaton"
	"github.com/coregx/generex/internal/sparse"
	"github.com/coregx/generex/nfa"
)

// Builder determinizes one NFA.
type Builder struct {
	nfa    *nfa.NFA
	config Config

	// scratch reused across transitions
	closure *sparse.Set[nfa.StateID]
	targets *sparse.Set[nfa.StateID]
	stack   []nfa.StateID
	classes *nfa.RuneClassSet
}

// NewBuilder creates a new DFA builder for the given NFA
func NewBuilder(n *nfa.NFA, config Config) *Builder {
	return &Builder{
		nfa:     n,
		config:  config,
		closure: sparse.New[nfa.StateID](n.States()),
		targets: sparse.New[nfa.StateID](n.States()),
		classes: nfa.NewRuneClassSet(),
	}
}

// Build runs the subset construction and returns the pruned graph.
// Returns ErrStateLimitExceeded if more than Config.MaxStates are needed.
func (b *Builder) Build() (*automaton.Graph, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	out := automaton.NewBuilder()
	ids := make(map[string]automaton.StateID)
	var sets [][]nfa.StateID

	addState := func() (automaton.StateID, error) {
		key := b.closure.Key()
		if id, ok := ids[key]; ok {
			return id, nil
		}
		if len(sets) >= b.config.MaxStates {
			return automaton.InvalidState, &DFAError{
				Kind:    StateLimitExceeded,
				Message: fmt.Sprintf("DFA state limit exceeded (%d states)", b.config.MaxStates),
			}
		}
		members := slices.Clone(b.closure.Values())
		id := out.AddState(b.containsMatchState(members))
		ids[key] = id
		sets = append(sets, members)
		return id, nil
	}

	b.closure.Clear()
	b.targets.Clear()
	b.targets.Insert(b.nfa.Start())
	b.epsilonClosure()
	start, err := addState()
	if err != nil {
		return nil, err
	}
	out.SetStart(start)

	for i := 0; i < len(sets); i++ {
		from := automaton.StateID(i)
		members := sets[i]

		b.classes.Reset()
		for _, sid := range members {
			b.nfa.State(sid).Ranges(func(lo, hi rune, _ nfa.StateID) {
				b.classes.SetRange(lo, hi)
			})
		}

		for _, class := range b.classes.Classes() {
			if !b.move(members, class) {
				continue
			}
			to, err := addState()
			if err != nil {
				return nil, err
			}
			out.AddTransition(from, class.Lo, class.Hi, to)
		}
	}

	g, err := out.Build()
	if err != nil {
		return nil, &DFAError{
			Kind:    InvalidNFA,
			Message: "failed to build automaton",
			Cause:   err,
		}
	}
	return g, nil
}

// move computes, into b.closure, the epsilon closure of the NFA states
// reachable from members on any rune of class. Returns false when no member
// consumes the class.
//
// Every rune of a class behaves identically, so one containment check per
// range decides the whole class.
func (b *Builder) move(members []nfa.StateID, class nfa.RuneRange) bool {
	b.targets.Clear()
	for _, sid := range members {
		b.nfa.State(sid).Ranges(func(lo, hi rune, next nfa.StateID) {
			if lo <= class.Lo && class.Hi <= hi {
				b.targets.Insert(next)
			}
		})
	}
	if b.targets.IsEmpty() {
		return false
	}
	b.closure.Clear()
	b.epsilonClosure()
	return true
}

// epsilonClosure adds to b.closure every NFA state reachable from b.targets
// via epsilon transitions (Split, Epsilon states).
//
// Algorithm: Iterative DFS with visited set
func (b *Builder) epsilonClosure() {
	b.stack = b.stack[:0]
	for _, v := range b.targets.Values() {
		if b.closure.Insert(v) {
			b.stack = append(b.stack, v)
		}
	}

	for len(b.stack) > 0 {
		current := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		state := b.nfa.State(current)
		if state == nil {
			continue
		}

		switch state.Kind() {
		case nfa.StateEpsilon:
			b.push(state.Epsilon())
		case nfa.StateSplit:
			left, right := state.Split()
			b.push(left)
			b.push(right)
		}
	}
}

func (b *Builder) push(id nfa.StateID) {
	if id != nfa.InvalidState && b.closure.Insert(id) {
		b.stack = append(b.stack, id)
	}
}

// containsMatchState returns true if any state in the set is a match state
func (b *Builder) containsMatchState(states []nfa.StateID) bool {
	for _, sid := range states {
		if b.nfa.IsMatch(sid) {
			return true
		}
	}
	return false
}

// Compile is a convenience function to build a graph from an NFA with default config
func Compile(n *nfa.NFA) (*automaton.Graph, error) {
	return CompileWithConfig(n, DefaultConfig())
}

// CompileWithConfig builds a graph from an NFA with the specified configuration
func CompileWithConfig(n *nfa.NFA, config Config) (*automaton.Graph, error) {
	return NewBuilder(n, config).Build()
}

// CompilePattern is a convenience function to compile a regex pattern directly
// to a deterministic graph. This combines NFA compilation and determinization.
//
// Example:
//
//	g, err := dfa.CompilePattern(`[a-c]{2}`)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Accepts("ab")) // true
func CompilePattern(pattern string) (*automaton.Graph, error) {
	n, err := nfa.NewDefaultCompiler().Compile(pattern)
	if err != nil {
		return nil, err
	}
	return Compile(n)
}
