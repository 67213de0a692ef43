package automaton

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/generex/internal/conv"
)

// Builder constructs Graphs incrementally.
// It is used by the dfa package and by callers that assemble automata by hand.
type Builder struct {
	states []state
	start  StateID
}

// NewBuilder creates a new graph builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new graph builder with the given initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]state, 0, capacity),
		start:  InvalidState,
	}
}

// AddState adds a state and returns its ID. The first state added becomes the
// start state unless SetStart is called.
func (b *Builder) AddState(accept bool) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, state{accept: accept})
	if b.start == InvalidState {
		b.start = id
	}
	return id
}

// SetAccept marks id as accepting or not.
func (b *Builder) SetAccept(id StateID, accept bool) {
	if int(id) < len(b.states) {
		b.states[id].accept = accept
	}
}

// AddTransition adds an edge from -> to on every rune in [lo, hi].
func (b *Builder) AddTransition(from StateID, lo, hi rune, to StateID) {
	if int(from) >= len(b.states) {
		return
	}
	b.states[from].transitions = append(b.states[from].transitions, Transition{Lo: lo, Hi: hi, Next: to})
}

// AddRune adds an edge from -> to on the single rune r.
func (b *Builder) AddRune(from StateID, r rune, to StateID) {
	b.AddTransition(from, r, r, to)
}

// SetStart sets the initial state.
func (b *Builder) SetStart(id StateID) {
	b.start = id
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the graph is well-formed:
//   - the start state is set and in bounds
//   - every transition has lo <= hi and a valid target
//   - transitions leaving a state do not overlap (determinism)
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i := range b.states {
		id := StateID(i)
		ts := sortedTransitions(b.states[i].transitions)
		for j, t := range ts {
			if t.Lo > t.Hi {
				return &BuildError{Message: fmt.Sprintf("inverted range %v", t), StateID: id}
			}
			if int(t.Next) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid transition target %d", t.Next), StateID: id}
			}
			if j > 0 && ts[j-1].Hi >= t.Lo {
				return &BuildError{
					Message: fmt.Sprintf("overlapping transitions %v and %v", ts[j-1], t),
					StateID: id,
				}
			}
		}
	}
	return nil
}

// Build validates the builder, removes dead states and returns the Graph.
//
// Dead states are those unreachable from the start state or unable to reach
// an accepting state. The start state always survives, so a graph accepting
// nothing is a single non-accepting state without transitions.
func (b *Builder) Build() (*Graph, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	live := b.liveStates()

	// Renumber live states densely, start first.
	remap := make([]StateID, len(b.states))
	for i := range remap {
		remap[i] = InvalidState
	}
	order := make([]StateID, 0, live.Count()+1)
	order = append(order, b.start)
	remap[b.start] = 0
	for i := range b.states {
		id := StateID(i)
		if id == b.start || !live.Test(uint(i)) {
			continue
		}
		remap[id] = StateID(len(order))
		order = append(order, id)
	}

	g := &Graph{
		states: make([]state, len(order)),
		start:  0,
	}
	for newID, oldID := range order {
		old := b.states[oldID]
		s := state{accept: old.accept}
		if live.Test(uint(oldID)) {
			s.transitions = liveTransitions(old.transitions, remap, live)
		}
		g.states[newID] = s
	}
	g.finite = !hasCycle(g)
	return g, nil
}

// liveStates returns the states that are both reachable from the start state
// and co-reachable from an accepting state.
func (b *Builder) liveStates() *bitset.BitSet {
	n := uint(len(b.states))

	reach := bitset.New(n)
	reach.Set(uint(b.start))
	work := []StateID{b.start}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, t := range b.states[s].transitions {
			if !reach.Test(uint(t.Next)) {
				reach.Set(uint(t.Next))
				work = append(work, t.Next)
			}
		}
	}

	// Reverse edges restricted to reachable states.
	reverse := make([][]StateID, n)
	for i := range b.states {
		if !reach.Test(uint(i)) {
			continue
		}
		for _, t := range b.states[i].transitions {
			reverse[t.Next] = append(reverse[t.Next], StateID(i))
		}
	}

	coreach := bitset.New(n)
	for i := range b.states {
		if reach.Test(uint(i)) && b.states[i].accept {
			coreach.Set(uint(i))
			work = append(work, StateID(i))
		}
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, p := range reverse[s] {
			if !coreach.Test(uint(p)) {
				coreach.Set(uint(p))
				work = append(work, p)
			}
		}
	}

	return reach.Intersection(coreach)
}

// liveTransitions drops edges into dead states, remaps targets and merges
// adjacent ranges sharing a target.
func liveTransitions(ts []Transition, remap []StateID, live *bitset.BitSet) []Transition {
	sorted := sortedTransitions(ts)
	out := make([]Transition, 0, len(sorted))
	for _, t := range sorted {
		if !live.Test(uint(t.Next)) {
			continue
		}
		t.Next = remap[t.Next]
		if n := len(out); n > 0 && out[n-1].Next == t.Next && out[n-1].Hi+1 == t.Lo {
			out[n-1].Hi = t.Hi
			continue
		}
		out = append(out, t)
	}
	return slices.Clip(out)
}

func sortedTransitions(ts []Transition) []Transition {
	sorted := slices.Clone(ts)
	slices.SortFunc(sorted, func(a, b Transition) int {
		return int(a.Lo) - int(b.Lo)
	})
	return sorted
}

// hasCycle reports whether any state of g lies on a cycle. Since every state
// of a built graph is live, a cycle means an infinite language.
// Iterative three-colour DFS: onPath marks grey states, done marks black ones.
func hasCycle(g *Graph) bool {
	n := uint(len(g.states))
	onPath := bitset.New(n)
	done := bitset.New(n)

	type frame struct {
		id   StateID
		next int
	}

	for root := range g.states {
		if done.Test(uint(root)) {
			continue
		}
		stack := []frame{{id: StateID(root)}}
		onPath.Set(uint(root))
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ts := g.states[top.id].transitions
			if top.next == len(ts) {
				onPath.Clear(uint(top.id))
				done.Set(uint(top.id))
				stack = stack[:len(stack)-1]
				continue
			}
			dest := ts[top.next].Next
			top.next++
			if onPath.Test(uint(dest)) {
				return true
			}
			if !done.Test(uint(dest)) {
				onPath.Set(uint(dest))
				stack = append(stack, frame{id: dest})
			}
		}
	}
	return false
}
