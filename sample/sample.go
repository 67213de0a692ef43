// Package sample draws random strings from an automaton within a length range.
//
// The walk is a best-effort heuristic, not a uniform sampler:
//   - at an accepting state the walk stops with a probability that grows
//     linearly from zero at the minimum length to one at the maximum length;
//   - otherwise it picks a transition with probability proportional to the
//     width of its rune range, then a rune uniformly within that range;
//   - the first string that lands inside the length range wins; dead ends
//     backtrack to the remaining transitions of the parent state.
//
// If nothing fits the range, the longest candidate seen is returned,
// truncated to the maximum length, with Result.OK unset.
//
// Output is fully determined by the automaton and the Rand, so a seeded
// source reproduces the same strings.
package sample

import (
	"github.com/coregx/generex/automaton"
)

// Rand is the source of randomness. *math/rand.Rand satisfies it.
type Rand interface {
	// Int63n returns a uniform value in [0, n). n must be > 0.
	Int63n(n int64) int64
}

// Result is the outcome of a sampling walk.
type Result struct {
	// Value is the sampled string, at most max runes long.
	Value string

	// OK reports whether Value is accepted by the automaton and its length
	// lies within [min, max].
	OK bool
}

// outcome of visiting one state
type outcome struct {
	runes []rune
	ok    bool
}

// frame is one suspended state visit awaiting the results of its children.
type frame struct {
	state      automaton.StateID
	depth      int
	candidates []automaton.Transition
	weight     int64
	best       []rune // longest failed candidate so far
}

// Sampler walks one automaton. It is not safe for concurrent use because it
// reuses its buffers and consumes its Rand.
type Sampler struct {
	v   automaton.View
	rng Rand

	prefix []rune
	stack  []frame
}

// New returns a Sampler over v drawing from rng.
func New(v automaton.View, rng Rand) *Sampler {
	return &Sampler{v: v, rng: rng}
}

// Sample is a convenience wrapper for New(v, rng).Sample(minLen, maxLen).
func Sample(v automaton.View, minLen, maxLen int, rng Rand) Result {
	return New(v, rng).Sample(minLen, maxLen)
}

// Sample draws one string with length (in runes) in [minLen, maxLen] when the
// automaton can produce one. Negative bounds are treated as zero and maxLen
// is raised to minLen if smaller.
func (s *Sampler) Sample(minLen, maxLen int) Result {
	minLen = max(minLen, 0)
	maxLen = max(maxLen, minLen)

	s.prefix = s.prefix[:0]
	s.stack = s.stack[:0]

	out, pushed := s.enter(s.v.Start(), 0, minLen, maxLen)
	for pushed || len(s.stack) > 0 {
		if !pushed {
			// A child finished; fold its outcome into the parent.
			if out.ok {
				return s.result(out.runes, true, maxLen)
			}
			top := &s.stack[len(s.stack)-1]
			if len(out.runes) > len(top.best) {
				top.best = out.runes
			}
		}

		top := &s.stack[len(s.stack)-1]
		if len(top.candidates) == 0 {
			out = outcome{runes: top.best}
			s.stack = s.stack[:len(s.stack)-1]
			pushed = false
			continue
		}

		t := s.pick(top)
		r := t.Lo + rune(s.rng.Int63n(t.Width()))
		s.prefix = append(s.prefix[:top.depth], r)
		out, pushed = s.enter(t.Next, top.depth+1, minLen, maxLen)
	}
	return s.result(out.runes, out.ok, maxLen)
}

// enter visits state at depth with the current prefix. It either resolves
// the visit immediately (pushed == false) or pushes a frame whose children
// are explored by the Sample loop.
func (s *Sampler) enter(state automaton.StateID, depth, minLen, maxLen int) (outcome, bool) {
	if depth > maxLen {
		return outcome{runes: s.snapshot(depth)}, false
	}

	accept := s.v.IsAccept(state)
	if accept && s.shouldStop(depth, minLen, maxLen) {
		return outcome{runes: s.snapshot(depth), ok: true}, false
	}

	ts := s.v.Transitions(state)
	if len(ts) == 0 {
		ok := accept && depth >= minLen
		return outcome{runes: s.snapshot(depth), ok: ok}, false
	}

	f := frame{
		state:      state,
		depth:      depth,
		candidates: append([]automaton.Transition(nil), ts...),
		best:       s.snapshot(depth),
	}
	for _, t := range ts {
		f.weight += t.Width()
	}
	s.stack = append(s.stack, f)
	return outcome{}, true
}

// shouldStop terminates at depth with probability 1/(maxLen-depth+1) once
// the minimum length is reached, so stopping becomes certain at maxLen.
func (s *Sampler) shouldStop(depth, minLen, maxLen int) bool {
	return depth >= minLen && s.rng.Int63n(int64(maxLen-depth)+1) == 0
}

// pick removes and returns a candidate transition of f, chosen with
// probability proportional to its width.
func (s *Sampler) pick(f *frame) automaton.Transition {
	value := s.rng.Int63n(f.weight) + 1
	i := 0
	for ; i < len(f.candidates)-1; i++ {
		value -= f.candidates[i].Width()
		if value <= 0 {
			break
		}
	}
	t := f.candidates[i]
	f.candidates = append(f.candidates[:i], f.candidates[i+1:]...)
	f.weight -= t.Width()
	return t
}

func (s *Sampler) snapshot(depth int) []rune {
	return append([]rune(nil), s.prefix[:depth]...)
}

func (s *Sampler) result(runes []rune, ok bool, maxLen int) Result {
	if len(runes) > maxLen {
		runes = runes[:maxLen]
		ok = false
	}
	return Result{Value: string(runes), OK: ok}
}
