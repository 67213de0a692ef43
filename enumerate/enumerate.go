// Package enumerate lists the strings accepted by an automaton in
// lexicographic order, one at a time.
//
// The Iterator keeps an explicit stack of frames instead of recursing, so it
// can be paused between calls for as long as the caller likes and works on
// automata with infinite languages. On such automata, a branch that can
// repeat forever without reaching an accepting state (for example `a*b`,
// which keeps prepending 'a') never yields; bound the descent with
// WithMaxLength in that case.
package enumerate

import (
	"errors"
	"iter"
	"math"

	"github.com/coregx/generex/automaton"
	"github.com/coregx/generex/rank"
)

// ErrExhausted is returned by Next when no match remains.
var ErrExhausted = errors.New("enumerate: no more matches")

// frame is one entry of the depth-first traversal.
type frame struct {
	state       automaton.StateID
	transitions []automaton.Transition
	index       int  // current transition
	next        rune // next rune to try within transitions[index]
	emitted     bool // acceptance of state already considered
}

// Iterator yields matches in lexicographic order: a state's own acceptance
// before its continuations, continuations by ascending transition and rune.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	v         automaton.View
	maxLength int
	filter    func(string) bool

	stack  []frame
	prefix []rune

	pending    string
	hasPending bool
}

// Option configures an Iterator.
type Option func(*Iterator)

// WithMaxLength stops descending below n runes. Matches longer than n are
// skipped. n < 0 means unbounded (the default).
func WithMaxLength(n int) Option {
	return func(it *Iterator) {
		if n < 0 {
			n = math.MaxInt
		}
		it.maxLength = n
	}
}

// WithFilter skips matches for which keep returns false. Repeated filters
// combine: a match must pass all of them.
func WithFilter(keep func(string) bool) Option {
	return func(it *Iterator) {
		if prev := it.filter; prev != nil {
			it.filter = func(s string) bool { return prev(s) && keep(s) }
			return
		}
		it.filter = keep
	}
}

// New returns an Iterator positioned before the first match of v.
func New(v automaton.View, opts ...Option) *Iterator {
	it := &Iterator{
		v:         v,
		maxLength: math.MaxInt,
	}
	for _, opt := range opts {
		opt(it)
	}
	it.push(v.Start())
	return it
}

// HasNext reports whether another match exists. Repeated calls without Next
// return the same answer and do not advance the traversal.
func (it *Iterator) HasNext() bool {
	if it.hasPending {
		return true
	}
	for {
		s, ok := it.advance()
		if !ok {
			return false
		}
		if it.filter == nil || it.filter(s) {
			it.pending = s
			it.hasPending = true
			return true
		}
	}
}

// Next returns the next match, or ErrExhausted when the traversal is over.
func (it *Iterator) Next() (string, error) {
	if !it.HasNext() {
		return "", ErrExhausted
	}
	s := it.pending
	it.pending = ""
	it.hasPending = false
	return s, nil
}

// Seq returns the remaining matches as a single-use sequence. Breaking out of
// a range loop leaves the Iterator positioned after the last yielded match.
func (it *Iterator) Seq() iter.Seq[string] {
	return func(yield func(string) bool) {
		for it.HasNext() {
			s, _ := it.Next()
			if !yield(s) {
				return
			}
		}
	}
}

func (it *Iterator) push(id automaton.StateID) {
	ts := it.v.Transitions(id)
	f := frame{state: id, transitions: ts}
	if len(ts) > 0 {
		f.next = ts[0].Lo
	}
	it.stack = append(it.stack, f)
}

// advance moves the traversal to the next accepting point and returns the
// string leading to it.
func (it *Iterator) advance() (string, bool) {
	for len(it.stack) > 0 {
		depth := len(it.stack) - 1
		top := &it.stack[depth]

		if !top.emitted {
			top.emitted = true
			if it.v.IsAccept(top.state) {
				return string(it.prefix[:depth]), true
			}
		}

		if top.index >= len(top.transitions) || depth >= it.maxLength {
			it.stack = it.stack[:depth]
			continue
		}

		t := top.transitions[top.index]
		r := top.next
		if r == t.Hi {
			top.index++
			if top.index < len(top.transitions) {
				top.next = top.transitions[top.index].Lo
			}
		} else {
			top.next++
		}

		it.prefix = append(it.prefix[:depth], r)
		it.push(t.Next)
	}
	return "", false
}

// Take returns up to limit matches of v in order. It works for any language.
func Take(v automaton.View, limit int, opts ...Option) []string {
	if limit <= 0 {
		return nil
	}
	it := New(v, opts...)
	out := make([]string, 0, min(limit, 1024))
	for len(out) < limit {
		s, err := it.Next()
		if err != nil {
			break
		}
		out = append(out, s)
	}
	return out
}

// All returns every match of v in order. It fails with
// rank.ErrInfiniteLanguage when v accepts infinitely many strings.
func All(v automaton.View, opts ...Option) ([]string, error) {
	if !v.IsFinite() {
		return nil, rank.ErrInfiniteLanguage
	}
	it := New(v, opts...)
	var out []string
	for {
		s, err := it.Next()
		if errors.Is(err, ErrExhausted) {
			return out, nil
		}
		out = append(out, s)
	}
}
