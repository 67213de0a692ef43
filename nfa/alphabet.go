package nfa

import "slices"

// RuneClassSet tracks rune boundaries in order to split overlapping ranges
// into disjoint equivalence classes.
//
// Two runes belong to the same class if no tracked range starts or ends
// between them. Subset construction uses one RuneClassSet per DFA state so
// that every outgoing DFA transition covers a range of runes that all lead to
// the same set of NFA states.
//
// Algorithm:
//  1. For each range [lo, hi]:
//     - If lo > 0: mark lo-1 as boundary
//     - Mark hi as boundary
//  2. Walk the sorted boundaries; consecutive boundaries delimit a class
type RuneClassSet struct {
	bounds []rune
	min    rune
	any    bool
}

// NewRuneClassSet creates an empty RuneClassSet with no boundaries.
func NewRuneClassSet() *RuneClassSet {
	return &RuneClassSet{}
}

// SetRange marks a rune range [lo, hi] as having distinct transitions.
// This sets boundaries at lo-1 and hi.
func (s *RuneClassSet) SetRange(lo, hi rune) {
	if lo > 0 {
		s.bounds = append(s.bounds, lo-1)
	}
	s.bounds = append(s.bounds, hi)
	if !s.any || lo < s.min {
		s.min = lo
	}
	s.any = true
}

// Reset clears all boundaries so the set can be reused.
func (s *RuneClassSet) Reset() {
	s.bounds = s.bounds[:0]
	s.min = 0
	s.any = false
}

// Classes returns the disjoint ranges between the smallest tracked rune and
// the largest boundary, in ascending order. Classes may include gaps that no
// tracked range covers; callers skip those.
func (s *RuneClassSet) Classes() []RuneRange {
	if !s.any {
		return nil
	}
	slices.Sort(s.bounds)
	s.bounds = slices.Compact(s.bounds)

	classes := make([]RuneRange, 0, len(s.bounds))
	lo := s.min
	for _, b := range s.bounds {
		if b < lo {
			continue
		}
		classes = append(classes, RuneRange{Lo: lo, Hi: b})
		lo = b + 1
	}
	return classes
}
