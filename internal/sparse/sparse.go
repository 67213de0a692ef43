// Package sparse provides a sparse set of automaton state IDs.
//
// Subset construction computes one epsilon closure per DFA transition. A
// sparse set gives O(1) insert and membership with O(1) clearing, keeps
// insertion order for the closure worklist, and yields a canonical key so
// equal closures map to the same DFA state.
package sparse

import (
	"encoding/binary"
	"slices"
)

// Set holds IDs drawn from [0, capacity). The sparse slice maps an ID to its
// slot in dense; dense lists members in insertion order.
type Set[T ~uint32] struct {
	sparse []uint32
	dense  []T
}

// New returns an empty set for IDs below capacity.
func New[T ~uint32](capacity int) *Set[T] {
	return &Set[T]{
		sparse: make([]uint32, capacity),
		dense:  make([]T, 0, capacity),
	}
}

// Insert adds id and reports whether it was absent.
// IDs outside the capacity are never stored.
func (s *Set[T]) Insert(id T) bool {
	if int(id) >= len(s.sparse) || s.Contains(id) {
		return false
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

// Contains reports whether id is a member.
func (s *Set[T]) Contains(id T) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	slot := s.sparse[id]
	return int(slot) < len(s.dense) && s.dense[slot] == id
}

// Clear empties the set without touching the sparse slice.
func (s *Set[T]) Clear() {
	s.dense = s.dense[:0]
}

func (s *Set[T]) Len() int {
	return len(s.dense)
}

func (s *Set[T]) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in insertion order.
// The slice is only valid until the next Insert or Clear.
func (s *Set[T]) Values() []T {
	return s.dense
}

// Sorted returns a sorted copy of the members.
func (s *Set[T]) Sorted() []T {
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}

// Key encodes the membership independently of insertion order, so two sets
// with the same members have the same key.
func (s *Set[T]) Key() string {
	sorted := s.Sorted()
	buf := make([]byte, 0, 4*len(sorted))
	for _, id := range sorted {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
	}
	return string(buf)
}
