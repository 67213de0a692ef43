package rank

import (
	"strings"
)

// At returns the match of the given 1-based rank in lexicographic order.
//
// Rank 0 is treated as rank 1. A rank above Total returns a *RangeError.
// At fails with ErrCountOverflow on a saturated table, where the counts no
// longer partition the ranks.
//
// The walk takes O(length × transitions per state): at every state the rank
// either lands on "stop here" or inside one transition's span, whose runes
// each own Per consecutive ranks.
func (t *Table) At(rank uint64) (string, error) {
	if t.saturated {
		return "", ErrCountOverflow
	}
	if rank == 0 {
		rank = 1
	}
	if total := t.Total(); rank > total {
		return "", &RangeError{Rank: rank, Total: total}
	}

	var sb strings.Builder
	id := t.start
	for {
		node := &t.nodes[id]
		if node.Accept {
			if rank == 1 {
				return sb.String(), nil
			}
			rank--
		}

		moved := false
		for _, e := range node.Edges {
			if rank > e.Span {
				rank -= e.Span
				continue
			}
			offset := (rank - 1) / e.Per
			sb.WriteRune(e.Lo + rune(offset))
			rank -= offset * e.Per
			id = e.Next
			moved = true
			break
		}
		if !moved {
			// Unreachable for a consistent table: Count bounds the rank.
			return "", &RangeError{Rank: rank, Total: t.Total()}
		}
	}
}

// First returns the lexicographically smallest match. It is equivalent to
// At(1) but only ever descends into the first non-empty choice.
func (t *Table) First() (string, error) {
	if t.Total() == 0 {
		return "", &RangeError{Rank: 1, Total: 0}
	}

	var sb strings.Builder
	id := t.start
	for {
		node := &t.nodes[id]
		if node.Accept {
			return sb.String(), nil
		}
		var next *Edge
		for i := range node.Edges {
			if node.Edges[i].Span > 0 {
				next = &node.Edges[i]
				break
			}
		}
		if next == nil {
			return sb.String(), nil
		}
		sb.WriteRune(next.Lo)
		id = next.Next
	}
}
