package generex

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

// excluder rejects strings containing any of a fixed set of words.
// A nil excluder accepts everything.
type excluder struct {
	ac *ahocorasick.Automaton
}

func newExcluder(words []string) (*excluder, error) {
	if len(words) == 0 {
		return nil, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, w := range words {
		builder.AddPattern([]byte(w))
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("generex: build exclude automaton: %w", err)
	}
	return &excluder{ac: ac}, nil
}

// allows reports whether s contains none of the excluded words.
func (e *excluder) allows(s string) bool {
	if e == nil {
		return true
	}
	return !e.ac.IsMatch([]byte(s))
}
