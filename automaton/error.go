package automaton

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph indicates a malformed automaton was passed to Builder.Build.
var ErrInvalidGraph = errors.New("invalid automaton")

// BuildError represents an error during graph construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("automaton build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("automaton build error: %s", e.Message)
}

// Is makes every BuildError match ErrInvalidGraph.
func (e *BuildError) Is(target error) bool {
	return target == ErrInvalidGraph
}
