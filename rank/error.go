package rank

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage indicates an operation needs a finite,
	// representable match count and the automaton does not have one.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInfiniteLanguage indicates the automaton accepts infinitely many strings.
	ErrInfiniteLanguage = fmt.Errorf("%w: infinite language", ErrUnsupportedLanguage)

	// ErrCountOverflow indicates the match count does not fit in a uint64.
	ErrCountOverflow = fmt.Errorf("%w: match count exceeds uint64", ErrUnsupportedLanguage)

	// ErrBudgetExceeded indicates Annotate visited more transitions than allowed.
	ErrBudgetExceeded = errors.New("count annotation budget exceeded")

	// ErrRankOutOfRange indicates a rank above the number of matches.
	ErrRankOutOfRange = errors.New("rank out of range")
)

// BudgetError reports the budget that Annotate exhausted.
type BudgetError struct {
	Budget int
}

// Error implements the error interface
func (e *BudgetError) Error() string {
	return fmt.Sprintf("count annotation budget exceeded (%d transitions)", e.Budget)
}

// Is makes BudgetError match ErrBudgetExceeded.
func (e *BudgetError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// RangeError reports a rank larger than the number of matches.
type RangeError struct {
	Rank  uint64
	Total uint64
}

// Error implements the error interface
func (e *RangeError) Error() string {
	return fmt.Sprintf("rank %d out of range [1, %d]", e.Rank, e.Total)
}

// Is makes RangeError match ErrRankOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRankOutOfRange
}
