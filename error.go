package generex

import (
	"errors"

	"github.com/coregx/generex/dfa"
	"github.com/coregx/generex/enumerate"
	"github.com/coregx/generex/nfa"
	"github.com/coregx/generex/rank"
)

// Errors returned by Generex. All of them work with errors.Is.
var (
	// ErrInvalidPattern reports a syntax error in the pattern. The error
	// returned by Compile also unwraps to the *syntax.Error.
	ErrInvalidPattern = nfa.ErrInvalidPattern

	// ErrUnsupported reports syntax that has no meaning for generation,
	// such as word boundaries.
	ErrUnsupported = nfa.ErrUnsupported

	// ErrTooComplex reports a pattern exceeding MaxNFAStates or MaxRecursionDepth.
	ErrTooComplex = nfa.ErrTooComplex

	// ErrStateLimitExceeded reports a pattern exceeding MaxDFAStates.
	ErrStateLimitExceeded error = dfa.ErrStateLimitExceeded

	// ErrUnsupportedLanguage is matched by both ErrInfiniteLanguage and
	// ErrCountOverflow.
	ErrUnsupportedLanguage = rank.ErrUnsupportedLanguage

	// ErrInfiniteLanguage reports an operation that needs a finite language.
	ErrInfiniteLanguage = rank.ErrInfiniteLanguage

	// ErrCountOverflow reports a finite language with more than 2^64-1 matches.
	ErrCountOverflow = rank.ErrCountOverflow

	// ErrBudgetExceeded reports that counting visited more than CountBudget
	// transitions.
	ErrBudgetExceeded = rank.ErrBudgetExceeded

	// ErrRankOutOfRange reports a rank above MatchCount.
	ErrRankOutOfRange = rank.ErrRankOutOfRange

	// ErrExhausted is returned by an Iterator with no matches left.
	ErrExhausted = enumerate.ErrExhausted

	// ErrInvalidConfig is matched by *ConfigError.
	ErrInvalidConfig = errors.New("generex: invalid config")
)
