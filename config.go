package generex

import (
	"log/slog"
	"math"

	"github.com/coregx/generex/rank"
)

// Config controls compilation limits and generation defaults.
//
// Example:
//
//	config := generex.DefaultConfig()
//	config.InfiniteMaxLength = 20
//	g, err := generex.CompileWithConfig(`[a-z]+@[a-z]+\.com`, config)
type Config struct {
	// MaxNFAStates caps the size of the intermediate NFA.
	// Default: 100,000
	MaxNFAStates int

	// MaxRecursionDepth limits nesting during NFA compilation.
	// Default: 100
	MaxRecursionDepth int

	// MaxDFAStates caps the number of states of the determinized automaton.
	// Default: 10,000
	MaxDFAStates int

	// CountBudget is the number of transitions the match counter may visit
	// before giving up with ErrBudgetExceeded.
	// Default: rank.DefaultBudget
	CountBudget int

	// InfiniteMaxLength is the upper length bound used by Random and
	// RandomMin when the language is infinite.
	// Default: 50
	InfiniteMaxLength int

	// EnumerateMaxLength bounds, in runes, the matches Iterator and Matches
	// produce for infinite languages. Longer matches are skipped, so
	// branches such as (a|b)*c cannot descend forever. Zero selects
	// InfiniteMaxLength.
	// Default: 0
	EnumerateMaxLength int

	// DotNewline makes '.' match '\n' as if the pattern started with (?s).
	// Default: false
	DotNewline bool

	// Seed initializes the random source. Zero selects a time-based seed.
	Seed int64

	// Exclude lists substrings that generated strings must not contain.
	// Matches containing any of them are skipped by the iterator and by
	// Matches/AllMatches; Random redraws up to MaxAttempts times.
	Exclude []string

	// MaxAttempts bounds the redraws Random makes to avoid Exclude words.
	// Default: 100
	MaxAttempts int

	// Logger receives debug records about compilation. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxNFAStates:      100_000,
		MaxRecursionDepth: 100,
		MaxDFAStates:      10_000,
		CountBudget:       rank.DefaultBudget,
		InfiniteMaxLength: 50,
		MaxAttempts:       100,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxNFAStates: 1 to 10,000,000
//   - MaxRecursionDepth: 10 to 1,000
//   - MaxDFAStates: 1 to 1,000,000
//   - CountBudget: at least 1
//   - InfiniteMaxLength: 1 to math.MaxInt32
//   - EnumerateMaxLength: 0 to math.MaxInt32
//   - MaxAttempts: at least 1
//   - Exclude: no empty entries
func (c Config) Validate() error {
	if c.MaxNFAStates < 1 || c.MaxNFAStates > 10_000_000 {
		return &ConfigError{Field: "MaxNFAStates", Message: "must be between 1 and 10,000,000"}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 1,000"}
	}
	if c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000 {
		return &ConfigError{Field: "MaxDFAStates", Message: "must be between 1 and 1,000,000"}
	}
	if c.CountBudget < 1 {
		return &ConfigError{Field: "CountBudget", Message: "must be positive"}
	}
	if c.InfiniteMaxLength < 1 || c.InfiniteMaxLength > math.MaxInt32 {
		return &ConfigError{Field: "InfiniteMaxLength", Message: "must be between 1 and 2,147,483,647"}
	}
	if c.EnumerateMaxLength < 0 || c.EnumerateMaxLength > math.MaxInt32 {
		return &ConfigError{Field: "EnumerateMaxLength", Message: "must be between 0 and 2,147,483,647"}
	}
	if c.MaxAttempts < 1 {
		return &ConfigError{Field: "MaxAttempts", Message: "must be positive"}
	}
	for _, w := range c.Exclude {
		if w == "" {
			return &ConfigError{Field: "Exclude", Message: "must not contain empty words"}
		}
	}
	return nil
}

// WithSeed returns a copy of c using the given random seed.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	return c
}

// WithExclude returns a copy of c that rejects strings containing any of words.
func (c Config) WithExclude(words ...string) Config {
	c.Exclude = append([]string(nil), words...)
	return c
}

// WithInfiniteMaxLength returns a copy of c with the given length bound for
// random strings of infinite languages.
func (c Config) WithInfiniteMaxLength(n int) Config {
	c.InfiniteMaxLength = n
	return c
}

// WithEnumerateMaxLength returns a copy of c with the given length bound for
// enumerating infinite languages.
func (c Config) WithEnumerateMaxLength(n int) Config {
	c.EnumerateMaxLength = n
	return c
}

// enumerateMaxLength resolves the zero default.
func (c Config) enumerateMaxLength() int {
	if c.EnumerateMaxLength == 0 {
		return c.InfiniteMaxLength
	}
	return c.EnumerateMaxLength
}

// WithMaxDFAStates returns a copy of c with the given DFA state limit.
func (c Config) WithMaxDFAStates(n int) Config {
	c.MaxDFAStates = n
	return c
}

// WithLogger returns a copy of c logging to l.
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "generex: invalid config: " + e.Field + ": " + e.Message
}

// Is makes ConfigError match ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
