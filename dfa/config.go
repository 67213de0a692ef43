package dfa

// Config configures subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states to create.
	// Patterns whose determinization exceeds it fail with ErrStateLimitExceeded.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Bounded repetitions of wide classes ([a-z]{1,100}): ~100-1,000 states
	//   - Nested alternations with overlapping classes can blow up exponentially
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}
