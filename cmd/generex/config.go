package main

import (
	"fmt"
	"os"

	"github.com/coregx/generex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of generex.Config. Zero values keep the
// library defaults.
type fileConfig struct {
	MaxNFAStates       int      `yaml:"max_nfa_states"`
	MaxDFAStates       int      `yaml:"max_dfa_states"`
	MaxRecursionDepth  int      `yaml:"max_recursion_depth"`
	CountBudget        int      `yaml:"count_budget"`
	InfiniteMaxLength  int      `yaml:"infinite_max_length"`
	EnumerateMaxLength int      `yaml:"enumerate_max_length"`
	MaxAttempts        int      `yaml:"max_attempts"`
	DotNewline         bool     `yaml:"dot_newline"`
	Seed               int64    `yaml:"seed"`
	Exclude            []string `yaml:"exclude"`
	LogLevel           string   `yaml:"log_level"`
}

func readConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(c *generex.Config) {
	if fc.MaxNFAStates != 0 {
		c.MaxNFAStates = fc.MaxNFAStates
	}
	if fc.MaxDFAStates != 0 {
		c.MaxDFAStates = fc.MaxDFAStates
	}
	if fc.MaxRecursionDepth != 0 {
		c.MaxRecursionDepth = fc.MaxRecursionDepth
	}
	if fc.CountBudget != 0 {
		c.CountBudget = fc.CountBudget
	}
	if fc.InfiniteMaxLength != 0 {
		c.InfiniteMaxLength = fc.InfiniteMaxLength
	}
	if fc.EnumerateMaxLength != 0 {
		c.EnumerateMaxLength = fc.EnumerateMaxLength
	}
	if fc.MaxAttempts != 0 {
		c.MaxAttempts = fc.MaxAttempts
	}
	if fc.DotNewline {
		c.DotNewline = true
	}
	if fc.Seed != 0 {
		c.Seed = fc.Seed
	}
	if len(fc.Exclude) > 0 {
		c.Exclude = fc.Exclude
	}
}
