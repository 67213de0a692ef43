package generex

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently compiled patterns so repeated requests skip parsing,
// determinization and counting.
//
// Get returns a new *Generex on every call. Generators for the same pattern
// share the automaton and its count table but own their random source, so
// re-seeding one does not affect the others. The n-th Get (counting from
// zero) is seeded with Config.Seed+n, so generators draw different streams
// while a fixed Config.Seed keeps the whole sequence reproducible.
//
// A Cache is safe for concurrent use.
type Cache struct {
	config  Config
	entries *lru.Cache[string, *compiled]
	gets    atomic.Int64
}

// NewCache returns a Cache holding up to size patterns compiled with config.
func NewCache(size int, config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	entries, err := lru.New[string, *compiled](size)
	if err != nil {
		return nil, fmt.Errorf("generex: cache: %w", err)
	}
	return &Cache{config: config, entries: entries}, nil
}

// Get returns a generator for pattern, compiling it on a miss.
// Compilation errors are not cached.
func (c *Cache) Get(pattern string) (*Generex, error) {
	if e, ok := c.entries.Get(pattern); ok {
		return newGenerex(e, c.nextConfig()), nil
	}

	logger := loggerOf(c.config)
	graph, err := compileGraph(pattern, c.config, logger)
	if err != nil {
		return nil, err
	}
	e, err := newCompiled(graph, pattern, c.config, logger)
	if err != nil {
		return nil, err
	}
	// Two goroutines missing on the same pattern both compile; the later
	// Add wins and both results stay valid.
	c.entries.Add(pattern, e)
	return newGenerex(e, c.nextConfig()), nil
}

// nextConfig returns the cache config with the seed for the next generator.
func (c *Cache) nextConfig() Config {
	seed := c.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return c.config.WithSeed(seed + c.gets.Add(1) - 1)
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries.Purge()
}
