// Package generex generates strings that match a regular expression.
//
// A pattern is compiled into a deterministic automaton, which then answers
// four kinds of questions:
//   - how many strings match (MatchCount)
//   - which string has a given rank in lexicographic order (MatchAt)
//   - a random matching string within a length range (Random, RandomRange)
//   - every match, one at a time, in lexicographic order (Iterator)
//
// Basic usage:
//
//	g, err := generex.Compile(`[0-3]([a-c]|[e-g]{1,2})`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n, _ := g.MatchCount()      // 60
//	s, _ := g.MatchAt(2)        // "0a" is rank 1, "0b" rank 2
//	r := g.Random()             // e.g. "2fg"
//	for s := range g.Iterator().Seq() {
//	    fmt.Println(s)
//	}
//
// Syntax is Go's regexp/syntax in Perl mode. Matching is always against the
// whole string, so ^, $, \A and \z are accepted at the edges of the pattern,
// where every generated string satisfies them. Anchors that could follow or
// precede other text, such as a^b, and word boundaries cannot be generated
// and are rejected with ErrUnsupported.
//
// Counting and ranking need a finite language; they report
// ErrInfiniteLanguage otherwise. Random strings of infinite languages are at
// most Config.InfiniteMaxLength runes long unless a range is given.
//
// Enumeration of an infinite language skips matches longer than
// Config.EnumerateMaxLength runes; without that bound a branch like the
// leading x* of x*y would be followed forever.
//
// Random generation is a length-biased heuristic, not a uniform sampler.
package generex

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/coregx/generex/automaton"
	"github.com/coregx/generex/dfa"
	"github.com/coregx/generex/enumerate"
	"github.com/coregx/generex/internal/logging"
	"github.com/coregx/generex/nfa"
	"github.com/coregx/generex/rank"
	"github.com/coregx/generex/sample"
)

// finiteMaxLength is the upper length bound of Random for finite languages.
const finiteMaxLength = math.MaxInt32

// compiled is the immutable part of a Generex, shared by every Generex built
// from the same automaton.
type compiled struct {
	view    automaton.View
	pattern string
	exclude *excluder
	logger  *slog.Logger
	budget  int

	countOnce sync.Once
	table     *rank.Table
	tableErr  error
}

// Generex generates strings matched by one pattern.
//
// A Generex is safe for concurrent use. The random source is shared and
// serialized; an Iterator belongs to the goroutine that created it.
type Generex struct {
	*compiled
	infiniteMax  int
	enumerateMax int
	attempts     int

	mu  sync.Mutex
	rng *rand.Rand
}

// Compile parses a pattern and builds its automaton with DefaultConfig.
//
// Example:
//
//	g, err := generex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Generex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var zip = generex.MustCompile(`\d{5}(-\d{4})?`)
func MustCompile(pattern string) *Generex {
	g, err := Compile(pattern)
	if err != nil {
		panic("generex: Compile(`" + pattern + "`): " + err.Error())
	}
	return g
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := generex.DefaultConfig().WithSeed(42)
//	g, err := generex.CompileWithConfig(`[A-Z]{1,10}`, config)
func CompileWithConfig(pattern string, config Config) (*Generex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := loggerOf(config)

	graph, err := compileGraph(pattern, config, logger)
	if err != nil {
		return nil, err
	}
	c, err := newCompiled(graph, pattern, config, logger)
	if err != nil {
		return nil, err
	}
	return newGenerex(c, config), nil
}

// New wraps an automaton built elsewhere, for instance with
// automaton.Builder. The view must satisfy the automaton.View contract and
// is not copied.
func New(v automaton.View, config Config) (*Generex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c, err := newCompiled(v, "", config, loggerOf(config))
	if err != nil {
		return nil, err
	}
	return newGenerex(c, config), nil
}

// IsValidPattern reports whether pattern compiles with DefaultConfig.
func IsValidPattern(pattern string) bool {
	_, err := compileGraph(pattern, DefaultConfig(), logging.NewNop())
	return err == nil
}

func compileGraph(pattern string, config Config, logger *slog.Logger) (*automaton.Graph, error) {
	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		DotNewline:        config.DotNewline,
		MaxRecursionDepth: config.MaxRecursionDepth,
		MaxStates:         config.MaxNFAStates,
	})
	n, err := compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}

	graph, err := dfa.CompileWithConfig(n, dfa.DefaultConfig().WithMaxStates(config.MaxDFAStates))
	if err != nil {
		return nil, fmt.Errorf("generex: determinize %q: %w", pattern, err)
	}

	logger.Debug("compiled pattern",
		"pattern", pattern,
		"nfa_states", n.States(),
		"dfa_states", graph.NumStates(),
		"finite", graph.IsFinite())
	return graph, nil
}

func newCompiled(v automaton.View, pattern string, config Config, logger *slog.Logger) (*compiled, error) {
	ex, err := newExcluder(config.Exclude)
	if err != nil {
		return nil, err
	}
	return &compiled{
		view:    v,
		pattern: pattern,
		exclude: ex,
		logger:  logger,
		budget:  config.CountBudget,
	}, nil
}

func newGenerex(c *compiled, config Config) *Generex {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generex{
		compiled:     c,
		infiniteMax:  config.InfiniteMaxLength,
		enumerateMax: config.enumerateMaxLength(),
		attempts:     config.MaxAttempts,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func loggerOf(config Config) *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	return logging.NewNop()
}

// Pattern returns the source pattern, or "" for a Generex created by New.
func (g *Generex) Pattern() string {
	return g.pattern
}

// String implements fmt.Stringer, so a Generex prints as its pattern in
// format verbs and log attributes.
func (g *Generex) String() string {
	return g.pattern
}

// Automaton returns the underlying automaton.
func (g *Generex) Automaton() automaton.View {
	return g.view
}

// IsInfinite reports whether the pattern matches infinitely many strings.
func (g *Generex) IsInfinite() bool {
	return !g.view.IsFinite()
}

// MatchString reports whether s, in its entirety, matches the pattern.
// Excluded words are not taken into account.
func (g *Generex) MatchString(s string) bool {
	return automaton.Accepts(g.view, s)
}

// counts returns the count table, building it on first use.
func (g *Generex) counts() (*rank.Table, error) {
	if !g.view.IsFinite() {
		return nil, ErrInfiniteLanguage
	}
	g.countOnce.Do(func() {
		g.table, g.tableErr = rank.Annotate(g.view, g.budget)
		if g.tableErr != nil {
			g.logger.Debug("count annotation failed", "pattern", g.pattern, "err", g.tableErr)
			return
		}
		g.logger.Debug("annotated automaton",
			"pattern", g.pattern,
			"matches", g.table.Total(),
			"saturated", g.table.Saturated())
	})
	return g.table, g.tableErr
}

// MatchCount returns the number of strings the pattern matches.
//
// It fails with ErrInfiniteLanguage for infinite languages, with
// ErrCountOverflow when the count does not fit in a uint64 and with
// ErrBudgetExceeded when the automaton is too large to count.
// Excluded words are not taken into account.
func (g *Generex) MatchCount() (uint64, error) {
	t, err := g.counts()
	if err != nil {
		return 0, err
	}
	if t.Saturated() {
		return 0, ErrCountOverflow
	}
	return t.Total(), nil
}

// MatchAt returns the match of the given 1-based rank in lexicographic order.
// Rank 0 is treated as 1; a rank above MatchCount fails with
// ErrRankOutOfRange. Excluded words are not taken into account.
func (g *Generex) MatchAt(rank uint64) (string, error) {
	t, err := g.counts()
	if err != nil {
		return "", err
	}
	return t.At(rank)
}

// FirstMatch returns the lexicographically smallest match. It fails with
// ErrRankOutOfRange when nothing matches.
func (g *Generex) FirstMatch() (string, error) {
	t, err := g.counts()
	if err != nil {
		return "", err
	}
	return t.First()
}

// Random returns a random match of length at least 1, or shorter if the
// pattern has no such match.
func (g *Generex) Random() string {
	return g.RandomMin(1)
}

// RandomMin returns a random match of at least minLength runes when one
// exists. Infinite languages are bounded by Config.InfiniteMaxLength.
func (g *Generex) RandomMin(minLength int) string {
	maxLength := finiteMaxLength
	if g.IsInfinite() {
		maxLength = max(g.infiniteMax, minLength)
	}
	return g.RandomRange(minLength, maxLength)
}

// RandomRange returns a random match whose length in runes lies in
// [minLength, maxLength] when one exists. Otherwise it returns the best
// effort of the walk: the longest candidate seen, truncated to maxLength.
func (g *Generex) RandomRange(minLength, maxLength int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Sample(minLength, maxLength, g.rng).Value
}

// Sample is RandomRange with an explicit random source. Result.OK reports
// whether the string is a match within the range that avoids excluded words.
// Sample does not lock; rng must not be shared with concurrent callers.
func (g *Generex) Sample(minLength, maxLength int, rng sample.Rand) sample.Result {
	s := sample.New(g.view, rng)
	var res sample.Result
	for range g.attempts {
		res = s.Sample(minLength, maxLength)
		if g.exclude.allows(res.Value) {
			return res
		}
	}
	res.OK = false
	return res
}

// Seed resets the random source. Generators seeded alike produce the same
// sequence of random strings.
func (g *Generex) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = rand.New(rand.NewSource(seed))
}

// Iterator returns a new iterator over all matches in lexicographic order.
// For infinite languages, matches longer than Config.EnumerateMaxLength are
// skipped; a WithMaxLength option overrides that bound.
func (g *Generex) Iterator(opts ...enumerate.Option) *enumerate.Iterator {
	return enumerate.New(g.view, g.iteratorOptions(opts)...)
}

// AllMatches returns every match in lexicographic order. It fails with
// ErrInfiniteLanguage for infinite languages.
func (g *Generex) AllMatches() ([]string, error) {
	return enumerate.All(g.view, g.iteratorOptions(nil)...)
}

// Matches returns up to limit matches in lexicographic order. For infinite
// languages only matches of at most Config.EnumerateMaxLength runes are
// considered, so it returns fewer than limit when the bounded language is
// smaller.
func (g *Generex) Matches(limit int) []string {
	return enumerate.Take(g.view, limit, g.iteratorOptions(nil)...)
}

// iteratorOptions puts the defaults first so caller options override them.
func (g *Generex) iteratorOptions(opts []enumerate.Option) []enumerate.Option {
	var defaults []enumerate.Option
	if g.IsInfinite() {
		defaults = append(defaults, enumerate.WithMaxLength(g.enumerateMax))
	}
	if g.exclude != nil {
		defaults = append(defaults, enumerate.WithFilter(g.exclude.allows))
	}
	return append(defaults, opts...)
}
