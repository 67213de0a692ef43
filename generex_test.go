package generex

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp/syntax"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/generex/automaton"
	"github.com/coregx/generex/enumerate"
)

// oracle returns an independent full-match predicate for pattern.
func oracle(t testing.TB, pattern string) func(string) bool {
	t.Helper()
	re := coregex.MustCompile(`\A(?:` + pattern + `)\z`)
	return re.MatchString
}

func seeded(t testing.TB, pattern string, seed int64) *Generex {
	t.Helper()
	g, err := CompileWithConfig(pattern, DefaultConfig().WithSeed(seed))
	require.NoError(t, err, pattern)
	return g
}

func TestMatchCount(t *testing.T) {
	tests := []struct {
		pattern string
		want    uint64
	}{
		{`[A-B]{5,9}`, 992},
		{`[0-3]([a-c]|[e-g]{1,2})`, 60},
		{`\d{3,4}`, 11000},
		{`\w{1,2}`, 4032},
		{``, 1},
		{`abc`, 1},
		{`a?`, 2},
		{`(a|b)(c|d)`, 4},
		{`\s`, 5},
		{`[^\x00-\x{10FFFF}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			g, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.False(t, g.IsInfinite())

			n, err := g.MatchCount()
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestMatchCount_Errors(t *testing.T) {
	g := MustCompile(`a+`)
	_, err := g.MatchCount()
	assert.ErrorIs(t, err, ErrInfiniteLanguage)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	g = MustCompile(`.{5}`)
	_, err = g.MatchCount()
	assert.ErrorIs(t, err, ErrCountOverflow)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	config := DefaultConfig()
	config.CountBudget = 5
	g, err = CompileWithConfig(`[a-z]{20}`, config)
	require.NoError(t, err)
	_, err = g.MatchCount()
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestMatchAt(t *testing.T) {
	g := MustCompile(`[0-3]([a-c]|[e-g]{1,2})`)
	tests := []struct {
		rank uint64
		want string
	}{
		{0, "0a"},
		{1, "0a"},
		{2, "0b"},
		{4, "0e"},
		{5, "0ee"},
		{15, "0gg"},
		{16, "1a"},
		{60, "3gg"},
	}
	for _, tt := range tests {
		got, err := g.MatchAt(tt.rank)
		require.NoError(t, err, "rank %d", tt.rank)
		assert.Equal(t, tt.want, got, "rank %d", tt.rank)
	}

	_, err := g.MatchAt(61)
	assert.ErrorIs(t, err, ErrRankOutOfRange)

	_, err = MustCompile(`x*`).MatchAt(1)
	assert.ErrorIs(t, err, ErrInfiniteLanguage)
}

func TestMatchAt_AgreesWithIterator(t *testing.T) {
	g := MustCompile(`(a|b){0,3}c?`)
	all, err := g.AllMatches()
	require.NoError(t, err)

	n, err := g.MatchCount()
	require.NoError(t, err)
	require.Len(t, all, int(n))

	for i, want := range all {
		got, err := g.MatchAt(uint64(i + 1))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFirstMatch(t *testing.T) {
	s, err := MustCompile(`[A-B]{5,9}`).FirstMatch()
	require.NoError(t, err)
	assert.Equal(t, "AAAAA", s)

	s, err = MustCompile(`x?y`).FirstMatch()
	require.NoError(t, err)
	assert.Equal(t, "xy", s)

	_, err = MustCompile(`a+`).FirstMatch()
	assert.ErrorIs(t, err, ErrInfiniteLanguage)

	_, err = MustCompile(`[^\x00-\x{10FFFF}]`).FirstMatch()
	assert.ErrorIs(t, err, ErrRankOutOfRange)
}

func TestRandom_InfiniteBound(t *testing.T) {
	g := seeded(t, `a*`, 1)
	for range 200 {
		s := g.Random()
		n := len(s)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 50)
		require.Equal(t, strings.Repeat("a", n), s)
	}

	g, err := CompileWithConfig(`b+`, DefaultConfig().WithSeed(2).WithInfiniteMaxLength(5))
	require.NoError(t, err)
	for range 100 {
		require.LessOrEqual(t, len(g.Random()), 5)
	}

	// The minimum wins over the infinite bound.
	s := g.RandomMin(8)
	assert.GreaterOrEqual(t, len(s), 8)
}

func TestRandomRange(t *testing.T) {
	g := seeded(t, `[A-Z]{1,10}`, 3)
	for range 200 {
		s := g.RandomRange(3, 6)
		require.GreaterOrEqual(t, len(s), 3)
		require.LessOrEqual(t, len(s), 6)
		require.True(t, g.MatchString(s), s)
	}
}

func TestRandom_Deterministic(t *testing.T) {
	for _, pattern := range []string{`[0-9][a-zA-Z]`, `[A-Z]{1,10}`, `(foo|bar)+`} {
		t.Run(pattern, func(t *testing.T) {
			a := seeded(t, pattern, 42)
			b := seeded(t, pattern, 42)
			var first []string
			for range 20 {
				s := a.Random()
				first = append(first, s)
				require.Equal(t, s, b.Random())
			}

			a.Seed(42)
			for _, want := range first {
				require.Equal(t, want, a.Random())
			}
		})
	}
}

func TestSample_Result(t *testing.T) {
	g := seeded(t, `ab{2,4}`, 5)
	rng := rand.New(rand.NewSource(9))

	res := g.Sample(3, 5, rng)
	assert.True(t, res.OK)
	assert.True(t, g.MatchString(res.Value))

	// No match is 10 runes long; the walk returns its longest attempt.
	res = g.Sample(10, 12, rng)
	assert.False(t, res.OK)
	assert.Equal(t, "abbbb", res.Value)
}

func TestExclude(t *testing.T) {
	g, err := CompileWithConfig(`[a-c]{2}`, DefaultConfig().WithSeed(11).WithExclude("b"))
	require.NoError(t, err)

	all, err := g.AllMatches()
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "ac", "ca", "cc"}, all)
	assert.Equal(t, []string{"aa", "ac"}, g.Matches(2))

	// Counting and ranking ignore exclusions.
	n, err := g.MatchCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), n)

	for range 200 {
		s := g.Random()
		require.NotContains(t, s, "b")
		require.Len(t, s, 2)
	}

	it := g.Iterator(enumerate.WithFilter(func(s string) bool { return s[0] == 'c' }))
	var got []string
	for s := range it.Seq() {
		got = append(got, s)
	}
	assert.Equal(t, []string{"ca", "cc"}, got)
}

func TestExclude_AllExcluded(t *testing.T) {
	g, err := CompileWithConfig(`xyz`, DefaultConfig().WithSeed(1).WithExclude("y"))
	require.NoError(t, err)

	res := g.Sample(1, 10, rand.New(rand.NewSource(1)))
	assert.False(t, res.OK)
	assert.Equal(t, "xyz", res.Value)
	assert.Empty(t, g.Matches(10))
}

func TestIterator(t *testing.T) {
	g := MustCompile(`a+`)
	assert.Equal(t, []string{"a", "aa", "aaa", "aaaa", "aaaaa"}, g.Matches(5))

	_, err := g.AllMatches()
	assert.ErrorIs(t, err, ErrInfiniteLanguage)

	it := MustCompile(`x|y`).Iterator()
	s, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", s)
	s, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, "y", s)
	_, err = it.Next()
	assert.ErrorIs(t, err, ErrExhausted)

	var bounded []string
	for s := range MustCompile(`a*b`).Iterator(enumerate.WithMaxLength(3)).Seq() {
		bounded = append(bounded, s)
	}
	assert.Equal(t, []string{"aab", "ab", "b"}, bounded)
}

func TestMatches_InfiniteBounded(t *testing.T) {
	match := oracle(t, `x*y+z?`)
	g := MustCompile(`x*y+z?`)

	got := g.Matches(3)
	xs := strings.Repeat("x", 48)
	assert.Equal(t, []string{xs + "xy", xs + "y", xs + "yy"}, got)
	for _, s := range got {
		assert.True(t, match(s), s)
	}

	g, err := CompileWithConfig(`x*y+z?`, DefaultConfig().WithEnumerateMaxLength(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"xxy", "xy", "xyy"}, g.Matches(3))

	// The bound follows InfiniteMaxLength unless set explicitly.
	g, err = CompileWithConfig(`(a|b)*c`, DefaultConfig().WithInfiniteMaxLength(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"ac", "bc", "c"}, g.Matches(10))

	// Finite languages are never truncated.
	g, err = CompileWithConfig(`[ab]{4}`, DefaultConfig().WithEnumerateMaxLength(2))
	require.NoError(t, err)
	all, err := g.AllMatches()
	require.NoError(t, err)
	assert.Len(t, all, 16)
}

func TestNew(t *testing.T) {
	b := automaton.NewBuilder()
	s0 := b.AddState(false)
	s1 := b.AddState(true)
	b.AddTransition(s0, 'a', 'c', s1)
	b.AddRune(s1, 'z', s1)
	graph, err := b.Build()
	require.NoError(t, err)

	g, err := New(graph, DefaultConfig().WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, "", g.Pattern())
	assert.True(t, g.IsInfinite())
	assert.Same(t, graph, g.Automaton())
	assert.Equal(t, []string{"a", "az", "azz"}, g.Matches(3))
	assert.True(t, g.MatchString("bzz"))
	assert.False(t, g.MatchString("zb"))

	config := DefaultConfig()
	config.MaxAttempts = 0
	_, err = New(graph, config)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(`a(b`)
	require.ErrorIs(t, err, ErrInvalidPattern)
	var se *syntax.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, syntax.ErrMissingParen, se.Code)

	_, err = Compile(`\bword\b`)
	assert.ErrorIs(t, err, ErrUnsupported)

	// Anchors are only meaningful at the edges of a whole-string match.
	_, err = Compile(`a^b`)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Compile(`a$b`)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = CompileWithConfig(`(a|b)*a(a|b){12}`, DefaultConfig().WithMaxDFAStates(100))
	assert.ErrorIs(t, err, ErrStateLimitExceeded)

	config := DefaultConfig()
	config.MaxNFAStates = 100
	_, err = CompileWithConfig(`(abc){1000}`, config)
	assert.ErrorIs(t, err, ErrTooComplex)

	assert.Panics(t, func() { MustCompile(`[`) })
}

func TestIsValidPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{`[a-z]+`, true},
		{`\d{3}-\d{4}`, true},
		{``, true},
		{`^abc$`, true},
		{`a^b`, false},
		{`a(`, false},
		{`[z-a]`, false},
		{`\bx`, false},
		{`(a|b)*a(a|b){20}`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPattern(tt.pattern), tt.pattern)
	}
}

func TestMatchString(t *testing.T) {
	g := MustCompile(`\d{3}-\d{4}`)
	assert.True(t, g.MatchString("555-1234"))
	assert.False(t, g.MatchString("555-123"))
	assert.False(t, g.MatchString("x555-1234"))

	dot := MustCompile(`.`)
	assert.False(t, dot.MatchString("\n"))
	assert.True(t, dot.MatchString("é"))

	config := DefaultConfig()
	config.DotNewline = true
	dotNL, err := CompileWithConfig(`.`, config)
	require.NoError(t, err)
	assert.True(t, dotNL.MatchString("\n"))
}

func TestString(t *testing.T) {
	g := MustCompile(`\d{2}`)
	assert.Equal(t, `\d{2}`, g.String())
	assert.Equal(t, `pattern \d{2}`, fmt.Sprintf("pattern %v", g))
}

func TestAnchorsAreIgnored(t *testing.T) {
	plain := MustCompile(`abc`)
	anchored := MustCompile(`^abc$`)
	assert.Equal(t, plain.Matches(5), anchored.Matches(5))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"MaxNFAStates", func(c *Config) { c.MaxNFAStates = 0 }},
		{"MaxRecursionDepth", func(c *Config) { c.MaxRecursionDepth = 5 }},
		{"MaxDFAStates", func(c *Config) { c.MaxDFAStates = 2_000_000 }},
		{"CountBudget", func(c *Config) { c.CountBudget = 0 }},
		{"InfiniteMaxLength", func(c *Config) { c.InfiniteMaxLength = 0 }},
		{"EnumerateMaxLength", func(c *Config) { c.EnumerateMaxLength = -1 }},
		{"MaxAttempts", func(c *Config) { c.MaxAttempts = -1 }},
		{"Exclude", func(c *Config) { c.Exclude = []string{"ok", ""} }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)

			_, err = CompileWithConfig(`a`, c)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigBuilders(t *testing.T) {
	words := []string{"x"}
	c := DefaultConfig().WithSeed(3).WithExclude(words...).WithInfiniteMaxLength(7).WithMaxDFAStates(9)
	words[0] = "changed"

	assert.Equal(t, int64(3), c.Seed)
	assert.Equal(t, []string{"x"}, c.Exclude)
	assert.Equal(t, 7, c.InfiniteMaxLength)
	assert.Equal(t, 9, c.MaxDFAStates)
	assert.Equal(t, 50, DefaultConfig().InfiniteMaxLength)

	assert.Equal(t, 7, c.enumerateMaxLength())
	assert.Equal(t, 4, c.WithEnumerateMaxLength(4).enumerateMaxLength())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, err := CompileWithConfig(`a{2}`, DefaultConfig().WithLogger(logger))
	require.NoError(t, err)
	_, err = g.MatchCount()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "compiled pattern")
	assert.Contains(t, out, "finite=true")
	assert.Contains(t, out, "annotated automaton")
	assert.Contains(t, out, "matches=1")
}

func TestConcurrentUse(t *testing.T) {
	g := seeded(t, `[a-f]{2,6}`, 8)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if s := g.Random(); !g.MatchString(s) {
					t.Errorf("Random() = %q does not match", s)
					return
				}
				if _, err := g.MatchCount(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// TestGenerated_MatchOracle checks every produced string against an
// independent regex engine.
func TestGenerated_MatchOracle(t *testing.T) {
	patterns := []string{
		`[0-9][a-zA-Z]`,
		`[A-Z]{1,10}`,
		`\d{3}-\d{4}`,
		`(foo|bar)+baz?`,
		`[a-z]+@[a-z]+\.(com|org)`,
		`x*y+z?`,
		`(a|b)*c`,
		`[0-9]*x`,
		`^(ab)+$`,
		`(?i)abc`,
		`\w{1,2}`,
		`(a|ab)(c|bcd)(d*)`,
		`[^a-z\n\x{80}-\x{10FFFF}]{2}`,
		`colou?r|grey|gray`,
	}

	for i, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			match := oracle(t, pattern)
			g := seeded(t, pattern, int64(i+1))

			for range 200 {
				s := g.Random()
				require.True(t, utf8.ValidString(s))
				require.True(t, match(s), "Random() = %q", s)
			}
			for range 50 {
				s := g.RandomRange(2, 8)
				require.True(t, match(s), "RandomRange(2, 8) = %q", s)
			}
			for _, s := range g.Matches(200) {
				require.True(t, match(s), "Matches: %q", s)
			}
			if !g.IsInfinite() {
				if n, err := g.MatchCount(); err == nil && n > 0 {
					for _, r := range []uint64{1, n / 2, n} {
						s, err := g.MatchAt(r)
						require.NoError(t, err)
						require.True(t, match(s), "MatchAt(%d) = %q", r, s)
					}
				}
			}
		})
	}
}

func BenchmarkRandom(b *testing.B) {
	g := seeded(b, `[a-z]+@[a-z]+\.(com|org)`, 1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = g.Random()
	}
}

func BenchmarkMatchAt(b *testing.B) {
	g := MustCompile(`\w{1,4}`)
	n, err := g.MatchCount()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.MatchAt(uint64(i)%n + 1); err != nil {
			b.Fatal(err)
		}
	}
}
