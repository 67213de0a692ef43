package rank

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/generex/automaton"
	"github.com/coregx/generex/dfa"
)

func mustTable(t *testing.T, pattern string) (*Table, *automaton.Graph) {
	t.Helper()
	g, err := dfa.CompilePattern(pattern)
	require.NoError(t, err, pattern)
	table, err := Annotate(g, 0)
	require.NoError(t, err, pattern)
	return table, g
}

func TestAnnotate_Total(t *testing.T) {
	tests := []struct {
		pattern string
		want    uint64
	}{
		{`[A-B]{5,9}`, 992},
		{`[0-3]([a-c]|[e-g]{1,2})`, 60},
		{`\d{3,4}`, 11000},
		{`\w{1,2}`, 4032},
		{``, 1},
		{`a?`, 2},
		{`abc|abd|ab`, 3},
		{`(a|ab)(c|bcd)`, 4},
		{`[^\x00-\x{10FFFF}]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			table, _ := mustTable(t, tt.pattern)
			assert.Equal(t, tt.want, table.Total())
			assert.False(t, table.Saturated())
		})
	}
}

func TestAnnotate_Infinite(t *testing.T) {
	for _, pattern := range []string{`a+`, `a*`, `x(ab)*y`} {
		t.Run(pattern, func(t *testing.T) {
			g, err := dfa.CompilePattern(pattern)
			require.NoError(t, err)

			_, err = Annotate(g, 0)
			assert.ErrorIs(t, err, ErrInfiniteLanguage)
			assert.ErrorIs(t, err, ErrUnsupportedLanguage)
		})
	}
}

func TestAnnotate_Budget(t *testing.T) {
	g, err := dfa.CompilePattern(`[a-z]{20}`)
	require.NoError(t, err)

	_, err = Annotate(g, 5)
	require.ErrorIs(t, err, ErrBudgetExceeded)

	var be *BudgetError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 5, be.Budget)

	_, err = Annotate(g, 20)
	assert.NoError(t, err)
}

func TestAnnotate_Saturates(t *testing.T) {
	table, _ := mustTable(t, `.{5}`)

	assert.True(t, table.Saturated())
	assert.Equal(t, uint64(math.MaxUint64), table.Total())

	_, err := table.At(1)
	assert.ErrorIs(t, err, ErrCountOverflow)

	first, err := table.First()
	require.NoError(t, err)
	assert.Equal(t, "\x00\x00\x00\x00\x00", first)
}

func TestAnnotate_NodeEdges(t *testing.T) {
	table, g := mustTable(t, `[0-3]([a-c]|[e-g]{1,2})`)

	root := table.Node(g.Start())
	assert.False(t, root.Accept)
	assert.Equal(t, uint64(60), root.Count)
	require.Len(t, root.Edges, 1)
	assert.Equal(t, uint64(15), root.Edges[0].Per)
	assert.Equal(t, uint64(60), root.Edges[0].Span)
}

func TestAt(t *testing.T) {
	tests := []struct {
		pattern string
		rank    uint64
		want    string
	}{
		{`[0-3]([a-c]|[e-g]{1,2})`, 1, "0a"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 0, "0a"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 4, "0e"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 5, "0ee"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 15, "0gg"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 16, "1a"},
		{`[0-3]([a-c]|[e-g]{1,2})`, 60, "3gg"},
		{`[A-B]{5,9}`, 1, "AAAAA"},
		{`[A-B]{5,9}`, 2, "AAAAAA"},
		{`[A-B]{5,9}`, 6, "AAAAAAAAB"},
		{`[A-B]{5,9}`, 992, "BBBBBBBBB"},
		{`\d{3,4}`, 2, "0000"},
		{`\d{3,4}`, 12, "001"},
		{`\d{3,4}`, 11000, "9999"},
		{``, 1, ""},
		{`a?`, 1, ""},
		{`a?`, 2, "a"},
		{`é|ü`, 2, "ü"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			table, _ := mustTable(t, tt.pattern)
			got, err := table.At(tt.rank)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAt_OutOfRange(t *testing.T) {
	table, _ := mustTable(t, `\d`)

	_, err := table.At(11)
	require.ErrorIs(t, err, ErrRankOutOfRange)

	var re *RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, uint64(11), re.Rank)
	assert.Equal(t, uint64(10), re.Total)
	assert.Equal(t, "rank 11 out of range [1, 10]", re.Error())
}

func TestAt_EmptyLanguage(t *testing.T) {
	table, _ := mustTable(t, `[^\x00-\x{10FFFF}]`)

	_, err := table.At(1)
	assert.ErrorIs(t, err, ErrRankOutOfRange)
	_, err = table.First()
	assert.ErrorIs(t, err, ErrRankOutOfRange)
}

// TestAt_OrderAndMembership walks every rank and checks that the results are
// strictly increasing and accepted by the automaton.
func TestAt_OrderAndMembership(t *testing.T) {
	for _, pattern := range []string{
		`[0-3]([a-c]|[e-g]{1,2})`,
		`[A-B]{5,9}`,
		`(a|ab)(c|bcd)?`,
		`x{0,3}|y[0-9]?`,
	} {
		t.Run(pattern, func(t *testing.T) {
			table, g := mustTable(t, pattern)
			prev := ""
			for r := uint64(1); r <= table.Total(); r++ {
				s, err := table.At(r)
				require.NoError(t, err)
				assert.True(t, g.Accepts(s), "rank %d: %q not accepted", r, s)
				if r > 1 {
					assert.Less(t, prev, s, "rank %d", r)
				}
				prev = s
			}
		})
	}
}

func TestFirst_EqualsAt1(t *testing.T) {
	for _, pattern := range []string{`[0-3]([a-c]|[e-g]{1,2})`, `\w{1,2}`, `b|a{2}`, ``, `z?y`} {
		t.Run(pattern, func(t *testing.T) {
			table, _ := mustTable(t, pattern)
			first, err := table.First()
			require.NoError(t, err)
			at1, err := table.At(1)
			require.NoError(t, err)
			assert.Equal(t, at1, first)
		})
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	v, over := mulSat(math.MaxUint64, 2)
	assert.True(t, over)
	assert.Equal(t, uint64(math.MaxUint64), v)

	v, over = mulSat(1<<32, 1<<31)
	assert.False(t, over)
	assert.Equal(t, uint64(1<<63), v)

	v, over = addSat(math.MaxUint64, 1)
	assert.True(t, over)
	assert.Equal(t, uint64(math.MaxUint64), v)

	v, over = addSat(2, 3)
	assert.False(t, over)
	assert.Equal(t, uint64(5), v)
}

func BenchmarkAnnotate(b *testing.B) {
	g, err := dfa.CompilePattern(`[a-z]{1,8}\d{2}`)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Annotate(g, 0); err != nil {
			b.Fatal(err)
		}
	}
}

// rank depends on the View interface only.
var _ automaton.View = (*automaton.Graph)(nil)
