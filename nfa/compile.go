package nfa

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"unicode"
)

// Surrogate halves are not valid runes on their own and are never generated.
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// DotNewline determines whether '.' matches '\n' without the (?s) flag
	DotNewline bool

	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow
	// Default: 100
	MaxRecursionDepth int

	// MaxStates limits the number of NFA states; exceeding it fails with ErrTooComplex.
	// Default: 100,000
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		DotNewline:        false,
		MaxRecursionDepth: 100,
		MaxStates:         100_000,
	}
}

// Compiler compiles regexp/syntax.Regexp patterns into Thompson NFAs
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{
		config:  config,
		builder: NewBuilder(),
		depth:   0,
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles a regex pattern string into an NFA.
// Syntax errors are wrapped unchanged and also match ErrInvalidPattern.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	flags := syntax.Perl
	if c.config.DotNewline {
		flags |= syntax.DotNL
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     fmt.Errorf("%w: %w", ErrInvalidPattern, err),
		}
	}

	n, err := c.CompileRegexp(re)
	if err != nil {
		if ce, ok := err.(*CompileError); ok && ce.Pattern == "" {
			ce.Pattern = pattern
		}
		return nil, err
	}
	n.pattern = pattern
	return n, nil
}

// CompileRegexp compiles a parsed syntax.Regexp into an NFA
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	if err := checkAnchors(re, true, true); err != nil {
		return nil, err
	}

	c.builder = NewBuilder()
	c.builder.maxStates = c.config.MaxStates
	c.depth = 0

	// Returns (start, end) state IDs for the compiled fragment
	start, end, err := c.compileRegexp(re)
	if err != nil {
		return nil, err
	}

	matchID := c.builder.AddMatch()
	if err := c.builder.Patch(end, matchID); err != nil {
		return nil, &CompileError{
			Err: fmt.Errorf("failed to connect to match state: %w", err),
		}
	}

	c.builder.SetStart(start)

	nfa, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{
			Err: err,
		}
	}

	return nfa, nil
}

// compileRegexp recursively compiles a syntax.Regexp node.
// Returns (start, end) state IDs for the compiled fragment.
// The 'end' state is always patchable to continue the automaton.
func (c *Compiler) compileRegexp(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{
			Err: ErrTooComplex,
		}
	}
	defer func() { c.depth-- }()

	if c.builder.Full() {
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("%w: more than %d NFA states", ErrTooComplex, c.config.MaxStates),
		}
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return c.compileNoMatch()
	case syntax.OpEmptyMatch:
		return c.compileEmptyMatch()
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileAnyChar()
	case syntax.OpAnyCharNotNL:
		return c.compileAnyCharNotNL()
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpCapture:
		// Groups only structure the pattern; generation ignores submatches.
		return c.compileRegexp(re.Sub[0])
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpEndLine, syntax.OpEndText:
		// checkAnchors only lets anchors through at the edges of the
		// pattern, where a whole generated string satisfies them.
		return c.compileEmptyMatch()
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("%w: %v", ErrUnsupported, re.Op),
		}
	default:
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("%w: %v", ErrUnsupported, re.Op),
		}
	}
}

// compileLiteral compiles a literal string (sequence of runes)
func (c *Compiler) compileLiteral(runes []rune, foldCase bool) (start, end StateID, err error) {
	if len(runes) == 0 {
		return c.compileEmptyMatch()
	}

	prev := InvalidState
	first := InvalidState
	for _, r := range runes {
		var id StateID
		if foldCase {
			id = c.addClass(foldRanges(r))
		} else {
			id = c.builder.AddRuneRange(r, r, InvalidState)
		}
		if first == InvalidState {
			first = id
		}
		if prev != InvalidState {
			if err := c.builder.Patch(prev, id); err != nil {
				return InvalidState, InvalidState, err
			}
		}
		prev = id
	}

	return first, prev, nil
}

// compileCharClass compiles a character class like [a-zA-Z0-9].
// Ranges are pairs: [lo1, hi1, lo2, hi2, ...]
func (c *Compiler) compileCharClass(pairs []rune) (start, end StateID, err error) {
	ranges := make([]RuneRange, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, RuneRange{Lo: pairs[i], Hi: pairs[i+1]})
	}
	ranges = withoutSurrogates(ranges)
	if len(ranges) == 0 {
		return c.compileNoMatch()
	}
	id := c.addClass(ranges)
	return id, id, nil
}

// compileAnyChar compiles '.' matching any character (including \n if DotNewline is true)
func (c *Compiler) compileAnyChar() (start, end StateID, err error) {
	id := c.addClass([]RuneRange{
		{Lo: 0, Hi: surrogateMin - 1},
		{Lo: surrogateMax + 1, Hi: unicode.MaxRune},
	})
	return id, id, nil
}

// compileAnyCharNotNL compiles '.' matching any character except \n
func (c *Compiler) compileAnyCharNotNL() (start, end StateID, err error) {
	if c.config.DotNewline {
		return c.compileAnyChar()
	}
	id := c.addClass([]RuneRange{
		{Lo: 0, Hi: '\n' - 1},
		{Lo: '\n' + 1, Hi: surrogateMin - 1},
		{Lo: surrogateMax + 1, Hi: unicode.MaxRune},
	})
	return id, id, nil
}

// addClass adds a RuneRange or Sparse state for ranges, leaving next unpatched.
func (c *Compiler) addClass(ranges []RuneRange) StateID {
	if len(ranges) == 1 {
		return c.builder.AddRuneRange(ranges[0].Lo, ranges[0].Hi, InvalidState)
	}
	return c.builder.AddSparse(ranges, InvalidState)
}

// compileConcat compiles concatenation (e.g., "abc")
func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	if len(subs) == 1 {
		return c.compileRegexp(subs[0])
	}

	start, end, err = c.compileRegexp(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}

	for i := 1; i < len(subs); i++ {
		nextStart, nextEnd, err := c.compileRegexp(subs[i])
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(end, nextStart); err != nil {
			return InvalidState, InvalidState, err
		}
		end = nextEnd
	}

	return start, end, nil
}

// compileAlternate compiles alternation (e.g., "a|b|c")
func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileNoMatch()
	}
	if len(subs) == 1 {
		return c.compileRegexp(subs[0])
	}

	starts := make([]StateID, 0, len(subs))
	ends := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compileRegexp(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		starts = append(starts, s)
		ends = append(ends, e)
	}

	split := c.buildSplitChain(starts)

	// All alternatives converge on one join state
	join := c.builder.AddEpsilon(InvalidState)
	for _, e := range ends {
		if err := c.builder.Patch(e, join); err != nil {
			return InvalidState, InvalidState, err
		}
	}

	return split, join, nil
}

// buildSplitChain builds a chain of split states for alternation
// Split(alt1, Split(alt2, Split(alt3, ...)))
func (c *Compiler) buildSplitChain(targets []StateID) StateID {
	right := targets[len(targets)-1]
	for i := len(targets) - 2; i >= 0; i-- {
		right = c.builder.AddSplit(targets[i], right)
	}
	return right
}

// compileStar compiles a* (zero or more)
func (c *Compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	// split -> [sub, end]; sub -> split (loop back)
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}

	return split, end, nil
}

// compilePlus compiles a+ (one or more)
func (c *Compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	// sub -> split -> [sub, end]
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}

	return subStart, end, nil
}

// compileQuest compiles a? (zero or one)
func (c *Compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}

	return split, end, nil
}

// compileRepeat compiles a{m,n} (min to max repetitions)
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int) (start, end StateID, err error) {
	if maxCount == -1 {
		// a{m,} = aaa...a* (minCount copies + star)
		return c.compileRepeatMin(sub, minCount)
	}
	if minCount > maxCount {
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("%w: repeat range {%d,%d}", ErrInvalidPattern, minCount, maxCount),
		}
	}

	// a{m,n} = aaa...a(a?a?a?...) (minCount copies + (maxCount-minCount) optional copies)
	subs := make([]*syntax.Regexp, 0, maxCount)
	for i := 0; i < minCount; i++ {
		subs = append(subs, sub)
	}
	for i := 0; i < maxCount-minCount; i++ {
		subs = append(subs, &syntax.Regexp{
			Op:  syntax.OpQuest,
			Sub: []*syntax.Regexp{sub},
		})
	}
	return c.compileConcat(subs)
}

// compileRepeatMin compiles a{m,}
func (c *Compiler) compileRepeatMin(sub *syntax.Regexp, minCount int) (start, end StateID, err error) {
	if minCount == 0 {
		return c.compileStar(sub)
	}

	subs := make([]*syntax.Regexp, 0, minCount+1)
	for i := 0; i < minCount; i++ {
		subs = append(subs, sub)
	}
	subs = append(subs, &syntax.Regexp{
		Op:  syntax.OpStar,
		Sub: []*syntax.Regexp{sub},
	})
	return c.compileConcat(subs)
}

// compileEmptyMatch compiles an epsilon transition (matches without consuming input)
func (c *Compiler) compileEmptyMatch() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}

// compileNoMatch compiles a fragment that matches nothing. The returned end
// is unreachable and only exists so callers can patch it uniformly.
func (c *Compiler) compileNoMatch() (start, end StateID, err error) {
	fail := c.builder.AddFail()
	end = c.builder.AddEpsilon(InvalidState)
	return fail, end, nil
}

// foldRanges returns the case-folding orbit of r as sorted single-rune ranges.
func foldRanges(r rune) []RuneRange {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	slices.Sort(orbit)
	ranges := make([]RuneRange, 0, len(orbit))
	for _, o := range orbit {
		if n := len(ranges); n > 0 && ranges[n-1].Hi+1 == o {
			ranges[n-1].Hi = o
			continue
		}
		ranges = append(ranges, RuneRange{Lo: o, Hi: o})
	}
	return ranges
}

// withoutSurrogates removes the surrogate block from sorted ranges.
func withoutSurrogates(ranges []RuneRange) []RuneRange {
	out := ranges[:0:0]
	for _, r := range ranges {
		if r.Hi < surrogateMin || r.Lo > surrogateMax {
			out = append(out, r)
			continue
		}
		if r.Lo < surrogateMin {
			out = append(out, RuneRange{Lo: r.Lo, Hi: surrogateMin - 1})
		}
		if r.Hi > surrogateMax {
			out = append(out, RuneRange{Lo: surrogateMax + 1, Hi: r.Hi})
		}
	}
	return out
}

// checkAnchors rejects begin anchors that can follow consumed text and end
// anchors that can precede it. atStart and atEnd report whether re sits at
// the edge of the pattern on every path through it.
func checkAnchors(re *syntax.Regexp, atStart, atEnd bool) error {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText:
		if !atStart {
			return &CompileError{Err: fmt.Errorf("%w: %v inside the pattern", ErrUnsupported, re.Op)}
		}
	case syntax.OpEndLine, syntax.OpEndText:
		if !atEnd {
			return &CompileError{Err: fmt.Errorf("%w: %v inside the pattern", ErrUnsupported, re.Op)}
		}
	case syntax.OpConcat:
		for i, sub := range re.Sub {
			start := atStart && allZeroWidth(re.Sub[:i])
			end := atEnd && allZeroWidth(re.Sub[i+1:])
			if err := checkAnchors(sub, start, end); err != nil {
				return err
			}
		}
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if err := checkAnchors(sub, atStart, atEnd); err != nil {
				return err
			}
		}
	case syntax.OpCapture, syntax.OpQuest:
		return checkAnchors(re.Sub[0], atStart, atEnd)
	case syntax.OpRepeat:
		if re.Max == 0 || re.Max == 1 {
			return checkAnchors(re.Sub[0], atStart, atEnd)
		}
		return checkAnchors(re.Sub[0], false, false)
	case syntax.OpStar, syntax.OpPlus:
		// A second iteration follows the first one's text.
		return checkAnchors(re.Sub[0], false, false)
	}
	return nil
}

// allZeroWidth reports whether every node consumes nothing.
func allZeroWidth(subs []*syntax.Regexp) bool {
	for _, sub := range subs {
		switch sub.Op {
		case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpBeginText, syntax.OpEndLine, syntax.OpEndText:
		default:
			return false
		}
	}
	return true
}
