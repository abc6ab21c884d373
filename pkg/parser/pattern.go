package parser

import (
	"fmt"
	"iter"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds the time a single match attempt may take.
const DefaultMatchTimeout = 250 * time.Millisecond

// patternOptions: case-insensitive (Unicode-aware) free-form patterns,
// so whitespace is insignificant and # starts a comment.
const patternOptions = regexp2.IgnoreCase | regexp2.IgnorePatternWhitespace

// Pattern is a compiled format pattern with named capture groups.
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// CompilePattern compiles a free-form, case-insensitive pattern.
// Lookbehind, lookahead and named backreferences (\k<name>) are supported.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp2.Compile(expr, patternOptions)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics if the expression
// cannot be compiled. It is meant for constant patterns.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.expr
}

// HasGroup reports whether the pattern defines a named group.
func (p *Pattern) HasGroup(name string) bool {
	return p.groupNumber(name) >= 0
}

func (p *Pattern) groupNumber(name string) int {
	return p.re.GroupNumberFromName(name)
}

// requireGroups returns an error naming the first group the pattern lacks.
func (p *Pattern) requireGroups(names ...string) error {
	for _, name := range names {
		if !p.HasGroup(name) {
			return fmt.Errorf("pattern has no named group %q", name)
		}
	}
	return nil
}

// Matches yields every non-overlapping match in input, left to right.
// Scanning stops early if the engine reports an error such as a timeout.
func (p *Pattern) Matches(input string) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		offsets := runeOffsets(input)
		m, err := p.re.FindStringMatch(input)
		for m != nil && err == nil {
			if !yield(&Match{m: m, offsets: offsets}) {
				return
			}
			m, err = p.re.FindNextMatch(m)
		}
	}
}

// Match is one raw match. Offsets are byte offsets into the input string.
type Match struct {
	m       *regexp2.Match
	offsets []int
}

// Start returns the byte offset of the match.
func (m *Match) Start() int {
	return m.offsets[m.m.Index]
}

// End returns the byte offset just past the match.
func (m *Match) End() int {
	return m.offsets[m.m.Index+m.m.Length]
}

// Text returns the matched text.
func (m *Match) Text() string {
	return m.m.String()
}

// Group returns the text captured by a named group and whether it participated.
func (m *Match) Group(name string) (string, bool) {
	g := m.group(name)
	if g == nil {
		return "", false
	}
	return g.String(), true
}

// GroupSpan returns the byte span captured by a named group.
func (m *Match) GroupSpan(name string) (start, end int, ok bool) {
	g := m.group(name)
	if g == nil {
		return 0, 0, false
	}
	return m.offsets[g.Index], m.offsets[g.Index+g.Length], true
}

func (m *Match) group(name string) *regexp2.Group {
	g := m.m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return nil
	}
	return g
}

// runeOffsets maps rune indices (as reported by the engine) to byte offsets.
// The extra trailing entry maps the end-of-input index.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// Alternation renders the keys of a vocabulary table as a regex alternation.
func Alternation[V any](table map[string]V) string {
	words := make([]string, 0, len(table))
	for word := range table {
		words = append(words, word)
	}
	return AlternationOf(words)
}

// AlternationOf renders words as an escaped alternation. Longer words come
// first so the engine prefers "march" over "mar"; ties sort lexically.
func AlternationOf(words []string) string {
	seen := make(map[string]bool, len(words))
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		sorted = append(sorted, w)
	}

	sort.Slice(sorted, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(sorted[i]), utf8.RuneCountInString(sorted[j])
		if li != lj {
			return li > lj
		}
		return sorted[i] < sorted[j]
	})

	for i, w := range sorted {
		sorted[i] = regexp2.Escape(w)
	}
	return strings.Join(sorted, "|")
}
