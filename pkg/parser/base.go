package parser

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyTable is returned when a parser is built with an empty lookup table.
var ErrEmptyTable = errors.New("lookup table is empty")

// base holds what every format parser shares: a name and a compiled pattern.
type base struct {
	name    string
	pattern *Pattern
}

func newBase(name, expr string, groups ...string) (base, error) {
	if name == "" {
		return base{}, errors.New("parser name is required")
	}

	pattern, err := CompilePattern(expr)
	if err != nil {
		return base{}, fmt.Errorf("%s: %w", name, err)
	}

	if err := pattern.requireGroups(groups...); err != nil {
		return base{}, fmt.Errorf("%s: %w", name, err)
	}

	return base{name: name, pattern: pattern}, nil
}

// Name returns the parser's identifier.
func (b *base) Name() string {
	return b.name
}

// Pattern returns the compiled pattern.
func (b *base) Pattern() *Pattern {
	return b.pattern
}

func (b *base) parse(input string, reference time.Time, interpret interpretFunc) iter.Seq[*ParsedComponent] {
	return scan(b.pattern, input, reference, interpret)
}

// intGroup returns the integer held by a named group. ok is false if the group
// did not participate or its text does not fit in an int.
func intGroup(m *Match, name string) (n int, ok bool) {
	s, ok := m.Group(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// lowerKeys copies a lookup table with lower-cased keys, so lookups of
// case-insensitive matches are a plain map access.
func lowerKeys[V any](table map[string]V) (map[string]V, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	out := make(map[string]V, len(table))
	for k, v := range table {
		out[strings.ToLower(k)] = v
	}
	return out, nil
}

// lookup finds the value for the text captured by a named group.
func lookup[V any](m *Match, group string, table map[string]V) (V, bool) {
	var zero V
	s, ok := m.Group(group)
	if !ok {
		return zero, false
	}
	v, ok := table[strings.ToLower(s)]
	return v, ok
}
