package parser

import (
	"fmt"
	"iter"
	"time"
)

// RelativeWordParser reads words that name a day relative to the reference
// date ("yesterday", "today", "tomorrow"). The pattern captures a "word" group
// and the table maps each word to a day offset.
type RelativeWordParser struct {
	base
	offsets map[string]int
}

// NewRelativeWordParser compiles expr with the given word table.
func NewRelativeWordParser(name, expr string, offsets map[string]int) (*RelativeWordParser, error) {
	b, err := newBase(name, expr, "word")
	if err != nil {
		return nil, err
	}

	table, err := lowerKeys(offsets)
	if err != nil {
		return nil, fmt.Errorf("%s: words: %w", name, err)
	}

	return &RelativeWordParser{base: b, offsets: table}, nil
}

// Parse implements Parser.
func (p *RelativeWordParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *RelativeWordParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	offset, ok := lookup(m, "word", p.offsets)
	if !ok {
		return nil, false
	}

	d, ok := addDays(DateOf(reference), offset)
	if !ok {
		return nil, false
	}

	return mustComponent(reference, source, m.Start(), m.End(), &d, nil), true
}

// TimeOfDayWordParser reads words that name a fixed time ("noon", "midnight").
// The pattern captures a "word" group.
type TimeOfDayWordParser struct {
	base
	times map[string]TimeOfDay
}

// NewTimeOfDayWordParser compiles expr with the given word table.
func NewTimeOfDayWordParser(name, expr string, times map[string]TimeOfDay) (*TimeOfDayWordParser, error) {
	b, err := newBase(name, expr, "word")
	if err != nil {
		return nil, err
	}

	table, err := lowerKeys(times)
	if err != nil {
		return nil, fmt.Errorf("%s: words: %w", name, err)
	}
	for word, t := range table {
		if !t.Valid() {
			return nil, fmt.Errorf("%s: words: %q maps to invalid time %s", name, word, t)
		}
	}

	return &TimeOfDayWordParser{base: b, times: table}, nil
}

// Parse implements Parser.
func (p *TimeOfDayWordParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *TimeOfDayWordParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	t, ok := lookup(m, "word", p.times)
	if !ok {
		return nil, false
	}
	return mustComponent(reference, source, m.Start(), m.End(), nil, &t), true
}
