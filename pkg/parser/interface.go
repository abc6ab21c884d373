package parser

import (
	"iter"
	"time"
)

// Parser extracts components of one textual format from an input string.
// Implementations hold no per-call state and must be safe for concurrent use.
type Parser interface {
	// Name returns a short stable identifier (e.g. "iso-date").
	Name() string

	// Parse scans the whole input and yields one component per match that
	// carries valid data. Matches with invalid data are skipped; they never
	// stop the scan.
	Parse(input string, reference time.Time) iter.Seq[*ParsedComponent]
}

// interpretFunc turns one raw match into a component, or reports false
// when the match holds invalid data (month 13, minute 75, ...).
type interpretFunc func(m *Match, reference time.Time, source string) (*ParsedComponent, bool)

// scan runs pattern over input and interprets every match independently.
func scan(pattern *Pattern, input string, reference time.Time, interpret interpretFunc) iter.Seq[*ParsedComponent] {
	return func(yield func(*ParsedComponent) bool) {
		for m := range pattern.Matches(input) {
			c, ok := interpret(m, reference, input)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Collect drains a parser's sequence into a slice.
func Collect(p Parser, input string, reference time.Time) []*ParsedComponent {
	var out []*ParsedComponent
	for c := range p.Parse(input, reference) {
		out = append(out, c)
	}
	return out
}
