// Package dateparse runs a set of format parsers over an input and merges
// their candidate components into a single date and time.
package dateparse

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
)

var (
	// ErrNilParserSet is returned when a configuration is built from a nil parser slice.
	ErrNilParserSet = errors.New("parser set must not be nil")

	// ErrNilParser is returned when the parser set contains a nil parser.
	ErrNilParser = errors.New("parser set must not contain nil parsers")

	// ErrUnknownParser is returned when WithoutParsers names a parser that is not in the set.
	ErrUnknownParser = errors.New("unknown parser")
)

// Configuration owns the parsers for one language. It holds no per-call state
// and is safe for concurrent use.
type Configuration struct {
	parsers []parser.Parser
	logger  *slog.Logger
}

type options struct {
	logger   *slog.Logger
	disabled []string
}

// Option configures a Configuration.
type Option func(*options)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutParsers removes the named parsers from the set.
func WithoutParsers(names ...string) Option {
	return func(o *options) {
		o.disabled = append(o.disabled, names...)
	}
}

// NewConfiguration builds a configuration from parsers. Parsers run in the
// given order, which also breaks ties between otherwise equal candidates.
func NewConfiguration(parsers []parser.Parser, opts ...Option) (*Configuration, error) {
	if parsers == nil {
		return nil, ErrNilParserSet
	}
	for i, p := range parsers {
		if p == nil {
			return nil, fmt.Errorf("%w (index %d)", ErrNilParser, i)
		}
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	kept := slices.Clone(parsers)
	for _, name := range o.disabled {
		i := slices.IndexFunc(kept, func(p parser.Parser) bool { return p.Name() == name })
		if i < 0 {
			return nil, fmt.Errorf("%w %q", ErrUnknownParser, name)
		}
		kept = slices.Delete(kept, i, i+1)
	}

	return &Configuration{parsers: kept, logger: o.logger}, nil
}

// Parsers returns the parsers in registration order.
func (c *Configuration) Parsers() []parser.Parser {
	return slices.Clone(c.parsers)
}

// ParserNames returns the names of the parsers in registration order.
func (c *Configuration) ParserNames() []string {
	names := make([]string, len(c.parsers))
	for i, p := range c.parsers {
		names[i] = p.Name()
	}
	return names
}

// Parse runs every parser over input and merges the candidates.
//
// Candidates are ranked by end offset, latest first, then by length, longest
// first. Walking that ranking, a date-only candidate fills the date if it is
// still empty and a time-only candidate fills the time likewise. A candidate
// with both a date and a time is used only while both are empty. The walk
// stops once both are filled, so at most two candidates are used.
func (c *Configuration) Parse(input string, reference time.Time) *Result {
	var candidates []*parser.ParsedComponent
	for _, p := range c.parsers {
		for comp := range p.Parse(input, reference) {
			candidates = append(candidates, comp)
		}
	}

	slices.SortStableFunc(candidates, func(a, b *parser.ParsedComponent) int {
		if n := cmp.Compare(b.End(), a.End()); n != 0 {
			return n
		}
		return cmp.Compare(b.Len(), a.Len())
	})

	r := &Result{reference: reference, source: input}
	for _, comp := range candidates {
		if !r.use(comp) {
			continue
		}
		if r.hasDate && r.hasTime {
			break
		}
	}

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("parsed input",
			"input", input,
			"candidates", len(candidates),
			"used", len(r.components),
			"result", r.valueString(),
		)
	}

	return r
}

// ParseNow parses input relative to the current time.
func (c *Configuration) ParseNow(input string) *Result {
	return c.Parse(input, time.Now())
}
