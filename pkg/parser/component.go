package parser

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyComponent is returned when a component would carry neither a date nor a time.
var ErrEmptyComponent = errors.New("component must carry a date, a time or both")

// ErrInvalidSpan is returned when a component span does not fit its source.
var ErrInvalidSpan = errors.New("component span out of range")

// ParsedComponent is one successfully interpreted pattern match.
// It is immutable once built.
type ParsedComponent struct {
	reference time.Time
	source    string
	start     int
	end       int

	date    Date
	hasDate bool
	time    TimeOfDay
	hasTime bool
}

// NewComponent builds a component covering source[start:end].
// Either date or tod must be non-nil.
func NewComponent(reference time.Time, source string, start, end int, date *Date, tod *TimeOfDay) (*ParsedComponent, error) {
	if date == nil && tod == nil {
		return nil, ErrEmptyComponent
	}
	if start < 0 || end < start || end > len(source) {
		return nil, fmt.Errorf("%w: [%d, %d) in source of length %d", ErrInvalidSpan, start, end, len(source))
	}

	c := &ParsedComponent{
		reference: reference,
		source:    source,
		start:     start,
		end:       end,
	}
	if date != nil {
		c.date, c.hasDate = *date, true
	}
	if tod != nil {
		c.time, c.hasTime = *tod, true
	}
	return c, nil
}

// mustComponent is used by the format parsers, which always pass a date or a time
// and derive spans from the match itself.
func mustComponent(reference time.Time, source string, start, end int, date *Date, tod *TimeOfDay) *ParsedComponent {
	c, err := NewComponent(reference, source, start, end, date, tod)
	if err != nil {
		panic(fmt.Sprintf("parser: building component: %v", err))
	}
	return c
}

// Reference returns the timestamp supplied to the parse call.
func (c *ParsedComponent) Reference() time.Time { return c.reference }

// Source returns the full input string.
func (c *ParsedComponent) Source() string { return c.source }

// Start returns the byte offset where the component begins.
func (c *ParsedComponent) Start() int { return c.start }

// End returns the byte offset just past the component.
func (c *ParsedComponent) End() int { return c.end }

// Len returns the span length in bytes.
func (c *ParsedComponent) Len() int { return c.end - c.start }

// Text returns the substring of the source attributed to the component.
func (c *ParsedComponent) Text() string { return c.source[c.start:c.end] }

// Date returns the extracted date, if any.
func (c *ParsedComponent) Date() (Date, bool) { return c.date, c.hasDate }

// Time returns the extracted time of day, if any.
func (c *ParsedComponent) Time() (TimeOfDay, bool) { return c.time, c.hasTime }

// HasDate reports whether the component carries a date.
func (c *ParsedComponent) HasDate() bool { return c.hasDate }

// HasTime reports whether the component carries a time of day.
func (c *ParsedComponent) HasTime() bool { return c.hasTime }

// String renders the component as "text" -> value for diagnostics.
func (c *ParsedComponent) String() string {
	switch {
	case c.hasDate && c.hasTime:
		return fmt.Sprintf("%q -> %sT%s", c.Text(), c.date, c.time)
	case c.hasDate:
		return fmt.Sprintf("%q -> %s", c.Text(), c.date)
	default:
		return fmt.Sprintf("%q -> %s", c.Text(), c.time)
	}
}
