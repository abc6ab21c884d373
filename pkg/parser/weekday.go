package parser

import (
	"fmt"
	"iter"
	"time"
)

// WeekdayParser reads weekday expressions ("friday", "on the next friday").
//
// Without a modifier the result is the soonest matching day on or after the
// reference date, so today counts. When the optional "next" group takes part
// the result is one week after that.
type WeekdayParser struct {
	base
	weekdays map[string]time.Weekday
}

// NewWeekdayParser compiles expr, which must capture a "weekday" group and
// may capture a "next" group.
func NewWeekdayParser(name, expr string, weekdays map[string]time.Weekday) (*WeekdayParser, error) {
	b, err := newBase(name, expr, "weekday")
	if err != nil {
		return nil, err
	}

	table, err := lowerKeys(weekdays)
	if err != nil {
		return nil, fmt.Errorf("%s: weekdays: %w", name, err)
	}
	for word, wd := range table {
		if wd < time.Sunday || wd > time.Saturday {
			return nil, fmt.Errorf("%s: weekdays: %q maps to invalid weekday %d", name, word, int(wd))
		}
	}

	return &WeekdayParser{base: b, weekdays: table}, nil
}

// Parse implements Parser.
func (p *WeekdayParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *WeekdayParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	weekday, ok := lookup(m, "weekday", p.weekdays)
	if !ok {
		return nil, false
	}

	_, next := m.Group("next")
	d := NextWeekday(DateOf(reference), weekday, next)

	return mustComponent(reference, source, m.Start(), m.End(), &d, nil), true
}

// NextWeekday returns the first date on or after from that falls on weekday,
// or the one a week later when skip is set.
func NextWeekday(from Date, weekday time.Weekday, skip bool) Date {
	delta := (int(weekday) - int(from.Weekday()) + 7) % 7
	if skip {
		delta += 7
	}
	return from.AddDays(delta)
}
