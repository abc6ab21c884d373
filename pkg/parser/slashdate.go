package parser

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// DayMonthOrder decides which of two ambiguous numbers is the day.
type DayMonthOrder int

const (
	// DayFirst reads 10/12 as 10 December.
	DayFirst DayMonthOrder = iota
	// MonthFirst reads 10/12 as 12 October.
	MonthFirst
)

func (o DayMonthOrder) String() string {
	switch o {
	case DayFirst:
		return "day_month"
	case MonthFirst:
		return "month_day"
	default:
		return fmt.Sprintf("DayMonthOrder(%d)", int(o))
	}
}

// ParseDayMonthOrder accepts "day_month" (or "dmy") and "month_day" (or "mdy").
func ParseDayMonthOrder(s string) (DayMonthOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day_month", "day-month", "dmy":
		return DayFirst, nil
	case "month_day", "month-day", "mdy":
		return MonthFirst, nil
	default:
		return DayFirst, fmt.Errorf("invalid day-month order %q (must be day_month or month_day)", s)
	}
}

const slashDatePattern = `
	(?<=^|\s)
	(?<first>[0-9]{1,2})
	(?<delim>\.|/)
	(?<second>[0-9]{1,2})
	(?:
		\k<delim>
		(?<year>[0-9]{4}|[0-9]{2})
	)?
	(?=$|\s)
`

// SlashDateParser reads day/month and month/day dates separated by "/" or ".",
// with an optional two or four digit year. Two digit years mean 20xx.
type SlashDateParser struct {
	base
	order DayMonthOrder
}

// NewSlashDateParser returns a parser that resolves ambiguous dates with order.
func NewSlashDateParser(order DayMonthOrder) *SlashDateParser {
	b, err := newBase("slash-date", slashDatePattern, "first", "second", "year")
	if err != nil {
		panic(err)
	}
	return &SlashDateParser{base: b, order: order}
}

// Order returns the preferred day-month order.
func (p *SlashDateParser) Order() DayMonthOrder {
	return p.order
}

// Parse implements Parser.
func (p *SlashDateParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *SlashDateParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	first, ok1 := intGroup(m, "first")
	second, ok2 := intGroup(m, "second")
	if !ok1 || !ok2 {
		return nil, false
	}

	day, month, ok := p.assign(first, second)
	if !ok {
		return nil, false
	}

	year, explicit := reference.Year(), false
	if s, ok := m.Group("year"); ok {
		if len(s) == 2 {
			s = "20" + s
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		year, explicit = n, true
	}

	d, ok := NewDate(year, time.Month(month), day)
	if !ok {
		return nil, false
	}
	if !explicit {
		d = rollForward(d, reference)
	}

	return mustComponent(reference, source, m.Start(), m.End(), &d, nil), true
}

// assign decides which number is the day. A number above 12 can only be a day;
// when both could be months the preferred order decides.
func (p *SlashDateParser) assign(first, second int) (day, month int, ok bool) {
	if !isDayOfMonth(first) || !isDayOfMonth(second) {
		return 0, 0, false
	}

	switch {
	case isMonth(first) && isMonth(second):
		if p.order == MonthFirst {
			return second, first, true
		}
		return first, second, true
	case isMonth(second):
		return first, second, true
	case isMonth(first):
		return second, first, true
	default:
		return 0, 0, false
	}
}

var numericDateRe = MustCompilePattern(slashDatePattern)

// NumericDatePairs yields the two leading numbers of every slash or dot
// separated date in input, in source order and before any day/month
// assignment.
func NumericDatePairs(input string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for m := range numericDateRe.Matches(input) {
			first, ok1 := intGroup(m, "first")
			second, ok2 := intGroup(m, "second")
			if !ok1 || !ok2 {
				continue
			}
			if !yield(first, second) {
				return
			}
		}
	}
}
