package parser

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

// Field names one positional part of a month-name date.
type Field int

const (
	FieldDay Field = iota
	FieldMonth
	FieldYear
)

func (f Field) String() string {
	switch f {
	case FieldDay:
		return "day"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// group is the name of the pattern group that captures the field.
func (f Field) group() string {
	return f.String()
}

// ErrLayoutMismatch is returned when a field layout disagrees with its pattern.
var ErrLayoutMismatch = errors.New("field layout does not match pattern")

// MonthNameParser reads dates written with a month name, such as "8th of April",
// "April 8, 2025" or "2025 April 8". Day defaults to 1 and year to the
// reference year, rolled forward when the date has already passed.
//
// The layout lists the fields in the order their groups appear in the pattern.
// An explicit day that does not exist in the month (April 31) is dropped
// and the component shrinks to exclude it; a year that is not next to the
// month is dropped with it.
type MonthNameParser struct {
	base
	layout []Field
	months map[string]time.Month
}

// NewMonthNameParser compiles expr and checks it against layout. The pattern
// must capture the month name in a "month" group and may capture "day" and
// "year" groups; each group present must be listed in layout.
func NewMonthNameParser(name, expr string, layout []Field, months map[string]time.Month) (*MonthNameParser, error) {
	b, err := newBase(name, expr, "month")
	if err != nil {
		return nil, err
	}

	if err := validateLayout(b.pattern, layout); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	table, err := lowerKeys(months)
	if err != nil {
		return nil, fmt.Errorf("%s: months: %w", name, err)
	}
	for word, m := range table {
		if !isMonth(int(m)) {
			return nil, fmt.Errorf("%s: months: %q maps to invalid month %d", name, word, int(m))
		}
	}

	return &MonthNameParser{
		base:   b,
		layout: slices.Clone(layout),
		months: table,
	}, nil
}

// Layout returns the fields in pattern order.
func (p *MonthNameParser) Layout() []Field {
	return slices.Clone(p.layout)
}

// validateLayout checks that layout has exactly one month, no repeated field,
// a day next to the month, and the same order as the pattern's groups.
func validateLayout(pattern *Pattern, layout []Field) error {
	seen := make(map[Field]bool, len(layout))
	last := -1
	for _, f := range layout {
		if f < FieldDay || f > FieldYear {
			return fmt.Errorf("%w: unknown field %s", ErrLayoutMismatch, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: field %s repeated", ErrLayoutMismatch, f)
		}
		seen[f] = true

		n := pattern.groupNumber(f.group())
		if n < 0 {
			return fmt.Errorf("%w: no %q group for field %s", ErrLayoutMismatch, f.group(), f)
		}
		if n < last {
			return fmt.Errorf("%w: group %q appears before the previous field", ErrLayoutMismatch, f.group())
		}
		last = n
	}

	if !seen[FieldMonth] {
		return fmt.Errorf("%w: layout has no month", ErrLayoutMismatch)
	}

	for _, f := range []Field{FieldDay, FieldYear} {
		if !seen[f] && pattern.HasGroup(f.group()) {
			return fmt.Errorf("%w: group %q is not in the layout", ErrLayoutMismatch, f.group())
		}
	}

	if seen[FieldDay] && distance(layout, FieldDay, FieldMonth) != 1 {
		return fmt.Errorf("%w: day must be next to month", ErrLayoutMismatch)
	}

	return nil
}

func distance(layout []Field, a, b Field) int {
	i, j := slices.Index(layout, a), slices.Index(layout, b)
	if i > j {
		return i - j
	}
	return j - i
}

// Parse implements Parser.
func (p *MonthNameParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *MonthNameParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	month, ok := lookup(m, FieldMonth.group(), p.months)
	if !ok {
		return nil, false
	}

	start, end := m.Start(), m.End()

	year, explicit := reference.Year(), false
	if _, present := m.Group(FieldYear.group()); present {
		n, ok := intGroup(m, FieldYear.group())
		if !ok {
			return nil, false
		}
		year, explicit = n, true
	}

	day := 1
	if _, present := m.Group(FieldDay.group()); present {
		n, ok := intGroup(m, FieldDay.group())
		if ok && isValidDay(year, month, n) {
			day = n
		} else {
			start, end = p.dropDay(m, start, end)
			if explicit && distance(p.layout, FieldYear, FieldMonth) > 1 {
				year, explicit = reference.Year(), false
			}
		}
	}

	d := Date{Year: year, Month: month, Day: day}
	if !explicit {
		d = rollForward(d, reference)
	}

	return mustComponent(reference, source, start, end, &d, nil), true
}

// dropDay narrows [start, end) so it no longer covers the day. The day sits
// next to the month, so the new edge is the month group's edge.
func (p *MonthNameParser) dropDay(m *Match, start, end int) (int, int) {
	monthStart, monthEnd, _ := m.GroupSpan(FieldMonth.group())
	if slices.Index(p.layout, FieldDay) < slices.Index(p.layout, FieldMonth) {
		return monthStart, end
	}
	return start, monthEnd
}
