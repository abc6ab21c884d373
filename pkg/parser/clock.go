package parser

import (
	"iter"
	"time"
)

const twentyFourHourPattern = `
	(?<=^|\s)
	(?<hour>[0-9]{1,2})
	:
	(?<minute>[0-9]{2})
	(?:
		:
		(?<second>[0-9]{2})
	)?
	(?=$|\s)
`

// HourMinuteSecondParser reads clock times. The pattern captures an "hour"
// group and may capture "minute", "second", "am" and "pm" groups.
//
// Without a meridiem the hour must be 0-23; with one it must be 0-12 and is
// converted to 24-hour form (12 am is 0, 12 pm stays 12).
type HourMinuteSecondParser struct {
	base
}

// NewHourMinuteSecondParser compiles expr.
func NewHourMinuteSecondParser(name, expr string) (*HourMinuteSecondParser, error) {
	b, err := newBase(name, expr, "hour")
	if err != nil {
		return nil, err
	}
	return &HourMinuteSecondParser{base: b}, nil
}

// NewTwentyFourHourParser returns the language-neutral H:MM[:SS] parser.
func NewTwentyFourHourParser() *HourMinuteSecondParser {
	p, err := NewHourMinuteSecondParser("24-hour-time", twentyFourHourPattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse implements Parser.
func (p *HourMinuteSecondParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *HourMinuteSecondParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	hour, ok := intGroup(m, "hour")
	if !ok {
		return nil, false
	}

	_, am := m.Group("am")
	_, pm := m.Group("pm")
	hour, ok = to24Hour(hour, am, pm)
	if !ok {
		return nil, false
	}

	var minute, second int
	if _, present := m.Group("minute"); present {
		if minute, ok = intGroup(m, "minute"); !ok {
			return nil, false
		}
	}
	if _, present := m.Group("second"); present {
		if second, ok = intGroup(m, "second"); !ok {
			return nil, false
		}
	}

	t, ok := NewTimeOfDay(hour, minute, second)
	if !ok {
		return nil, false
	}

	return mustComponent(reference, source, m.Start(), m.End(), nil, &t), true
}

func to24Hour(hour int, am, pm bool) (int, bool) {
	if !am && !pm {
		return hour, hour >= 0 && hour <= 23
	}
	if hour < 0 || hour > 12 {
		return 0, false
	}
	switch {
	case am && hour == 12:
		return 0, true
	case pm && hour != 12:
		return hour + 12, true
	default:
		return hour, true
	}
}
