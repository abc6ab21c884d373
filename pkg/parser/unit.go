package parser

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar or clock granularity used by "N units later" expressions.
type Unit int

const (
	Second Unit = iota + 1
	Minute
	Hour
	HalfDay
	Day
	Week
	Month
	Year
	Decade
)

var unitNames = map[Unit]string{
	Second:  "second",
	Minute:  "minute",
	Hour:    "hour",
	HalfDay: "half_day",
	Day:     "day",
	Week:    "week",
	Month:   "month",
	Year:    "year",
	Decade:  "decade",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit returns the unit with the given name ("day", "half_day", ...).
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for u, name := range unitNames {
		if name == s {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	_, ok := unitNames[u]
	return ok
}

// DateBased reports whether u has a granularity of a day or coarser.
func (u Unit) DateBased() bool {
	return u >= Day && u <= Decade
}

const (
	secondsPerDay = 24 * 60 * 60

	// maxDaySpan is well above the number of days between MinYear and MaxYear,
	// and well below what time.Date can normalize without overflow.
	maxDaySpan = 1 << 40
)

func (u Unit) seconds() int {
	switch u {
	case Second:
		return 1
	case Minute:
		return 60
	case Hour:
		return 60 * 60
	case HalfDay:
		return 12 * 60 * 60
	default:
		return 0
	}
}

func (u Unit) months() int {
	switch u {
	case Month:
		return 1
	case Year:
		return 12
	case Decade:
		return 120
	default:
		return 0
	}
}

// Add shifts the wall-clock date-time (d, t) by amount units. Month-based
// units clamp the day to the length of the target month (January 31 plus one
// month is February 28 or 29). ok is false when the amount overflows or the
// result leaves the supported year range.
func (u Unit) Add(d Date, t TimeOfDay, amount int) (Date, TimeOfDay, bool) {
	switch u {
	case Second, Minute, Hour, HalfDay:
		return addSeconds(d, t, amount, u.seconds())
	case Day:
		r, ok := addDays(d, amount)
		return r, t, ok
	case Week:
		days, ok := mul(amount, 7)
		if !ok {
			return Date{}, TimeOfDay{}, false
		}
		r, ok := addDays(d, days)
		return r, t, ok
	case Month, Year, Decade:
		months, ok := mul(amount, u.months())
		if !ok {
			return Date{}, TimeOfDay{}, false
		}
		r, ok := addMonths(d, months)
		return r, t, ok
	default:
		return Date{}, TimeOfDay{}, false
	}
}

func addSeconds(d Date, t TimeOfDay, amount, unit int) (Date, TimeOfDay, bool) {
	delta, ok := mul(amount, unit)
	if !ok {
		return Date{}, TimeOfDay{}, false
	}
	total, ok := add(t.Hour*3600+t.Minute*60+t.Second, delta)
	if !ok {
		return Date{}, TimeOfDay{}, false
	}

	days, rem := floorDiv(total, secondsPerDay)
	r, ok := addDays(d, days)
	if !ok {
		return Date{}, TimeOfDay{}, false
	}

	clock := TimeOfDay{
		Hour:       rem / 3600,
		Minute:     rem % 3600 / 60,
		Second:     rem % 60,
		Nanosecond: t.Nanosecond,
	}
	return r, clock, true
}

func addDays(d Date, n int) (Date, bool) {
	if n > maxDaySpan || n < -maxDaySpan {
		return Date{}, false
	}
	r := d.AddDays(n)
	return r, isYear(r.Year)
}

func addMonths(d Date, n int) (Date, bool) {
	total, ok := add(d.Year*12+int(d.Month)-1, n)
	if !ok {
		return Date{}, false
	}
	year, month := floorDiv(total, 12)
	if !isYear(year) {
		return Date{}, false
	}
	m := time.Month(month + 1)
	return Date{Year: year, Month: m, Day: min(d.Day, daysIn(year, m))}, true
}

// mul returns a*b, or false on overflow. b must be positive.
func mul(a, b int) (int, bool) {
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// add returns a+b, or false on overflow.
func add(a, b int) (int, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

// floorDiv returns the floored quotient and the non-negative remainder.
func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
