// Package parser provides the format parsers that extract dates and times of day
// from short natural-language or semi-structured text fragments.
package parser

import (
	"fmt"
	"time"
)

// Year bounds accepted by calendar arithmetic.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// Date represents a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate returns the date if it exists in the proleptic Gregorian calendar.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if !isValidDay(year, month, day) {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// Valid reports whether d names a real calendar day.
func (d Date) Valid() bool {
	return isValidDay(d.Year, d.Month, d.Day)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before returns true if d is before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// AddYears returns d shifted by n years. February 29 becomes February 28
// when the target year is not a leap year.
func (d Date) AddYears(n int) Date {
	year := d.Year + n
	return Date{Year: year, Month: d.Month, Day: min(d.Day, daysIn(year, d.Month))}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	if d.Year >= 0 && d.Year <= 9999 {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
	return fmt.Sprintf("%+d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// TimeOf returns the wall-clock time of t in t's location.
func TimeOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s, Nanosecond: t.Nanosecond()}
}

// NewTimeOfDay returns the time if every field is within range.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, bool) {
	t := TimeOfDay{Hour: hour, Minute: minute, Second: second}
	return t, t.Valid()
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q (want HH:MM or HH:MM:SS)", s)
}

// Valid reports whether every field is within its clock range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		isMinuteOrSecond(t.Minute) &&
		isMinuteOrSecond(t.Second) &&
		t.Nanosecond >= 0 && t.Nanosecond < int(time.Second)
}

// On returns the instant at t on date d in loc.
func (t TimeOfDay) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, loc)
}

// String formats t as HH:MM:SS, with a fractional part when present.
func (t TimeOfDay) String() string {
	if t.Nanosecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%09d", t.Hour, t.Minute, t.Second, t.Nanosecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
