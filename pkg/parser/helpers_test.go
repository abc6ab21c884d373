package parser

import (
	"testing"
	"time"
)

var testRef = time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

func clock(h, m, s int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// single parses input and requires exactly one component.
func single(t *testing.T, p Parser, input string, ref time.Time) *ParsedComponent {
	t.Helper()
	got := Collect(p, input, ref)
	if len(got) != 1 {
		t.Fatalf("%s.Parse(%q) returned %d components, want 1: %v", p.Name(), input, len(got), got)
	}
	return got[0]
}

func none(t *testing.T, p Parser, input string, ref time.Time) {
	t.Helper()
	if got := Collect(p, input, ref); len(got) != 0 {
		t.Errorf("%s.Parse(%q) = %v, want no components", p.Name(), input, got)
	}
}

func wantDate(t *testing.T, c *ParsedComponent, want Date) {
	t.Helper()
	got, ok := c.Date()
	if !ok {
		t.Fatalf("component %v has no date, want %s", c, want)
	}
	if got != want {
		t.Errorf("date = %s, want %s", got, want)
	}
}

func wantTime(t *testing.T, c *ParsedComponent, want TimeOfDay) {
	t.Helper()
	got, ok := c.Time()
	if !ok {
		t.Fatalf("component %v has no time, want %s", c, want)
	}
	if got != want {
		t.Errorf("time = %s, want %s", got, want)
	}
}
