package parser

import (
	"testing"
	"time"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		ok    bool
	}{
		{2024, time.February, 29, true},
		{2025, time.February, 29, false},
		{1900, time.February, 29, false},
		{2000, time.February, 29, true},
		{2025, time.April, 31, false},
		{2025, time.December, 31, true},
		{2025, 13, 1, false},
		{2025, time.January, 0, false},
	}

	for _, tt := range tests {
		_, ok := NewDate(tt.year, tt.month, tt.day)
		if ok != tt.ok {
			t.Errorf("NewDate(%d, %d, %d) ok = %v, want %v", tt.year, tt.month, tt.day, ok, tt.ok)
		}
	}
}

func TestDate_AddYears(t *testing.T) {
	if got := date(2024, time.February, 29).AddYears(1); got != date(2025, time.February, 28) {
		t.Errorf("AddYears(1) = %s, want 2025-02-28", got)
	}
	if got := date(2024, time.February, 29).AddYears(4); got != date(2028, time.February, 29) {
		t.Errorf("AddYears(4) = %s, want 2028-02-29", got)
	}
}

func TestDate_String(t *testing.T) {
	tests := []struct {
		d    Date
		want string
	}{
		{date(2025, time.May, 9), "2025-05-09"},
		{date(12, time.January, 1), "0012-01-01"},
		{date(12345, time.January, 1), "+12345-01-01"},
		{date(-1, time.January, 1), "-1-01-01"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDate_Compare(t *testing.T) {
	a := date(2025, time.March, 1)
	b := date(2025, time.March, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("Compare ordering is wrong")
	}
	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering is wrong")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"12:00", clock(12, 0, 0), false},
		{"06:30:15", clock(6, 30, 15), false},
		{"24:00", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRollForward(t *testing.T) {
	ref := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		in, want Date
	}{
		{date(2025, time.March, 1), date(2026, time.March, 1)},
		{date(2025, time.July, 4), date(2025, time.July, 4)},
		{date(2025, time.July, 5), date(2025, time.July, 5)},
	}
	for _, tt := range tests {
		if got := rollForward(tt.in, ref); got != tt.want {
			t.Errorf("rollForward(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
