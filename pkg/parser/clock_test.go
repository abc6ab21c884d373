package parser

import "testing"

const testTwelveHour = `(?<=^|\s)(?<hour>[0-9]{1,2})(?::(?<minute>[0-9]{2})(?::(?<second>[0-9]{2}))?)?\s?(?:(?<am>a\.?m\.?)|(?<pm>p\.?m\.?))(?=$|\s)`

func TestHourMinuteSecondParser_TwelveHour(t *testing.T) {
	p, err := NewHourMinuteSecondParser("test-12-hour", testTwelveHour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		want  TimeOfDay
	}{
		{"6:30 pm", clock(18, 30, 0)},
		{"9am", clock(9, 0, 0)},
		{"9 A.M.", clock(9, 0, 0)},
		{"12 am", clock(0, 0, 0)},
		{"12 pm", clock(12, 0, 0)},
		{"12:15:30 p.m.", clock(12, 15, 30)},
		{"0 am", clock(0, 0, 0)},
		{"11:59 pm", clock(23, 59, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wantTime(t, single(t, p, tt.input, testRef), tt.want)
		})
	}

	for _, input := range []string{"13 pm", "6:60 pm", "6:30:61 am", "6:30"} {
		none(t, p, input, testRef)
	}
}

func TestTwentyFourHourParser(t *testing.T) {
	p := NewTwentyFourHourParser()

	tests := []struct {
		input string
		want  TimeOfDay
	}{
		{"18:30", clock(18, 30, 0)},
		{"at 0:05", clock(0, 5, 0)},
		{"23:59:59", clock(23, 59, 59)},
	}
	for _, tt := range tests {
		wantTime(t, single(t, p, tt.input, testRef), tt.want)
	}

	for _, input := range []string{"24:00", "12:60", "12:30:60", "1230"} {
		none(t, p, input, testRef)
	}
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		hour   int
		am, pm bool
		want   int
		wantOK bool
	}{
		{23, false, false, 23, true},
		{24, false, false, 0, false},
		{12, true, false, 0, true},
		{12, false, true, 12, true},
		{1, false, true, 13, true},
		{13, false, true, 0, false},
	}
	for _, tt := range tests {
		got, ok := to24Hour(tt.hour, tt.am, tt.pm)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("to24Hour(%d, %v, %v) = %d, %v", tt.hour, tt.am, tt.pm, got, ok)
		}
	}
}
