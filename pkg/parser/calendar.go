package parser

import "time"

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func isValidDay(year int, month time.Month, day int) bool {
	return isMonth(int(month)) && day >= 1 && day <= daysIn(year, month)
}

func isMonth(n int) bool {
	return n >= 1 && n <= 12
}

func isDayOfMonth(n int) bool {
	return n >= 1 && n <= 31
}

func isMinuteOrSecond(n int) bool {
	return n >= 0 && n <= 59
}

func isYear(n int) bool {
	return n >= MinYear && n <= MaxYear
}

// rollForward moves an inferred-year date one year ahead when it falls
// before the reference date.
func rollForward(d Date, reference time.Time) Date {
	if d.Before(DateOf(reference)) {
		return d.AddYears(1)
	}
	return d
}
