package vocab

// English returns the built-in English vocabulary.
func English() *Vocabulary {
	return &Vocabulary{
		Language: LanguageEnglish,
		Months: map[string]int{
			"january": 1, "jan": 1, "jan.": 1,
			"february": 2, "feb": 2, "feb.": 2,
			"march": 3, "mar": 3, "mar.": 3,
			"april": 4, "apr": 4, "apr.": 4,
			"may": 5, "may.": 5,
			"june": 6, "jun": 6, "jun.": 6,
			"july": 7, "jul": 7, "jul.": 7,
			"august": 8, "aug": 8, "aug.": 8,
			"september": 9, "sep": 9, "sep.": 9, "sept": 9, "sept.": 9,
			"october": 10, "oct": 10, "oct.": 10,
			"november": 11, "nov": 11, "nov.": 11,
			"december": 12, "dec": 12, "dec.": 12,
		},
		// No "sun" abbreviation.
		Weekdays: map[string]string{
			"monday": "monday", "mon": "monday",
			"tuesday": "tuesday", "tue": "tuesday", "tues": "tuesday",
			"wednesday": "wednesday", "wed": "wednesday",
			"thursday": "thursday", "thu": "thursday", "thur": "thursday", "thurs": "thursday",
			"friday": "friday", "fri": "friday",
			"saturday": "saturday", "sat": "saturday",
			"sunday": "sunday",
		},
		RelativeDays: map[string]int{
			"yesterday": -1, "ytd": -1,
			"today": 0, "tod": 0,
			"tomorrow": 1, "tmrw": 1, "tmr": 1,
		},
		TimesOfDay: map[string]string{
			"midnight":  "00:00",
			"morning":   "06:00",
			"noon":      "12:00",
			"midday":    "12:00",
			"afternoon": "15:00",
			"evening":   "20:00",
		},
		Units: map[string]string{
			"second": "second", "sec": "second",
			"minute": "minute", "min": "minute",
			"hour": "hour", "hr": "hour",
			"half-day": "half_day", "half day": "half_day",
			"day":    "day",
			"week":   "week", "wk": "week",
			"month":  "month",
			"year":   "year", "yr": "year",
			"decade": "decade",
		},
		Cardinals: map[string]int{
			"a": 1, "an": 1,
			"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
			"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
		},
		OrdinalSuffixes: []string{"st", "nd", "rd", "th"},
	}
}
