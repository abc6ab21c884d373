package dateparse

import (
	"fmt"

	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

// English month-name layouts: "8th of April 2025", "April 8, 2025", "2025 April 8".
const (
	enDayMonthYear = `
		(?<=^|\s)
		(?:
			(?<day>[0-9]{1,2})
			(?:%[1]s)?            # ordinal suffix
			(?:\sof)?
			\s
		)?
		(?<month>%[2]s)
		(?:
			,?\s
			(?:of\s)?
			(?<year>[0-9]{4})
		)?
		(?=$|\s)
	`

	enMonthDayYear = `
		(?<=^|\s)
		(?<month>%[2]s)
		(?:
			\s
			(?<day>[0-9]{1,2})
			(?:%[1]s)?
		)?
		(?:
			,?\s
			(?:of\s)?
			(?<year>[0-9]{4})
		)?
		(?=$|\s)
	`

	enYearMonthDay = `
		(?<=^|\s)
		(?:
			(?<year>[0-9]{4})
			\s
		)?
		(?<month>%[2]s)
		(?:
			\s
			(?<day>[0-9]{1,2})
			(?:%[1]s)?
		)?
		(?=$|\s)
	`

	enRelativeWord = `
		(?<=^|\s)
		(?<word>%s)
		(?=$|\s)
	`

	enTimeOfDayWord = enRelativeWord

	enTwelveHour = `
		(?<=^|\s)
		(?<hour>[0-9]{1,2})
		(?:
			:(?<minute>[0-9]{2})
			(?::(?<second>[0-9]{2}))?
		)?
		\s?
		(?:
			(?<am>a\.?m\.?)
			|
			(?<pm>p\.?m\.?)
		)
		(?=$|\s)
	`

	enWeekday = `
		(?<=^|\s)
		(?:(?:on|the)\s){0,2}     # "on", "the", "on the"
		(?<next>next\s)?
		(?<weekday>%s)
		(?=$|\s)
	`

	enUnitLater = `
		(?<=^|\s)
		(?:(?:in|after)\s)?
		(?<amount>%[1]s)
		\s
		(?<unit>%[2]s)s?
		(?:\s(?:later|after))?
		(?=$|\s)
	`
)

// English returns the configuration for the built-in English vocabulary.
func English(order parser.DayMonthOrder, opts ...Option) (*Configuration, error) {
	return ForVocabulary(vocab.English(), order, opts...)
}

func englishParsers(v *vocab.Vocabulary, t tables) ([]parser.Parser, error) {
	suffixes := parser.AlternationOf(v.OrdinalSuffixes)
	months := parser.Alternation(t.months)

	b := newBuilder()
	b.monthName("en-day-month-year", fmt.Sprintf(enDayMonthYear, suffixes, months),
		[]parser.Field{parser.FieldDay, parser.FieldMonth, parser.FieldYear}, t.months)
	b.monthName("en-month-day-year", fmt.Sprintf(enMonthDayYear, suffixes, months),
		[]parser.Field{parser.FieldMonth, parser.FieldDay, parser.FieldYear}, t.months)
	b.monthName("en-year-month-day", fmt.Sprintf(enYearMonthDay, suffixes, months),
		[]parser.Field{parser.FieldYear, parser.FieldMonth, parser.FieldDay}, t.months)
	b.relativeWord("en-relative-word", enRelativeWord, v.RelativeDays)
	b.timeOfDayWord("en-time-of-day-word", enTimeOfDayWord, t.times)
	b.hourMinuteSecond("en-12-hour-time", enTwelveHour)
	b.weekday("en-weekday", enWeekday, t.weekdays)
	b.unitLater("en-unit-later", enUnitLater, t.units, v.Cardinals)

	return b.result()
}
