package dateparse

import (
	"fmt"

	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

// Russian month-name layouts: "8-е апреля 2025-го года", "апреля 8, 2025",
// "2025 года апреля 8".
const (
	ruYear = `
		(?<year>[0-9]{4})
		(?:-?го)?
		(?:\sгода)?
	`

	ruDayMonthYear = `
		(?<=^|\s)
		(?:
			(?<day>[0-9]{1,2})
			(?:%[1]s)?
			\s
		)?
		(?<month>%[2]s)
		(?:
			,?\s
			` + ruYear + `
		)?
		(?=$|\s)
	`

	ruMonthDayYear = `
		(?<=^|\s)
		(?<month>%[2]s)
		(?:
			\s
			(?<day>[0-9]{1,2})
			(?:%[1]s)?
		)?
		(?:
			,?\s
			` + ruYear + `
		)?
		(?=$|\s)
	`

	ruYearMonthDay = `
		(?<=^|\s)
		(?:
			` + ruYear + `
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

	ruWord = `
		(?<=^|\s)
		(?<word>%s)
		(?=$|\s)
	`

	ruWeekday = `
		(?<=^|\s)
		(?:во?\s)?                # "в четверг", "во вторник"
		(?:
			(?<next>следующий|следующую|следующее|следующей|след\.?)
			\s
		)?
		(?<weekday>%s)
		(?=$|\s)
	`

	ruUnitLater = `
		(?<=^|\s)
		(?:через\s)?
		(?<amount>%[1]s)
		\s
		(?<unit>%[2]s)
		(?:\sспустя)?
		(?=$|\s)
	`
)

// Russian returns the configuration for the built-in Russian vocabulary.
func Russian(order parser.DayMonthOrder, opts ...Option) (*Configuration, error) {
	return ForVocabulary(vocab.Russian(), order, opts...)
}

func russianParsers(v *vocab.Vocabulary, t tables) ([]parser.Parser, error) {
	suffixes := parser.AlternationOf(v.OrdinalSuffixes)
	months := parser.Alternation(t.months)

	b := newBuilder()
	b.monthName("ru-day-month-year", fmt.Sprintf(ruDayMonthYear, suffixes, months),
		[]parser.Field{parser.FieldDay, parser.FieldMonth, parser.FieldYear}, t.months)
	b.monthName("ru-month-day-year", fmt.Sprintf(ruMonthDayYear, suffixes, months),
		[]parser.Field{parser.FieldMonth, parser.FieldDay, parser.FieldYear}, t.months)
	b.monthName("ru-year-month-day", fmt.Sprintf(ruYearMonthDay, suffixes, months),
		[]parser.Field{parser.FieldYear, parser.FieldMonth, parser.FieldDay}, t.months)
	b.relativeWord("ru-relative-word", ruWord, v.RelativeDays)
	b.timeOfDayWord("ru-time-of-day-word", ruWord, t.times)
	b.weekday("ru-weekday", ruWeekday, t.weekdays)
	b.unitLater("ru-unit-later", ruUnitLater, t.units, v.Cardinals)

	return b.result()
}
