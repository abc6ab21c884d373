package dateparse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

// ForVocabulary builds the configuration for v's language from v's tables.
// The language-neutral parsers (ISO dates, slash dates, 24-hour times) come
// first, followed by the language's own.
func ForVocabulary(v *vocab.Vocabulary, order parser.DayMonthOrder, opts ...Option) (*Configuration, error) {
	if v == nil {
		return nil, errors.New("vocabulary is required")
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}

	t, err := newTables(v)
	if err != nil {
		return nil, err
	}

	var own []parser.Parser
	switch v.Language {
	case vocab.LanguageEnglish:
		own, err = englishParsers(v, t)
	case vocab.LanguageRussian:
		own, err = russianParsers(v, t)
	default:
		err = fmt.Errorf("%w %q", vocab.ErrUnknownLanguage, v.Language)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s parsers: %w", v.Language, err)
	}

	return NewConfiguration(append(neutralParsers(order), own...), opts...)
}

func neutralParsers(order parser.DayMonthOrder) []parser.Parser {
	return []parser.Parser{
		parser.NewISODateParser(),
		parser.NewSlashDateParser(order),
		parser.NewTwentyFourHourParser(),
	}
}

// NeutralParserNames lists the parsers shared by every language.
func NeutralParserNames() []string {
	var names []string
	for _, p := range neutralParsers(parser.DayFirst) {
		names = append(names, p.Name())
	}
	return names
}

// ForLanguage builds the configuration for a built-in language ("en", "ru").
func ForLanguage(lang string, order parser.DayMonthOrder, opts ...Option) (*Configuration, error) {
	v, err := vocab.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	return ForVocabulary(v, order, opts...)
}

// tables are the typed forms of a vocabulary's string tables.
type tables struct {
	months   map[string]time.Month
	weekdays map[string]time.Weekday
	times    map[string]parser.TimeOfDay
	units    map[string]parser.Unit
}

func newTables(v *vocab.Vocabulary) (tables, error) {
	var t tables
	var err error
	if t.months, err = v.MonthTable(); err != nil {
		return tables{}, err
	}
	if t.weekdays, err = v.WeekdayTable(); err != nil {
		return tables{}, err
	}
	if t.times, err = v.TimeTable(); err != nil {
		return tables{}, err
	}
	if t.units, err = v.UnitTable(); err != nil {
		return tables{}, err
	}
	return t, nil
}

// builder collects parsers and keeps the first construction error. Parsers
// whose table is empty are skipped.
type builder struct {
	parsers []parser.Parser
	err     error
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) add(p parser.Parser, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.parsers = append(b.parsers, p)
}

func (b *builder) monthName(name, expr string, layout []parser.Field, months map[string]time.Month) {
	p, err := parser.NewMonthNameParser(name, expr, layout, months)
	b.add(p, err)
}

func (b *builder) relativeWord(name, format string, offsets map[string]int) {
	if len(offsets) == 0 {
		return
	}
	p, err := parser.NewRelativeWordParser(name, fmt.Sprintf(format, parser.Alternation(offsets)), offsets)
	b.add(p, err)
}

func (b *builder) timeOfDayWord(name, format string, times map[string]parser.TimeOfDay) {
	if len(times) == 0 {
		return
	}
	p, err := parser.NewTimeOfDayWordParser(name, fmt.Sprintf(format, parser.Alternation(times)), times)
	b.add(p, err)
}

func (b *builder) hourMinuteSecond(name, expr string) {
	p, err := parser.NewHourMinuteSecondParser(name, expr)
	b.add(p, err)
}

func (b *builder) weekday(name, format string, weekdays map[string]time.Weekday) {
	if len(weekdays) == 0 {
		return
	}
	p, err := parser.NewWeekdayParser(name, fmt.Sprintf(format, parser.Alternation(weekdays)), weekdays)
	b.add(p, err)
}

func (b *builder) unitLater(name, format string, units map[string]parser.Unit, cardinals map[string]int) {
	if len(units) == 0 {
		return
	}
	amount := "[0-9]+"
	if len(cardinals) > 0 {
		amount = parser.Alternation(cardinals) + "|" + amount
	}
	p, err := parser.NewUnitLaterParser(name, fmt.Sprintf(format, amount, parser.Alternation(units)), units, cardinals)
	b.add(p, err)
}

func (b *builder) result() ([]parser.Parser, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.parsers, nil
}
