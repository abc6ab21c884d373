// Package vocab holds the per-language word tables the date parsers are built
// from. Tables are plain values so they can be loaded from files and merged.
package vocab

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
)

// Supported languages.
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// ErrUnknownLanguage is returned for a language with no built-in grammar.
var ErrUnknownLanguage = errors.New("unknown language")

// Vocabulary is the word data for one language.
type Vocabulary struct {
	Language string `yaml:"language" toml:"language" json:"language"`

	// Months maps a month name or abbreviation to its number (1-12).
	Months map[string]int `yaml:"months,omitempty" toml:"months,omitempty" json:"months,omitempty"`

	// Weekdays maps a weekday name to its English name ("monday").
	Weekdays map[string]string `yaml:"weekdays,omitempty" toml:"weekdays,omitempty" json:"weekdays,omitempty"`

	// RelativeDays maps a word to a day offset from the reference date.
	RelativeDays map[string]int `yaml:"relative_days,omitempty" toml:"relative_days,omitempty" json:"relative_days,omitempty"`

	// TimesOfDay maps a word to a clock time written as HH:MM or HH:MM:SS.
	TimesOfDay map[string]string `yaml:"times_of_day,omitempty" toml:"times_of_day,omitempty" json:"times_of_day,omitempty"`

	// Units maps a unit word to a unit name (second ... decade, half_day).
	Units map[string]string `yaml:"units,omitempty" toml:"units,omitempty" json:"units,omitempty"`

	// Cardinals maps spelled-out numbers to their value.
	Cardinals map[string]int `yaml:"cardinals,omitempty" toml:"cardinals,omitempty" json:"cardinals,omitempty"`

	OrdinalSuffixes []string `yaml:"ordinal_suffixes,omitempty" toml:"ordinal_suffixes,omitempty" json:"ordinal_suffixes,omitempty"`
}

// ForLanguage returns a fresh copy of the built-in vocabulary for lang.
func ForLanguage(lang string) (*Vocabulary, error) {
	switch strings.ToLower(lang) {
	case LanguageEnglish:
		return English(), nil
	case LanguageRussian:
		return Russian(), nil
	default:
		return nil, fmt.Errorf("%w %q (must be %s or %s)", ErrUnknownLanguage, lang, LanguageEnglish, LanguageRussian)
	}
}

// Languages lists the built-in languages.
func Languages() []string {
	return []string{LanguageEnglish, LanguageRussian}
}

// Validate checks every table entry.
func (v *Vocabulary) Validate() error {
	if !slices.Contains(Languages(), v.Language) {
		return fmt.Errorf("language: %w %q", ErrUnknownLanguage, v.Language)
	}

	if len(v.Months) == 0 {
		return errors.New("months: at least one month name is required")
	}
	if _, err := v.MonthTable(); err != nil {
		return fmt.Errorf("months: %w", err)
	}
	if _, err := v.WeekdayTable(); err != nil {
		return fmt.Errorf("weekdays: %w", err)
	}
	if _, err := v.TimeTable(); err != nil {
		return fmt.Errorf("times_of_day: %w", err)
	}
	if _, err := v.UnitTable(); err != nil {
		return fmt.Errorf("units: %w", err)
	}
	for word, n := range v.Cardinals {
		if n < 0 {
			return fmt.Errorf("cardinals: %q has negative value %d", word, n)
		}
	}
	for _, s := range v.OrdinalSuffixes {
		if s == "" {
			return errors.New("ordinal_suffixes: empty suffix")
		}
	}

	return nil
}

// MonthTable converts Months for the month-name parsers.
func (v *Vocabulary) MonthTable() (map[string]time.Month, error) {
	out := make(map[string]time.Month, len(v.Months))
	for word, n := range v.Months {
		if word == "" {
			return nil, errors.New("empty month name")
		}
		if n < 1 || n > 12 {
			return nil, fmt.Errorf("%q: month %d out of range 1-12", word, n)
		}
		out[word] = time.Month(n)
	}
	return out, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayTable converts Weekdays for the weekday parser.
func (v *Vocabulary) WeekdayTable() (map[string]time.Weekday, error) {
	out := make(map[string]time.Weekday, len(v.Weekdays))
	for word, name := range v.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%q: unknown weekday %q", word, name)
		}
		out[word] = wd
	}
	return out, nil
}

// TimeTable converts TimesOfDay for the time-of-day word parser.
func (v *Vocabulary) TimeTable() (map[string]parser.TimeOfDay, error) {
	out := make(map[string]parser.TimeOfDay, len(v.TimesOfDay))
	for word, s := range v.TimesOfDay {
		t, err := parser.ParseTimeOfDay(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", word, err)
		}
		out[word] = t
	}
	return out, nil
}

// UnitTable converts Units for the unit-later parser.
func (v *Vocabulary) UnitTable() (map[string]parser.Unit, error) {
	out := make(map[string]parser.Unit, len(v.Units))
	for word, name := range v.Units {
		u, err := parser.ParseUnit(name)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", word, err)
		}
		out[word] = u
	}
	return out, nil
}

// Clone returns a deep copy of v.
func (v *Vocabulary) Clone() *Vocabulary {
	return &Vocabulary{
		Language:        v.Language,
		Months:          maps.Clone(v.Months),
		Weekdays:        maps.Clone(v.Weekdays),
		RelativeDays:    maps.Clone(v.RelativeDays),
		TimesOfDay:      maps.Clone(v.TimesOfDay),
		Units:           maps.Clone(v.Units),
		Cardinals:       maps.Clone(v.Cardinals),
		OrdinalSuffixes: slices.Clone(v.OrdinalSuffixes),
	}
}

// Merge returns a copy of base with the entries of overlay added. Overlay
// entries replace base entries with the same key. The overlay's language must
// be empty or equal to the base language.
func Merge(base, overlay *Vocabulary) (*Vocabulary, error) {
	if overlay.Language != "" && !strings.EqualFold(overlay.Language, base.Language) {
		return nil, fmt.Errorf("overlay language %q does not match %q", overlay.Language, base.Language)
	}

	out := base.Clone()
	out.Months = mergeMap(out.Months, overlay.Months)
	out.Weekdays = mergeMap(out.Weekdays, overlay.Weekdays)
	out.RelativeDays = mergeMap(out.RelativeDays, overlay.RelativeDays)
	out.TimesOfDay = mergeMap(out.TimesOfDay, overlay.TimesOfDay)
	out.Units = mergeMap(out.Units, overlay.Units)
	out.Cardinals = mergeMap(out.Cardinals, overlay.Cardinals)
	for _, s := range overlay.OrdinalSuffixes {
		if !slices.Contains(out.OrdinalSuffixes, s) {
			out.OrdinalSuffixes = append(out.OrdinalSuffixes, s)
		}
	}

	return out, nil
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[strings.ToLower(k)] = v
	}
	return dst
}
