package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

func TestRussian_Scenarios(t *testing.T) {
	cfg, err := Russian(parser.DayFirst)
	require.NoError(t, err)

	// 2025-05-08 is a Thursday.
	ref := time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		input    string
		wantDate string
		wantTime string
	}{
		{"завтра", "2025-05-09", ""},
		{"Послезавтра утром", "2025-05-10", "06:00:00"},
		{"через 10 дней", "2025-05-18", ""},
		{"через два часа", "2025-05-08", "14:00:00"},
		{"в пятницу", "2025-05-09", ""},
		{"в следующий четверг", "2025-05-15", ""},
		{"8-е апреля 2026-го года", "2026-04-08", ""},
		{"8 марта", "2026-03-08", ""},
		{"встреча 12.06 в 18:30", "2025-06-12", "18:30:00"},
		{"ничего", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := cfg.Parse(tt.input, ref)

			d, hasDate := r.Date()
			require.Equal(t, tt.wantDate != "", hasDate, "has date")
			if hasDate {
				require.Equal(t, tt.wantDate, d.String())
			}

			tod, hasTime := r.Time()
			require.Equal(t, tt.wantTime != "", hasTime, "has time")
			if hasTime {
				require.Equal(t, tt.wantTime, tod.String())
			}
		})
	}
}

func TestForVocabulary_Overlay(t *testing.T) {
	overlay := &vocab.Vocabulary{
		RelativeDays: map[string]int{"overmorrow": 2},
	}
	v, err := vocab.Merge(vocab.English(), overlay)
	require.NoError(t, err)

	cfg, err := ForVocabulary(v, parser.DayFirst)
	require.NoError(t, err)

	ref := time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC)
	d, ok := cfg.Parse("overmorrow", ref).Date()
	require.True(t, ok)
	require.Equal(t, "2025-05-10", d.String())
}

func TestForVocabulary_Errors(t *testing.T) {
	_, err := ForVocabulary(nil, parser.DayFirst)
	require.Error(t, err)

	bad := vocab.English()
	bad.Months["smarch"] = 13
	_, err = ForVocabulary(bad, parser.DayFirst)
	require.Error(t, err)

	_, err = ForLanguage("fr", parser.DayFirst)
	require.ErrorIs(t, err, vocab.ErrUnknownLanguage)
}

func TestForLanguage_ParserNames(t *testing.T) {
	cfg, err := ForLanguage("en", parser.DayFirst, WithoutParsers("en-weekday"))
	require.NoError(t, err)

	names := cfg.ParserNames()
	require.Equal(t, NeutralParserNames(), names[:3])
	require.Equal(t, []string{"iso-date", "slash-date", "24-hour-time"}, NeutralParserNames())
	require.NotContains(t, names, "en-weekday")
	require.Contains(t, names, "en-unit-later")
}
