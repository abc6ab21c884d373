package detector

import (
	"fmt"

	"github.com/ccollicutt/datefind/pkg/parser"
)

// OrderEvidence counts numeric dates by what they reveal about the
// day-month order.
type OrderEvidence struct {
	DayFirst   int // first number above 12, e.g. 25/03
	MonthFirst int // second number above 12, e.g. 03/25
	Ambiguous  int // both numbers 12 or below, e.g. 03/04
}

// Total returns the number of numeric dates seen.
func (e OrderEvidence) Total() int {
	return e.DayFirst + e.MonthFirst + e.Ambiguous
}

func collectEvidence(lines []string) OrderEvidence {
	var e OrderEvidence
	for _, line := range lines {
		for first, second := range parser.NumericDatePairs(line) {
			switch {
			case first < 1 || second < 1 || first > 31 || second > 31:
			case first > 12 && second <= 12:
				e.DayFirst++
			case second > 12 && first <= 12:
				e.MonthFirst++
			case first <= 12 && second <= 12:
				e.Ambiguous++
			}
		}
	}
	return e
}

// suggest picks the order with more evidence. Without a winner it falls back
// to day_month and explains why.
func (e OrderEvidence) suggest() (parser.DayMonthOrder, string) {
	switch {
	case e.DayFirst > e.MonthFirst:
		if e.MonthFirst > 0 {
			return parser.DayFirst, conflictNote(e, parser.DayFirst)
		}
		return parser.DayFirst, ""
	case e.MonthFirst > e.DayFirst:
		if e.DayFirst > 0 {
			return parser.MonthFirst, conflictNote(e, parser.MonthFirst)
		}
		return parser.MonthFirst, ""
	case e.DayFirst > 0:
		return parser.DayFirst, conflictNote(e, parser.DayFirst)
	case e.Ambiguous > 0:
		return parser.DayFirst, fmt.Sprintf(
			"%d numeric date(s) such as 03/04 could be read either way; assuming %s. "+
				"Set day_month_order: %s if they are month-first.",
			e.Ambiguous, parser.DayFirst, parser.MonthFirst)
	default:
		return parser.DayFirst, ""
	}
}

func conflictNote(e OrderEvidence, chosen parser.DayMonthOrder) string {
	return fmt.Sprintf("the sample mixes day-first (%d) and month-first (%d) numeric dates; using %s",
		e.DayFirst, e.MonthFirst, chosen)
}
