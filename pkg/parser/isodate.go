package parser

import (
	"iter"
	"time"
)

const isoDatePattern = `
	(?<=^|\s)
	(?<year>[0-9]{4})
	(?:
		(?<delim>-|\.|)
		(?<month>[0-9]{2})
		(?:
			\k<delim>           # both separators must agree
			(?<day>[0-9]{2})
		)?
	)?
	(?=$|\s)
`

// ISODateParser reads YYYY[-MM[-DD]] dates. The separator may be "-", "."
// or absent (basic format, "20250802"), but must be the same on both sides.
// Missing month and day default to 1; the year is always explicit.
type ISODateParser struct {
	base
}

// NewISODateParser returns the parser.
func NewISODateParser() *ISODateParser {
	b, err := newBase("iso-date", isoDatePattern, "year", "month", "day")
	if err != nil {
		panic(err)
	}
	return &ISODateParser{base: b}
}

// Parse implements Parser.
func (p *ISODateParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *ISODateParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	year, ok := intGroup(m, "year")
	if !ok {
		return nil, false
	}

	month := 1
	if n, ok := intGroup(m, "month"); ok {
		month = n
	}

	day := 1
	if n, ok := intGroup(m, "day"); ok {
		day = n
	}

	d, ok := NewDate(year, time.Month(month), day)
	if !ok {
		return nil, false
	}

	return mustComponent(reference, source, m.Start(), m.End(), &d, nil), true
}
