package parser

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// UnitLaterParser reads "N units later" expressions ("in 3 days",
// "two weeks later"). The amount is a decimal number or a cardinal word.
//
// The pattern must capture "amount" and "unit" groups. Date-based units yield
// a date; clock units yield the full date and time.
type UnitLaterParser struct {
	base
	units     map[string]Unit
	cardinals map[string]int
}

// NewUnitLaterParser compiles expr with the given unit and cardinal tables.
// cardinals may be empty.
func NewUnitLaterParser(name, expr string, units map[string]Unit, cardinals map[string]int) (*UnitLaterParser, error) {
	b, err := newBase(name, expr, "amount", "unit")
	if err != nil {
		return nil, err
	}

	unitTable, err := lowerKeys(units)
	if err != nil {
		return nil, fmt.Errorf("%s: units: %w", name, err)
	}
	for word, u := range unitTable {
		if !u.Valid() {
			return nil, fmt.Errorf("%s: units: %q maps to %s", name, word, u)
		}
	}

	cardinalTable := make(map[string]int, len(cardinals))
	for k, v := range cardinals {
		cardinalTable[strings.ToLower(k)] = v
	}

	return &UnitLaterParser{base: b, units: unitTable, cardinals: cardinalTable}, nil
}

// Parse implements Parser.
func (p *UnitLaterParser) Parse(input string, reference time.Time) iter.Seq[*ParsedComponent] {
	return p.parse(input, reference, p.interpret)
}

func (p *UnitLaterParser) interpret(m *Match, reference time.Time, source string) (*ParsedComponent, bool) {
	amount, ok := p.amount(m)
	if !ok {
		return nil, false
	}

	unit, ok := lookup(m, "unit", p.units)
	if !ok {
		return nil, false
	}

	d, t, ok := unit.Add(DateOf(reference), TimeOf(reference), amount)
	if !ok {
		return nil, false
	}

	if unit.DateBased() {
		return mustComponent(reference, source, m.Start(), m.End(), &d, nil), true
	}
	return mustComponent(reference, source, m.Start(), m.End(), &d, &t), true
}

func (p *UnitLaterParser) amount(m *Match) (int, bool) {
	s, ok := m.Group("amount")
	if !ok {
		return 0, false
	}
	if n, ok := p.cardinals[strings.ToLower(s)]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
