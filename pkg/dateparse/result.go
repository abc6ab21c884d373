package dateparse

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
)

// Result is the merged outcome of one Parse call. It is empty when no parser
// produced a usable date or time; that is a normal outcome, not an error.
type Result struct {
	components []*parser.ParsedComponent

	date    parser.Date
	hasDate bool
	time    parser.TimeOfDay
	hasTime bool

	reference time.Time
	source    string
}

// use applies comp to the empty slots it can fill and reports whether it was used.
func (r *Result) use(comp *parser.ParsedComponent) bool {
	d, hasDate := comp.Date()
	t, hasTime := comp.Time()

	switch {
	case hasDate && hasTime:
		if r.hasDate || r.hasTime {
			return false
		}
		r.date, r.hasDate = d, true
		r.time, r.hasTime = t, true
	case hasDate:
		if r.hasDate {
			return false
		}
		r.date, r.hasDate = d, true
	case hasTime:
		if r.hasTime {
			return false
		}
		r.time, r.hasTime = t, true
	default:
		return false
	}

	r.components = append(r.components, comp)
	return true
}

// Components returns the components that contributed to the result, in the
// order they were used (at most two).
func (r *Result) Components() []*parser.ParsedComponent {
	return slices.Clone(r.components)
}

// Date returns the resolved date, if any.
func (r *Result) Date() (parser.Date, bool) { return r.date, r.hasDate }

// Time returns the resolved time of day, if any.
func (r *Result) Time() (parser.TimeOfDay, bool) { return r.time, r.hasTime }

// Reference returns the reference timestamp of the call.
func (r *Result) Reference() time.Time { return r.reference }

// Source returns the input string of the call.
func (r *Result) Source() string { return r.source }

// IsEmpty reports whether neither a date nor a time was found.
func (r *Result) IsEmpty() bool { return !r.hasDate && !r.hasTime }

// IsPresent reports whether a date or a time was found.
func (r *Result) IsPresent() bool { return r.hasDate || r.hasTime }

// Resolve combines the result into an instant in loc. A missing date is taken
// from the reference and a missing time is midnight. A nil loc means the
// reference's location. ok is false for an empty result.
func (r *Result) Resolve(loc *time.Location) (t time.Time, ok bool) {
	if r.IsEmpty() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = r.reference.Location()
	}

	d := r.date
	if !r.hasDate {
		d = parser.DateOf(r.reference.In(loc))
	}
	return r.time.On(d, loc), true
}

// Equal reports whether two results hold the same components, values,
// reference and source.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.source != other.source || !r.reference.Equal(other.reference) {
		return false
	}
	if r.hasDate != other.hasDate || r.hasTime != other.hasTime || r.date != other.date || r.time != other.time {
		return false
	}
	return slices.EqualFunc(r.components, other.components, func(a, b *parser.ParsedComponent) bool {
		return a.Start() == b.Start() && a.End() == b.End() && a.String() == b.String()
	})
}

// String renders the result as Result{"tomorrow", "9am"} -> 2025-05-09T09:00:00.
// Component texts are listed in the order they appear in the source.
func (r *Result) String() string {
	used := slices.Clone(r.components)
	slices.SortFunc(used, func(a, b *parser.ParsedComponent) int { return a.Start() - b.Start() })

	texts := make([]string, len(used))
	for i, c := range used {
		texts[i] = fmt.Sprintf("%q", c.Text())
	}

	return fmt.Sprintf("Result{%s} -> %s", strings.Join(texts, ", "), r.valueString())
}

func (r *Result) valueString() string {
	switch {
	case r.hasDate && r.hasTime:
		return r.date.String() + "T" + r.time.String()
	case r.hasDate:
		return r.date.String()
	case r.hasTime:
		return r.time.String()
	default:
		return "empty"
	}
}

type componentJSON struct {
	Text  string            `json:"text"`
	Start int               `json:"start"`
	End   int               `json:"end"`
	Date  *parser.Date      `json:"date,omitempty"`
	Time  *parser.TimeOfDay `json:"time,omitempty"`
}

type resultJSON struct {
	Source     string            `json:"source"`
	Reference  time.Time         `json:"reference"`
	Date       *parser.Date      `json:"date,omitempty"`
	Time       *parser.TimeOfDay `json:"time,omitempty"`
	Components []componentJSON   `json:"components"`
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Source:     r.source,
		Reference:  r.reference,
		Components: make([]componentJSON, 0, len(r.components)),
	}
	if d, ok := r.Date(); ok {
		out.Date = &d
	}
	if t, ok := r.Time(); ok {
		out.Time = &t
	}

	for _, c := range r.components {
		cj := componentJSON{Text: c.Text(), Start: c.Start(), End: c.End()}
		if d, ok := c.Date(); ok {
			cj.Date = &d
		}
		if t, ok := c.Time(); ok {
			cj.Time = &t
		}
		out.Components = append(out.Components, cj)
	}

	return json.Marshal(out)
}
