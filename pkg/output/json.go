package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter writes one indented JSON document per report.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// summaryDocument is the quiet form: enough to tell runs apart and count results.
type summaryDocument struct {
	ID      string     `json:"id"`
	Kind    ReportKind `json:"kind"`
	Summary Summary    `json:"summary"`
}

// Format renders the report as JSON. Quiet mode drops the lines, checks and
// metadata but keeps the run ID and report kind.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if f.opts.Quiet {
		return encoder.Encode(summaryDocument{ID: report.ID, Kind: report.Kind, Summary: report.Summary})
	}
	return encoder.Encode(report)
}
