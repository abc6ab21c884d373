package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds the contributing components of every line.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// NoColor disables highlighting in text output.
	NoColor bool
}

// Formats lists the names accepted by NewFormatter.
var Formats = []string{"text", "json"}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s)", name, strings.Join(Formats, " or "))
	}
}
