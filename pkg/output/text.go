package output

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/ccollicutt/datefind/pkg/analyzer"
	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/parser"
)

const timestampLayout = "2006-01-02 15:04:05"

// TextFormatter formats reports as human-readable text. The spans that
// contributed to a result are highlighted unless NoColor is set.
type TextFormatter struct {
	opts FormatOptions

	span    *color.Color
	missing *color.Color
	heading *color.Color
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	f := &TextFormatter{
		opts:    opts,
		span:    color.New(color.FgCyan, color.Bold),
		missing: color.New(color.FgYellow),
		heading: color.New(color.Bold),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{f.span, f.missing, f.heading} {
			c.DisableColor()
		}
	}
	return f
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "datefind: %d with dates, %d without, %d issues\n",
		report.Summary.LinesMatched,
		report.Summary.LinesSkipped,
		report.Summary.TotalIssues)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	for _, line := range report.Lines {
		f.formatLine(&line, w)
	}

	if len(report.Results) > 0 {
		fmt.Fprintln(w)
		for _, result := range report.Results {
			f.formatCheckResult(result, w)
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d with dates, %d without",
		report.Summary.LinesMatched,
		report.Summary.LinesSkipped)
	if report.Summary.LinesOutOfRange > 0 {
		fmt.Fprintf(w, ", %d out of range", report.Summary.LinesOutOfRange)
	}
	if report.Summary.ChecksRun > 0 {
		fmt.Fprintf(w, "; %d checks run, %d with issues, %d total issues",
			report.Summary.ChecksRun,
			report.Summary.ChecksWithIssues,
			report.Summary.TotalIssues)
	}
	fmt.Fprintln(w)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Reference: %s\n", report.Metadata.Reference.Format(timestampLayout+" MST"))
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		fmt.Fprintf(w, "Run: %s\n", report.ID)
	}

	return nil
}

func (f *TextFormatter) formatLine(line *LineReport, w io.Writer) {
	if line.Source != "" {
		fmt.Fprintf(w, "%s:%d: ", line.Source, line.LineNum)
	}

	res := line.Result
	fmt.Fprint(w, f.highlight(res))

	if res.IsEmpty() {
		fmt.Fprintf(w, "  => %s\n", f.missing.Sprint("no date or time"))
		return
	}
	fmt.Fprintf(w, "  => %s\n", Value(res))

	if f.opts.Verbose {
		for _, c := range res.Components() {
			fmt.Fprintf(w, "    [%d,%d) %s\n", c.Start(), c.End(), c)
		}
		if line.At != nil {
			fmt.Fprintf(w, "    resolved: %s\n", line.At.Format(timestampLayout+" MST"))
		}
	}
}

// highlight returns the source with the used components coloured.
func (f *TextFormatter) highlight(res *dateparse.Result) string {
	comps := res.Components()
	slices.SortFunc(comps, func(a, b *parser.ParsedComponent) int { return a.Start() - b.Start() })

	src := res.Source()
	var sb strings.Builder
	cursor := 0
	for _, c := range comps {
		if c.Start() < cursor {
			continue
		}
		sb.WriteString(src[cursor:c.Start()])
		sb.WriteString(f.span.Sprint(c.Text()))
		cursor = c.End()
	}
	sb.WriteString(src[cursor:])
	return sb.String()
}

// Value renders the date and time of a result, e.g. "2025-05-09 09:00:00",
// "2025-05-09" or "09:00:00".
func Value(res *dateparse.Result) string {
	d, hasDate := res.Date()
	t, hasTime := res.Time()
	switch {
	case hasDate && hasTime:
		return d.String() + " " + t.String()
	case hasDate:
		return d.String()
	case hasTime:
		return t.String()
	default:
		return ""
	}
}

func (f *TextFormatter) formatCheckResult(result *analyzer.CheckResult, w io.Writer) {
	fmt.Fprintln(w, f.heading.Sprintf("[%s] %s", strings.ToUpper(string(result.CheckType)), result.CheckName))

	if !result.HasIssues() {
		fmt.Fprintln(w, "  No issues detected")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  Found: %d issue(s)\n", len(result.Issues))
	for _, issue := range result.Issues {
		f.formatIssue(&issue, w)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatIssue(issue *analyzer.Issue, w io.Writer) {
	ctx := issue.Context
	switch issue.Type {
	case analyzer.IssueTypeGapExceeded:
		fmt.Fprintf(w, "  - Gap of %s between %s and %s (max allowed: %s)\n",
			ctx.ActualGap.Round(1e9),
			ctx.StartTime.Format(timestampLayout),
			ctx.EndTime.Format(timestampLayout),
			ctx.ExpectedGap)
	case analyzer.IssueTypeOutOfOrder:
		fmt.Fprintf(w, "  - %s:%d dated %s, before the previous line (%s)\n",
			ctx.Source, ctx.LineNum,
			ctx.EndTime.Format(timestampLayout),
			ctx.StartTime.Format(timestampLayout))
	case analyzer.IssueTypeBelowMinLines:
		fmt.Fprintf(w, "  - Only %d dated lines (minimum required: %d)\n",
			ctx.Occurrences, ctx.MinRequired)
	default:
		fmt.Fprintf(w, "  - %s\n", issue.Description)
	}

	if f.opts.Verbose && ctx.Source != "" && issue.Type != analyzer.IssueTypeOutOfOrder {
		fmt.Fprintf(w, "    Source: %s:%d\n", ctx.Source, ctx.LineNum)
	}
}
