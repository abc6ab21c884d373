// Package output provides formatting and output generation for parse and scan reports.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/datefind/pkg/analyzer"
	"github.com/ccollicutt/datefind/pkg/dateparse"
)

// ReportKind tells parse reports from scan reports.
type ReportKind string

const (
	// KindParse reports inputs parsed one by one; every input has a line.
	KindParse ReportKind = "parse"
	// KindScan reports the dated lines of scanned files and the check results.
	KindScan ReportKind = "scan"
)

// Report is the complete output of a parse or scan run.
type Report struct {
	// ID identifies the run, e.g. in webhook deliveries.
	ID string `json:"id"`

	Kind ReportKind `json:"kind"`

	Summary Summary `json:"summary"`

	// Lines holds one entry per reported input.
	Lines []LineReport `json:"lines"`

	// Results contains findings from each timeline check.
	Results []*analyzer.CheckResult `json:"checks"`

	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesMatched counts inputs with a date or time.
	LinesMatched int `json:"lines_matched"`

	// LinesSkipped counts inputs with neither.
	LinesSkipped int `json:"lines_skipped"`

	// LinesOutOfRange counts dated inputs dropped by a time range.
	LinesOutOfRange int `json:"lines_out_of_range,omitempty"`

	ChecksRun        int `json:"checks_run"`
	ChecksWithIssues int `json:"checks_with_issues"`
	TotalIssues      int `json:"total_issues"`
}

// LineReport is one parsed input.
type LineReport struct {
	Source  string            `json:"source,omitempty"`
	LineNum int               `json:"line_num,omitempty"`
	At      *time.Time        `json:"at,omitempty"`
	Result  *dateparse.Result `json:"result"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	Language string `json:"language"`

	// Sources lists the scanned files.
	Sources []string `json:"sources,omitempty"`

	// Reference is the reference time used for relative expressions.
	Reference time.Time `json:"reference"`

	TimeRange *TimeRange `json:"time_range,omitempty"`

	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// TimeRange represents a time window for filtering.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReport creates a Report from scan analysis results.
func NewReport(result *analyzer.AnalysisResult, meta Metadata) *Report {
	report := &Report{
		ID:      uuid.NewString(),
		Kind:    KindScan,
		Results: result.Results,
		Summary: Summary{
			LinesMatched:     result.Metadata.LinesMatched,
			LinesSkipped:     result.Metadata.LinesSkipped,
			LinesOutOfRange:  result.Metadata.LinesOutOfRange,
			ChecksRun:        len(result.Results),
			ChecksWithIssues: result.ChecksWithIssues(),
			TotalIssues:      result.TotalIssues(),
		},
		Metadata: meta,
	}

	report.Metadata.Sources = result.Metadata.Sources
	report.Metadata.GeneratedAt = result.Metadata.EndTime
	report.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	if tr := result.Metadata.TimeRange; tr != nil {
		report.Metadata.TimeRange = &TimeRange{Start: tr.Start, End: tr.End}
	}

	for _, line := range result.Lines {
		at := line.At
		report.Lines = append(report.Lines, LineReport{
			Source:  line.Source,
			LineNum: line.LineNum,
			At:      &at,
			Result:  line.Result,
		})
	}

	return report
}

// NewParseReport creates a Report for inputs parsed one by one. Empty
// results are kept so that every input appears in the output.
func NewParseReport(results []*dateparse.Result, meta Metadata) *Report {
	report := &Report{
		ID:       uuid.NewString(),
		Kind:     KindParse,
		Results:  []*analyzer.CheckResult{},
		Metadata: meta,
	}
	if report.Metadata.GeneratedAt.IsZero() {
		report.Metadata.GeneratedAt = time.Now()
	}

	for i, res := range results {
		lr := LineReport{LineNum: i + 1, Result: res}
		if at, ok := res.Resolve(nil); ok {
			lr.At = &at
			report.Summary.LinesMatched++
		} else {
			report.Summary.LinesSkipped++
		}
		report.Lines = append(report.Lines, lr)
	}

	return report
}

// HasIssues returns true if any check detected issues.
func (r *Report) HasIssues() bool {
	return r.Summary.TotalIssues > 0
}

// HasUnresolved returns true if any reported input had neither a date nor a time.
func (r *Report) HasUnresolved() bool {
	return r.Summary.LinesSkipped > 0
}
