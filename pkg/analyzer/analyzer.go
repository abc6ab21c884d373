package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/scan"
)

// Analyzer drains a scan source, keeps its dated lines and runs every check
// over them.
type Analyzer struct {
	checks []Check

	timeRange *TimeRange
	keepLines bool
}

// TimeRange defines a window on resolved date-times.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window, bounds included.
func (r *TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithTimeRange limits analysis to lines that resolve within the window.
func WithTimeRange(start, end time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithLines keeps every analyzed line in the result.
func WithLines(keep bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.keepLines = keep
	}
}

// NewAnalyzer creates an analyzer. It runs with no checks when none are given.
func NewAnalyzer(checks []Check, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{checks: checks}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ChecksFromConfig builds the checks enabled in cfg.
func ChecksFromConfig(cfg config.ChecksConfig) ([]Check, error) {
	var checks []Check

	if cfg.MaxGap > 0 || cfg.MinLines > 0 {
		gap, err := NewGapCheck(cfg.MaxGap, cfg.MinLines)
		if err != nil {
			return nil, fmt.Errorf("gap check: %w", err)
		}
		checks = append(checks, gap)
	}
	if cfg.Order {
		checks = append(checks, NewOrderCheck())
	}

	return checks, nil
}

// AnalysisResult contains the complete analysis output.
type AnalysisResult struct {
	// Lines holds the analyzed lines when WithLines is set.
	Lines []*scan.Line

	// Results contains findings from each check.
	Results []*CheckResult

	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// Sources lists the files that produced dated lines, in first-seen order.
	Sources []string

	TimeRange *TimeRange

	StartTime time.Time
	EndTime   time.Time

	// LinesMatched counts lines with a date or time inside the time range.
	LinesMatched int

	// LinesSkipped counts lines with neither a date nor a time.
	LinesSkipped int

	// LinesOutOfRange counts dated lines outside the time range.
	LinesOutOfRange int
}

// TotalIssues returns the total number of issues across all checks.
func (r *AnalysisResult) TotalIssues() int {
	total := 0
	for _, result := range r.Results {
		total += len(result.Issues)
	}
	return total
}

// ChecksWithIssues returns the count of checks that detected issues.
func (r *AnalysisResult) ChecksWithIssues() int {
	count := 0
	for _, result := range r.Results {
		if result.HasIssues() {
			count++
		}
	}
	return count
}

// Analyze processes every line of source and returns the analysis results.
func (a *Analyzer) Analyze(ctx context.Context, source scan.Source) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Results: make([]*CheckResult, 0, len(a.checks)),
		Metadata: AnalysisMetadata{
			TimeRange: a.timeRange,
			StartTime: time.Now(),
		},
	}

	for _, check := range a.checks {
		check.Reset()
	}

	seen := make(map[string]bool)

	for {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}

		if !seen[line.Source] {
			seen[line.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, line.Source)
		}

		if a.timeRange != nil && !a.timeRange.Contains(line.At) {
			result.Metadata.LinesOutOfRange++
			continue
		}

		result.Metadata.LinesMatched++
		if a.keepLines {
			result.Lines = append(result.Lines, line)
		}

		for _, check := range a.checks {
			if err := check.Process(ctx, line); err != nil {
				return nil, fmt.Errorf("processing line with check %q: %w", check.Name(), err)
			}
		}
	}

	if c, ok := source.(scan.SkipCounter); ok {
		result.Metadata.LinesSkipped = c.Skipped()
	}

	for _, check := range a.checks {
		checkResult, err := check.Finalize(ctx)
		if err != nil {
			return nil, fmt.Errorf("finalizing check %q: %w", check.Name(), err)
		}
		result.Results = append(result.Results, checkResult)
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}
