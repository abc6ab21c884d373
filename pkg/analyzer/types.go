// Package analyzer runs timeline checks over the dated lines of a scan.
package analyzer

import (
	"time"
)

// CheckType enumerates timeline checks.
type CheckType string

const (
	CheckTypeGap   CheckType = "gap"
	CheckTypeOrder CheckType = "order"
)

// IssueType categorizes detected issues.
type IssueType string

const (
	// IssueTypeGapExceeded indicates two consecutive dated lines lie further apart than allowed.
	IssueTypeGapExceeded IssueType = "gap_exceeded"

	// IssueTypeBelowMinLines indicates fewer dated lines than required.
	IssueTypeBelowMinLines IssueType = "below_min_lines"

	// IssueTypeOutOfOrder indicates a line dated before the previous line of the same source.
	IssueTypeOutOfOrder IssueType = "out_of_order"
)

// CheckResult contains findings from executing a single check.
type CheckResult struct {
	CheckName string     `json:"check_name"`
	CheckType CheckType  `json:"check_type"`
	Issues    []Issue    `json:"issues"`
	Stats     CheckStats `json:"stats"`
}

// CheckStats contains execution statistics for a check.
type CheckStats struct {
	// LinesProcessed is the number of dated lines examined.
	LinesProcessed int `json:"lines_processed"`

	// First and Last are the earliest and latest resolved instants seen.
	First time.Time `json:"first,omitzero"`
	Last  time.Time `json:"last,omitzero"`
}

// HasIssues returns true if any issues were detected.
func (r *CheckResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// Issue represents a single detected problem.
type Issue struct {
	Type        IssueType    `json:"type"`
	Description string       `json:"description"`
	Context     IssueContext `json:"context"`
}

// IssueContext provides detailed information about an issue.
type IssueContext struct {
	// StartTime and EndTime bound the offending interval.
	StartTime time.Time `json:"start_time,omitzero"`
	EndTime   time.Time `json:"end_time,omitzero"`

	// Source and LineNum locate the line that raised the issue.
	Source  string `json:"source,omitempty"`
	LineNum int    `json:"line_num,omitempty"`

	ActualGap   time.Duration `json:"actual_gap,omitempty"`
	ExpectedGap time.Duration `json:"expected_gap,omitempty"`

	Occurrences int `json:"occurrences,omitempty"`
	MinRequired int `json:"min_required,omitempty"`
}
