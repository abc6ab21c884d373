package analyzer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ccollicutt/datefind/pkg/scan"
)

type gapPoint struct {
	at      time.Time
	source  string
	lineNum int
}

// GapCheck reports gaps between consecutive dated lines that exceed a maximum,
// and optionally a shortfall of dated lines. Lines may arrive in any order;
// gaps are measured in date-time order.
type GapCheck struct {
	maxGap   time.Duration
	minLines int

	mu     sync.Mutex
	points []gapPoint
	stats  CheckStats
}

// NewGapCheck creates a gap check. A zero maxGap disables gap detection and a
// zero minLines disables the line count requirement.
func NewGapCheck(maxGap time.Duration, minLines int) (*GapCheck, error) {
	if maxGap < 0 {
		return nil, errors.New("max gap must not be negative")
	}
	if minLines < 0 {
		return nil, errors.New("min lines must not be negative")
	}
	return &GapCheck{maxGap: maxGap, minLines: minLines}, nil
}

// Name returns the check name.
func (c *GapCheck) Name() string {
	return "gaps"
}

// Type returns the check type.
func (c *GapCheck) Type() CheckType {
	return CheckTypeGap
}

// Process handles a single line.
func (c *GapCheck) Process(_ context.Context, line *scan.Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LinesProcessed++
	observe(&c.stats, line.At)
	c.points = append(c.points, gapPoint{at: line.At, source: line.Source, lineNum: line.LineNum})
	return nil
}

// Finalize completes the check and returns detected issues.
func (c *GapCheck) Finalize(_ context.Context) (*CheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &CheckResult{
		CheckName: c.Name(),
		CheckType: CheckTypeGap,
		Issues:    make([]Issue, 0),
		Stats:     c.stats,
	}

	if c.maxGap > 0 {
		points := slices.Clone(c.points)
		slices.SortStableFunc(points, func(a, b gapPoint) int { return a.at.Compare(b.at) })
		for i := 1; i < len(points); i++ {
			prev, curr := points[i-1], points[i]
			gap := curr.at.Sub(prev.at)
			if gap <= c.maxGap {
				continue
			}
			result.Issues = append(result.Issues, Issue{
				Type: IssueTypeGapExceeded,
				Description: fmt.Sprintf("Gap of %s between dated lines (max allowed: %s)",
					gap.Round(time.Second), c.maxGap),
				Context: IssueContext{
					StartTime:   prev.at,
					EndTime:     curr.at,
					Source:      curr.source,
					LineNum:     curr.lineNum,
					ActualGap:   gap,
					ExpectedGap: c.maxGap,
				},
			})
		}
	}

	if c.minLines > 0 && len(c.points) < c.minLines {
		result.Issues = append(result.Issues, Issue{
			Type: IssueTypeBelowMinLines,
			Description: fmt.Sprintf("Only %d dated lines found (minimum required: %d)",
				len(c.points), c.minLines),
			Context: IssueContext{
				Occurrences: len(c.points),
				MinRequired: c.minLines,
			},
		})
	}

	return result, nil
}

// Reset clears internal state for reuse.
func (c *GapCheck) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.points = nil
	c.stats = CheckStats{}
}

func observe(stats *CheckStats, at time.Time) {
	if stats.First.IsZero() || at.Before(stats.First) {
		stats.First = at
	}
	if stats.Last.IsZero() || at.After(stats.Last) {
		stats.Last = at
	}
}
