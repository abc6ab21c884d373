package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ccollicutt/datefind/pkg/scan"
)

type orderTracker struct {
	at      time.Time
	lineNum int
}

// OrderCheck reports lines whose resolved date-time is earlier than that of
// the previous dated line in the same source.
type OrderCheck struct {
	mu     sync.Mutex
	last   map[string]orderTracker // key: source
	issues []Issue
	stats  CheckStats
}

// NewOrderCheck creates an order check.
func NewOrderCheck() *OrderCheck {
	return &OrderCheck{last: make(map[string]orderTracker)}
}

// Name returns the check name.
func (c *OrderCheck) Name() string {
	return "order"
}

// Type returns the check type.
func (c *OrderCheck) Type() CheckType {
	return CheckTypeOrder
}

// Process handles a single line.
func (c *OrderCheck) Process(_ context.Context, line *scan.Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LinesProcessed++
	observe(&c.stats, line.At)

	prev, seen := c.last[line.Source]
	if seen && line.At.Before(prev.at) {
		c.issues = append(c.issues, Issue{
			Type: IssueTypeOutOfOrder,
			Description: fmt.Sprintf("Line %d is dated %s, before line %d (%s)",
				line.LineNum, line.At.Format(time.RFC3339), prev.lineNum, prev.at.Format(time.RFC3339)),
			Context: IssueContext{
				StartTime: prev.at,
				EndTime:   line.At,
				Source:    line.Source,
				LineNum:   line.LineNum,
			},
		})
	}

	c.last[line.Source] = orderTracker{at: line.At, lineNum: line.LineNum}
	return nil
}

// Finalize completes the check and returns detected issues.
func (c *OrderCheck) Finalize(_ context.Context) (*CheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	issues := make([]Issue, len(c.issues))
	copy(issues, c.issues)

	return &CheckResult{
		CheckName: c.Name(),
		CheckType: CheckTypeOrder,
		Issues:    issues,
		Stats:     c.stats,
	}, nil
}

// Reset clears internal state for reuse.
func (c *OrderCheck) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = make(map[string]orderTracker)
	c.issues = nil
	c.stats = CheckStats{}
}
