package analyzer

import (
	"context"

	"github.com/ccollicutt/datefind/pkg/scan"
)

// Check processes dated lines and reports timeline issues.
type Check interface {
	// Name returns the check name for reporting.
	Name() string

	// Type returns the check type.
	Type() CheckType

	// Process handles a single line, updating internal state.
	Process(ctx context.Context, line *scan.Line) error

	// Finalize completes the check and returns detected issues.
	// Called after all lines have been processed.
	Finalize(ctx context.Context) (*CheckResult, error)

	// Reset clears internal state for reuse.
	Reset()
}
