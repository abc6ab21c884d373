// Package scan reads text files line by line and runs a date parsing
// configuration over every line.
package scan

import (
	"context"
	"time"

	"github.com/ccollicutt/datefind/pkg/dateparse"
)

// Line is one input line that carried a date, a time or both.
type Line struct {
	// Raw is the original line content.
	Raw string

	// Source is the file path this line came from ("-" for stdin).
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int

	// Result is the parse result for Raw.
	Result *dateparse.Result

	// At is Result resolved to an instant in the source's location.
	At time.Time
}

// Source yields parsed lines.
type Source interface {
	// Next returns the next line with a date or time.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// SkipCounter is implemented by sources that count the lines they dropped
// for holding neither a date nor a time.
type SkipCounter interface {
	Skipped() int
}
