package analyzer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/scan"
)

// mockSource is a test Source that returns predefined lines.
type mockSource struct {
	lines   []*scan.Line
	index   int
	skipped int
}

func (m *mockSource) Next(ctx context.Context) (*scan.Line, error) {
	if m.index >= len(m.lines) {
		return nil, io.EOF
	}
	line := m.lines[m.index]
	m.index++
	return line, nil
}

func (m *mockSource) Close() error { return nil }

func (m *mockSource) Skipped() int { return m.skipped }

var base = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func line(source string, num int, at time.Time) *scan.Line {
	return &scan.Line{Raw: at.Format(time.RFC3339), Source: source, LineNum: num, At: at}
}

func TestAnalyzer_Analyze(t *testing.T) {
	gap, err := NewGapCheck(time.Hour, 0)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAnalyzer([]Check{gap, NewOrderCheck()}, WithLines(true))

	src := &mockSource{
		lines: []*scan.Line{
			line("a.txt", 1, base),
			line("b.txt", 1, base.Add(30*time.Minute)),
			line("a.txt", 2, base.Add(3*time.Hour)),
		},
		skipped: 4,
	}

	result, err := a.Analyze(context.Background(), src)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Metadata.LinesMatched != 3 {
		t.Errorf("LinesMatched = %d, want 3", result.Metadata.LinesMatched)
	}
	if result.Metadata.LinesSkipped != 4 {
		t.Errorf("LinesSkipped = %d, want 4", result.Metadata.LinesSkipped)
	}
	if len(result.Metadata.Sources) != 2 || result.Metadata.Sources[0] != "a.txt" {
		t.Errorf("Sources = %v, want [a.txt b.txt]", result.Metadata.Sources)
	}
	if len(result.Lines) != 3 {
		t.Errorf("Lines = %d, want 3", len(result.Lines))
	}
	if len(result.Results) != 2 {
		t.Fatalf("Results = %d, want 2", len(result.Results))
	}
	if result.TotalIssues() != 1 || result.ChecksWithIssues() != 1 {
		t.Errorf("TotalIssues() = %d, ChecksWithIssues() = %d; want 1, 1",
			result.TotalIssues(), result.ChecksWithIssues())
	}
}

func TestAnalyzer_TimeRange(t *testing.T) {
	a := NewAnalyzer(nil, WithTimeRange(base, base.Add(time.Hour)), WithLines(true))

	src := &mockSource{lines: []*scan.Line{
		line("a.txt", 1, base.Add(-time.Minute)),
		line("a.txt", 2, base),
		line("a.txt", 3, base.Add(time.Hour)),
		line("a.txt", 4, base.Add(2*time.Hour)),
	}}

	result, err := a.Analyze(context.Background(), src)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Metadata.LinesMatched != 2 {
		t.Errorf("LinesMatched = %d, want 2", result.Metadata.LinesMatched)
	}
	if result.Metadata.LinesOutOfRange != 2 {
		t.Errorf("LinesOutOfRange = %d, want 2", result.Metadata.LinesOutOfRange)
	}
}

func TestAnalyzer_WithoutLines(t *testing.T) {
	a := NewAnalyzer(nil)
	result, err := a.Analyze(context.Background(), &mockSource{lines: []*scan.Line{line("a.txt", 1, base)}})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Lines != nil {
		t.Errorf("Lines = %v, want nil without WithLines", result.Lines)
	}
}

func TestAnalyzer_ContextCancelledBySource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAnalyzer(nil)
	_, err := a.Analyze(ctx, cancelledSource{})
	if err == nil {
		t.Error("Analyze() expected error from source")
	}
}

type cancelledSource struct{}

func (cancelledSource) Next(ctx context.Context) (*scan.Line, error) { return nil, ctx.Err() }
func (cancelledSource) Close() error { return nil }

func TestChecksFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ChecksConfig
		want []CheckType
	}{
		{"none", config.ChecksConfig{}, nil},
		{"gap only", config.ChecksConfig{MaxGap: time.Hour}, []CheckType{CheckTypeGap}},
		{"min lines only", config.ChecksConfig{MinLines: 2}, []CheckType{CheckTypeGap}},
		{"all", config.ChecksConfig{MaxGap: time.Hour, Order: true}, []CheckType{CheckTypeGap, CheckTypeOrder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks, err := ChecksFromConfig(tt.cfg)
			if err != nil {
				t.Fatalf("ChecksFromConfig() error = %v", err)
			}
			if len(checks) != len(tt.want) {
				t.Fatalf("got %d checks, want %d", len(checks), len(tt.want))
			}
			for i, c := range checks {
				if c.Type() != tt.want[i] {
					t.Errorf("checks[%d].Type() = %v, want %v", i, c.Type(), tt.want[i])
				}
			}
		})
	}
}

func TestChecksFromConfig_Negative(t *testing.T) {
	if _, err := ChecksFromConfig(config.ChecksConfig{MaxGap: -time.Hour, MinLines: 1}); err == nil {
		t.Error("ChecksFromConfig() expected error for negative max gap")
	}
}
