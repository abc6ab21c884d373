// Package detector samples text and suggests the language and day-month order
// that best fit it.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

// DefaultSampleSize is the number of lines sampled when no size is given.
const DefaultSampleSize = 100

// DetectionResult holds the result of analyzing a sample.
type DetectionResult struct {
	Matches       []LanguageMatch      // sorted by confidence descending
	Order         parser.DayMonthOrder // suggested day-month order
	Evidence      OrderEvidence        // numeric dates behind Order
	SampledLines  int                  // lines sampled
	ParsedLines   int                  // lines with a date or time under the best language
	AmbiguityNote string               // set when Order is a guess
}

// LanguageMatch scores one language against the sample.
type LanguageMatch struct {
	Language   string
	Confidence float64 // share of sampled lines the language's own parsers matched
	MatchCount int
	SampleLine string
	SampleText string // words the language recognized in SampleLine
}

// Detector analyzes samples to suggest a configuration.
type Detector struct {
	languages  []string
	sampleSize int
	reference  time.Time
	logger     *slog.Logger
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithLanguages restricts the candidate languages.
func WithLanguages(langs ...string) Option {
	return func(d *Detector) {
		if len(langs) > 0 {
			d.languages = langs
		}
	}
}

// WithReference sets the reference time for relative expressions.
func WithReference(t time.Time) Option {
	return func(d *Detector) {
		d.reference = t
	}
}

// WithLogger sets the logger for per-line debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a new Detector covering every built-in language.
func New(opts ...Option) *Detector {
	d := &Detector{
		languages:  vocab.Languages(),
		sampleSize: DefaultSampleSize,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.reference.IsZero() {
		d.reference = time.Now()
	}
	return d
}

// DetectFromFile analyzes the first lines of a file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines)
}

// DetectFromLines analyzes a slice of lines. Empty lines and lines starting
// with # are ignored.
func (d *Detector) DetectFromLines(lines []string) (*DetectionResult, error) {
	lines = slices.DeleteFunc(slices.Clone(lines), skipLine)
	if len(lines) > d.sampleSize {
		lines = lines[:d.sampleSize]
	}

	result := &DetectionResult{SampledLines: len(lines)}
	result.Evidence = collectEvidence(lines)
	result.Order, result.AmbiguityNote = result.Evidence.suggest()

	if len(lines) == 0 {
		return result, nil
	}

	for _, lang := range d.languages {
		match, err := d.score(lang, lines)
		if err != nil {
			return nil, err
		}
		if match.MatchCount > 0 {
			result.Matches = append(result.Matches, match)
		}
	}

	// Stable sort keeps the candidate order for equal confidence.
	slices.SortStableFunc(result.Matches, func(a, b LanguageMatch) int {
		return b.MatchCount - a.MatchCount
	})

	if best := result.BestMatch(); best != nil {
		parsed, err := d.countParsed(best.Language, result.Order, lines)
		if err != nil {
			return nil, err
		}
		result.ParsedLines = parsed
	}

	return result, nil
}

// score counts the lines recognized by the language's own parsers. Parsers
// every language shares are left out so that they cannot tip the balance.
func (d *Detector) score(lang string, lines []string) (LanguageMatch, error) {
	cfg, err := dateparse.ForLanguage(lang, parser.DayFirst,
		dateparse.WithoutParsers(dateparse.NeutralParserNames()...))
	if err != nil {
		return LanguageMatch{}, fmt.Errorf("building %s configuration: %w", lang, err)
	}

	match := LanguageMatch{Language: lang}
	for _, line := range lines {
		res := cfg.Parse(line, d.reference)
		if res.IsEmpty() {
			continue
		}
		if match.MatchCount == 0 {
			match.SampleLine = line
			match.SampleText = componentTexts(res)
		}
		match.MatchCount++
		d.logger.Debug("language matched", "language", lang, "line", line, "result", res.String())
	}
	match.Confidence = float64(match.MatchCount) / float64(len(lines))
	return match, nil
}

func (d *Detector) countParsed(lang string, order parser.DayMonthOrder, lines []string) (int, error) {
	cfg, err := dateparse.ForLanguage(lang, order)
	if err != nil {
		return 0, fmt.Errorf("building %s configuration: %w", lang, err)
	}

	n := 0
	for _, line := range lines {
		if cfg.Parse(line, d.reference).IsPresent() {
			n++
		}
	}
	return n, nil
}

func componentTexts(res *dateparse.Result) string {
	comps := res.Components()
	slices.SortFunc(comps, func(a, b *parser.ParsedComponent) int { return a.Start() - b.Start() })

	texts := make([]string, len(comps))
	for i, c := range comps {
		texts[i] = c.Text()
	}
	return strings.Join(texts, " ")
}

// sampleFile reads up to sampleSize usable lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() && len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line := scanner.Text(); !skipLine(line) {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *LanguageMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one language matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
