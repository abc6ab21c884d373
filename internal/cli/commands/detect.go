package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Suggest a language and day-month order for a file",
		Long: `Sample lines from a file and suggest the settings that fit it best.

The language is chosen by how many sampled lines its own words and phrases
match ("tomorrow", "next friday", "завтра"). The day-month order comes from
numeric dates whose first or second number is above 12; dates such as 03/04
are ambiguous and only noted.

Optionally generates a starter config file with --write-config.

Example:
  datefind detect notes.txt
  datefind detect --sample 500 journal.md
  datefind detect -w datefind.yaml notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show every matching language, not just the best")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	file := args[0]
	ctx := commandContext(cmd)

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", file)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result, err := d.DetectFromFile(ctx, file)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	w := cmd.OutOrStdout()
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, file, opts.WriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote starter config to: %s\n\n", opts.WriteConfig)
	}

	if opts.Output == "json" {
		return outputDetectJSON(w, result, file, opts)
	}
	outputDetectText(w, result, file, opts)
	return nil
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, file string, opts *DetectOptions) {
	fmt.Fprintln(w, "=== Date Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with dates or times: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if best := result.BestMatch(); best != nil {
		fmt.Fprintf(w, "Detected language: %s\n", best.Language)
		fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
			best.Confidence*100, best.MatchCount, result.SampledLines)
		fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
		fmt.Fprintf(w, "Recognized: %s\n", best.SampleText)
	} else {
		fmt.Fprintln(w, "No language-specific expressions found.")
		fmt.Fprintf(w, "Tip: numeric dates and times work in every language; %s is used by default.\n", config.DefaultLanguage)
	}
	fmt.Fprintln(w)

	e := result.Evidence
	fmt.Fprintf(w, "Day-month order: %s\n", result.Order)
	fmt.Fprintf(w, "Numeric dates: %d day-first, %d month-first, %d ambiguous\n", e.DayFirst, e.MonthFirst, e.Ambiguous)
	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "language: %s\n", suggestedLanguage(result))
	fmt.Fprintf(w, "day_month_order: %s\n", result.Order)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Other languages detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Language, m.Confidence*100)
		}
		fmt.Fprintln(w)
	}
}

// JSONMatch represents a language match in JSON output.
type JSONMatch struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	SampleText string  `json:"sample_text"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	Order         string      `json:"day_month_order"`
	DayFirst      int         `json:"day_first_dates"`
	MonthFirst    int         `json:"month_first_dates"`
	Ambiguous     int         `json:"ambiguous_dates"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, file string, opts *DetectOptions) error {
	out := JSONOutput{
		File:          file,
		Matches:       make([]JSONMatch, 0),
		Order:         result.Order.String(),
		DayFirst:      result.Evidence.DayFirst,
		MonthFirst:    result.Evidence.MonthFirst,
		Ambiguous:     result.Evidence.Ambiguous,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Language:   m.Language,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			SampleText: m.SampleText,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func suggestedLanguage(result *detector.DetectionResult) string {
	if best := result.BestMatch(); best != nil {
		return best.Language
	}
	return config.DefaultLanguage
}

// writeStarterConfig writes a config file holding the detected settings.
func writeStarterConfig(result *detector.DetectionResult, file, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	content := generateStarterConfig(file, result)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(file string, result *detector.DetectionResult) string {
	absFile := file
	if abs, err := filepath.Abs(file); err == nil {
		absFile = abs
	}

	languageNote := "no language-specific matches, default language"
	if best := result.BestMatch(); best != nil {
		languageNote = fmt.Sprintf("%.0f%% of sampled lines", best.Confidence*100)
	}
	e := result.Evidence

	return fmt.Sprintf(`# datefind configuration
# Generated by: datefind detect
# Language: %s (%s)
# Numeric dates: %d day-first, %d month-first, %d ambiguous

language: %s
day_month_order: %s

# timezone: Europe/Berlin
# reference: "2024-01-15T09:00:00Z"
# vocabulary_file: extra-words.yaml

sources:
  - %s
  # Add more files or use globs:
  # - notes/*.md

# checks:
#   max_gap: 24h
#   min_lines: 10
#   order: true

# webhooks:
#   - name: alerts
#     url: https://example.com/hooks/datefind
#     token: ${DATEFIND_WEBHOOK_TOKEN}
#     trigger: on_issues
`, suggestedLanguage(result), languageNote,
		e.DayFirst, e.MonthFirst, e.Ambiguous,
		suggestedLanguage(result), result.Order,
		absFile)
}
