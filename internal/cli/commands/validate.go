package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/scan"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a datefind configuration file without parsing anything.

Checks:
  - YAML syntax and unknown values
  - Language, day-month order, time zone and reference time
  - Vocabulary overlay file
  - Disabled parser names
  - Checks and webhooks
  - Source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	parsing, err := cfg.Build(nil)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Language:        %s\n", cfg.Language)
	fmt.Fprintf(w, "  Day-month order: %s\n", cfg.Order())
	fmt.Fprintf(w, "  Time zone:       %s\n", cfg.Location())
	fmt.Fprintf(w, "  Reference:       %s\n", describeReference(cfg))
	if cfg.VocabularyFile != "" {
		fmt.Fprintf(w, "  Vocabulary:      %s\n", cfg.VocabularyFile)
	}
	fmt.Fprintf(w, "  Parsers:         %d (%s)\n", len(parsing.ParserNames()), strings.Join(parsing.ParserNames(), ", "))
	if len(cfg.DisabledParsers) > 0 {
		fmt.Fprintf(w, "  Disabled:        %s\n", strings.Join(cfg.DisabledParsers, ", "))
	}
	fmt.Fprintf(w, "  Checks:          %s\n", describeChecks(cfg.Checks))
	fmt.Fprintf(w, "  Webhooks:        %d\n", len(cfg.Webhooks))

	if len(cfg.Sources) == 0 {
		return nil
	}

	files, err := scan.ExpandGlobs(cfg.Sources)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Error expanding source patterns: %v\n", err)
		return nil
	}

	missing := 0
	fmt.Fprintf(w, "\nSources: %d\n", len(files))
	for _, f := range files {
		if _, err := os.Stat(f); f != scan.Stdin && err != nil {
			fmt.Fprintf(w, "  - %s (not found)\n", f)
			missing++
			continue
		}
		fmt.Fprintf(w, "  - %s\n", f)
	}
	if missing > 0 {
		fmt.Fprintf(w, "\nWarning: %d source(s) match no files\n", missing)
	}

	return nil
}

func describeReference(cfg *config.Config) string {
	if cfg.Reference == "" {
		return "now"
	}
	return cfg.ReferenceTime(time.Time{}).Format(time.RFC3339)
}

func describeChecks(checks config.ChecksConfig) string {
	var parts []string
	if checks.MaxGap > 0 {
		parts = append(parts, fmt.Sprintf("max gap %s", checks.MaxGap))
	}
	if checks.MinLines > 0 {
		parts = append(parts, fmt.Sprintf("min %d lines", checks.MinLines))
	}
	if checks.Order {
		parts = append(parts, "order")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
