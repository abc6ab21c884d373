package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/analyzer"
	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/output"
	"github.com/ccollicutt/datefind/pkg/scan"
	"github.com/ccollicutt/datefind/pkg/webhook"
)

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	Output    string
	TimeRange string
	Verbose   bool
	Quiet     bool

	// Check overrides
	MaxGap     time.Duration
	MinLines   int
	CheckOrder bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [file|glob|-]...",
		Short: "Find dated lines in text files",
		Long: `Parse every line of the given files and report the lines that hold a date
or time. Lines with neither are skipped and counted. Several files are merged
in resolved date-time order. "-" reads standard input. Without arguments the
config file's sources are scanned.

Optional timeline checks run over the dated lines:
  --max-gap      consecutive dated lines further apart than this
  --min-lines    fewer dated lines than this
  --check-order  lines dated earlier than the line before them in the same file

Exit codes:
  0 - No check reported an issue
  1 - A check reported issues
  2 - Configuration or runtime error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.TimeRange, "time-range", "", "Limit to lines dated within this window before the reference (e.g., 2h, 24h)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show components, resolved times and issue context")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().DurationVar(&opts.MaxGap, "max-gap", 0, "Report gaps between dated lines longer than this")
	cmd.Flags().IntVar(&opts.MinLines, "min-lines", 0, "Report scans with fewer dated lines")
	cmd.Flags().BoolVar(&opts.CheckOrder, "check-order", false, "Report lines dated before the previous line of the same file")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnIssues), "When to fire webhook (on_issues|always|never)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := commandContext(cmd)

	formatter, err := createFormatter(opts.Output, Globals.FormatOptions(opts.Verbose, opts.Quiet))
	if err != nil {
		return err
	}

	cfg, err := Globals.LoadConfig(ctx)
	if err != nil {
		return err
	}
	logger := Globals.Logger(cfg, cmd.ErrOrStderr())

	webhooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	parsing, err := cfg.Build(logger)
	if err != nil {
		return fmt.Errorf("building parsers: %w", err)
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}
	if len(patterns) == 0 {
		return errors.New("no sources: pass files on the command line or set sources in the config")
	}

	files, err := scan.ExpandGlobs(patterns)
	if err != nil {
		return fmt.Errorf("expanding sources: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched patterns: %v", patterns)
	}

	reference := cfg.ReferenceTime(time.Now())

	analyzerOpts := []analyzer.AnalyzerOption{analyzer.WithLines(!opts.Quiet)}
	if opts.TimeRange != "" {
		duration, err := time.ParseDuration(opts.TimeRange)
		if err != nil {
			return fmt.Errorf("invalid time-range %q: %w", opts.TimeRange, err)
		}
		analyzerOpts = append(analyzerOpts, analyzer.WithTimeRange(reference.Add(-duration), reference))
	}

	checks, err := analyzer.ChecksFromConfig(mergeChecks(cfg.Checks, opts))
	if err != nil {
		return fmt.Errorf("configuring checks: %w", err)
	}
	a := analyzer.NewAnalyzer(checks, analyzerOpts...)

	source := openSources(cmd, files, parsing, reference)
	defer source.Close()

	result, err := a.Analyze(ctx, source)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report := output.NewReport(result, output.Metadata{
		ConfigFile: Globals.ConfigFile,
		Language:   cfg.Language,
		Reference:  reference,
	})
	logger.Debug("scan finished", "run", report.ID, "files", len(files),
		"matched", report.Summary.LinesMatched, "skipped", report.Summary.LinesSkipped)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are reported but never fail the scan.
	sendWebhooks(ctx, cmd, webhook.NewClient(webhook.WithLogger(logger)), webhooks, report)

	if report.HasIssues() {
		ExitCode = ExitFindings
	}
	return nil
}

// openSources reads a single file directly and merges several by date-time.
func openSources(cmd *cobra.Command, files []string, parsing *dateparse.Configuration, reference time.Time) scan.Source {
	newSource := func(files []string) *scan.FileSource {
		s := scan.NewFileSource(files, parsing, reference)
		s.SetStdin(cmd.InOrStdin())
		return s
	}

	if len(files) == 1 {
		return newSource(files)
	}

	sources := make([]scan.Source, len(files))
	for i, file := range files {
		sources[i] = newSource([]string{file})
	}
	return scan.NewMergedSource(sources...)
}

// mergeChecks lays the check flags over the configured checks.
func mergeChecks(checks config.ChecksConfig, opts *ScanOptions) config.ChecksConfig {
	if opts.MaxGap > 0 {
		checks.MaxGap = opts.MaxGap
	}
	if opts.MinLines > 0 {
		checks.MinLines = opts.MinLines
	}
	if opts.CheckOrder {
		checks.Order = true
	}
	return checks
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ScanOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		wh := config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		}
		if err := config.ValidateWebhook(&wh); err != nil {
			return nil, fmt.Errorf("webhook flags: %w", err)
		}
		webhooks = append(webhooks, wh)
	}

	return webhooks, nil
}

func sendWebhooks(ctx context.Context, cmd *cobra.Command, client *webhook.Client, hooks []config.WebhookConfig, report *output.Report) {
	for _, resp := range client.Dispatch(ctx, hooks, report) {
		if resp.Success() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: sent (%d, %s)\n", resp.Name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: failed (%v)\n", resp.Name, resp.Error)
		}
	}
}
