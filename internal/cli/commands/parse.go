package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/output"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Extract a date and time from each input",
		Long: `Extract a date and a time of day from each argument, or from each line of
standard input when no arguments are given.

Relative expressions ("tomorrow", "in 2 days", "next friday") resolve
against the reference time: --reference, the config file's reference, or now.

Exit codes:
  0 - Every input held a date or time
  1 - At least one input held neither
  2 - Configuration or runtime error

Example:
  datefind parse "deploy tomorrow at 9am"
  datefind parse --language ru "встреча завтра в 10:00"
  echo "paid 03/04/2024" | datefind parse --order month_day -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the components behind each result")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
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

	parsing, err := cfg.Build(logger)
	if err != nil {
		return fmt.Errorf("building parsers: %w", err)
	}

	inputs := args
	if len(inputs) == 0 {
		inputs, err = readInputs(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
	if len(inputs) == 0 {
		return errors.New("no input: pass text as arguments or on standard input")
	}

	started := time.Now()
	reference := cfg.ReferenceTime(started)
	results := make([]*dateparse.Result, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, parsing.Parse(input, reference))
	}

	report := output.NewParseReport(results, output.Metadata{
		ConfigFile: Globals.ConfigFile,
		Language:   cfg.Language,
		Reference:  reference,
		Duration:   time.Since(started),
	})
	logger.Debug("parsed inputs", "run", report.ID, "inputs", len(inputs), "unresolved", report.Summary.LinesSkipped)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasUnresolved() {
		ExitCode = ExitFindings
	}
	return nil
}

// readInputs returns the non-blank lines of r.
func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			inputs = append(inputs, line)
		}
	}
	return inputs, scanner.Err()
}
