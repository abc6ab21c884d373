package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/internal/tui"
)

// NewInteractiveCommand creates the interactive command.
func NewInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Parse text as you type",
		Long: `Open a prompt that parses the input on every keystroke, highlights the
words that carry the date and time, and shows the resolved value.

Keys:
  enter   keep the result in the history and clear the prompt
  ctrl+u  clear the prompt
  esc     quit`,
		Args: cobra.NoArgs,
		RunE: runInteractive,
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, err := Globals.LoadConfig(commandContext(cmd))
	if err != nil {
		return err
	}

	parsing, err := cfg.Build(Globals.Logger(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("building parsers: %w", err)
	}

	clock := func() time.Time { return cfg.ReferenceTime(time.Now()) }
	return tui.Run(tui.New(parsing, clock, cfg.Language), cmd.InOrStdin(), cmd.OutOrStdout())
}
