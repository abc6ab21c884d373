// Package cli provides the command-line interface for datefind.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/internal/cli/commands"
	"github.com/ccollicutt/datefind/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	commands.ExitCode = commands.ExitOK
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	candidate := pluginCandidate(rootCmd, args)
	if candidate != "" {
		if pluginPath, err := plugins.FindPlugin(candidate); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
	}

	if err := rootCmd.Execute(); err != nil {
		if candidate != "" {
			_, _ = fmt.Fprintln(stderr, plugins.FormatNotFoundError(candidate))
			return commands.ExitError
		}
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return commands.ExitError
	}
	return commands.ExitCode
}

// pluginCandidate returns the first argument when it is neither a flag nor a
// built-in command.
func pluginCandidate(rootCmd *cobra.Command, args []string) string {
	if len(args) == 0 {
		return ""
	}
	name := args[0]
	if name == "" || name[0] == '-' || isBuiltinCommand(rootCmd, name) {
		return ""
	}
	return name
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datefind",
		Short: "Find dates and times in natural-language text",
		Long: `datefind extracts dates and times from free text such as
"tomorrow at 9am", "через 2 часа" or "2024-06-01 14:30" and resolves them
against a reference time.

Commands:
  parse        Resolve the dates in text arguments or stdin lines
  scan         Extract dates from files and check them for gaps and ordering
  detect       Guess the language and day-month order of a file
  validate     Check a configuration file
  diagnose     Troubleshoot a configuration against its sources
  interactive  Try phrases as you type

PLUGINS:
  Plugins are standalone binaries named datefind-<command> that are
  discovered and invoked automatically.

  Plugin locations (searched in order):
    1. Same directory as the datefind binary
    2. ~/.datefind/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.Globals.LoadEnv()
		},
	}

	commands.Globals.AddFlags(rootCmd)

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())
	rootCmd.AddCommand(commands.NewInteractiveCommand())

	return rootCmd
}
