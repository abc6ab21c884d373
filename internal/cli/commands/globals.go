package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/datefind/pkg/config"
	"github.com/ccollicutt/datefind/pkg/output"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFindings = 1 // unresolved inputs for parse, check issues for scan
	ExitError    = 2
)

// ExitCode is set by commands to indicate the result
var ExitCode = ExitOK

// DefaultEnvFile is loaded when present and --env-file is not given.
const DefaultEnvFile = ".env"

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
	LogFormat  string
	Language   string
	Order      string
	Timezone   string
	Reference  string
	NoColor    bool
}

// Globals is bound to the root command's persistent flags.
var Globals = &GlobalOptions{}

// AddFlags registers the persistent flags on cmd.
func (g *GlobalOptions) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	flags.StringVar(&g.EnvFile, "env-file", "", "Load environment variables from this file (default .env when present)")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVar(&g.LogFormat, "log-format", "", "Log format (text|json)")
	flags.StringVarP(&g.Language, "language", "l", "", "Language (en|ru)")
	flags.StringVar(&g.Order, "order", "", "Day-month order for numeric dates (day_month|month_day)")
	flags.StringVar(&g.Timezone, "timezone", "", "IANA time zone for the reference time")
	flags.StringVar(&g.Reference, "reference", "", "Fixed reference time (RFC 3339)")
	flags.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
}

// LoadEnv loads the env file. A missing default file is not an error.
func (g *GlobalOptions) LoadEnv() error {
	if g.EnvFile != "" {
		if err := godotenv.Load(g.EnvFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
		return nil
	}

	err := godotenv.Load(DefaultEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
	}
	return nil
}

// LoadConfig loads the config file, or the defaults when none is given, and
// applies the flag overrides.
func (g *GlobalOptions) LoadConfig(ctx context.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.ConfigFile != "" {
		cfg, err = config.Load(ctx, g.ConfigFile)
	} else {
		cfg, err = config.FromEnvironment()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overridden := false
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{g.Language, &cfg.Language},
		{g.Order, &cfg.DayMonthOrder},
		{g.Timezone, &cfg.Timezone},
		{g.Reference, &cfg.Reference},
		{g.LogLevel, &cfg.Logging.Level},
		{g.LogFormat, &cfg.Logging.Format},
	} {
		if o.flag != "" {
			*o.dst = o.flag
			overridden = true
		}
	}

	if overridden {
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}

// Logger builds the logger for cfg writing to w.
func (g *GlobalOptions) Logger(cfg *config.Config, w io.Writer) *slog.Logger {
	return NewLogger(w, cfg.Logging.Level, cfg.Logging.Format)
}

// FormatOptions returns the formatter options for the given command flags.
func (g *GlobalOptions) FormatOptions(verbose, quiet bool) output.FormatOptions {
	return output.FormatOptions{Verbose: verbose, Quiet: quiet, NoColor: g.NoColor}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func createFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	return output.NewFormatter(format, opts)
}
