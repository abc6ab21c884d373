package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/datefind/pkg/dateparse"
	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}
var validLogFormats = []string{"text", "json"}

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.VocabularyFile = expandEnvVar(cfg.VocabularyFile)
	if cfg.VocabularyFile != "" && !filepath.IsAbs(cfg.VocabularyFile) {
		cfg.VocabularyFile = filepath.Join(filepath.Dir(path), cfg.VocabularyFile)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// FromEnvironment returns the defaults with environment overrides applied,
// validated. It is used when no config file is given.
func FromEnvironment() (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and resolves the day-month
// order, time zone, reference time and vocabulary.
func Validate(cfg *Config) error {
	if cfg.Language == "" {
		return errors.New("language: is required")
	}

	order, err := parser.ParseDayMonthOrder(cfg.DayMonthOrder)
	if err != nil {
		return fmt.Errorf("day_month_order: %w", err)
	}
	cfg.order = order

	if err := validateTime(cfg); err != nil {
		return err
	}

	v, err := vocab.Load(cfg.Language, cfg.VocabularyFile)
	if err != nil {
		if cfg.VocabularyFile != "" {
			return fmt.Errorf("vocabulary_file (%s): %w", cfg.VocabularyFile, err)
		}
		return fmt.Errorf("language: %w", err)
	}
	cfg.vocabulary = v

	for i, name := range cfg.DisabledParsers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("disabled_parsers[%d]: name is empty", i)
		}
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if cfg.Checks.MaxGap < 0 {
		return errors.New("checks.max_gap: must not be negative")
	}
	if cfg.Checks.MinLines < 0 {
		return errors.New("checks.min_lines: must not be negative")
	}

	for i := range cfg.Webhooks {
		if err := ValidateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateTime(cfg *Config) error {
	cfg.location = time.Local
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		cfg.location = loc
	}

	cfg.reference = time.Time{}
	if cfg.Reference != "" {
		ref, err := time.ParseInLocation(time.RFC3339, cfg.Reference, cfg.location)
		if err != nil {
			return fmt.Errorf("reference: invalid RFC 3339 time %q: %w", cfg.Reference, err)
		}
		cfg.reference = ref.In(cfg.location)
	}

	return nil
}

func validateLogging(l *LoggingConfig) error {
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	l.Level = strings.ToLower(l.Level)
	if !slices.Contains(validLogLevels, l.Level) {
		return fmt.Errorf("invalid level %q (must be one of %s)", l.Level, strings.Join(validLogLevels, ", "))
	}

	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	l.Format = strings.ToLower(l.Format)
	if !slices.Contains(validLogFormats, l.Format) {
		return fmt.Errorf("invalid format %q (must be text or json)", l.Format)
	}

	return nil
}

// ValidateWebhook checks a webhook and fills in its defaults.
func ValidateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerOnIssues
	case WebhookTriggerOnIssues, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_issues, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// Build returns the parsing configuration described by a validated config.
func (c *Config) Build(logger *slog.Logger) (*dateparse.Configuration, error) {
	if c.vocabulary == nil {
		return nil, errors.New("config has not been validated")
	}

	pc, err := dateparse.ForVocabulary(c.vocabulary, c.order,
		dateparse.WithLogger(logger),
		dateparse.WithoutParsers(c.DisabledParsers...),
	)
	if err != nil {
		return nil, fmt.Errorf("building parsers: %w", err)
	}
	return pc, nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
