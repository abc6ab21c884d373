// Package config provides configuration loading and validation for datefind.
package config

import (
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
	"github.com/ccollicutt/datefind/pkg/vocab"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Language selects the built-in grammar ("en" or "ru").
	Language string `yaml:"language"`

	// DayMonthOrder resolves ambiguous numeric dates such as 10/12.
	// One of "day_month" or "month_day".
	DayMonthOrder string `yaml:"day_month_order"`

	// Timezone is an IANA zone name used for the reference time and for
	// resolving results. Defaults to the local zone.
	Timezone string `yaml:"timezone,omitempty"`

	// Reference fixes the reference time (RFC 3339). When empty the current
	// time is used.
	Reference string `yaml:"reference,omitempty"`

	// VocabularyFile is an optional YAML or TOML overlay for the language's
	// vocabulary. Relative paths are resolved against the config file.
	VocabularyFile string `yaml:"vocabulary_file,omitempty"`

	// DisabledParsers lists parser names to leave out (e.g. "en-unit-later").
	DisabledParsers []string `yaml:"disabled_parsers,omitempty"`

	// Sources are files or globs scanned when none are given on the command line.
	Sources []string `yaml:"sources,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`

	// Checks configures the timeline checks run by the scan command.
	Checks ChecksConfig `yaml:"checks,omitempty"`

	// Webhooks receive the scan report.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`

	// Populated during validation.
	order      parser.DayMonthOrder
	location   *time.Location
	reference  time.Time
	vocabulary *vocab.Vocabulary
}

// LoggingConfig holds logging defaults. Command-line flags take precedence.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Order returns the parsed day-month order.
func (c *Config) Order() parser.DayMonthOrder {
	return c.order
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Vocabulary returns the validated vocabulary, overlay included.
func (c *Config) Vocabulary() *vocab.Vocabulary {
	return c.vocabulary
}

// ReferenceTime returns the fixed reference when one is configured, and now
// in the configured zone otherwise.
func (c *Config) ReferenceTime(now time.Time) time.Time {
	if !c.reference.IsZero() {
		return c.reference
	}
	return now.In(c.Location())
}

// ChecksConfig enables timeline checks over scanned lines.
type ChecksConfig struct {
	// MaxGap reports consecutive dated lines further apart than this. Zero disables it.
	MaxGap time.Duration `yaml:"max_gap,omitempty"`

	// MinLines reports a scan with fewer dated lines. Zero disables it.
	MinLines int `yaml:"min_lines,omitempty"`

	// Order reports lines dated earlier than the line before them in the same file.
	Order bool `yaml:"order,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnIssues fires only when a check reports issues (default).
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	// WebhookTriggerAlways fires after every scan.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for scan reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_issues".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
