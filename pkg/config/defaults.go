package config

import (
	"os"
	"time"

	"github.com/ccollicutt/datefind/pkg/vocab"
)

// Default values for configuration.
const (
	DefaultLanguage       = vocab.LanguageEnglish
	DefaultDayMonthOrder  = "day_month"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvLanguage      = "DATEFIND_LANGUAGE"
	EnvDayMonthOrder = "DATEFIND_DAY_MONTH_ORDER"
	EnvTimezone      = "DATEFIND_TIMEZONE"
	EnvSources       = "DATEFIND_SOURCES"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Language:      DefaultLanguage,
		DayMonthOrder: DefaultDayMonthOrder,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if lang := os.Getenv(EnvLanguage); lang != "" {
		c.Language = lang
	}
	if order := os.Getenv(EnvDayMonthOrder); order != "" {
		c.DayMonthOrder = order
	}
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if sources := splitList(os.Getenv(EnvSources)); len(sources) > 0 {
		c.Sources = sources
	}
}
