package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/datefind/pkg/parser"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
language: en
day_month_order: month_day
timezone: UTC
reference: "2025-05-08T12:00:00Z"
disabled_parsers:
  - en-unit-later
sources:
  - /var/log/*.log
logging:
  level: DEBUG
  format: json
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Order() != parser.MonthFirst {
		t.Errorf("Order() = %v, want %v", cfg.Order(), parser.MonthFirst)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
	want := time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC)
	if got := cfg.ReferenceTime(time.Now()); !got.Equal(want) {
		t.Errorf("ReferenceTime() = %v, want %v", got, want)
	}
	if len(cfg.Sources) != 1 {
		t.Errorf("Sources = %d, want 1", len(cfg.Sources))
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
	if cfg.Vocabulary() == nil {
		t.Error("Vocabulary() = nil after validation")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "{}\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", cfg.Language, DefaultLanguage)
	}
	if cfg.Order() != parser.DayFirst {
		t.Errorf("Order() = %v, want %v", cfg.Order(), parser.DayFirst)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := cfg.ReferenceTime(now); !got.Equal(now) {
		t.Errorf("ReferenceTime() = %v, want now", got)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_RelativeVocabularyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte("relative_days:\n  overmorrow: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("vocabulary_file: extra.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VocabularyFile != filepath.Join(dir, "extra.yaml") {
		t.Errorf("VocabularyFile = %q, want it resolved next to the config", cfg.VocabularyFile)
	}
	if cfg.Vocabulary().RelativeDays["overmorrow"] != 2 {
		t.Error("overlay entry missing from vocabulary")
	}
}

func TestLoad_VocabularyFileFromEnvVar(t *testing.T) {
	vocabPath := writeTempFile(t, "extra.toml", "[relative_days]\novermorrow = 2\n")
	t.Setenv("TEST_DATEFIND_VOCAB", vocabPath)

	path := writeTempFile(t, "config.yaml", "vocabulary_file: ${TEST_DATEFIND_VOCAB}\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VocabularyFile != vocabPath {
		t.Errorf("VocabularyFile = %q, want %q", cfg.VocabularyFile, vocabPath)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLanguage, "ru")
	t.Setenv(EnvDayMonthOrder, "mdy")
	t.Setenv(EnvTimezone, "Europe/Moscow")
	t.Setenv(EnvSources, "a.txt, ,b.txt")

	path := writeTempFile(t, "config.yaml", "language: en\nday_month_order: day_month\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Language != "ru" {
		t.Errorf("Language = %q, want ru", cfg.Language)
	}
	if cfg.Order() != parser.MonthFirst {
		t.Errorf("Order() = %v, want %v", cfg.Order(), parser.MonthFirst)
	}
	if cfg.Location().String() != "Europe/Moscow" {
		t.Errorf("Location() = %v, want Europe/Moscow", cfg.Location())
	}
	if strings.Join(cfg.Sources, "|") != "a.txt|b.txt" {
		t.Errorf("Sources = %v, want [a.txt b.txt]", cfg.Sources)
	}
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv(EnvLanguage, "xx")
	if _, err := FromEnvironment(); err == nil {
		t.Error("FromEnvironment() expected error for unknown language")
	}

	t.Setenv(EnvLanguage, "")
	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatalf("FromEnvironment() error = %v", err)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", cfg.Language, DefaultLanguage)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty language", func(c *Config) { c.Language = "" }, "language"},
		{"unknown language", func(c *Config) { c.Language = "fr" }, "language"},
		{"bad order", func(c *Config) { c.DayMonthOrder = "year_first" }, "day_month_order"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }, "timezone"},
		{"bad reference", func(c *Config) { c.Reference = "yesterday" }, "reference"},
		{"missing vocabulary file", func(c *Config) { c.VocabularyFile = "/nonexistent/vocab.yaml" }, "vocabulary_file"},
		{"empty disabled parser", func(c *Config) { c.DisabledParsers = []string{" "} }, "disabled_parsers[0]"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReferenceInTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Asia/Tokyo"
	cfg.Reference = "2025-05-08T00:00:00Z"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	ref := cfg.ReferenceTime(time.Now())
	if ref.Location().String() != "Asia/Tokyo" || ref.Hour() != 9 {
		t.Errorf("ReferenceTime() = %v, want 09:00 in Asia/Tokyo", ref)
	}
}

func TestBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledParsers = []string{"en-unit-later"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	pc, err := cfg.Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, name := range pc.ParserNames() {
		if name == "en-unit-later" {
			t.Error("disabled parser still present")
		}
	}

	res := pc.Parse("2 days later", time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC))
	if !res.IsEmpty() {
		t.Errorf("Parse() = %v, want empty with en-unit-later disabled", res)
	}
}

func TestBuild_UnknownDisabledParser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledParsers = []string{"no-such-parser"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := cfg.Build(nil); err == nil {
		t.Error("Build() expected error for unknown parser name")
	}
}

func TestBuild_NotValidated(t *testing.T) {
	if _, err := DefaultConfig().Build(nil); err == nil {
		t.Error("Build() expected error before validation")
	}
}

func TestLoad_ChecksAndWebhooks(t *testing.T) {
	t.Setenv("TEST_DATEFIND_TOKEN", "secret")
	content := `
checks:
  max_gap: 24h
  min_lines: 3
  order: true
webhooks:
  - name: ops
    url: https://hooks.example.com/datefind
    token: ${TEST_DATEFIND_TOKEN}
`
	cfg, err := Load(context.Background(), writeTempFile(t, "config.yaml", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Checks.MaxGap != 24*time.Hour || cfg.Checks.MinLines != 3 || !cfg.Checks.Order {
		t.Errorf("Checks = %+v", cfg.Checks)
	}

	wh := cfg.Webhooks[0]
	if wh.Token != "secret" {
		t.Errorf("Token = %q, want expanded value", wh.Token)
	}
	if wh.Trigger != WebhookTriggerOnIssues {
		t.Errorf("Trigger = %q, want %q", wh.Trigger, WebhookTriggerOnIssues)
	}
	if wh.Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", wh.Timeout, DefaultWebhookTimeout)
	}
}

func TestValidateWebhook(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"valid https", WebhookConfig{URL: "https://example.com/hook"}, false},
		{"valid http with trigger", WebhookConfig{URL: "http://localhost:8080/hook", Trigger: WebhookTriggerAlways}, false},
		{"missing url", WebhookConfig{}, true},
		{"bad scheme", WebhookConfig{URL: "ftp://example.com/hook"}, true},
		{"missing host", WebhookConfig{URL: "https:///hook"}, true},
		{"bad trigger", WebhookConfig{URL: "https://example.com/hook", Trigger: "sometimes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wh := tt.webhook
			err := ValidateWebhook(&wh)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWebhook() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NegativeChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Checks.MaxGap = -time.Hour
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for negative max_gap")
	}

	cfg = DefaultConfig()
	cfg.Checks.MinLines = -1
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for negative min_lines")
	}
}
