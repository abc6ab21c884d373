package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/datefind/pkg/config"
)

func TestCheckConfigExists_NotFound(t *testing.T) {
	result := checkConfigExists("/nonexistent/config.yaml")

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "not found") {
		t.Errorf("Expected 'not found' in message, got: %s", result.Message)
	}
}

func TestCheckConfigExists_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	// Create empty file
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	result := checkConfigExists(configPath)

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "empty") {
		t.Errorf("Expected 'empty' in message, got: %s", result.Message)
	}
}

func TestCheckConfigExists_Directory(t *testing.T) {
	tmpDir := t.TempDir()

	result := checkConfigExists(tmpDir)

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "directory") {
		t.Errorf("Expected 'directory' in message, got: %s", result.Message)
	}
}

func TestCheckConfigExists_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("test: value"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	result := checkConfigExists(configPath)

	if result.Status != "ok" {
		t.Errorf("Expected ok status, got %s", result.Status)
	}
}

func TestCheckConfigParseable(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus string
		wantHint   string
	}{
		{"valid", "language: ru\nday_month_order: month_day\n", "ok", ""},
		{"yaml syntax", "language: [en\n", "error", "YAML syntax"},
		{"timezone", "language: en\ntimezone: Nowhere/Land\n", "error", "IANA"},
		{"reference", "language: en\nreference: tomorrow\n", "error", "RFC 3339"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "datefind.yaml", tt.content)

			cfg, result := checkConfigParseable(t.Context(), path)

			if result.Status != tt.wantStatus {
				t.Fatalf("status = %s (%s), want %s", result.Status, result.Message, tt.wantStatus)
			}
			if tt.wantStatus == "ok" {
				if cfg == nil || cfg.Language != "ru" {
					t.Errorf("cfg = %+v", cfg)
				}
				return
			}
			if len(result.Suggests) == 0 || !strings.Contains(result.Suggests[0], tt.wantHint) {
				t.Errorf("suggests = %v, want a hint containing %q", result.Suggests, tt.wantHint)
			}
		})
	}
}

func loadConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := writeFile(t, t.TempDir(), "datefind.yaml", content)
	cfg, err := config.Load(t.Context(), path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestCheckParsers(t *testing.T) {
	cfg := loadConfig(t, "language: en\ndisabled_parsers:\n  - en-unit-later\n")

	parsing, result := checkParsers(cfg, &DiagnoseOptions{Verbose: true})

	if result.Status != "ok" || parsing == nil {
		t.Fatalf("status = %s: %s", result.Status, result.Message)
	}
	for _, name := range result.Details {
		if name == "en-unit-later" {
			t.Error("disabled parser listed as enabled")
		}
	}
	if len(result.Details) != len(parsing.ParserNames()) {
		t.Errorf("details = %v", result.Details)
	}
}

func TestCheckSources(t *testing.T) {
	tmpDir := t.TempDir()
	file := writeFile(t, tmpDir, "a.log", "2024-01-01 start\n")
	empty := writeFile(t, tmpDir, "empty.log", "")

	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{"none", nil, []string{"warning"}},
		{"file", []string{file}, []string{"ok"}},
		{"stdin", []string{"-"}, []string{"ok"}},
		{"glob", []string{filepath.Join(tmpDir, "*.log")}, []string{"ok"}},
		{"empty file", []string{empty}, []string{"warning", "error"}},
		{"missing", []string{filepath.Join(tmpDir, "missing.log")}, []string{"error", "error"}},
		{"directory", []string{tmpDir}, []string{"error", "error"}},
		{"unmatched glob", []string{filepath.Join(tmpDir, "*.txt")}, []string{"warning", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := checkSources(&config.Config{Sources: tt.sources})

			if len(results) != len(tt.want) {
				t.Fatalf("got %d results (%+v), want %d", len(results), results, len(tt.want))
			}
			for i, r := range results {
				if r.Status != tt.want[i] {
					t.Errorf("results[%d] = %s (%s), want %s", i, r.Status, r.Message, tt.want[i])
				}
			}
		})
	}
}

func TestCheckParseRate(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantStatus  string
		wantMessage string
	}{
		{"all dated", "2024-01-01 09:00 start\n2024-01-01 09:05 ready\n", "ok", "2/2 sample lines"},
		{"few dated", "2024-01-01 start\nalpha\nbeta\ngamma\n", "warning", "Only 1/4"},
		{"none dated", "alpha\nbeta\n", "error", "No sample line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, t.TempDir(), "a.log", tt.content)
			cfg := loadConfig(t, "language: en\nreference: \"2024-01-01T00:00:00Z\"\nsources:\n  - "+file+"\n")
			parsing, _ := checkParsers(cfg, &DiagnoseOptions{})

			results := checkParseRate(t.Context(), cfg, parsing, &DiagnoseOptions{Verbose: true})

			if len(results) != 1 {
				t.Fatalf("got %d results", len(results))
			}
			if results[0].Status != tt.wantStatus || !strings.Contains(results[0].Message, tt.wantMessage) {
				t.Errorf("result = %s %q, want %s %q", results[0].Status, results[0].Message, tt.wantStatus, tt.wantMessage)
			}
		})
	}
}

func TestCheckParseRate_SuggestsDetectedLanguage(t *testing.T) {
	file := writeFile(t, t.TempDir(), "notes.txt", "созвон завтра\nобед завтра\n")
	cfg := loadConfig(t, "language: en\nsources:\n  - "+file+"\n")
	parsing, _ := checkParsers(cfg, &DiagnoseOptions{})

	results := checkParseRate(t.Context(), cfg, parsing, &DiagnoseOptions{})

	if len(results) != 1 || results[0].Status != "error" {
		t.Fatalf("results = %+v", results)
	}
	found := false
	for _, s := range results[0].Suggests {
		if strings.Contains(s, "Detected language: ru") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggests = %v, want the detected language", results[0].Suggests)
	}
}

func TestCheckChecks(t *testing.T) {
	tests := []struct {
		name       string
		checks     config.ChecksConfig
		verbose    bool
		wantCount  int
		wantStatus string
	}{
		{"none quiet", config.ChecksConfig{}, false, 0, ""},
		{"none verbose", config.ChecksConfig{}, true, 1, "ok"},
		{"gap", config.ChecksConfig{MaxGap: time.Hour}, false, 1, "ok"},
		{"min lines only", config.ChecksConfig{MinLines: 5}, false, 1, "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := checkChecks(&config.Config{Checks: tt.checks}, &DiagnoseOptions{Verbose: tt.verbose})

			if len(results) != tt.wantCount {
				t.Fatalf("got %d results, want %d", len(results), tt.wantCount)
			}
			if tt.wantCount > 0 && results[0].Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", results[0].Status, tt.wantStatus)
			}
		})
	}
}

func TestCheckWebhooks(t *testing.T) {
	cfg := &config.Config{Webhooks: []config.WebhookConfig{
		{Name: "alerts", URL: "https://example.com/a", Trigger: config.WebhookTriggerOnIssues},
		{URL: "https://example.com/b", Trigger: config.WebhookTriggerNever},
	}}

	results := checkWebhooks(cfg, &DiagnoseOptions{})

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Check != "Webhook: alerts" || results[0].Status != "ok" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Check != "Webhook: https://example.com/b" || results[1].Status != "warning" {
		t.Errorf("results[1] = %+v", results[1])
	}

	if got := checkWebhooks(&config.Config{}, &DiagnoseOptions{}); len(got) != 0 {
		t.Errorf("no webhooks should report nothing, got %+v", got)
	}
}

func TestCheckWebhookConnectivity(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	notAllowed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer notAllowed.Close()

	if r := checkWebhookConnectivity(config.WebhookConfig{URL: ok.URL, Token: "secret"}); r.Status != "ok" {
		t.Errorf("reachable endpoint: %+v", r)
	}
	if r := checkWebhookConnectivity(config.WebhookConfig{URL: notAllowed.URL}); r.Status != "warning" || !strings.Contains(r.Message, "405") {
		t.Errorf("405 endpoint: %+v", r)
	}
	if r := checkWebhookConnectivity(config.WebhookConfig{URL: "http://127.0.0.1:1"}); r.Status != "warning" {
		t.Errorf("unreachable endpoint: %+v", r)
	}
}

func TestRunDiagnose(t *testing.T) {
	tmpDir := t.TempDir()
	file := writeFile(t, tmpDir, "a.log", "2024-01-01 09:00 start\n2024-01-01 09:05 ready\n")
	good := writeFile(t, tmpDir, "good.yaml", "language: en\nsources:\n  - "+file+"\nchecks:\n  max_gap: 1h\n")
	bad := writeFile(t, tmpDir, "bad.yaml", "language: en\nday_month_order: sideways\n")

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"good", good, []string{"[PASS] Parsers", "[PASS] Parse Test: a.log", "[PASS] Checks", "Configuration looks good!"}},
		{"bad", bad, []string{"[FAIL] Config Syntax", "Summary: 1 passed, 0 warnings, 1 errors", "Fix the errors above"}},
		{"missing", filepath.Join(tmpDir, "missing.yaml"), []string{"[FAIL] Config File", "datefind detect"}},
		{"no sources", writeFile(t, tmpDir, "bare.yaml", "language: en\n"), []string{"[WARN] Sources", "usable but has warnings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := runDiagnose(t.Context(), &buf, tt.path, &DiagnoseOptions{}); err != nil {
				t.Fatalf("runDiagnose: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestHeadLines(t *testing.T) {
	file := writeFile(t, t.TempDir(), "a.log", "one\n\n  \ntwo\nthree\nfour\n")

	lines, err := headLines(file, 3)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(lines, ",") != "one,two,three" {
		t.Errorf("lines = %v", lines)
	}

	if _, err := headLines(filepath.Join(t.TempDir(), "missing"), 3); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
