package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_ParseReport(t *testing.T) {
	report := NewParseReport(parseAll(t, "tomorrow at noon", "nothing"), Metadata{Language: "en", Reference: testRef})
	out := format(t, NewJSONFormatter(FormatOptions{}), report)

	var decoded struct {
		ID      string `json:"id"`
		Summary struct {
			LinesMatched int `json:"lines_matched"`
			LinesSkipped int `json:"lines_skipped"`
		} `json:"summary"`
		Lines []struct {
			LineNum int     `json:"line_num"`
			At      *string `json:"at"`
			Result  struct {
				Source string `json:"source"`
				Date   string `json:"date"`
				Time   string `json:"time"`
			} `json:"result"`
		} `json:"lines"`
		Checks   []any `json:"checks"`
		Metadata struct {
			Language string `json:"language"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if _, err := uuid.Parse(decoded.ID); err != nil {
		t.Errorf("id %q is not a UUID: %v", decoded.ID, err)
	}
	if decoded.Summary.LinesMatched != 1 || decoded.Summary.LinesSkipped != 1 {
		t.Errorf("summary = %+v", decoded.Summary)
	}
	if len(decoded.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(decoded.Lines))
	}
	first := decoded.Lines[0]
	if first.Result.Date != "2025-05-09" || first.Result.Time != "12:00:00" {
		t.Errorf("first result = %+v", first.Result)
	}
	if first.At == nil || *first.At != "2025-05-09T12:00:00Z" {
		t.Errorf("first at = %v", first.At)
	}
	if decoded.Lines[1].At != nil {
		t.Errorf("unresolved line should have no at, got %v", *decoded.Lines[1].At)
	}
	if decoded.Lines[1].Result.Source != "nothing" {
		t.Errorf("second source = %q", decoded.Lines[1].Result.Source)
	}
	if decoded.Checks == nil || len(decoded.Checks) != 0 {
		t.Errorf("checks = %v, want empty list", decoded.Checks)
	}
	if decoded.Metadata.Language != "en" {
		t.Errorf("language = %q", decoded.Metadata.Language)
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	report := NewParseReport(parseAll(t, "today"), Metadata{})
	out := format(t, NewJSONFormatter(FormatOptions{Quiet: true}), report)

	if strings.Contains(out, "lines\"") || !strings.Contains(out, `"lines_matched": 1`) {
		t.Errorf("quiet output should hold only the summary:\n%s", out)
	}
	if !strings.Contains(out, `"id": "`+report.ID+`"`) || !strings.Contains(out, `"kind": "parse"`) {
		t.Errorf("quiet output should keep the run ID and kind:\n%s", out)
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range Formats {
		f, err := NewFormatter(name, FormatOptions{})
		if err != nil || f.Name() != name {
			t.Errorf("NewFormatter(%q) = %v, %v", name, f, err)
		}
	}

	if _, err := NewFormatter("xml", FormatOptions{}); err == nil || !strings.Contains(err.Error(), "text or json") {
		t.Errorf("NewFormatter(xml) error = %v", err)
	}
}

func TestJSONFormatter_ScanReport(t *testing.T) {
	out := format(t, NewJSONFormatter(FormatOptions{}), createScanReport(t))

	for _, want := range []string{
		`"check_type": "gap"`,
		`"type": "gap_exceeded"`,
		`"source": "a.txt"`,
		`"total_issues": 1`,
		`"kind": "scan"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestReport_Flags(t *testing.T) {
	report := NewParseReport(parseAll(t, "today", "nothing"), Metadata{})
	if !report.HasUnresolved() {
		t.Error("HasUnresolved() = false, want true")
	}
	if report.HasIssues() {
		t.Error("HasIssues() = true, want false")
	}
	if report.Metadata.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}

	scanReport := createScanReport(t)
	if !scanReport.HasIssues() || scanReport.HasUnresolved() {
		t.Errorf("scan report flags: issues=%v unresolved=%v", scanReport.HasIssues(), scanReport.HasUnresolved())
	}
	if len(scanReport.Metadata.Sources) != 1 || scanReport.Metadata.Sources[0] != "a.txt" {
		t.Errorf("Sources = %v", scanReport.Metadata.Sources)
	}
}
