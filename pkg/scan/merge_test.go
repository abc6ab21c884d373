package scan

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestMergedSource_Next(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", `2024-01-15 10:00:00 alpha one
2024-01-15 10:00:02 alpha two
2024-01-15 10:00:04 alpha three
`)
	b := writeFile(t, dir, "b.txt", `2024-01-15 10:00:01 beta one
2024-01-15 10:00:03 beta two
`)

	cfg := newConfig(t)
	merged := NewMergedSource(
		NewFileSource([]string{a}, cfg, testRef),
		NewFileSource([]string{b}, cfg, testRef),
	)
	defer merged.Close()

	lines := drain(t, merged)
	if len(lines) != 5 {
		t.Fatalf("Got %d lines, want 5", len(lines))
	}

	for i := range 5 {
		want := time.Date(2024, 1, 15, 10, 0, i, 0, time.UTC)
		if !lines[i].At.Equal(want) {
			t.Errorf("line %d At = %v, want %v", i, lines[i].At, want)
		}
	}
}

func TestMergedSource_TiesKeepSourceOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "2024-01-15 from a\n")
	b := writeFile(t, dir, "b.txt", "2024-01-15 from b\n")

	cfg := newConfig(t)
	merged := NewMergedSource(
		NewFileSource([]string{b}, cfg, testRef),
		NewFileSource([]string{a}, cfg, testRef),
	)
	defer merged.Close()

	lines := drain(t, merged)
	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[0].Source != b || lines[1].Source != a {
		t.Errorf("order = %q, %q; want %q, %q", lines[0].Source, lines[1].Source, b, a)
	}
}

func TestMergedSource_EmptySources(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "")
	nodates := writeFile(t, dir, "nodates.txt", "nothing to see\n")

	cfg := newConfig(t)
	merged := NewMergedSource(
		NewFileSource([]string{empty}, cfg, testRef),
		NewFileSource([]string{nodates}, cfg, testRef),
	)
	defer merged.Close()

	if _, err := merged.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
	// Still exhausted on later calls.
	if _, err := merged.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("second Next() error = %v, want io.EOF", err)
	}
}

func TestMergedSource_PropagatesErrors(t *testing.T) {
	merged := NewMergedSource(NewFileSource([]string{"/nonexistent/file.txt"}, newConfig(t), testRef))
	defer merged.Close()

	_, err := merged.Next(context.Background())
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want open error", err)
	}
}

func TestMergedSource_Skipped(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "2024-01-15 dated\nplain\n")
	b := writeFile(t, dir, "b.txt", "plain\nplain\n")

	cfg := newConfig(t)
	merged := NewMergedSource(
		NewFileSource([]string{a}, cfg, testRef),
		NewFileSource([]string{b}, cfg, testRef),
	)
	defer merged.Close()

	if lines := drain(t, merged); len(lines) != 1 {
		t.Fatalf("Got %d lines, want 1", len(lines))
	}
	if merged.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", merged.Skipped())
	}
}
