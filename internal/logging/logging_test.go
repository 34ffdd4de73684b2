package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "plannerviz.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	NewReporter(&bytes.Buffer{}).Skipped("bad.json", "Could not decode JSON.")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "skipped bad.json: Could not decode JSON.") {
		t.Fatalf("expected reporter mirror in log, got: %s", content)
	}
}

func TestInitDiscard(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected log output discarded, got: %s", buf.String())
	}
}

func TestReporterLines(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Header("Processing Planner Results")
	r.Loaded("Metis_OPT-350", "throughput=0.5, cost_per_iteration=0")
	r.Skipped("broken.json", "Could not decode JSON.")
	r.Warn("%d extra element(s)", 2)
	r.Error("No .json files found in %s", "/tmp/x")
	r.Rule()

	want := []string{
		"--- Processing Planner Results ---",
		"Loaded Metis_OPT-350: throughput=0.5, cost_per_iteration=0",
		"Warning: Skipping broken.json - Could not decode JSON.",
		"Warning: 2 extra element(s)",
		"Error: No .json files found in /tmp/x",
		"---------------------------------",
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestNewReporterDefaultsToStdout(t *testing.T) {
	if r := NewReporter(nil); r.Writer() != os.Stdout {
		t.Fatalf("expected stdout writer")
	}
}
