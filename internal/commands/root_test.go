// internal/commands/root_test.go
package plannerviz

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command in a scratch directory with a private log file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	viper.Reset()
	resetFlags(rootCmd)
	currentConfig = nil
	t.Cleanup(func() { _ = logging.Close() })

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "plannerviz.log")))
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Fatalf("%s is not a PNG: %v", path, err)
	}
}

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	_, err := run(t, "nonexistent")
	if err == nil {
		t.Fatal("expected an error for a nonexistent command, but got none")
	}
	expected := "unknown command \"nonexistent\" for \"plannerviz\""
	if !strings.Contains(err.Error(), expected) {
		t.Fatalf("expected error to contain %q, got %q", expected, err.Error())
	}
}

func TestPlotResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	writeFile(t, filepath.Join(dir, "A.json"), `{"throughput": 0.5}`)
	writeFile(t, filepath.Join(dir, "B.json"), `[{"throughput": 0.3, "cost_per_iteration": 2.0}]`)

	out, err := run(t, "plot", "results", dir, "--dpi", "20")
	if err != nil {
		t.Fatalf("plot results error: %v\n%s", err, out)
	}
	want := filepath.Join(dir, "all_models_comparison_plot.png")
	if !strings.Contains(out, "Plot saved to "+want) {
		t.Fatalf("missing save line:\n%s", out)
	}
	assertPNG(t, want)
}

func TestPlotResultsEmptyDirIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "plot", "results", "--results-dir", dir)
	if err != nil {
		t.Fatalf("empty run should exit cleanly: %v", err)
	}
	if !strings.Contains(out, "Error: No .json files found in "+dir) {
		t.Fatalf("missing diagnostic:\n%s", out)
	}
}

func TestPlotResultsRenderErrorFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.json"), `{"throughput": "fast"}`)
	_, err := run(t, "plot", "results", dir, "--dpi", "20")
	if err == nil || !strings.Contains(err.Error(), `series "A"`) {
		t.Fatalf("expected render error naming A, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "all_models_comparison_plot.png")); !os.IsNotExist(statErr) {
		t.Fatal("no image may be written")
	}
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := run(t, "plot", "results", "--layout", "grid")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "plannerviz.yaml")
	writeFile(t, cfgPath, "results_dir: from-file\naggregate_name: nightly\n")

	out, err := run(t, "show", "config", "--config", cfgPath, "--aggregate-name", "flagged")
	if err != nil {
		t.Fatalf("show config error: %v", err)
	}
	for _, want := range []string{
		"Config file: " + cfgPath,
		"  Results Dir:     from-file",
		"  Plot Path:       " + filepath.Join("from-file", "flagged_plot.png"),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	_, err := run(t, "show", "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestPlotBaselinesFromFile(t *testing.T) {
	dsPath := filepath.Join(t.TempDir(), "ds.yaml")
	writeFile(t, dsPath, `
title: Small
bucket_label: GPUs
buckets: ["8", "16"]
output_path: small.png
charts:
  - metric: throughput
    title: Throughput
baselines:
  - name: A
    metrics: {throughput: [1, 2]}
  - name: B
    oom: true
    metrics: {throughput: [2, 3]}
`)
	outDir := t.TempDir()
	out, err := run(t, "plot", "baselines", dsPath, "--output", outDir, "--dpi", "20")
	if err != nil {
		t.Fatalf("plot baselines error: %v\n%s", err, out)
	}
	assertPNG(t, filepath.Join(outDir, "small.png"))
}

func TestShowDataset(t *testing.T) {
	out, err := run(t, "show", "dataset")
	if err != nil {
		t.Fatalf("show dataset error: %v", err)
	}
	for _, want := range []string{"Sailor Planner vs Baselines", "Number of Available GPUs: 128, 320, 512", "SAILOR", "search_time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListCommands(t *testing.T) {
	out, err := run(t, "list", "commands")
	if err != nil {
		t.Fatalf("list commands error: %v", err)
	}
	for _, want := range []string{"plannerviz plot results", "plannerviz plot baselines", "plannerviz show dataset"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Fatalf("completion should be hidden:\n%s", out)
	}
}
