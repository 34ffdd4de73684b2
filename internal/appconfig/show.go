package appconfig

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, cfg Config) {
	if cfg.ConfigPath == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigPath)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Results Dir:     %s\n", cfg.ResultsDir)
	fmt.Fprintf(out, "  Metrics:         %s\n", strings.Join(cfg.Metrics, ", "))
	fmt.Fprintf(out, "  Layout:          %s (%s)\n", cfg.Layout, cfg.ResolvedLayout())
	fmt.Fprintf(out, "  Plot Path:       %s\n", cfg.PlotPath())
	fmt.Fprintf(out, "  Title:           %s\n", cfg.Title)
	fmt.Fprintf(out, "  Strict Schema:   %v\n", cfg.StrictSchema)
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	if cfg.Dataset != "" {
		fmt.Fprintf(out, "  Dataset:         %s\n", cfg.Dataset)
	}
	if len(cfg.LogScaleMetrics) > 0 {
		fmt.Fprintf(out, "  Log Scale:       %s\n", strings.Join(cfg.LogScaleMetrics, ", "))
	}
	if len(cfg.Palette) > 0 {
		fmt.Fprintln(out, "  Palette:")
		for _, name := range slices.Sorted(maps.Keys(cfg.Palette)) {
			fmt.Fprintf(out, "    %s: %s\n", name, cfg.Palette[name])
		}
	}
	for _, cs := range cfg.ChartSpecs() {
		scale := "linear"
		if cs.LogScale {
			scale = "log"
		}
		fmt.Fprintf(out, "  Chart %-14s %q, y=%q, %s\n", cs.Metric+":", cs.Title, cs.YLabel, scale)
	}
}
