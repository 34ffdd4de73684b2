// internal/chart/spec.go
// Package chart renders grouped bar charts comparing models and baselines.
package chart

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mwiater/plannerviz/internal/util"
)

// maxLegendRunes keeps legend entries inside the reserved legend strip.
const maxLegendRunes = 28

// ChartSpec describes one panel: which metric it plots and how.
type ChartSpec struct {
	Metric   string `mapstructure:"metric" yaml:"metric" json:"metric"`
	Title    string `mapstructure:"title" yaml:"title" json:"title"`
	YLabel   string `mapstructure:"y_label" yaml:"y_label" json:"y_label"`
	LogScale bool   `mapstructure:"log_scale" yaml:"log_scale" json:"log_scale"`
}

// DefaultChartSpec derives a ChartSpec from a metric key, e.g.
// "cost_per_iteration" becomes "Cost per Iteration".
func DefaultChartSpec(metric string, logScale bool) ChartSpec {
	label := HumanizeMetric(metric)
	return ChartSpec{Metric: metric, Title: label, YLabel: label, LogScale: logScale}
}

// HumanizeMetric turns a snake_case metric key into a display label.
func HumanizeMetric(metric string) string {
	words := strings.FieldsFunc(metric, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		switch {
		case i > 0 && isSmallWord(w):
			words[i] = strings.ToLower(w)
		default:
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}

func isSmallWord(w string) bool {
	switch strings.ToLower(w) {
	case "per", "of", "and", "to", "in":
		return true
	}
	return false
}

// SeriesSpec is one baseline's values, one per bucket.
type SeriesSpec struct {
	Name   string
	Values []float64
	// Label replaces Name in the legend when set.
	Label string
}

func (s SeriesSpec) legendLabel() string {
	label := s.Name
	if s.Label != "" {
		label = s.Label
	}
	return util.TruncateRunes(label, maxLegendRunes)
}

// Panel pairs a ChartSpec with the series drawn in it.
type Panel struct {
	Chart  ChartSpec
	Series []SeriesSpec
}

// RenderError is a fatal problem with chart input. Series and Metric name
// the offending data when known.
type RenderError struct {
	Series string
	Metric string
	Reason string
}

func (e *RenderError) Error() string {
	var where []string
	if e.Series != "" {
		where = append(where, fmt.Sprintf("series %q", e.Series))
	}
	if e.Metric != "" {
		where = append(where, fmt.Sprintf("metric %q", e.Metric))
	}
	if len(where) == 0 {
		return "render: " + e.Reason
	}
	return fmt.Sprintf("render: %s: %s", strings.Join(where, ", "), e.Reason)
}
