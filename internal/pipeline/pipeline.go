// internal/pipeline/pipeline.go
// Package pipeline runs the load, normalize, render and write stages for
// result directories and benchmark datasets.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/mwiater/plannerviz/internal/appconfig"
	"github.com/mwiater/plannerviz/internal/chart"
	"github.com/mwiater/plannerviz/internal/dataset"
	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/mwiater/plannerviz/internal/output"
	"github.com/mwiater/plannerviz/internal/results"
	"github.com/spf13/afero"
	"gonum.org/v1/plot/vg"
)

const (
	// DefaultResultsDPI is the resolution of the results figure.
	DefaultResultsDPI = 100
	// DefaultBaselinesDPI is used when neither the config nor the dataset sets one.
	DefaultBaselinesDPI = 300
	// DefaultBaselinesFile names the dataset figure when the dataset has no output_path.
	DefaultBaselinesFile = "baselines_plot.png"

	defaultLegendTitle = "Baselines"
	modelsLegendTitle  = "Models"
)

// Runner executes pipelines against one configuration.
type Runner struct {
	Config   appconfig.Config
	Fs       afero.Fs
	Reporter *logging.Reporter
}

// New returns a Runner. A nil fs means the OS filesystem and a nil reporter
// prints to stdout.
func New(cfg appconfig.Config, fs afero.Fs, reporter *logging.Reporter) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if reporter == nil {
		reporter = logging.NewReporter(nil)
	}
	return &Runner{Config: cfg, Fs: fs, Reporter: reporter}
}

// Results loads the configured results directory and writes the comparison
// figure. It returns the written path, or "" when the run had nothing to
// plot; that case is reported and is not an error.
func (r *Runner) Results() (string, error) {
	cfg := r.Config
	loader := &results.Loader{
		Fs:         r.Fs,
		Normalizer: results.Normalizer{Metrics: cfg.Metrics, Strict: cfg.StrictSchema},
		Reporter:   r.Reporter,
		Extension:  results.DefaultExtension,
	}

	paths, err := loader.Discover(cfg.ResultsDir)
	if errors.Is(err, results.ErrNoDocuments) {
		r.Reporter.Error("No .json files found in %s", cfg.ResultsDir)
		return "", nil
	}
	if err != nil {
		return "", err
	}

	r.Reporter.Header("Processing Planner Results")
	set, err := loader.LoadPaths(paths)
	r.Reporter.Rule()
	if errors.Is(err, results.ErrNoRecords) {
		r.Reporter.Info("No valid model data was loaded. Exiting.")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	r.summarize(set, cfg.Metrics)

	fig, err := r.ResultsFigure(set)
	if err != nil {
		return "", err
	}
	return r.write(cfg.PlotPath(), fig)
}

// ResultsFigure renders set with the configured layout.
func (r *Runner) ResultsFigure(set *results.ResultSet) (*chart.Figure, error) {
	cfg := r.Config
	specs := cfg.ChartSpecs()
	records := set.Records()

	if cfg.ResolvedLayout() == appconfig.LayoutDual {
		if len(specs) != 2 {
			return nil, fmt.Errorf("dual-axis layout needs two metrics, got %d", len(specs))
		}
		pv, err := chart.MetricColumn(records, specs[0].Metric)
		if err != nil {
			return nil, err
		}
		sv, err := chart.MetricColumn(records, specs[1].Metric)
		if err != nil {
			return nil, err
		}
		fig := chart.NewDualAxisFigure(cfg.Title, set.Names(), specs[0], specs[1], pv, sv)
		fig.Width, fig.Height = figureSize(cfg, chart.DefaultDualWidth, chart.DefaultDualHeight)
		fig.DPI = firstPositive(cfg.DPI, DefaultResultsDPI)
		return fig.Render()
	}

	// Every model is one series in a single bucket named after the aggregate.
	buckets := []string{cfg.AggregateName}
	panels := make([]chart.Panel, 0, len(specs))
	for _, spec := range specs {
		series, err := chart.ScalarSeries(records, spec.Metric)
		if err != nil {
			return nil, err
		}
		panels = append(panels, chart.Panel{Chart: spec, Series: series})
	}
	palette, err := chart.NewPalette(len(records), cfg.Palette)
	if err != nil {
		return nil, err
	}
	fig := chart.PanelFigure{
		Title:       cfg.Title,
		Buckets:     buckets,
		Panels:      panels,
		LegendTitle: modelsLegendTitle,
		Palette:     palette,
		DPI:         firstPositive(cfg.DPI, DefaultResultsDPI),
	}
	fig.Width, fig.Height = figureSize(cfg, chart.DefaultPanelWidth, chart.DefaultPanelHeight)
	return fig.Render()
}

// Baselines renders ds as a multi-panel figure and writes it.
func (r *Runner) Baselines(ds dataset.Dataset) (string, error) {
	cfg := r.Config
	r.Reporter.Header("Processing Baselines")
	set, err := ds.ResultSet(results.Normalizer{Metrics: ds.Metrics(), Strict: cfg.StrictSchema})
	if err != nil {
		r.Reporter.Rule()
		return "", err
	}
	for _, rec := range set.Records() {
		r.Reporter.Loaded(rec.Name(), rec.String())
	}
	r.Reporter.Rule()
	if cfg.Debug {
		results.Dump(r.Reporter.Writer(), set)
	}

	fig, err := r.BaselinesFigure(ds, set)
	if err != nil {
		return "", err
	}
	name := ds.OutputPath
	if name == "" {
		name = DefaultBaselinesFile
	}
	return r.write(cfg.DatasetOutputPath(name), fig)
}

// BaselinesFigure renders one panel per dataset chart.
func (r *Runner) BaselinesFigure(ds dataset.Dataset, set *results.ResultSet) (*chart.Figure, error) {
	cfg := r.Config
	records := set.Records()
	panels := make([]chart.Panel, 0, len(ds.Charts))
	for _, spec := range ds.Charts {
		series, err := chart.SeriesFromRecords(records, spec.Metric, len(ds.Buckets))
		if err != nil {
			return nil, err
		}
		for i := range series {
			series[i].Label = ds.LegendLabel(series[i].Name)
		}
		panels = append(panels, chart.Panel{Chart: spec, Series: series})
	}

	palette, err := chart.NewPalette(len(records), cfg.Palette)
	if err != nil {
		return nil, err
	}
	legend := ds.LegendTitle
	if legend == "" {
		legend = defaultLegendTitle
	}
	fig := chart.PanelFigure{
		Title:       ds.Title,
		XLabel:      ds.BucketLabel,
		Buckets:     ds.Buckets,
		Panels:      panels,
		LegendTitle: legend,
		Palette:     palette,
		DPI:         firstPositive(cfg.DPI, ds.DPI, DefaultBaselinesDPI),
	}
	fig.Width, fig.Height = figureSize(cfg, chart.DefaultPanelWidth, chart.DefaultPanelHeight)
	return fig.Render()
}

func (r *Runner) summarize(set *results.ResultSet, metrics []string) {
	out := r.Reporter.Writer()
	fmt.Fprintln(out, results.SummaryTable(set, metrics))
	if r.Config.Debug {
		results.Dump(out, set)
	}
	logging.LogEvent("loaded %d record(s): %v", set.Len(), set.Names())
}

func (r *Runner) write(path string, fig *chart.Figure) (string, error) {
	w := &output.Writer{Fs: r.Fs}
	if err := w.Write(path, fig); err != nil {
		return "", err
	}
	r.Reporter.Info("Plot saved to %s", path)
	return path, nil
}

func figureSize(cfg appconfig.Config, w, h vg.Length) (vg.Length, vg.Length) {
	if cfg.Width > 0 {
		w = vg.Length(cfg.Width) * vg.Inch
	}
	if cfg.Height > 0 {
		h = vg.Length(cfg.Height) * vg.Inch
	}
	return w, h
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
