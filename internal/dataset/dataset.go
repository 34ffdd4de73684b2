// internal/dataset/dataset.go
// Package dataset holds fixed benchmark comparisons: baselines measured on
// a shared set of buckets, such as GPU counts.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/plannerviz/internal/chart"
	"github.com/mwiater/plannerviz/internal/results"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is a constant comparison payload. Each baseline maps a metric to
// one value per bucket.
type Dataset struct {
	Title       string            `yaml:"title"`
	BucketLabel string            `yaml:"bucket_label"`
	Buckets     []string          `yaml:"buckets"`
	LegendTitle string            `yaml:"legend_title"`
	OutputPath  string            `yaml:"output_path"`
	DPI         int               `yaml:"dpi"`
	Charts      []chart.ChartSpec `yaml:"charts"`
	Baselines   []Baseline        `yaml:"baselines"`
}

// Baseline is one planner's measurements.
type Baseline struct {
	Name    string               `yaml:"name"`
	Metrics map[string][]float64 `yaml:"metrics"`
	// OOM marks a baseline that ran out of memory on some bucket.
	OOM bool `yaml:"oom"`
}

// Default returns the built-in planner comparison.
func Default() (Dataset, error) {
	return Parse(defaultDataset)
}

// Load reads a dataset from a YAML or JSON file.
func Load(fs afero.Fs, path string) (Dataset, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return Dataset{}, fmt.Errorf("unable to read dataset %s: %w", path, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a dataset. JSON input is accepted since it is
// valid YAML.
func Parse(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("unable to decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks the structure of the dataset. Per-value checks happen when
// the figure is rendered.
func (d Dataset) Validate() error {
	var errs []error
	if len(d.Buckets) == 0 {
		errs = append(errs, errors.New("dataset has no buckets"))
	}
	if len(d.Charts) == 0 {
		errs = append(errs, errors.New("dataset has no charts"))
	}
	if len(d.Baselines) == 0 {
		errs = append(errs, errors.New("dataset has no baselines"))
	}
	seen := make(map[string]struct{})
	for i, c := range d.Charts {
		if strings.TrimSpace(c.Metric) == "" {
			errs = append(errs, fmt.Errorf("chart %d has no metric", i))
		}
	}
	for i, b := range d.Baselines {
		if strings.TrimSpace(b.Name) == "" {
			errs = append(errs, fmt.Errorf("baseline %d has no name", i))
			continue
		}
		if _, dup := seen[b.Name]; dup {
			errs = append(errs, fmt.Errorf("baseline %q is listed twice", b.Name))
		}
		seen[b.Name] = struct{}{}
	}
	return errors.Join(errs...)
}

// Metrics returns the metric keys of the charts, in panel order.
func (d Dataset) Metrics() []string {
	out := make([]string, len(d.Charts))
	for i, c := range d.Charts {
		out[i] = c.Metric
	}
	return out
}

// Document turns a baseline into a result document, so datasets pass
// through the same normalizer as result files.
func (b Baseline) Document() results.Document {
	record := make(map[string]any, len(b.Metrics))
	for metric, values := range b.Metrics {
		seq := make([]any, len(values))
		for i, v := range values {
			seq[i] = v
		}
		record[metric] = seq
	}
	return results.Document{Kind: results.SingleRecord, Record: record}
}

// ResultSet normalizes every baseline in dataset order. Metric values are
// per-bucket lists, so the normalizer always accepts sequences.
func (d Dataset) ResultSet(n results.Normalizer) (*results.ResultSet, error) {
	if len(n.Metrics) == 0 {
		n.Metrics = d.Metrics()
	}
	n.Sequences = true
	set := results.NewResultSet()
	for _, b := range d.Baselines {
		rec, _, err := n.Normalize(b.Name, b.Document())
		if err != nil {
			return nil, fmt.Errorf("baseline %s: %w", b.Name, err)
		}
		set.Put(rec)
	}
	return set, nil
}

// LegendLabel returns the legend text for baseline name.
func (d Dataset) LegendLabel(name string) string {
	for _, b := range d.Baselines {
		if b.Name == name && b.OOM {
			return name + " (OOM)"
		}
	}
	return name
}
