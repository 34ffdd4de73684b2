// internal/chart/validate.go
package chart

import (
	"fmt"
	"math"

	"github.com/mwiater/plannerviz/internal/results"
)

// ValidatePanel checks that every series has exactly one finite value per
// bucket, names are unique, and log panels hold only positive values.
func ValidatePanel(p Panel, buckets int) error {
	metric := p.Chart.Metric
	if len(p.Series) == 0 {
		return &RenderError{Metric: metric, Reason: "no series to plot"}
	}
	if buckets <= 0 {
		return &RenderError{Metric: metric, Reason: "no buckets to plot"}
	}

	seen := make(map[string]struct{}, len(p.Series))
	for _, s := range p.Series {
		if _, dup := seen[s.Name]; dup {
			return &RenderError{Series: s.Name, Metric: metric, Reason: "duplicate series name"}
		}
		seen[s.Name] = struct{}{}

		if len(s.Values) != buckets {
			return &RenderError{
				Series: s.Name,
				Metric: metric,
				Reason: fmt.Sprintf("has %d values, expected one per bucket (%d)", len(s.Values), buckets),
			}
		}
		for g, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &RenderError{Series: s.Name, Metric: metric, Reason: fmt.Sprintf("bucket %d is not finite (%v)", g, v)}
			}
			if p.Chart.LogScale && v <= 0 {
				return &RenderError{Series: s.Name, Metric: metric, Reason: fmt.Sprintf("bucket %d is %v; log scale needs positive values", g, v)}
			}
		}
	}
	return nil
}

// SeriesFromRecords builds one series per record for metric, where each
// record carries a list of numbers with one entry per bucket. A scalar fills
// a single bucket. Non-numeric values fail with a RenderError naming the
// record.
func SeriesFromRecords(records []results.ModelRecord, metric string, buckets int) ([]SeriesSpec, error) {
	return collectSeries(records, metric, buckets, bucketValues)
}

// ScalarSeries builds one single-bucket series per record for metric. Every
// value must be a plain number; lists are rejected like strings.
func ScalarSeries(records []results.ModelRecord, metric string) ([]SeriesSpec, error) {
	return collectSeries(records, metric, 1, scalarValue)
}

// MetricColumn returns metric's scalar value for every record, in order.
func MetricColumn(records []results.ModelRecord, metric string) ([]float64, error) {
	series, err := ScalarSeries(records, metric)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(series))
	for i, s := range series {
		out[i] = s.Values[0]
	}
	return out, nil
}

func collectSeries(records []results.ModelRecord, metric string, buckets int, convert func(any) ([]float64, error)) ([]SeriesSpec, error) {
	out := make([]SeriesSpec, 0, len(records))
	for _, rec := range records {
		raw, ok := rec.Value(metric)
		if !ok {
			return nil, &RenderError{Series: rec.Name(), Metric: metric, Reason: "metric missing from record"}
		}
		values, err := convert(raw)
		if err != nil {
			return nil, &RenderError{Series: rec.Name(), Metric: metric, Reason: err.Error()}
		}
		if len(values) != buckets {
			return nil, &RenderError{
				Series: rec.Name(),
				Metric: metric,
				Reason: fmt.Sprintf("has %d values, expected one per bucket (%d)", len(values), buckets),
			}
		}
		out = append(out, SeriesSpec{Name: rec.Name(), Values: values})
	}
	return out, nil
}

func scalarValue(raw any) ([]float64, error) {
	f, ok := results.AsFloat(raw)
	if !ok {
		return nil, fmt.Errorf("value is not numeric: %s", results.FormatValue(raw))
	}
	return []float64{f}, nil
}

func bucketValues(raw any) ([]float64, error) {
	if values, ok := results.AsFloats(raw); ok {
		return values, nil
	}
	if list, ok := raw.([]any); ok {
		for i, item := range list {
			if _, ok := results.AsFloat(item); !ok {
				return nil, fmt.Errorf("bucket %d is not numeric: %s", i, results.FormatValue(item))
			}
		}
	}
	return scalarValue(raw)
}
