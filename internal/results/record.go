// internal/results/record.go
package results

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ModelRecord holds the normalized metrics for one model or baseline. It is
// immutable once built; accessors return copies.
type ModelRecord struct {
	name    string
	metrics []string
	values  map[string]any
}

// NewModelRecord copies metrics and values into a new record.
func NewModelRecord(name string, metrics []string, values map[string]any) ModelRecord {
	rec := ModelRecord{
		name:    name,
		metrics: append([]string(nil), metrics...),
		values:  make(map[string]any, len(values)),
	}
	for k, v := range values {
		rec.values[k] = v
	}
	return rec
}

// Name returns the model identifier.
func (r ModelRecord) Name() string { return r.name }

// Metrics returns the metric names in configured order.
func (r ModelRecord) Metrics() []string { return append([]string(nil), r.metrics...) }

// Value returns the raw value stored for metric.
func (r ModelRecord) Value(metric string) (any, bool) {
	v, ok := r.values[metric]
	return v, ok
}

// Values returns a copy of the metric mapping.
func (r ModelRecord) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// String formats the record as "metric=value" pairs in metric order.
func (r ModelRecord) String() string {
	parts := make([]string, 0, len(r.metrics))
	for _, m := range r.metrics {
		parts = append(parts, fmt.Sprintf("%s=%s", m, FormatValue(r.values[m])))
	}
	return strings.Join(parts, ", ")
}

// AsFloat converts a decoded metric value to float64. Strings, booleans and
// nested values are not numbers and report false.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsFloats converts a list of numbers, one per bucket, to []float64. Any
// other value, including a list with a non-numeric element, reports false.
func AsFloats(v any) ([]float64, bool) {
	switch list := v.(type) {
	case []float64:
		return append([]float64(nil), list...), true
	case []any:
		out := make([]float64, len(list))
		for i, item := range list {
			f, ok := AsFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

// FormatValue renders a metric value for console output.
func FormatValue(v any) string {
	if f, ok := AsFloat(v); ok {
		if math.Trunc(f) == f && math.Abs(f) < 1e15 {
			return fmt.Sprintf("%.0f", f)
		}
		return fmt.Sprintf("%g", f)
	}
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
