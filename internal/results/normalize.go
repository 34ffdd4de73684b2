// internal/results/normalize.go
package results

import (
	"fmt"
)

// DefaultMetrics are the keys planner result files carry.
var DefaultMetrics = []string{"throughput", "cost_per_iteration"}

// Normalizer extracts a fixed, ordered set of metrics from documents.
type Normalizer struct {
	Metrics []string
	// Strict rejects documents whose metric values are present but not numeric.
	Strict bool
	// Sequences lets Strict accept a list of numbers, one per bucket, in
	// place of a single number.
	Sequences bool
}

// Normalize reduces doc to a ModelRecord named name. Absent metrics default
// to 0; other values pass through unchanged unless Strict is set. Warnings
// describe recoverable oddities such as ignored sequence elements.
func (n Normalizer) Normalize(name string, doc Document) (ModelRecord, []string, error) {
	mapping, extra, err := doc.Reduce()
	if err != nil {
		return ModelRecord{}, nil, err
	}

	var warnings []string
	if extra > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %d extra element(s) after the first were ignored", name, extra))
	}

	metrics := n.metrics()
	values := make(map[string]any, len(metrics))
	for _, metric := range metrics {
		v, ok := mapping[metric]
		if !ok {
			values[metric] = float64(0)
			continue
		}
		if n.Strict && !n.numeric(v) {
			want := "a number"
			if n.Sequences {
				want = "a number or a list of numbers"
			}
			return ModelRecord{}, warnings, fmt.Errorf("%w: metric %q is %s, not %s", ErrRecord, metric, describe(v), want)
		}
		values[metric] = v
	}

	return NewModelRecord(name, metrics, values), warnings, nil
}

func (n Normalizer) numeric(v any) bool {
	if _, ok := AsFloat(v); ok {
		return true
	}
	if n.Sequences {
		_, ok := AsFloats(v)
		return ok
	}
	return false
}

func (n Normalizer) metrics() []string {
	if len(n.Metrics) == 0 {
		return DefaultMetrics
	}
	return n.Metrics
}
