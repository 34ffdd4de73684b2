package results

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestParseDocumentShapes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    DocumentKind
		wantErr error
	}{
		{name: "object", raw: `{"throughput": 0.5}`, kind: SingleRecord},
		{name: "array", raw: `[{"throughput": 0.3}]`, kind: RecordSequence},
		{name: "empty array", raw: `[]`, kind: RecordSequence},
		{name: "malformed", raw: `{"throughput": `, wantErr: ErrParse},
		{name: "plain text", raw: `not json at all`, wantErr: ErrParse},
		{name: "number", raw: `42`, wantErr: ErrRecord},
		{name: "null", raw: `null`, wantErr: ErrRecord},
		{name: "string", raw: `"throughput"`, wantErr: ErrRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocument error: %v", err)
			}
			if doc.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s", tt.kind, doc.Kind)
			}
		})
	}
}

func TestNormalizeCompleteDocumentIsIdentity(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"throughput": 0.3, "cost_per_iteration": 1.2}`))
	if err != nil {
		t.Fatalf("ParseDocument error: %v", err)
	}
	rec, warnings, err := Normalizer{}.Normalize("B", doc)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	want := map[string]any{"throughput": 0.3, "cost_per_iteration": 1.2}
	if diff := cmp.Diff(want, rec.Values()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeMissingKeysDefaultToZero(t *testing.T) {
	doc, _ := ParseDocument([]byte(`{"throughput": 0.5, "unrelated": "x"}`))
	rec, _, err := Normalizer{}.Normalize("A", doc)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := map[string]any{"throughput": 0.5, "cost_per_iteration": float64(0)}
	if diff := cmp.Diff(want, rec.Values()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if _, ok := rec.Value("unrelated"); ok {
		t.Fatal("unknown keys must be ignored")
	}
}

func TestNormalizeSequenceUsesFirstElement(t *testing.T) {
	for _, raw := range []string{
		`[{"throughput": 1}]`,
		`[{"throughput": 1}, {"throughput": 2}]`,
		`[{"throughput": 1}, {"throughput": 2}, 3, "x"]`,
	} {
		doc, err := ParseDocument([]byte(raw))
		if err != nil {
			t.Fatalf("ParseDocument(%s) error: %v", raw, err)
		}
		rec, warnings, err := Normalizer{Metrics: []string{"throughput"}}.Normalize("m", doc)
		if err != nil {
			t.Fatalf("Normalize(%s) error: %v", raw, err)
		}
		if v, _ := rec.Value("throughput"); v != float64(1) {
			t.Fatalf("%s: expected throughput 1, got %v", raw, v)
		}
		extra := len(doc.Sequence) - 1
		if (extra > 0) != (len(warnings) == 1) {
			t.Fatalf("%s: expected a warning only for extra elements, got %v", raw, warnings)
		}
	}
}

func TestNormalizeRejectsUnusableSequences(t *testing.T) {
	for _, raw := range []string{`[]`, `[3]`, `[[{"throughput": 1}]]`, `[null]`} {
		doc, err := ParseDocument([]byte(raw))
		if err != nil {
			t.Fatalf("ParseDocument(%s) error: %v", raw, err)
		}
		if _, _, err := (Normalizer{}).Normalize("m", doc); !errors.Is(err, ErrRecord) {
			t.Fatalf("%s: expected ErrRecord, got %v", raw, err)
		}
	}
}

func TestNormalizePassesNonNumericThrough(t *testing.T) {
	doc, _ := ParseDocument([]byte(`{"throughput": "fast"}`))
	rec, _, err := Normalizer{}.Normalize("m", doc)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if v, _ := rec.Value("throughput"); v != "fast" {
		t.Fatalf("expected pass-through string, got %v", v)
	}

	_, _, err = Normalizer{Strict: true}.Normalize("m", doc)
	if !errors.Is(err, ErrRecord) || !strings.Contains(err.Error(), `"throughput"`) {
		t.Fatalf("expected strict ErrRecord naming the metric, got %v", err)
	}
}

func TestNormalizeStrictSequences(t *testing.T) {
	doc, _ := ParseDocument([]byte(`{"throughput": [0.1, 0.2], "cost_per_iteration": [1, "x"]}`))

	_, _, err := Normalizer{Metrics: []string{"throughput"}, Strict: true}.Normalize("m", doc)
	if !errors.Is(err, ErrRecord) || !strings.Contains(err.Error(), "is an array, not a number") {
		t.Fatalf("strict mode must reject lists by default, got %v", err)
	}

	rec, _, err := Normalizer{Metrics: []string{"throughput"}, Strict: true, Sequences: true}.Normalize("m", doc)
	if err != nil {
		t.Fatalf("lists of numbers should pass with Sequences: %v", err)
	}
	if v, _ := rec.Value("throughput"); !cmp.Equal(v, []any{0.1, 0.2}) {
		t.Fatalf("expected list passed through unchanged, got %v", v)
	}

	_, _, err = Normalizer{Metrics: []string{"cost_per_iteration"}, Strict: true, Sequences: true}.Normalize("m", doc)
	if !errors.Is(err, ErrRecord) || !strings.Contains(err.Error(), "not a number or a list of numbers") {
		t.Fatalf("list with a string must be rejected, got %v", err)
	}
}

func TestAsFloats(t *testing.T) {
	if got, ok := AsFloats([]any{1.0, 2}); !ok || !cmp.Equal(got, []float64{1, 2}) {
		t.Fatalf("expected [1 2], got %v %v", got, ok)
	}
	for _, v := range []any{0.5, "x", []any{1.0, nil}, map[string]any{}} {
		if _, ok := AsFloats(v); ok {
			t.Fatalf("AsFloats(%v) should report false", v)
		}
	}
}

func TestResultSetOrderAndOverwrite(t *testing.T) {
	set := NewResultSet()
	set.Put(NewModelRecord("a", []string{"x"}, map[string]any{"x": 1.0}))
	set.Put(NewModelRecord("b", []string{"x"}, map[string]any{"x": 2.0}))
	if replaced := set.Put(NewModelRecord("a", []string{"x"}, map[string]any{"x": 3.0})); !replaced {
		t.Fatal("expected duplicate name to replace")
	}

	if diff := cmp.Diff([]string{"a", "b"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	rec, ok := set.Get("a")
	if !ok {
		t.Fatal("expected record a")
	}
	if v, _ := rec.Value("x"); v != 3.0 {
		t.Fatalf("expected overwritten value 3, got %v", v)
	}
}

func TestModelRecordIsImmutable(t *testing.T) {
	values := map[string]any{"x": 1.0}
	rec := NewModelRecord("m", []string{"x"}, values)
	values["x"] = 9.0
	got := rec.Values()
	got["x"] = 7.0
	if v, _ := rec.Value("x"); v != 1.0 {
		t.Fatalf("record changed through an alias: %v", v)
	}
}

func TestAsFloat(t *testing.T) {
	if f, ok := AsFloat(2); !ok || f != 2 {
		t.Fatalf("int: %v %v", f, ok)
	}
	if _, ok := AsFloat("2"); ok {
		t.Fatal("strings are not numeric")
	}
	if _, ok := AsFloat(true); ok {
		t.Fatal("booleans are not numeric")
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[string]any{
		"0":      float64(0),
		"0.5":    0.5,
		"1.2":    1.2,
		`"fast"`: "fast",
		"null":   nil,
		"[1,2]":  []any{1, 2},
	}
	for want, v := range cases {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%v): expected %s, got %s", v, want, got)
		}
	}
}

func TestModelNameFromFilename(t *testing.T) {
	if got := ModelNameFromFilename("/path/Metis_OPT-350.json"); got != "Metis_OPT-350" {
		t.Fatalf("expected Metis_OPT-350, got %q", got)
	}
	if got := ModelNameFromFilename("noext"); got != "noext" {
		t.Fatalf("expected noext, got %q", got)
	}
	if got := ModelNameFromFilename("a.b.json"); got != "a.b" {
		t.Fatalf("expected a.b, got %q", got)
	}
}

func TestSummaryTable(t *testing.T) {
	set := NewResultSet()
	set.Put(NewModelRecord("A", DefaultMetrics, map[string]any{"throughput": 0.5, "cost_per_iteration": float64(0)}))
	out := SummaryTable(set, DefaultMetrics)
	for _, want := range []string{"model", "throughput", "cost_per_iteration", "A", "0.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestDump(t *testing.T) {
	set := NewResultSet()
	set.Put(NewModelRecord("A", []string{"x"}, map[string]any{"x": 1.0}))
	var sb strings.Builder
	Dump(&sb, set)
	if !strings.Contains(sb.String(), "A") {
		t.Fatalf("expected record name in dump, got %s", sb.String())
	}
}
