// internal/results/document.go
package results

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DocumentKind tells which shape a result document was written in.
type DocumentKind int

const (
	// SingleRecord is a JSON object of metric name to value.
	SingleRecord DocumentKind = iota
	// RecordSequence is a JSON array whose first element is the record.
	RecordSequence
)

func (k DocumentKind) String() string {
	switch k {
	case SingleRecord:
		return "record"
	case RecordSequence:
		return "sequence"
	default:
		return fmt.Sprintf("DocumentKind(%d)", int(k))
	}
}

// Document is a parsed result file before normalization.
type Document struct {
	Kind     DocumentKind
	Record   map[string]any
	Sequence []any
}

// documentSchema only constrains the top-level shape. Element and metric
// checks happen during reduction so their errors can name the metric.
var documentSchema = gojsonschema.NewGoLoader(map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"oneOf": []any{
		map[string]any{"type": "object"},
		map[string]any{"type": "array"},
	},
})

// ParseDocument decodes raw JSON into a Document. Malformed JSON is reported
// as ErrParse, a well-formed value of the wrong shape as ErrRecord.
func ParseDocument(raw []byte) (Document, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := validateShape(decoded); err != nil {
		return Document{}, err
	}

	switch v := decoded.(type) {
	case map[string]any:
		return Document{Kind: SingleRecord, Record: v}, nil
	case []any:
		return Document{Kind: RecordSequence, Sequence: v}, nil
	default:
		return Document{}, fmt.Errorf("%w: unexpected document type %T", ErrRecord, decoded)
	}
}

func validateShape(decoded any) error {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewGoLoader(decoded))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrRecord, err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: document must be an object or an array of objects (%s)", ErrRecord, strings.Join(errs, ", "))
}

// Reduce resolves the document to a single mapping. For a sequence it
// returns element 0 and the number of ignored trailing elements.
func (d Document) Reduce() (map[string]any, int, error) {
	switch d.Kind {
	case SingleRecord:
		if d.Record == nil {
			return nil, 0, fmt.Errorf("%w: empty record", ErrRecord)
		}
		return d.Record, 0, nil
	case RecordSequence:
		if len(d.Sequence) == 0 {
			return nil, 0, fmt.Errorf("%w: empty sequence", ErrRecord)
		}
		first, ok := d.Sequence[0].(map[string]any)
		if !ok {
			return nil, 0, fmt.Errorf("%w: first element is %s, not an object", ErrRecord, describe(d.Sequence[0]))
		}
		return first, len(d.Sequence) - 1, nil
	default:
		return nil, 0, fmt.Errorf("%w: unknown document kind %s", ErrRecord, d.Kind)
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
