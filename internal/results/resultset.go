// internal/results/resultset.go
package results

// ResultSet is an ordered collection of records keyed by model name.
// Iteration follows first insertion; putting an existing name replaces that
// record in place.
type ResultSet struct {
	records []ModelRecord
	index   map[string]int
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[string]int)}
}

// Put stores rec and reports whether it replaced an earlier record.
func (s *ResultSet) Put(rec ModelRecord) bool {
	if i, ok := s.index[rec.Name()]; ok {
		s.records[i] = rec
		return true
	}
	s.index[rec.Name()] = len(s.records)
	s.records = append(s.records, rec)
	return false
}

// Get looks up a record by model name.
func (s *ResultSet) Get(name string) (ModelRecord, bool) {
	i, ok := s.index[name]
	if !ok {
		return ModelRecord{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *ResultSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Names returns the model names in iteration order.
func (s *ResultSet) Names() []string {
	names := make([]string, 0, s.Len())
	for _, rec := range s.Records() {
		names = append(names, rec.Name())
	}
	return names
}

// Records returns the records in iteration order.
func (s *ResultSet) Records() []ModelRecord {
	if s == nil {
		return nil
	}
	return append([]ModelRecord(nil), s.records...)
}
