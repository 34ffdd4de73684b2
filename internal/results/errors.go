// internal/results/errors.go
package results

import "errors"

var (
	// ErrNoDocuments reports that discovery found no candidate result files.
	ErrNoDocuments = errors.New("no result documents found")
	// ErrNoRecords reports that every discovered document was skipped.
	ErrNoRecords = errors.New("no valid model data was loaded")
	// ErrParse marks a document whose content is not well-formed JSON.
	ErrParse = errors.New("could not decode JSON")
	// ErrRecord marks a well-formed document that does not yield a record.
	ErrRecord = errors.New("invalid result record")
)

// IsEmptyRun reports whether err means the run had nothing to plot. Such runs
// stop cleanly without producing an image.
func IsEmptyRun(err error) bool {
	return errors.Is(err, ErrNoDocuments) || errors.Is(err, ErrNoRecords)
}
