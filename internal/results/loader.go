// internal/results/loader.go
package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/plannerviz/internal/logging"
	"github.com/spf13/afero"
)

// DefaultExtension is the file extension of result documents.
const DefaultExtension = ".json"

// Loader discovers result documents in a directory and normalizes them into
// a ResultSet.
type Loader struct {
	Fs         afero.Fs
	Normalizer Normalizer
	Reporter   *logging.Reporter
	Extension  string
}

// NewLoader returns a Loader reading from the OS filesystem.
func NewLoader(normalizer Normalizer, reporter *logging.Reporter) *Loader {
	return &Loader{
		Fs:         afero.NewOsFs(),
		Normalizer: normalizer,
		Reporter:   reporter,
		Extension:  DefaultExtension,
	}
}

// Discover lists result documents in dir in lexical order. A missing
// directory yields ErrNoDocuments, like an empty one.
func (l *Loader) Discover(dir string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs(), dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no %s files found in %s", ErrNoDocuments, l.ext(), dir)
		}
		return nil, fmt.Errorf("unable to read results dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), l.ext()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no %s files found in %s", ErrNoDocuments, l.ext(), dir)
	}
	return paths, nil
}

// LoadDir loads every document in dir. Per-file failures are reported and
// skipped; the returned error is non-nil only when discovery fails or no
// record survives.
func (l *Loader) LoadDir(dir string) (*ResultSet, error) {
	paths, err := l.Discover(dir)
	if err != nil {
		return nil, err
	}
	return l.LoadPaths(paths)
}

// LoadPaths loads the given documents in order. A later record with the same
// name replaces the earlier one in its original position.
func (l *Loader) LoadPaths(paths []string) (*ResultSet, error) {
	set := NewResultSet()
	for _, path := range paths {
		rec, err := l.LoadFile(path)
		if err != nil {
			l.skip(path, err)
			continue
		}
		if set.Put(rec) {
			l.report().Warn("%s replaced an earlier record with the same name", rec.Name())
		}
		l.report().Loaded(rec.Name(), rec.String())
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("%w from %d file(s)", ErrNoRecords, len(paths))
	}
	return set, nil
}

// LoadFile reads, parses and normalizes a single document. The model name is
// the file name without directory and extension.
func (l *Loader) LoadFile(path string) (ModelRecord, error) {
	raw, err := afero.ReadFile(l.fs(), path)
	if err != nil {
		return ModelRecord{}, fmt.Errorf("%w: %v", ErrRecord, err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return ModelRecord{}, err
	}
	name := ModelNameFromFilename(path)
	rec, warnings, err := l.Normalizer.Normalize(name, doc)
	for _, w := range warnings {
		l.report().Warn("%s", w)
	}
	if err != nil {
		return ModelRecord{}, err
	}
	return rec, nil
}

func (l *Loader) skip(path string, err error) {
	file := filepath.Base(path)
	if errors.Is(err, ErrParse) {
		l.report().Skipped(file, "Could not decode JSON.")
		return
	}
	l.report().Skipped(file, "Error: "+err.Error())
}

func (l *Loader) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}
	return l.Fs
}

func (l *Loader) ext() string {
	if l.Extension == "" {
		return DefaultExtension
	}
	return l.Extension
}

func (l *Loader) report() *logging.Reporter {
	if l.Reporter == nil {
		l.Reporter = logging.NewReporter(nil)
	}
	return l.Reporter
}

// ModelNameFromFilename strips the directory and extension from path.
func ModelNameFromFilename(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}
