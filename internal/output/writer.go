// internal/output/writer.go
// Package output writes rendered figures to disk.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// PlotSuffix is appended to the aggregate name to form a results plot file.
const PlotSuffix = "_plot.png"

// PlotPath returns <dir>/<aggregate>_plot.png.
func PlotPath(dir, aggregate string) string {
	return filepath.Join(dir, aggregate+PlotSuffix)
}

// Writer stores encoded figures. A figure is encoded into a temporary file
// next to the target and renamed over it, so a failed encode never leaves a
// partial image behind.
type Writer struct {
	Fs afero.Fs
}

// NewWriter returns a Writer on the OS filesystem.
func NewWriter() *Writer {
	return &Writer{Fs: afero.NewOsFs()}
}

// Write encodes fig to path, replacing any existing file.
func (w *Writer) Write(path string, fig io.WriterTo) (err error) {
	fs := w.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = fig.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to encode image %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to write image %s: %w", path, err)
	}
	if err = fs.Chmod(tmpName, 0o644); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to set permissions on %s: %w", path, err)
	}
	if err = fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("unable to write image %s: %w", path, err)
	}
	return nil
}
