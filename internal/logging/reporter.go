// internal/logging/reporter.go
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	loadedLabel  = color.New(color.FgGreen).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	headerStyle  = color.New(color.Bold).SprintFunc()
)

// Reporter writes one diagnostic line per pipeline event to the console and
// mirrors an uncolored copy to the log.
type Reporter struct {
	out io.Writer
}

// NewReporter returns a Reporter writing to out, or stdout when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// Writer exposes the console writer for multi-line output such as tables.
func (r *Reporter) Writer() io.Writer { return r.out }

// Header prints a section banner.
func (r *Reporter) Header(title string) {
	line := fmt.Sprintf("--- %s ---", title)
	fmt.Fprintln(r.out, headerStyle(line))
	LogEvent("%s", line)
}

// Rule prints a separator line closing a section.
func (r *Reporter) Rule() {
	line := "---------------------------------"
	fmt.Fprintln(r.out, line)
}

// Loaded reports a successfully normalized document.
func (r *Reporter) Loaded(name, detail string) {
	fmt.Fprintf(r.out, "%s %s: %s\n", loadedLabel("Loaded"), name, detail)
	LogEvent("loaded %s: %s", name, detail)
}

// Skipped reports a document that was dropped from the run.
func (r *Reporter) Skipped(file, reason string) {
	fmt.Fprintf(r.out, "%s Skipping %s - %s\n", warningLabel("Warning:"), file, reason)
	LogEvent("skipped %s: %s", file, reason)
}

// Warn reports a recoverable condition.
func (r *Reporter) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", warningLabel("Warning:"), msg)
	LogEvent("warning: %s", msg)
}

// Error reports a condition that ends the run.
func (r *Reporter) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", errorLabel("Error:"), msg)
	LogEvent("error: %s", msg)
}

// Info prints a plain line.
func (r *Reporter) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(r.out, msg)
	LogEvent("%s", msg)
}
