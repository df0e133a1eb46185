// Package diag provides terminal diagnostics for docgen runs.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
)

// Reporter writes warnings, informational lines and deprecation notices.
type Reporter struct {
	out     io.Writer
	verbose bool
	quiet   bool

	// SilenceDeprecations drops deprecation notices but still counts them.
	SilenceDeprecations bool

	warnings     atomic.Int64
	deprecations atomic.Int64
}

// New creates a Reporter writing to out.
func New(out io.Writer, verbose bool) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{
		out:     out,
		verbose: verbose,
	}
}

var std = New(os.Stderr, false)

// Default returns the process-wide reporter used by descriptors that are not
// attached to a graph with its own notifier.
func Default() *Reporter {
	return std
}

// SetQuiet suppresses warnings and deprecation notices.
func (r *Reporter) SetQuiet(quiet bool) {
	r.quiet = quiet
}

// Verbose reports whether Info lines are printed.
func (r *Reporter) Verbose() bool {
	return r.verbose
}

// Warn reports a recoverable problem.
func (r *Reporter) Warn(format string, args ...any) {
	r.warnings.Add(1)
	if r.quiet {
		return
	}
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Info prints a progress line in verbose mode.
func (r *Reporter) Info(format string, args ...any) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Error prints a fatal error.
func (r *Reporter) Error(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.out, "error: ")
	fmt.Fprintf(r.out, "%v\n", err)
}

// Deprecated reports use of a deprecated accessor. Every call is one notice.
func (r *Reporter) Deprecated(symbol, replacement string) {
	r.deprecations.Add(1)
	if r.quiet || r.SilenceDeprecations {
		return
	}
	magenta := color.New(color.FgMagenta)
	magenta.Fprint(r.out, "deprecated: ")
	if replacement != "" {
		fmt.Fprintf(r.out, "%s, please use %s\n", symbol, replacement)
		return
	}
	fmt.Fprintf(r.out, "%s\n", symbol)
}

// Warnings returns the number of warnings reported so far.
func (r *Reporter) Warnings() int {
	return int(r.warnings.Load())
}

// Deprecations returns the number of deprecation notices reported so far.
func (r *Reporter) Deprecations() int {
	return int(r.deprecations.Load())
}
