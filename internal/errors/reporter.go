package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter defines the interface for structures that can display errors to
// the user. A reporter is defined to separate error reporting code from
// error displaying code. Fully-featured languages have a complex setup for
// reporting errors to the user.
type Reporter interface {
	Report(err error)
	Reset()
	HadError() bool
	HadRuntimeError() bool
	// ExitCode returns the process exit code implied by everything reported
	// so far: 0 if nothing failed, otherwise the Exit of the first
	// diagnostic reported, whether or not it was a runtime error.
	ExitCode() int
}

var errColor = color.New(color.FgRed)

// SimpleReporter writes errors to an inner writer in red. Whether color codes
// are emitted is decided by fatih/color from the process's stdout, not from
// the inner writer.
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
	exitCode      int
}

// NewSimpleReporter builds a Reporter that writes diagnostics, one per
// line, to writer.
func NewSimpleReporter(writer io.Writer) *SimpleReporter {
	return &SimpleReporter{writer: writer}
}

func (r *SimpleReporter) Report(err error) {
	errColor.Fprintln(r.writer, err)
	for _, d := range diagnostics(err) {
		if IsRuntime(d) {
			r.hadRuntimeErr = true
		} else {
			r.hadErr = true
		}
		if r.exitCode == 0 {
			r.exitCode = d.Exit
		}
	}
}

func (r *SimpleReporter) Reset() {
	r.hadErr = false
	r.hadRuntimeErr = false
	r.exitCode = 0
}

func (r *SimpleReporter) HadError() bool        { return r.hadErr }
func (r *SimpleReporter) HadRuntimeError() bool { return r.hadRuntimeErr }
func (r *SimpleReporter) ExitCode() int         { return r.exitCode }

// CollectingReporter accumulates diagnostics instead of writing them
// anywhere. It backs the embedded test-hook API described in spec section 6.
type CollectingReporter struct {
	Diagnostics []error
	hadRuntime  bool
}

// NewCollectingReporter builds a Reporter for embedding/testing.
func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{}
}

// Report flattens err (a bare *Diagnostic, or the *multierror.Error that
// Accumulator.Err returns whenever the parser/resolver collected anything,
// including just one diagnostic) into its individual diagnostics before
// storing them, so HadError/HadRuntimeError/ExitCode never have to look
// through a wrapper themselves.
func (r *CollectingReporter) Report(err error) {
	ds := diagnostics(err)
	if len(ds) == 0 {
		r.Diagnostics = append(r.Diagnostics, err)
		return
	}
	for _, d := range ds {
		r.Diagnostics = append(r.Diagnostics, d)
		if IsRuntime(d) {
			r.hadRuntime = true
		}
	}
}

func (r *CollectingReporter) Reset() {
	r.Diagnostics = nil
	r.hadRuntime = false
}

func (r *CollectingReporter) HadError() bool {
	for _, e := range r.Diagnostics {
		if !IsRuntime(e) {
			return true
		}
	}
	return false
}

func (r *CollectingReporter) HadRuntimeError() bool { return r.hadRuntime }

func (r *CollectingReporter) ExitCode() int {
	for _, e := range r.Diagnostics {
		if d, ok := e.(*Diagnostic); ok {
			return d.Exit
		}
	}
	return 0
}

// First returns the first diagnostic reported, or nil.
func (r *CollectingReporter) First() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics[0]
}

var _ fmt.Stringer = (*Diagnostic)(nil)

func (d *Diagnostic) String() string { return d.Error() }
