// Package errors defines the uniform diagnostic record produced by every
// stage of the Lox pipeline (scanner, parser, resolver, interpreter), and
// the Reporter interface used to surface diagnostics to the outside world.
package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/letung3105/lox/internal/token"
)

// Exit codes. Scan, parse, and resolve failures share one code; runtime
// failures get another, matching the reference interpreter's convention.
const (
	ExitDataErr  = 65
	ExitSoftware = 70
)

// Diagnostic is the uniform error record every pipeline stage emits.
type Diagnostic struct {
	Line    int
	Loc     string
	Message string
	Exit    int
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Loc, d.Message)
}

// NewScanError reports an error at the given source line, with no token
// context (the scanner hasn't produced a token yet).
func NewScanError(line int, message string) *Diagnostic {
	return &Diagnostic{Line: line, Message: message, Exit: ExitDataErr}
}

// NewTokenError reports a parse or resolve error anchored to a token. EOF
// tokens render as "at end"; every other token renders as "at '<lexeme>'".
func NewTokenError(tok *token.Token, message string) *Diagnostic {
	loc := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		loc = " at end"
	}
	return &Diagnostic{Line: tok.Line, Loc: loc, Message: message, Exit: ExitDataErr}
}

// NewRuntimeError reports a failure during evaluation, attributed to the
// token at the offending call/operator site.
func NewRuntimeError(tok *token.Token, message string) *Diagnostic {
	return &Diagnostic{Line: tok.Line, Message: message, Exit: ExitSoftware}
}

// IsRuntime reports whether err is a Diagnostic produced by the interpreter
// rather than the scanner, parser, or resolver.
func IsRuntime(err error) bool {
	d, ok := err.(*Diagnostic)
	return ok && d.Exit == ExitSoftware
}

// diagnostics flattens err into the individual *Diagnostic values it
// carries: a bare *Diagnostic becomes a one-element slice, a
// *multierror.Error (what Accumulator.Err returns whenever anything was
// collected, even a single diagnostic) is unwrapped member by member.
// Reporters use this instead of a bare type assertion so that parser/
// resolver diagnostics, which always arrive wrapped, are never silently
// skipped.
func diagnostics(err error) []*Diagnostic {
	if err == nil {
		return nil
	}
	if merr, ok := err.(*multierror.Error); ok {
		out := make([]*Diagnostic, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			if d, ok := e.(*Diagnostic); ok {
				out = append(out, d)
			}
		}
		return out
	}
	if d, ok := err.(*Diagnostic); ok {
		return []*Diagnostic{d}
	}
	return nil
}

// Accumulator collects every diagnostic a recoverable stage (parser,
// resolver) can produce, instead of stopping at the first. Parse and
// resolve diagnostics are always recoverable per spec, so both stages
// build one of these and hand it back as a single error once their walk
// is complete.
type Accumulator struct {
	errs *multierror.Error
}

// Add appends a diagnostic to the accumulator.
func (a *Accumulator) Add(d *Diagnostic) {
	a.errs = multierror.Append(a.errs, d)
}

// Len reports how many diagnostics have been collected so far.
func (a *Accumulator) Len() int {
	if a.errs == nil {
		return 0
	}
	return len(a.errs.Errors)
}

// Err returns nil if nothing was collected, otherwise an error whose
// message is every diagnostic joined by newlines (spec 4.6/7).
func (a *Accumulator) Err() error {
	if a.Len() == 0 {
		return nil
	}
	a.errs.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return joinLines(lines)
	}
	return a.errs
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
