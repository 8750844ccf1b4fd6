// Package lox implements the Lox language pipeline: scanning, parsing,
// static resolution, and tree-walking evaluation.
package lox

import (
	"bytes"
	"time"

	gloxErrors "github.com/letung3105/lox/internal/errors"
)

// WallClock is the default `clock()` implementation: seconds since the
// Unix epoch. Tests substitute a fixed function instead.
func WallClock() float64 {
	return float64(time.Now().Unix())
}

// Run scans, parses, resolves, and executes source against in, reporting
// every diagnostic it encounters to in's reporter. It returns the first
// error across the pipeline, stopping at the first stage that fails: a
// scan failure prevents parsing, a parse failure prevents resolving and
// execution, but resolving always walks the whole (possibly malformed)
// program before reporting, per spec 4.3.
func Run(source string, in *Interpreter) error {
	log := moduleLog.WithField("stage", "run")

	sc := newScanner([]rune(source))
	tokens, err := sc.scan()
	if err != nil {
		in.reporter.Report(err)
		return err
	}

	p := newParser(tokens)
	stmts, err := p.parseProgram()
	if err != nil {
		in.reporter.Report(err)
		return err
	}

	res := newResolver(in)
	if err := res.resolveProgram(stmts); err != nil {
		in.reporter.Report(err)
		return err
	}

	log.WithField("statements", len(stmts)).Debug("executing program")
	return in.Interpret(stmts)
}

// RunCollecting is the embedded API test hook (spec section 6): it runs
// source against a fresh Interpreter whose output is captured line by
// line, and whose diagnostics are collected rather than printed. It
// returns the printed lines, or the error Run returned if the run failed
// (for a parse or resolve failure, every diagnostic of that stage joined by
// newlines).
func RunCollecting(source string) ([]string, error) {
	var buf bytes.Buffer
	reporter := gloxErrors.NewCollectingReporter()
	in := NewInterpreter(&buf, reporter, WallClock)

	if err := Run(source, in); err != nil {
		return nil, err
	}
	return splitLines(buf.String()), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	if s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
