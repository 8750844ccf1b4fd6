// Command glox is an interpreter for the Lox programming language.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/lox"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "glox [script]",
		Short:         "glox is a tree-walking interpreter for Lox",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				fmt.Fprintln(os.Stderr, "Usage: glox [script]")
				os.Exit(64)
			}
			lox.SetDebug(verbose)

			reporter := gloxErrors.NewSimpleReporter(os.Stderr)
			var err error
			if len(args) == 1 {
				err = runFile(args[0], reporter)
			} else {
				err = runPrompt(reporter)
			}
			if err != nil {
				os.Exit(64)
			}
			if code := reporter.ExitCode(); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace scanning and execution at debug level")
	return cmd
}

// runFile runs a single script to completion and returns a non-nil error
// only if the file itself could not be read (exit 64 per spec section 6);
// Lox-level diagnostics go through reporter instead.
func runFile(fpath string, reporter gloxErrors.Reporter) error {
	src, err := os.ReadFile(fpath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	interp := lox.NewInterpreter(os.Stdout, reporter, lox.WallClock)
	lox.Run(string(src), interp)
	return nil
}

// runPrompt runs an interactive REPL. A single Interpreter is reused across
// lines so that variable/function/class declarations persist, per spec
// section 6's "per-line definitions must persist across lines" contract.
func runPrompt(reporter gloxErrors.Reporter) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	interp := lox.NewInterpreter(os.Stdout, reporter, lox.WallClock)
	interp.SetREPL(true)

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		reporter.Reset()
		lox.Run(line, interp)
	}
	return nil
}
