package errors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/lox/internal/token"
)

func TestNewTokenErrorAtEnd(t *testing.T) {
	tok := token.New(token.EOF, "", 3)
	d := NewTokenError(tok, "Expect expression.")
	assert.Equal(t, "[line 3] Error at end: Expect expression.", d.Error())
}

func TestNewTokenErrorAtLexeme(t *testing.T) {
	tok := token.New(token.Identifier, "foo", 1)
	d := NewTokenError(tok, "Expect ';' after value.")
	assert.Equal(t, "[line 1] Error at 'foo': Expect ';' after value.", d.Error())
}

func TestNewScanErrorHasNoLocation(t *testing.T) {
	d := NewScanError(5, "Unexpected character.")
	assert.Equal(t, "[line 5] Error: Unexpected character.", d.Error())
	assert.Equal(t, ExitDataErr, d.Exit)
}

func TestIsRuntime(t *testing.T) {
	tok := token.New(token.Identifier, "a", 1)
	runtimeErr := NewRuntimeError(tok, "Undefined variable 'a'.")
	parseErr := NewTokenError(tok, "Expect expression.")

	assert.True(t, IsRuntime(runtimeErr))
	assert.False(t, IsRuntime(parseErr))
	assert.False(t, IsRuntime(assertPlainError{}))
}

type assertPlainError struct{}

func (assertPlainError) Error() string { return "plain" }

func TestAccumulatorJoinsDiagnosticsWithNewlines(t *testing.T) {
	var acc Accumulator
	assert.Equal(t, 0, acc.Len())
	assert.NoError(t, acc.Err())

	tok := token.New(token.Identifier, "a", 1)
	acc.Add(NewTokenError(tok, "first problem."))
	acc.Add(NewTokenError(tok, "second problem."))

	err := acc.Err()
	require.Error(t, err)
	assert.Equal(t, 2, acc.Len())
	assert.Contains(t, err.Error(), "first problem.")
	assert.Contains(t, err.Error(), "second problem.")
}

func TestCollectingReporterTracksRuntimeAndExitCode(t *testing.T) {
	r := NewCollectingReporter()
	tok := token.New(token.Identifier, "a", 2)

	r.Report(NewTokenError(tok, "Expect expression."))
	assert.True(t, r.HadError())
	assert.False(t, r.HadRuntimeError())
	assert.Equal(t, ExitDataErr, r.ExitCode())

	r.Reset()
	assert.Empty(t, r.Diagnostics)

	r.Report(NewRuntimeError(tok, "Undefined variable 'a'."))
	assert.True(t, r.HadRuntimeError())
	assert.Equal(t, ExitSoftware, r.ExitCode())
	assert.Equal(t, r.Diagnostics[0], r.First())
}

// TestReportersUnwrapAccumulatorExitCode pins the exact bug scenario:
// Accumulator.Err always hands back a *multierror.Error, even when only
// one diagnostic was ever added, so a reporter that extracts an exit code
// via a bare `err.(*Diagnostic)` assertion would silently keep exit code 0.
func TestReportersUnwrapAccumulatorExitCode(t *testing.T) {
	var acc Accumulator
	tok := token.New(token.Identifier, "a", 1)
	acc.Add(NewTokenError(tok, "Already a variable with this name in this scope."))

	err := acc.Err()
	require.Error(t, err)

	t.Run("CollectingReporter", func(t *testing.T) {
		r := NewCollectingReporter()
		r.Report(err)
		assert.Equal(t, ExitDataErr, r.ExitCode())
		assert.True(t, r.HadError())
		require.Len(t, r.Diagnostics, 1)
	})

	t.Run("SimpleReporter", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewSimpleReporter(&buf)
		r.Report(err)
		assert.Equal(t, ExitDataErr, r.ExitCode())
		assert.True(t, r.HadError())
	})
}
