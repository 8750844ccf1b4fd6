package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/lox/internal/token"
)

func nameTok(lexeme string) *token.Token {
	return token.New(token.Identifier, lexeme, 1)
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := newEnvironment(nil)
	env.define("a", 1.0)

	val, err := env.get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}

func TestEnvironmentGetUndefinedErrors(t *testing.T) {
	env := newEnvironment(nil)
	_, err := env.get(nameTok("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestEnvironmentChainedLookup(t *testing.T) {
	outer := newEnvironment(nil)
	outer.define("a", "outer-a")
	inner := newEnvironment(outer)

	val, err := inner.get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer-a", val)
}

func TestEnvironmentAssignUpdatesNearestDefiningScope(t *testing.T) {
	outer := newEnvironment(nil)
	outer.define("a", "before")
	inner := newEnvironment(outer)

	require.NoError(t, inner.assign(nameTok("a"), "after"))

	val, err := outer.get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, "after", val)
}

func TestEnvironmentAssignUndefinedErrors(t *testing.T) {
	env := newEnvironment(nil)
	err := env.assign(nameTok("missing"), 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := newEnvironment(nil)
	middle := newEnvironment(global)
	inner := newEnvironment(middle)
	middle.define("a", "original")

	assert.Equal(t, "original", inner.getAt(1, "a"))

	inner.assignAt(1, nameTok("a"), "updated")
	assert.Equal(t, "updated", middle.values["a"])
}
