package lox

import (
	"fmt"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

// environment is a chained name->value scope. Environments are shared via
// plain pointers; the garbage collector plays the role spec section 5
// assigns to reference counting, including tolerating the cycles that
// closures over instances create.
type environment struct {
	values    map[string]interface{}
	enclosing *environment
}

func newEnvironment(enclosing *environment) *environment {
	return &environment{
		values:    make(map[string]interface{}),
		enclosing: enclosing,
	}
}

// define inserts or overwrites a binding in this scope.
func (e *environment) define(name string, val interface{}) {
	e.values[name] = val
}

// get looks up name in this scope, then its ancestors, failing with
// "Undefined variable" if no scope in the chain defines it.
func (e *environment) get(name *token.Token) (interface{}, error) {
	if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, gloxErrors.NewRuntimeError(name, fmt.Sprintf(
		"Undefined variable '%s'.", name.Lexeme,
	))
}

// assign overwrites an existing binding for name in the nearest scope that
// defines it, failing the same way get does if none does.
func (e *environment) assign(name *token.Token, val interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = val
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, val)
	}
	return gloxErrors.NewRuntimeError(name, fmt.Sprintf(
		"Undefined variable '%s'.", name.Lexeme,
	))
}

// ancestor walks exactly steps parents up the chain. Each hop asserts a
// parent exists: the resolver guarantees the depths it hands out are
// reachable, so a nil here would mean the resolver and interpreter have
// drifted out of sync.
func (e *environment) ancestor(steps int) *environment {
	env := e
	for i := 0; i < steps; i++ {
		env = env.enclosing
	}
	return env
}

// getAt and assignAt are used whenever the resolver supplied a depth; plain
// get/assign (unbounded walk) is reserved for globals.
func (e *environment) getAt(steps int, name string) interface{} {
	return e.ancestor(steps).values[name]
}

func (e *environment) assignAt(steps int, name *token.Token, val interface{}) {
	e.ancestor(steps).values[name.Lexeme] = val
}
