package lox

import (
	"fmt"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

// instance is a runtime object produced by calling a class. Field lookup
// takes priority over methods; setting is always field-only, so it never
// changes the class's methods, though a field with a method's name hides
// that method on this instance.
type instance struct {
	class  *class
	fields map[string]interface{}
}

func newInstance(c *class) *instance {
	return &instance{class: c, fields: make(map[string]interface{})}
}

// get resolves a property access: a field if one is set, else a method
// bound to this instance, else "Undefined property".
func (i *instance) get(name *token.Token) (interface{}, error) {
	if val, ok := i.fields[name.Lexeme]; ok {
		return val, nil
	}
	if method, ok := i.class.findMethod(name.Lexeme); ok {
		return method.bind(i), nil
	}
	return nil, gloxErrors.NewRuntimeError(name, fmt.Sprintf(
		"Undefined property '%s'.", name.Lexeme,
	))
}

// set always writes a field; methods cannot be redefined per instance.
func (i *instance) set(name *token.Token, val interface{}) {
	i.fields[name.Lexeme] = val
}

func (i *instance) String() string {
	return "<instance of " + i.class.name + ">"
}
