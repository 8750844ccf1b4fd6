package lox

import "github.com/letung3105/lox/internal/token"

// callReturn is the non-local control-flow signal used to carry a `return`
// value out of a function body without unwinding through ordinary runtime
// errors. It satisfies the error interface so it can travel through the
// same (interface{}, error) / error return paths every statement visitor
// already uses; exec/execBlock pass it up unchanged, and the one frame that's
// allowed to catch it, function.call, type-asserts for it.
type callReturn struct {
	keyword *token.Token
	val     interface{}
}

func newCallReturn(keyword *token.Token, val interface{}) *callReturn {
	return &callReturn{keyword: keyword, val: val}
}

// Error satisfies the error interface. This text is never shown to a user:
// the resolver statically rejects `return` outside a function (spec 4.3),
// so a callReturn that escapes the call frame it belongs to signals a bug
// in the interpreter rather than a Lox program.
func (r *callReturn) Error() string {
	return "Can't return from top-level code."
}
