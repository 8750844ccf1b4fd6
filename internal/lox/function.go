package lox

// function is a Lox function value: a declaration paired with the
// environment captured at its definition site (its closure). isInitializer
// marks a class's `init` method, which always returns the bound `this`
// regardless of what the body's `return` carries.
type function struct {
	declaration   *FunctionStmt
	closure       *environment
	isInitializer bool
}

func newFunction(declaration *FunctionStmt, closure *environment, isInitializer bool) *function {
	return &function{declaration, closure, isInitializer}
}

func (fn *function) arity() int {
	return len(fn.declaration.Params)
}

// bind returns a new function whose closure is a fresh environment, parented
// on the original closure, that defines `this` as inst. Methods are bound
// when they're looked up off an instance, not when the class is built.
func (fn *function) bind(inst *instance) *function {
	env := newEnvironment(fn.closure)
	env.define("this", inst)
	return newFunction(fn.declaration, env, fn.isInitializer)
}

func (fn *function) call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := newEnvironment(fn.closure)
	for i, param := range fn.declaration.Params {
		env.define(param.Lexeme, args[i])
	}

	err := in.execBlock(fn.declaration.Body, env)
	if ret, isReturn := err.(*callReturn); isReturn {
		if fn.isInitializer {
			return fn.closure.getAt(0, "this"), nil
		}
		return ret.val, nil
	}
	if err != nil {
		return nil, err
	}

	if fn.isInitializer {
		return fn.closure.getAt(0, "this"), nil
	}
	return nil, nil
}

func (fn *function) String() string {
	return "<function " + fn.declaration.Name.Lexeme + ">"
}
