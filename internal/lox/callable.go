package lox

// functionClock is the interpreter's sole built-in: `clock()`, arity 0,
// returning seconds since the Unix epoch. The wall-clock function is
// injected at Interpreter construction time so tests can substitute a
// deterministic counter, per spec section 6.
type functionClock struct {
	now func() float64
}

func (*functionClock) arity() int { return 0 }

func (fn *functionClock) call(*Interpreter, []interface{}) (interface{}, error) {
	return fn.now(), nil
}

func (*functionClock) String() string { return "<native fn>" }
