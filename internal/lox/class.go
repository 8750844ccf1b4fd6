package lox

// class is a Lox class value: a name, an optional superclass, and its own
// methods. Lookup delegates to the superclass chain when a method isn't
// found locally.
type class struct {
	name       string
	superclass *class
	methods    map[string]*function
}

func newClass(name string, superclass *class, methods map[string]*function) *class {
	return &class{name, superclass, methods}
}

// findMethod looks up a method by name in this class, falling back to the
// superclass chain.
func (c *class) findMethod(name string) (*function, bool) {
	if fn, ok := c.methods[name]; ok {
		return fn, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

// arity is that of the class's `init` method, or 0 if it has none.
func (c *class) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

// call constructs a new instance, running `init` (bound to the instance)
// if the class defines one.
func (c *class) call(in *Interpreter, args []interface{}) (interface{}, error) {
	inst := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(inst).call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *class) String() string {
	return "<class " + c.name + ">"
}
