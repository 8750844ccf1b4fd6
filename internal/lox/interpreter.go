package lox

import (
	"fmt"
	"io"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

// callable is implemented by every Lox value that can be invoked with `(...)`.
type callable interface {
	arity() int
	call(in *Interpreter, args []interface{}) (interface{}, error)
}

// Interpreter evaluates a resolved Lox syntax tree. It implements
// ExprVisitor and StmtVisitor.
type Interpreter struct {
	globals     *environment
	environment *environment
	locals      map[Expr]int
	output      io.Writer
	reporter    gloxErrors.Reporter
	isREPL      bool
}

// NewInterpreter builds an Interpreter that writes `print` output to output
// and reports diagnostics to reporter. clock backs the `clock()` built-in;
// pass a fixed function in tests for determinism.
func NewInterpreter(output io.Writer, reporter gloxErrors.Reporter, clock func() float64) *Interpreter {
	env := newEnvironment(nil)
	env.define("clock", &functionClock{now: clock})

	return &Interpreter{
		globals:     env,
		environment: env,
		locals:      make(map[Expr]int),
		output:      output,
		reporter:    reporter,
	}
}

// SetREPL toggles REPL mode, in which a bare expression statement's value is
// echoed (assignments and calls excepted, since their value is rarely what
// the user is asking to see).
func (in *Interpreter) SetREPL(isREPL bool) {
	in.isREPL = isREPL
}

// Interpret executes a program, stopping and reporting at the first runtime
// error (spec 7: "Halt execution, unwind to the entry point.").
func (in *Interpreter) Interpret(statements []Stmt) error {
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			in.reporter.Report(err)
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Stmts, newEnvironment(in.environment))
}

func (in *Interpreter) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	expr, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		switch stmt.Expr.(type) {
		case *AssignExpr, *CallExpr:
			// expressions of these types are not echoed
		default:
			fmt.Fprintln(in.output, stringify(expr))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var super *class
	if stmt.Super != nil {
		superObj, err := in.eval(stmt.Super)
		if err != nil {
			return nil, err
		}

		var isClass bool
		super, isClass = superObj.(*class)
		if !isClass {
			return nil, gloxErrors.NewRuntimeError(stmt.Super.Name, "Superclass must be a class.")
		}

		// This env holds a reference to the superclass of this class; the
		// reference never changes. Every method the subclass gives out
		// will have this env attached to its closure.
		in.environment = newEnvironment(in.environment)
		in.environment.define("super", super)
	}

	methods := make(map[string]*function)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		fn := newFunction(method, in.environment, isInitializer)
		methods[method.Name.Lexeme] = fn
	}
	cls := newClass(stmt.Name.Lexeme, super, methods)
	if super != nil {
		// pop the environment holding the superclass
		in.environment = in.environment.enclosing
	}
	in.environment.define(stmt.Name.Lexeme, cls)
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	fn := newFunction(stmt, in.environment, false)
	in.environment.define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.exec(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return in.exec(stmt.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	expr, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(expr))
	return nil, nil
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	var initVal interface{}
	if stmt.Init != nil {
		var err error
		initVal, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	in.environment.define(stmt.Name.Lexeme, initVal)
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	var val interface{}
	var err error
	if stmt.Val != nil {
		val, err = in.eval(stmt.Val)
		if err != nil {
			return nil, err
		}
	}
	return nil, newCallReturn(stmt.Keyword, val)
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			return nil, nil
		}
		if _, err := in.exec(stmt.Body); err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}

	if steps, ok := in.locals[expr]; ok {
		in.environment.assignAt(steps, expr.Name, val)
		return val, nil
	}
	return val, in.globals.assign(expr.Name, val)
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Rhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.BangEqual:
		return !isEqual(lhs, rhs), nil

	case token.EqualEqual:
		return isEqual(lhs, rhs), nil

	case token.Greater:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum > rightNum, nil

	case token.GreaterEqual:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum >= rightNum, nil

	case token.Less:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum < rightNum, nil

	case token.LessEqual:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum <= rightNum, nil

	case token.Minus:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum - rightNum, nil

	case token.Plus:
		if leftStr, rightStr, ok := bothStrings(lhs, rhs); ok {
			return leftStr + rightStr, nil
		}
		if leftNum, rightNum, ok := bothNumbers(lhs, rhs); ok {
			return leftNum + rightNum, nil
		}
		return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be two numbers or two strings.")

	case token.Slash:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum / rightNum, nil

	case token.Star:
		leftNum, rightNum, ok := bothNumbers(lhs, rhs)
		if !ok {
			return nil, gloxErrors.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		return leftNum * rightNum, nil
	}
	panic("unreachable binary operator")
}

func bothNumbers(lhs, rhs interface{}) (float64, float64, bool) {
	l, lok := lhs.(float64)
	r, rok := rhs.(float64)
	return l, r, lok && rok
}

func bothStrings(lhs, rhs interface{}) (string, string, bool) {
	l, lok := lhs.(string)
	r, rok := rhs.(string)
	return l, r, lok && rok
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	// Arguments are evaluated left-to-right before dispatch (spec 5); this
	// order is user-observable since expressions may have side effects.
	var args []interface{}
	for _, arg := range expr.Args {
		argVal, err := in.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, argVal)
	}

	call, isCallable := callee.(callable)
	if !isCallable {
		return nil, gloxErrors.NewRuntimeError(expr.Paren, fmt.Sprintf(
			"Can only call functions and classes, got '%s'.", stringify(callee),
		))
	}
	if len(args) != call.arity() {
		return nil, gloxErrors.NewRuntimeError(expr.Paren, fmt.Sprintf(
			"Expected %d arguments but got %d.", call.arity(), len(args),
		))
	}
	return call.call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}

	if inst, ok := obj.(*instance); ok {
		return inst.get(expr.Name)
	}
	return nil, gloxErrors.NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	return in.eval(expr.Expr)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return expr.Val, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.Or:
		if truthy(lhs) {
			return lhs, nil
		}
	case token.And:
		if !truthy(lhs) {
			return lhs, nil
		}
	default:
		panic("unreachable logical operator")
	}

	return in.eval(expr.Rhs)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*instance)
	if !ok {
		return nil, gloxErrors.NewRuntimeError(expr.Name, "Only instances have fields.")
	}

	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	inst.set(expr.Name, val)
	return val, nil
}

func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	// In a super expression there's no convenient node for the resolver to
	// hang the resolution steps of `this` on. We know that the environment
	// holding `this` is always the one directly enclosed by the one holding
	// `super`, so its depth is always one less.
	steps := in.locals[expr]
	super := in.environment.getAt(steps, "super").(*class)
	this := in.environment.getAt(steps-1, "this").(*instance)

	method, hasMethod := super.findMethod(expr.Method.Lexeme)
	if !hasMethod {
		return nil, gloxErrors.NewRuntimeError(expr.Method, fmt.Sprintf(
			"Undefined property '%s'.", expr.Method.Lexeme,
		))
	}
	return method.bind(this), nil
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return in.lookUpVar(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	exprVal, err := in.eval(expr.Expr)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.Bang:
		return !truthy(exprVal), nil
	case token.Minus:
		if exprNum, ok := exprVal.(float64); ok {
			return -exprNum, nil
		}
		return nil, gloxErrors.NewRuntimeError(expr.Op, "Operand must be a number.")
	}
	panic("unreachable unary operator")
}

func (in *Interpreter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return in.lookUpVar(expr.Name, expr)
}

func (in *Interpreter) execBlock(statements []Stmt, env *environment) error {
	prevEnv := in.environment
	in.environment = env
	defer func() {
		in.environment = prevEnv
	}()
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr Expr) (interface{}, error) {
	return expr.Accept(in)
}

// resolve is called by the Resolver once per variable-using node, recording
// how many enclosing environments must be walked to find its binding. It
// satisfies resolver.go's localResolver interface.
func (in *Interpreter) resolve(expr Expr, steps int) {
	in.locals[expr] = steps
}

func (in *Interpreter) lookUpVar(name *token.Token, expr Expr) (interface{}, error) {
	if steps, ok := in.locals[expr]; ok {
		return in.environment.getAt(steps, name.Lexeme), nil
	}
	return in.globals.get(name)
}
