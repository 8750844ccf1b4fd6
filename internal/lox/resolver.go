package lox

import (
	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// localResolver is the single method the Resolver needs from the
// Interpreter: recording how many scopes to walk for a given node. Keeping
// it as a narrow interface (rather than depending on *Interpreter directly)
// mirrors the side-table design spec section 9 sanctions as an alternative
// to mutating the AST.
type localResolver interface {
	resolve(expr Expr, steps int)
}

// resolver is the static pass that walks a parsed program once, annotating
// every variable/this/super use with its lexical depth and rejecting the
// misuses spec section 4.3 lists. It never halts: every diagnostic it can
// recover to is collected and returned together.
type resolver struct {
	interp          localResolver
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	errs            gloxErrors.Accumulator
}

func newResolver(interp localResolver) *resolver {
	return &resolver{interp: interp}
}

// resolveProgram resolves every statement, returning the aggregated
// diagnostics (nil if none).
func (r *resolver) resolveProgram(statements []Stmt) error {
	r.resolveStmts(statements)
	return r.errs.Err()
}

func (r *resolver) resolveStmts(stmts []Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt Stmt) {
	_, _ = stmt.Accept(r)
}

func (r *resolver) resolveExpr(expr Expr) {
	_, _ = expr.Accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) scopeDepth() int {
	return len(r.scopes)
}

func (r *resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare inserts name into the innermost scope, marked "not yet defined".
// Globals (no scope on the stack) aren't tracked. Re-declaring a name
// already present in a non-global scope is always a diagnostic, regardless
// of whether the earlier declaration has finished defining.
func (r *resolver) declare(name *token.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.errs.Add(gloxErrors.NewTokenError(name,
			"Already a variable with this name in this scope."))
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name *token.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

// resolveLocal scans scopes from innermost outward; the first one defining
// name fixes the node's depth. Falling off the end leaves it unresolved,
// i.e. global.
func (r *resolver) resolveLocal(expr Expr, name *token.Token) {
	for i := r.scopeDepth() - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interp.resolve(expr, r.scopeDepth()-1-i)
			return
		}
	}
}

func (r *resolver) resolveFunction(fn *FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	r.beginScope()
	r.resolveStmts(stmt.Stmts)
	r.endScope()
	return nil, nil
}

func (r *resolver) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Super != nil {
		if stmt.Super.Name.Lexeme == stmt.Name.Lexeme {
			r.errs.Add(gloxErrors.NewTokenError(stmt.Super.Name,
				"A class can't inherit from itself."))
		} else {
			r.resolveExpr(stmt.Super)
		}
		r.currentClass = classTypeSubclass
		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range stmt.Methods {
		declType := functionTypeMethod
		if method.Name.Lexeme == "init" {
			declType = functionTypeInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()
	if stmt.Super != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil, nil
}

func (r *resolver) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *resolver) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, functionTypeFunction)
	return nil, nil
}

func (r *resolver) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil, nil
}

func (r *resolver) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *resolver) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	if r.currentFunction == functionTypeNone {
		r.errs.Add(gloxErrors.NewTokenError(stmt.Keyword, "Can't return from top-level code."))
	}
	if stmt.Val != nil {
		if r.currentFunction == functionTypeInitializer {
			r.errs.Add(gloxErrors.NewTokenError(stmt.Keyword,
				"Can't return a value from an initializer."))
		}
		r.resolveExpr(stmt.Val)
	}
	return nil, nil
}

func (r *resolver) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	r.declare(stmt.Name)
	if stmt.Init != nil {
		r.resolveExpr(stmt.Init)
	}
	r.define(stmt.Name)
	return nil, nil
}

func (r *resolver) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.Body)
	return nil, nil
}

func (r *resolver) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *resolver) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *resolver) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *resolver) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *resolver) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	r.resolveExpr(expr.Expr)
	return nil, nil
}

func (r *resolver) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *resolver) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *resolver) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *resolver) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	switch r.currentClass {
	case classTypeNone:
		r.errs.Add(gloxErrors.NewTokenError(expr.Keyword, "Can't use 'super' outside of a class."))
	case classTypeClass:
		r.errs.Add(gloxErrors.NewTokenError(expr.Keyword, "Can't use 'super' in a class with no superclass."))
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *resolver) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	if r.currentClass == classTypeNone {
		r.errs.Add(gloxErrors.NewTokenError(expr.Keyword, "Can't use 'this' outside of a class."))
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *resolver) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Expr)
	return nil, nil
}

func (r *resolver) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	if r.scopeDepth() != 0 {
		if defined, ok := r.peekScope()[expr.Name.Lexeme]; ok && !defined {
			r.errs.Add(gloxErrors.NewTokenError(expr.Name,
				"Can't read local variable in its own initializer."))
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}
