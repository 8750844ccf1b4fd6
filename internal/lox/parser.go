package lox

import (
	"fmt"
	"strconv"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

const maxArgs = 255

// parseError is raised internally to unwind out of a malformed declaration
// and into synchronize(); it always wraps a *gloxErrors.Diagnostic that has
// already been recorded in the parser's accumulator.
type parseError struct {
	diag *gloxErrors.Diagnostic
}

func (e *parseError) Error() string { return e.diag.Error() }

// parser is a recursive-descent parser with panic-mode error recovery: a
// malformed declaration records a diagnostic and synchronizes to the next
// statement boundary instead of aborting the whole parse.
type parser struct {
	tokens  []*token.Token
	current int
	errs    gloxErrors.Accumulator
}

func newParser(tokens []*token.Token) *parser {
	return &parser{tokens: tokens}
}

// parseProgram parses every declaration until EOF, returning the full
// program and/or the accumulated diagnostics (spec 4.2: at least one
// diagnostic if parsing failed anywhere).
func (p *parser) parseProgram() ([]Stmt, error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.errs.Err()
}

func (p *parser) declaration() (stmt Stmt, err error) {
	defer func() {
		if err != nil {
			p.synchronize()
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) classDeclaration() (Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var super *VarExpr
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		super = NewVarExpr(superName)
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*FunctionStmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(*FunctionStmt))
	}

	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return NewClassStmt(name, super, methods), nil
}

func (p *parser) function(kind string) (Stmt, error) {
	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}
	var params []*token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportNoThrow(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return NewFunctionStmt(name, params, body), nil
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return NewVarStmt(name, init), nil
}

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return NewBlockStmt(stmts), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; inc) body` into
// `{ init; while (cond) { body; inc; } }` (spec 4.2), with a missing cond
// defaulting to the literal `true` and missing init/inc simply omitted.
func (p *parser) forStatement() (Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.match(token.Var):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(token.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var inc Expr
	if !p.check(token.RightParen) {
		inc, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if inc != nil {
		body = NewBlockStmt([]Stmt{body, NewExprStmt(inc)})
	}
	if cond == nil {
		cond = NewLiteralExpr(true)
	}
	body = NewWhileStmt(cond, body)

	if init != nil {
		body = NewBlockStmt([]Stmt{init, body})
	}
	return body, nil
}

func (p *parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return NewIfStmt(cond, thenBranch, elseBranch), nil
}

func (p *parser) printStatement() (Stmt, error) {
	val, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return NewPrintStmt(val), nil
}

func (p *parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var val Expr
	var err error
	if !p.check(token.Semicolon) {
		val, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return NewReturnStmt(keyword, val), nil
}

func (p *parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return NewWhileStmt(cond, body), nil
}

func (p *parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err == nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return NewExprStmt(expr), nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment parses a disjunction and, if followed by `=`, checks that the
// left-hand side is an assignable target. Right-associative via recursion
// into itself for the value.
func (p *parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		val, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *VarExpr:
			return NewAssignExpr(target.Name, val), nil
		case *GetExpr:
			return NewSetExpr(target.Obj, target.Name, val), nil
		default:
			p.reportNoThrow(equals, "Invalid assignment target.")
			return expr, nil
		}
	}

	return expr, nil
}

func (p *parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		op := p.previous()
		rhs, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(expr, op, rhs)
	}
	return expr, nil
}

func (p *parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		op := p.previous()
		rhs, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(expr, op, rhs)
	}
	return expr, nil
}

func (p *parser) equality() (Expr, error) {
	return p.leftAssocBinary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *parser) comparison() (Expr, error) {
	return p.leftAssocBinary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *parser) term() (Expr, error) {
	return p.leftAssocBinary(p.factor, token.Minus, token.Plus)
}

func (p *parser) factor() (Expr, error) {
	return p.leftAssocBinary(p.unary, token.Slash, token.Star)
}

// leftAssocBinary implements the common shape shared by equality,
// comparison, term, and factor: a left-associative chain of binary
// operators at one precedence level, all deferring to next for operands.
func (p *parser) leftAssocBinary(next func() (Expr, error), types ...token.Type) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.matchAny(types...) {
		op := p.previous()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(expr, op, rhs)
	}
	return expr, nil
}

func (p *parser) unary() (Expr, error) {
	if p.matchAny(token.Bang, token.Minus) {
		op := p.previous()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(op, rhs), nil
	}
	return p.call()
}

func (p *parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = NewGetExpr(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportNoThrow(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return NewCallExpr(callee, paren, args), nil
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.match(token.False):
		return NewLiteralExpr(false), nil
	case p.match(token.True):
		return NewLiteralExpr(true), nil
	case p.match(token.Nil):
		return NewLiteralExpr(nil), nil
	case p.match(token.Number):
		return NewLiteralExpr(parseNumber(p.previous().Lexeme)), nil
	case p.match(token.String):
		lexeme := p.previous().Lexeme
		return NewLiteralExpr(lexeme[1 : len(lexeme)-1]), nil
	case p.match(token.Super):
		keyword := p.previous()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return NewSuperExpr(keyword, method), nil
	case p.match(token.This):
		return NewThisExpr(p.previous()), nil
	case p.match(token.Identifier):
		return NewVarExpr(p.previous()), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return NewGroupExpr(expr), nil
	}
	return nil, p.report(p.peek(), "Expect expression.")
}

func parseNumber(lexeme string) float64 {
	n, _ := strconv.ParseFloat(lexeme, 64)
	return n
}

// --- token stream helpers ---

func (p *parser) match(typ token.Type) bool {
	return p.matchAny(typ)
}

func (p *parser) matchAny(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) peek() *token.Token {
	return p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return p.tokens[p.current-1]
}

func (p *parser) consume(typ token.Type, message string) (*token.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return nil, p.report(p.peek(), message)
}

// report records a diagnostic and returns it wrapped as a *parseError so the
// caller unwinds to the nearest synchronize() point.
func (p *parser) report(tok *token.Token, message string) error {
	d := gloxErrors.NewTokenError(tok, message)
	p.errs.Add(d)
	return &parseError{diag: d}
}

// reportNoThrow records a diagnostic (e.g. too many arguments/parameters)
// without unwinding: spec 4.2 says parsing continues after these.
func (p *parser) reportNoThrow(tok *token.Token, message string) {
	p.errs.Add(gloxErrors.NewTokenError(tok, message))
}

// synchronize discards tokens until it's plausible that the next one starts
// a fresh declaration/statement, so one malformed declaration doesn't
// cascade into spurious errors for the rest of the file. A token that already
// starts a declaration/statement is left for the next declaration() call.
func (p *parser) synchronize() {
	switch p.peek().Type {
	case token.Class, token.Fun, token.Var, token.For,
		token.If, token.While, token.Print, token.Return:
		return
	}
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
