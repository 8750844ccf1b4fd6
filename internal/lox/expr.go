package lox

import "github.com/letung3105/lox/internal/token"

// Expr is implemented by every expression AST node. Resolved lexical depth
// is not carried on the node itself; the Interpreter keeps it in a
// side-table keyed by the node's identity (see Interpreter.locals), which
// is one of the two sharing strategies spec section 9 sanctions.
type Expr interface {
	Accept(visitor ExprVisitor) (interface{}, error)
}

type ExprVisitor interface {
	VisitAssignExpr(expr *AssignExpr) (interface{}, error)
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitGetExpr(expr *GetExpr) (interface{}, error)
	VisitGroupExpr(expr *GroupExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitLogicalExpr(expr *LogicalExpr) (interface{}, error)
	VisitSetExpr(expr *SetExpr) (interface{}, error)
	VisitSuperExpr(expr *SuperExpr) (interface{}, error)
	VisitThisExpr(expr *ThisExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitVarExpr(expr *VarExpr) (interface{}, error)
}

type AssignExpr struct {
	Name *token.Token
	Val  Expr
}

func NewAssignExpr(Name *token.Token, Val Expr) *AssignExpr {
	return &AssignExpr{Name, Val}
}
func (expr *AssignExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitAssignExpr(expr)
}

type BinaryExpr struct {
	Lhs Expr
	Op  *token.Token
	Rhs Expr
}

func NewBinaryExpr(Lhs Expr, Op *token.Token, Rhs Expr) *BinaryExpr {
	return &BinaryExpr{Lhs, Op, Rhs}
}
func (expr *BinaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitBinaryExpr(expr)
}

type CallExpr struct {
	Callee Expr
	Paren  *token.Token
	Args   []Expr
}

func NewCallExpr(Callee Expr, Paren *token.Token, Args []Expr) *CallExpr {
	return &CallExpr{Callee, Paren, Args}
}
func (expr *CallExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitCallExpr(expr)
}

type GetExpr struct {
	Obj  Expr
	Name *token.Token
}

func NewGetExpr(Obj Expr, Name *token.Token) *GetExpr {
	return &GetExpr{Obj, Name}
}
func (expr *GetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGetExpr(expr)
}

type GroupExpr struct {
	Expr Expr
}

func NewGroupExpr(Expr Expr) *GroupExpr {
	return &GroupExpr{Expr}
}
func (expr *GroupExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGroupExpr(expr)
}

type LiteralExpr struct {
	Val interface{}
}

func NewLiteralExpr(Val interface{}) *LiteralExpr {
	return &LiteralExpr{Val}
}
func (expr *LiteralExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLiteralExpr(expr)
}

type LogicalExpr struct {
	Lhs Expr
	Op  *token.Token
	Rhs Expr
}

func NewLogicalExpr(Lhs Expr, Op *token.Token, Rhs Expr) *LogicalExpr {
	return &LogicalExpr{Lhs, Op, Rhs}
}
func (expr *LogicalExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLogicalExpr(expr)
}

type SetExpr struct {
	Obj  Expr
	Name *token.Token
	Val  Expr
}

func NewSetExpr(Obj Expr, Name *token.Token, Val Expr) *SetExpr {
	return &SetExpr{Obj, Name, Val}
}
func (expr *SetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSetExpr(expr)
}

type SuperExpr struct {
	Keyword *token.Token
	Method  *token.Token
}

func NewSuperExpr(Keyword *token.Token, Method *token.Token) *SuperExpr {
	return &SuperExpr{Keyword, Method}
}
func (expr *SuperExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSuperExpr(expr)
}

type ThisExpr struct {
	Keyword *token.Token
}

func NewThisExpr(Keyword *token.Token) *ThisExpr {
	return &ThisExpr{Keyword}
}
func (expr *ThisExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitThisExpr(expr)
}

type UnaryExpr struct {
	Op   *token.Token
	Expr Expr
}

func NewUnaryExpr(Op *token.Token, Expr Expr) *UnaryExpr {
	return &UnaryExpr{Op, Expr}
}
func (expr *UnaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitUnaryExpr(expr)
}

type VarExpr struct {
	Name *token.Token
}

func NewVarExpr(Name *token.Token) *VarExpr {
	return &VarExpr{Name}
}
func (expr *VarExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitVarExpr(expr)
}
