package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) ([]Stmt, error) {
	t.Helper()
	toks, err := newScanner([]rune(src)).scan()
	require.NoError(t, err)
	return newParser(toks).parseProgram()
}

func TestParserExpressionStatement(t *testing.T) {
	stmts, err := parseSource(t, "1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ExprStmt)
	require.True(t, ok)

	bin, ok := exprStmt.Expr.(*BinaryExpr)
	require.True(t, ok)
	lit, ok := bin.Lhs.(*LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Val)

	rhs, ok := bin.Rhs.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, 2.0, rhs.Lhs.(*LiteralExpr).Val)
	assert.Equal(t, 3.0, rhs.Rhs.(*LiteralExpr).Val)
}

func TestParserForDesugarsToWhile(t *testing.T) {
	stmts, err := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)

	_, isVar := outer.Stmts[0].(*VarStmt)
	assert.True(t, isVar)

	whileStmt, ok := outer.Stmts[1].(*WhileStmt)
	require.True(t, ok)

	body, ok := whileStmt.Body.(*BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, isPrint := body.Stmts[0].(*PrintStmt)
	assert.True(t, isPrint)
	_, isInc := body.Stmts[1].(*ExprStmt)
	assert.True(t, isInc)
}

func TestParserInvalidAssignmentTargetReportsNoThrow(t *testing.T) {
	stmts, err := parseSource(t, "1 = 2; print 3;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
	require.Len(t, stmts, 2)
}

func TestParserMissingSemicolonSynchronizes(t *testing.T) {
	stmts, err := parseSource(t, "var a = 1\nvar b = 2;")
	require.Error(t, err)
	require.Len(t, stmts, 1)
	varStmt, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "b", varStmt.Name.Lexeme)
}

func TestParserClassWithSuperclass(t *testing.T) {
	stmts, err := parseSource(t, "class B < A { greet() { return 1; } }")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	cls, ok := stmts[0].(*ClassStmt)
	require.True(t, ok)
	require.NotNil(t, cls.Super)
	assert.Equal(t, "A", cls.Super.Name.Lexeme)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "greet", cls.Methods[0].Name.Lexeme)
}
