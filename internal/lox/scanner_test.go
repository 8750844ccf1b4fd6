package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/lox/internal/token"
)

func scanAll(t *testing.T, src string) []*token.Token {
	t.Helper()
	toks, err := newScanner([]rune(src)).scan()
	require.NoError(t, err)
	return toks
}

func TestScannerPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){},.-+;*!=!==<<=>>=/")
	types := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.BangEqual, token.BangEqual, token.Equal, token.Less,
		token.LessEqual, token.Greater, token.GreaterEqual, token.Slash,
		token.EOF,
	}, types)
}

func TestScannerLineTracking(t *testing.T) {
	toks := scanAll(t, "var a = 1;\nvar b = 2;\n")
	var lastLine int
	for _, tok := range toks {
		if tok.Type == token.EOF {
			lastLine = tok.Line
		}
	}
	assert.Equal(t, 3, lastLine)
}

func TestScannerNumberTrailingDot(t *testing.T) {
	toks := scanAll(t, "123.")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Number, toks[0].Type)
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, token.Dot, toks[1].Type)
}

func TestScannerNumberWithFraction(t *testing.T) {
	toks := scanAll(t, "123.456")
	require.Len(t, toks, 2)
	assert.Equal(t, "123.456", toks[0].Lexeme)
}

func TestScannerStringSpansLines(t *testing.T) {
	toks := scanAll(t, "\"a\nb\" 1")
	require.Len(t, toks, 3)
	assert.Equal(t, "\"a\nb\"", toks[0].Lexeme)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScannerKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "var class fun myVar")
	assert.Equal(t, token.Var, toks[0].Type)
	assert.Equal(t, token.Class, toks[1].Type)
	assert.Equal(t, token.Fun, toks[2].Type)
	assert.Equal(t, token.Identifier, toks[3].Type)
}

func TestScannerComment(t *testing.T) {
	toks := scanAll(t, "1 // a comment\n2")
	require.Len(t, toks, 3)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
}

func TestScannerUnexpectedCharacter(t *testing.T) {
	_, err := newScanner([]rune("@")).scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected character.")
}

func TestScannerUnterminatedString(t *testing.T) {
	_, err := newScanner([]rune("\"abc")).scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}
