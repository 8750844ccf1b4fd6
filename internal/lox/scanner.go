package lox

import (
	"strings"

	"github.com/sirupsen/logrus"

	gloxErrors "github.com/letung3105/lox/internal/errors"
	"github.com/letung3105/lox/internal/token"
)

// scanner turns source text into a flat token stream, tracking line numbers
// as it goes. It halts at the first unrecognized character or unterminated
// string, per spec 4.1.
type scanner struct {
	source  []rune
	tokens  []*token.Token
	start   int
	current int
	line    int
	log     *logrus.Entry
}

func newScanner(source []rune) *scanner {
	return &scanner{
		source: source,
		line:   1,
		log:    moduleLog.WithField("stage", "scan"),
	}
}

// scan runs the scanner to completion, returning the token stream (always
// terminated with an EOF token) or the first diagnostic encountered.
func (s *scanner) scan() ([]*token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", s.line))
	s.log.WithField("count", len(s.tokens)).Debug("scan complete")
	return s.tokens, nil
}

func (s *scanner) scanToken() error {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(s.ifMatch('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.ifMatch('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.ifMatch('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.ifMatch('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		s.line++
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			return gloxErrors.NewScanError(s.line, "Unexpected character.")
		}
	}
	return nil
}

func (s *scanner) scanString() error {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		return gloxErrors.NewScanError(s.line, "Unterminated string.")
	}
	// the closing quote
	s.advance()
	s.addToken(token.String)
	return nil
}

func (s *scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(token.Number)
}

func (s *scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := string(s.source[s.start:s.current])
	typ, isKeyword := token.Keywords[text]
	if !isKeyword {
		typ = token.Identifier
	}
	s.addToken(typ)
}

func (s *scanner) addToken(typ token.Type) {
	lexeme := string(s.source[s.start:s.current])
	s.tokens = append(s.tokens, token.New(typ, lexeme, s.line))
}

func (s *scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *scanner) ifMatch(expected rune, whenMatch, whenNot token.Type) token.Type {
	if s.match(expected) {
		return whenMatch
	}
	return whenNot
}

func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}

// tokenString renders a token the way the scanner's stand-alone debug mode
// printed it historically: "TYPE lexeme".
func tokenString(tok *token.Token) string {
	var b strings.Builder
	b.WriteString(tok.Type.String())
	b.WriteByte(' ')
	b.WriteString(tok.Lexeme)
	return b.String()
}
