// Package lex turns Wend source text into a token stream. It operates over
// a rune slice rather than a buffered reader (unlike the character-stream
// lexer this package replaces) because number and operator lexing both need
// unbounded lookahead past the current rune, and unread-one-rune bufio
// backup can't express that cleanly.
package lex

import (
	"fmt"
	"unicode"

	"github.com/wend-lang/wendc/token"
	"github.com/wend-lang/wendc/wenderr"
)

// Lexer scans a single source buffer into tokens.
type Lexer struct {
	src []rune
	pos int
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// All scans the whole buffer and returns its tokens, or the first error
// encountered.
func (l *Lexer) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return toks, nil
		}
		tok, err := l.lexOne()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\b':
		return true
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.pos++
	}
}

func isIdentStart(r rune) bool {
	return r == '@' || unicode.IsUpper(r) || unicode.IsLower(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) lexOne() (token.Token, error) {
	start := l.pos
	r := l.src[l.pos]

	switch {
	case isIdentStart(r):
		return l.lexIdentifier(start), nil
	case r == '-' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.lexNumber(start)
	case isDigit(r):
		return l.lexNumber(start)
	case r == '\'':
		return l.lexCharacter(start)
	case r == '"':
		return l.lexString(start)
	default:
		return l.lexOperator(start)
	}
}

func (l *Lexer) lexIdentifier(start int) token.Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return token.Token{Kind: token.Identifier, Literal: string(l.src[start:l.pos]), Offset: start}
}

// lexNumber consumes an optional leading '-', an integer part (a lone '0',
// or a nonzero digit followed by more digits), and an optional '.'-led
// fractional part. A trailing '.' not followed by a digit is left
// unconsumed so the next lexOne call emits it as an Operator.
func (l *Lexer) lexNumber(start int) (token.Token, error) {
	if l.src[l.pos] == '-' {
		l.pos++
	}
	if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
		return token.Token{}, l.errf(start, "invalid number literal")
	}

	if l.src[l.pos] == '0' {
		l.pos++
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			return token.Token{}, l.errf(start, "integer literal has a leading zero")
		}
	} else {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	isDecimal := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isDecimal = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	lit := string(l.src[start:l.pos])
	if !isDecimal && lit == "-0" {
		return token.Token{}, l.errf(start, "-0 is not a valid integer literal")
	}

	kind := token.Integer
	if isDecimal {
		kind = token.Decimal
	}
	return token.Token{Kind: kind, Literal: lit, Offset: start}, nil
}

func isEscapable(r rune) bool {
	switch r {
	case 'b', 'n', 'r', 't', '\'', '"', '\\':
		return true
	}
	return false
}

// consumeEscape consumes a backslash and its following escape character.
// The backslash must already be the current rune.
func (l *Lexer) consumeEscape() error {
	backslash := l.pos
	l.pos++
	if l.pos >= len(l.src) {
		return l.errf(len(l.src), "unterminated escape sequence")
	}
	if !isEscapable(l.src[l.pos]) {
		return l.errf(backslash, "invalid escape sequence \\%c", l.src[l.pos])
	}
	l.pos++
	return nil
}

func (l *Lexer) lexCharacter(start int) (token.Token, error) {
	l.pos++ // opening '
	if l.pos >= len(l.src) {
		return token.Token{}, l.errf(len(l.src), "unterminated character literal")
	}
	if l.src[l.pos] == '\'' {
		return token.Token{}, l.errf(start, "empty character literal")
	}
	if l.src[l.pos] == '\\' {
		if err := l.consumeEscape(); err != nil {
			return token.Token{}, err
		}
	} else {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token.Token{}, l.errf(len(l.src), "unterminated character literal")
	}
	if l.src[l.pos] != '\'' {
		return token.Token{}, l.errf(l.pos, "character literal contains more than one character")
	}
	l.pos++
	return token.Token{Kind: token.Character, Literal: string(l.src[start:l.pos]), Offset: start}, nil
}

func (l *Lexer) lexString(start int) (token.Token, error) {
	l.pos++ // opening "
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, l.errf(len(l.src), "unterminated string literal")
		}
		switch l.src[l.pos] {
		case '"':
			l.pos++
			return token.Token{Kind: token.String, Literal: string(l.src[start:l.pos]), Offset: start}, nil
		case '\n':
			return token.Token{}, l.errf(l.pos, "unterminated string literal")
		case '\\':
			if err := l.consumeEscape(); err != nil {
				return token.Token{}, err
			}
		default:
			l.pos++
		}
	}
}

var twoCharOperators = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
}

func isOperatorChar(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';', ':', '.',
		'+', '-', '*', '/', '^', '<', '>', '=', '!', '&', '|':
		return true
	}
	return false
}

func (l *Lexer) lexOperator(start int) (token.Token, error) {
	if l.pos+1 < len(l.src) {
		two := string(l.src[l.pos : l.pos+2])
		if twoCharOperators[two] {
			l.pos += 2
			return token.Token{Kind: token.Operator, Literal: two, Offset: start}, nil
		}
	}
	r := l.src[l.pos]
	if !isOperatorChar(r) {
		return token.Token{}, l.errf(start, "unexpected character %q", r)
	}
	l.pos++
	return token.Token{Kind: token.Operator, Literal: string(r), Offset: start}, nil
}

func (l *Lexer) errf(offset int, format string, args ...interface{}) *wenderr.ParseError {
	return &wenderr.ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
