/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

import (
	"fmt"
	"unicode/utf8"
)

// MsgUnexpectedCharacter is reported for every character the lexer cannot classify.
const MsgUnexpectedCharacter = "Unexpected character."

// Diagnostic is a non-fatal lexical warning. The offending character
// produces no token and scanning continues after it.
type Diagnostic struct {
	Pos     int
	Char    rune
	Message string
}

// String returns the message with the character and its position
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %q at position %d", d.Message, d.Char, d.Pos)
}

// Lexer tokenizes a statement
type Lexer struct {
	input       string
	pos         int
	ch          byte
	diagnostics []Diagnostic
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// Scan tokenizes source in one pass. The returned slice always ends with a
// single TOKEN_EOF token.
func Scan(source string) ([]Token, []Diagnostic) {
	l := NewLexer(source)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			return tokens, l.Diagnostics()
		}
	}
}

// Diagnostics returns the warnings collected so far
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diagnostics
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() {
	l.advanceBy(1)
}

func (l *Lexer) advanceBy(n int) {
	l.pos += n
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.advance()
	}
}

// NextToken returns the next token from the input. Unclassifiable
// characters are recorded as diagnostics and skipped.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		if l.atEnd() {
			return Token{Type: TOKEN_EOF, Pos: l.pos}
		}

		startPos := l.pos

		if isDigit(l.ch) {
			return l.readNumber(startPos)
		}
		if isLetter(l.ch) || l.ch == '_' {
			return l.readIdent(startPos)
		}

		var typ TokenType
		switch l.ch {
		case '(':
			typ = TOKEN_LPAREN
		case ')':
			typ = TOKEN_RPAREN
		case '+', '|':
			typ = TOKEN_OR
		case '*', '&':
			typ = TOKEN_AND
		case '\'':
			typ = TOKEN_POSTFIX_NOT
		case '!':
			typ = TOKEN_PREFIX_NOT
		case ';':
			typ = TOKEN_SEMICOLON
		case '=':
			typ = TOKEN_EQUALS
		default:
			r, size := utf8.DecodeRuneInString(l.input[l.pos:])
			l.diagnostics = append(l.diagnostics, Diagnostic{
				Pos:     startPos,
				Char:    r,
				Message: MsgUnexpectedCharacter,
			})
			l.advanceBy(size)
			continue
		}
		l.advance()
		return Token{Type: typ, Value: l.input[startPos:l.pos], Pos: startPos}
	}
}

func (l *Lexer) readNumber(startPos int) Token {
	for !l.atEnd() && isDigit(l.ch) {
		l.advance()
	}
	return Token{Type: TOKEN_NUMBER, Value: l.input[startPos:l.pos], Pos: startPos}
}

// readIdent reads a letter or underscore followed by letters and digits.
func (l *Lexer) readIdent(startPos int) Token {
	l.advance()
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.advance()
	}

	value := l.input[startPos:l.pos]

	switch value {
	case "true":
		return Token{Type: TOKEN_TRUE, Value: value, Pos: startPos}
	case "false":
		return Token{Type: TOKEN_FALSE, Value: value, Pos: startPos}
	}

	return Token{Type: TOKEN_IDENT, Value: value, Pos: startPos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
