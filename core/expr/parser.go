/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

import (
	"errors"
	"strconv"
)

// SyntaxError reports a grammar violation. The statement that produced it
// is discarded as a whole.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// Parser parses a token sequence into statements
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a parser over tokens produced by Scan
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TOKEN_EOF {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.Pos + len(last.Value)
		}
		tokens = append(tokens, Token{Type: TOKEN_EOF, Pos: end})
	}
	return &Parser{tokens: tokens}
}

// Parse scans and parses source, returning every statement it contains
func Parse(source string) ([]Statement, []Diagnostic, error) {
	tokens, diags := Scan(source)
	stmts, err := NewParser(tokens).Parse()
	return stmts, diags, err
}

// Parse parses statements until the end of input
func (p *Parser) Parse() ([]Statement, error) {
	var stmts []Statement
	for !p.isAtEnd() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Grammar (low to high precedence):
//
//	statement  := IDENT '=' expression ';' | expression ';'
//	expression := assignment
//	assignment := term ( '=' assignment )?
//	term       := factor ( OR factor )*
//	factor     := unary ( AND unary )*
//	unary      := '!' unary | primary ( "'" )*
//	primary    := true | false | NUMBER | IDENT | '(' expression ')'

// ParseStatement parses exactly one statement
func (p *Parser) ParseStatement() (Statement, error) {
	// Assignment is only recognised at the statement boundary when the next
	// two tokens are IDENT '='. Neither is consumed by the check.
	if p.check(TOKEN_IDENT) && p.checkNext(TOKEN_EQUALS) {
		return p.parseAssignStatement()
	}
	return p.parseExprStatement()
}

func (p *Parser) parseAssignStatement() (Statement, error) {
	name := p.advance().Value
	p.advance() // '='
	value, err := p.parseExpr()
	if err != nil {
		// any failure inside the value is reported at its position as a
		// missing value
		pos := p.peek().Pos
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			pos = syntaxErr.Pos
		}
		return nil, &SyntaxError{Pos: pos, Message: "Expect value."}
	}
	if _, err := p.consume(TOKEN_SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &AssignStmt{Name: name, Value: value}, nil
}

func (p *Parser) parseExprStatement() (Statement, error) {
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TOKEN_SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Value: value}, nil
}

func (p *Parser) parseExpr() (Node, error) {
	return p.parseAssignment()
}

// parseAssignment is right-associative: a = b = c is a = (b = c).
func (p *Parser) parseAssignment() (Node, error) {
	target, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.check(TOKEN_EQUALS) {
		equals := p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		v, ok := target.(*Variable)
		if !ok {
			return nil, &SyntaxError{Pos: equals.Pos, Message: "Invalid assignment target."}
		}
		return &Assign{Name: v.Name, Value: value}, nil
	}
	return target, nil
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.check(TOKEN_OR) {
		op := p.advance().Type
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.check(TOKEN_AND) {
		op := p.advance().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.check(TOKEN_PREFIX_NOT) {
		op := p.advance().Type
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}

	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(TOKEN_POSTFIX_NOT) {
		op := p.advance().Type
		node = &Unary{Op: op, Operand: node}
	}
	return node, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case TOKEN_TRUE:
		p.advance()
		return BoolLit(true), nil

	case TOKEN_FALSE:
		p.advance()
		return BoolLit(false), nil

	case TOKEN_NUMBER:
		val, err := strconv.ParseUint(tok.Value, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.Pos, Message: "Invalid number literal."}
		}
		p.advance()
		return NumberLit(val), nil

	case TOKEN_IDENT:
		p.advance()
		return &Variable{Name: tok.Value}, nil

	case TOKEN_LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TOKEN_RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Inner: inner}, nil
	}

	return nil, &SyntaxError{Pos: tok.Pos, Message: "Expect expression."}
}

func (p *Parser) consume(typ TokenType, message string) (Token, error) {
	if !p.check(typ) {
		return Token{}, &SyntaxError{Pos: p.peek().Pos, Message: message}
	}
	return p.advance(), nil
}

func (p *Parser) check(typ TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) checkNext(typ TokenType) bool {
	if p.isAtEnd() || p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == typ
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TOKEN_EOF
}
