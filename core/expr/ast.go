/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

// Node is the interface for all expression nodes. The set of nodes is
// closed: only the types in this file implement it.
type Node interface {
	node()
}

// Grouping is a parenthesized sub-expression
type Grouping struct {
	Inner Node
}

func (n *Grouping) node() {}

// Binary is an Or or And operation. Op is TOKEN_OR or TOKEN_AND.
type Binary struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *Binary) node() {}

// Unary is a negation. Op is TOKEN_PREFIX_NOT or TOKEN_POSTFIX_NOT.
type Unary struct {
	Op      TokenType
	Operand Node
}

func (n *Unary) node() {}

// LiteralKind tags the payload of a Literal
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralNumber
)

// Literal is a boolean or unsigned integer constant
type Literal struct {
	Kind   LiteralKind
	Bool   bool
	Number uint64
}

func (n *Literal) node() {}

// BoolLit returns a boolean literal node
func BoolLit(b bool) *Literal {
	return &Literal{Kind: LiteralBool, Bool: b}
}

// NumberLit returns a number literal node
func NumberLit(n uint64) *Literal {
	return &Literal{Kind: LiteralNumber, Number: n}
}

// Truth returns the literal's boolean value; any nonzero number is true.
func (n *Literal) Truth() bool {
	if n.Kind == LiteralNumber {
		return n.Number != 0
	}
	return n.Bool
}

// Variable is a reference to a named variable
type Variable struct {
	Name string
}

func (n *Variable) node() {}

// Assign writes the value of Value into Name and yields it
type Assign struct {
	Name  string
	Value Node
}

func (n *Assign) node() {}

// Statement is the interface for top-level statements
type Statement interface {
	stmt()
}

// AssignStmt is `name = value;` at statement level
type AssignStmt struct {
	Name  string
	Value Node
}

func (s *AssignStmt) stmt() {}

// ExprStmt is a bare `expression;`
type ExprStmt struct {
	Value Node
}

func (s *ExprStmt) stmt() {}
