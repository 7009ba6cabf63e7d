/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

import (
	"errors"
	"testing"
)

func parseOne(t *testing.T, source string) Statement {
	t.Helper()
	stmts, _, err := Parse(source)
	if err != nil {
		t.Fatalf("parse error for %q: %v", source, err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement for %q, got %d", source, len(stmts))
	}
	return stmts[0]
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c;", "(a + (b * c))"},
		{"a * b + c;", "((a * b) + c)"},
		{"(a + b) * c;", "((a + b) * c)"},
		{"a + b + c;", "((a + b) + c)"},
		{"a * b * c;", "((a * b) * c)"},
		{"a | b & c;", "(a + (b * c))"},
		{"!a * b;", "(!a * b)"},
		{"!!a;", "!!a"},
		{"a'';", "a''"},
		{"!a';", "!a'"},
		{"(a + b)';", "(a + b)'"},
		{"a * b + a';", "((a * b) + a')"},
		{"true + 0;", "(true + 0)"},
		{"(x = a = b);", "(x = (a = b))"},
		{"a + (d = b);", "(a + (d = b))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := parseOne(t, tt.input)
			var node Node
			switch s := stmt.(type) {
			case *ExprStmt:
				node = s.Value
			case *AssignStmt:
				t.Fatalf("expected expression statement, got assignment to %s", s.Name)
			}
			if got := Format(node); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParsePrefixNotBindsOperand(t *testing.T) {
	stmt := parseOne(t, "!a * b;")
	bin, ok := stmt.(*ExprStmt).Value.(*Binary)
	if !ok || bin.Op != TOKEN_AND {
		t.Fatalf("expected And at the root, got %s", Format(stmt.(*ExprStmt).Value))
	}
	if u, ok := bin.Left.(*Unary); !ok || u.Op != TOKEN_PREFIX_NOT {
		t.Errorf("expected prefix not on the left operand, got %T", bin.Left)
	}
}

func TestParseAssignStatement(t *testing.T) {
	stmt := parseOne(t, "c = a * b + a';")
	assign, ok := stmt.(*AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", stmt)
	}
	if assign.Name != "c" {
		t.Errorf("expected target c, got %s", assign.Name)
	}
	if got := Format(assign.Value); got != "((a * b) + a')" {
		t.Errorf("unexpected value %s", got)
	}
	if got := FormatStatement(stmt); got != "c = ((a * b) + a');" {
		t.Errorf("unexpected formatted statement %s", got)
	}
}

func TestParseAssignmentOnlyAtBoundary(t *testing.T) {
	// (c) = a is not IDENT '=' at the boundary, and a grouping is not a
	// valid target either.
	_, _, err := Parse("(c) = a;")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) || syntaxErr.Message != "Invalid assignment target." {
		t.Fatalf("expected invalid assignment target, got %v", err)
	}
}

func TestParseNestedAssignmentExpression(t *testing.T) {
	stmt := parseOne(t, "c = (d = a) * d;")
	assign := stmt.(*AssignStmt)
	bin, ok := assign.Value.(*Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", assign.Value)
	}
	group, ok := bin.Left.(*Grouping)
	if !ok {
		t.Fatalf("expected Grouping, got %T", bin.Left)
	}
	inner, ok := group.Inner.(*Assign)
	if !ok || inner.Name != "d" {
		t.Fatalf("expected nested assignment to d, got %T", group.Inner)
	}
}

func TestParseLiterals(t *testing.T) {
	stmt := parseOne(t, "c = 42;")
	lit, ok := stmt.(*AssignStmt).Value.(*Literal)
	if !ok || lit.Kind != LiteralNumber || lit.Number != 42 {
		t.Fatalf("expected number literal 42, got %#v", stmt.(*AssignStmt).Value)
	}

	stmt = parseOne(t, "c = false;")
	lit, ok = stmt.(*AssignStmt).Value.(*Literal)
	if !ok || lit.Kind != LiteralBool || lit.Bool {
		t.Fatalf("expected false literal, got %#v", stmt.(*AssignStmt).Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"a + ;", "Expect expression."},
		{"c = a", "Expect ';' after value."},
		{"a * b", "Expect ';' after expression."},
		{"(a + b;", "Expect ')' after expression."},
		{"c = (a + b;", "Expect value."},
		{"a * b = c;", "Invalid assignment target."},
		{"true = a;", "Invalid assignment target."},
		{"c = ;", "Expect value."},
		{";", "Expect expression."},
		{"99999999999999999999999;", "Invalid number literal."},
		{"c = 99999999999999999999999;", "Expect value."},
		{"c = a; d = ", "Expect value."},
		{"c = a * b = d;", "Expect value."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts, _, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %d statements", len(stmts))
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if syntaxErr.Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, syntaxErr.Message)
			}
			if stmts != nil {
				t.Errorf("expected no statements on error, got %v", stmts)
			}
		})
	}
}

func TestParseValueErrorPosition(t *testing.T) {
	_, _, err := Parse("c = a + ;")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Message != "Expect value." || syntaxErr.Pos != 8 {
		t.Errorf("expected Expect value. at 8, got %q at %d", syntaxErr.Message, syntaxErr.Pos)
	}
}

func TestParseMultipleStatements(t *testing.T) {
	stmts, _, err := Parse("c = a; d = b * c;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if stmts[1].(*AssignStmt).Name != "d" {
		t.Errorf("expected second statement to assign d")
	}
}

func TestParseEmpty(t *testing.T) {
	stmts, _, err := Parse("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 0 {
		t.Errorf("expected no statements, got %d", len(stmts))
	}
}

func TestNewParserAppendsEOF(t *testing.T) {
	p := NewParser([]Token{
		{Type: TOKEN_IDENT, Value: "a", Pos: 0},
		{Type: TOKEN_SEMICOLON, Value: ";", Pos: 1},
	})
	stmts, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(stmts) != 1 {
		t.Errorf("expected 1 statement, got %d", len(stmts))
	}
}
