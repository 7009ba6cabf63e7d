/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

import (
	"errors"
	"testing"
)

func mustExpr(t *testing.T, source string) Node {
	t.Helper()
	stmt := parseOne(t, source)
	switch s := stmt.(type) {
	case *ExprStmt:
		return s.Value
	case *AssignStmt:
		return s.Value
	}
	t.Fatalf("unexpected statement %T", stmt)
	return nil
}

func bind(values map[string]bool) *Bindings {
	b := NewBindings()
	for k, v := range values {
		b.Define(k, v)
	}
	return b
}

// Basic functionality tests

func TestOperators(t *testing.T) {
	tests := []struct {
		expr     string
		a, b     bool
		expected bool
	}{
		{"a + b;", false, false, false},
		{"a + b;", false, true, true},
		{"a + b;", true, false, true},
		{"a | b;", true, true, true},
		{"a * b;", false, true, false},
		{"a * b;", true, false, false},
		{"a & b;", true, true, true},
		{"a';", true, false, false},
		{"a';", false, false, true},
		{"!a;", false, false, true},
		{"a'';", true, false, true},
		{"!!a;", false, false, false},
		{"!a';", true, false, true},
	}

	for _, tt := range tests {
		name := tt.expr
		if tt.a {
			name += "/a"
		}
		if tt.b {
			name += "/b"
		}
		t.Run(name, func(t *testing.T) {
			got, err := Evaluate(mustExpr(t, tt.expr), bind(map[string]bool{"a": tt.a, "b": tt.b}))
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPrecedenceEvaluation(t *testing.T) {
	// a + (b * c) with a=F b=T c=F is false; (a + b) * c would also be false,
	// so check a row where the two readings differ.
	node := mustExpr(t, "a + b * c;")
	got, err := Evaluate(node, bind(map[string]bool{"a": true, "b": false, "c": false}))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got {
		t.Errorf("expected a + (b * c) to be true for a=1 b=0 c=0")
	}

	got, err = Evaluate(node, bind(map[string]bool{"a": false, "b": true, "c": false}))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if got {
		t.Errorf("expected a + (b * c) to be false for a=0 b=1 c=0")
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		expr     string
		expected bool
	}{
		{"true;", true},
		{"false;", false},
		{"0;", false},
		{"1;", true},
		{"7;", true},
		{"0';", true},
		{"true * 0;", false},
		{"false + 3;", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(mustExpr(t, tt.expr), NewBindings())
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGroupingIsTransparent(t *testing.T) {
	b := bind(map[string]bool{"a": true})
	plain, _ := Evaluate(mustExpr(t, "a;"), b)
	grouped, _ := Evaluate(mustExpr(t, "((a));"), b)
	if plain != grouped {
		t.Errorf("grouping changed the value: %v vs %v", plain, grouped)
	}
}

func TestAssignWritesBindings(t *testing.T) {
	b := bind(map[string]bool{"a": true, "b": false})
	got, err := Evaluate(mustExpr(t, "a * (d = b');"), b)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !got {
		t.Errorf("expected true")
	}
	d, ok := b.Get("d")
	if !ok || !d {
		t.Errorf("expected d bound to true, got %v (bound=%v)", d, ok)
	}
}

func TestNoShortCircuit(t *testing.T) {
	// The right operand assigns even though the left decides the result.
	b := bind(map[string]bool{"a": true})
	if _, err := Evaluate(mustExpr(t, "a + (d = a);"), b); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !b.Has("d") {
		t.Errorf("expected d to be assigned by the right operand of +")
	}

	b = bind(map[string]bool{"a": false})
	if _, err := Evaluate(mustExpr(t, "a * (e = true);"), b); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if v, ok := b.Get("e"); !ok || !v {
		t.Errorf("expected e to be assigned by the right operand of *")
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := Evaluate(mustExpr(t, "a * z;"), bind(map[string]bool{"a": true}))
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undef.Name != "z" {
		t.Errorf("expected z, got %s", undef.Name)
	}
}

func TestBindingsClone(t *testing.T) {
	b := bind(map[string]bool{"b": true, "a": false})
	c := b.Clone()
	c.Define("a", true)
	c.Define("x", true)

	if v, _ := b.Get("a"); v {
		t.Errorf("clone mutation leaked into original")
	}
	if b.Has("x") {
		t.Errorf("clone definition leaked into original")
	}
	names := c.Names()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "x" {
		t.Errorf("expected sorted names [a b x], got %v", names)
	}
}

func TestWalk(t *testing.T) {
	node := mustExpr(t, "c = a * (d = b) + a';")
	var vars []string
	Walk(node, func(n Node) bool {
		if v, ok := n.(*Variable); ok {
			vars = append(vars, v.Name)
		}
		return true
	})
	expected := []string{"a", "b", "a"}
	if len(vars) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, vars)
	}
	for i := range vars {
		if vars[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], vars[i])
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	node := mustExpr(t, "(a + b) * c;")
	var count int
	Walk(node, func(n Node) bool {
		count++
		_, isGroup := n.(*Grouping)
		return !isGroup
	})
	// Binary(*), Grouping, Variable c
	if count != 3 {
		t.Errorf("expected 3 visited nodes, got %d", count)
	}
}
