/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

import (
	"fmt"
	"sort"
)

// UndefinedVariableError is returned when a Variable names a key absent from
// the bindings. The analyzer seeds every variable that is read, so seeing
// this error means a caller skipped analysis.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// Bindings maps variable names to their current boolean values. A Bindings
// value is owned by one statement evaluation and mutated in place.
type Bindings struct {
	values map[string]bool
}

// NewBindings creates an empty binding table
func NewBindings() *Bindings {
	return &Bindings{values: make(map[string]bool)}
}

// Define binds name, overwriting any prior value
func (b *Bindings) Define(name string, value bool) {
	b.values[name] = value
}

// Get returns the value bound to name and whether it is bound
func (b *Bindings) Get(name string) (bool, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is bound
func (b *Bindings) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of bound names
func (b *Bindings) Len() int {
	return len(b.values)
}

// Names returns the bound names in sorted order
func (b *Bindings) Names() []string {
	names := make([]string, 0, len(b.values))
	for name := range b.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy
func (b *Bindings) Clone() *Bindings {
	c := &Bindings{values: make(map[string]bool, len(b.values))}
	for k, v := range b.values {
		c.values[k] = v
	}
	return c
}

// Evaluate reduces node to a boolean under bindings. Assign nodes write
// their result into bindings as a side effect. Nothing is cached between
// calls.
func Evaluate(node Node, bindings *Bindings) (bool, error) {
	switch n := node.(type) {
	case *Grouping:
		return Evaluate(n.Inner, bindings)

	case *Binary:
		// Both sides are always evaluated: an Assign on the right must run
		// even when the left already decides the result.
		left, err := Evaluate(n.Left, bindings)
		if err != nil {
			return false, err
		}
		right, err := Evaluate(n.Right, bindings)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case TOKEN_OR:
			return left || right, nil
		case TOKEN_AND:
			return left && right, nil
		}
		return false, nil

	case *Unary:
		val, err := Evaluate(n.Operand, bindings)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case TOKEN_PREFIX_NOT, TOKEN_POSTFIX_NOT:
			return !val, nil
		}
		return false, nil

	case *Literal:
		return n.Truth(), nil

	case *Variable:
		val, ok := bindings.Get(n.Name)
		if !ok {
			return false, &UndefinedVariableError{Name: n.Name}
		}
		return val, nil

	case *Assign:
		val, err := Evaluate(n.Value, bindings)
		if err != nil {
			return false, err
		}
		bindings.Define(n.Name, val)
		return val, nil
	}

	return false, fmt.Errorf("unknown node type %T", node)
}
