/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package analysis discovers the free variables of an assignment statement
// and seeds the bindings the evaluator runs against.
package analysis

import (
	"errors"
	"fmt"

	"github.com/ahrtr/gocontainer/set"
	"github.com/google/truthtab/core/expr"
)

// ErrNotAssignment is returned for a bare expression statement, which has
// no dependent variable to tabulate.
var ErrNotAssignment = errors.New("Expected Assign statement")

// SelfReferencePolicy decides what happens when the dependent variable is
// read inside its own value.
type SelfReferencePolicy int

const (
	// SelfReferencePermit excludes the dependent variable from the
	// independent set. It starts out false and each row observes the output
	// of the row before it.
	SelfReferencePermit SelfReferencePolicy = iota
	// SelfReferenceReject fails analysis with a SelfReferenceError.
	SelfReferenceReject
)

func (p SelfReferencePolicy) String() string {
	switch p {
	case SelfReferenceReject:
		return "reject"
	default:
		return "permit"
	}
}

// ParseSelfReferencePolicy maps the config spelling to a policy
func ParseSelfReferencePolicy(s string) (SelfReferencePolicy, error) {
	switch s {
	case "", "permit":
		return SelfReferencePermit, nil
	case "reject":
		return SelfReferenceReject, nil
	}
	return SelfReferencePermit, fmt.Errorf("unknown self reference policy %q (want permit or reject)", s)
}

// SelfReferenceError reports that Name is read inside its own definition.
type SelfReferenceError struct {
	Name string
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("'%s' refers to itself", e.Name)
}

// Options controls analysis
type Options struct {
	SelfReference SelfReferencePolicy
}

// Result is the input to the enumerator. IndependentVars is in discovery
// order; the enumerator sorts its own copy.
type Result struct {
	DependentVar    string
	IndependentVars []string
	Bindings        *expr.Bindings
	Expr            expr.Node
}

// Analyze walks the value of an assignment statement and records every
// variable it reads, in first-occurrence order, each bound to false.
// The target of a nested assignment is not a read and is not recorded.
func Analyze(stmt expr.Statement, opts Options) (*Result, error) {
	assign, ok := stmt.(*expr.AssignStmt)
	if !ok {
		return nil, ErrNotAssignment
	}

	result := &Result{
		DependentVar: assign.Name,
		Bindings:     expr.NewBindings(),
		Expr:         assign.Value,
	}

	seen := set.New()
	selfRef := false
	expr.Walk(assign.Value, func(n expr.Node) bool {
		v, ok := n.(*expr.Variable)
		if !ok {
			return true
		}
		if v.Name == assign.Name {
			selfRef = true
			return true
		}
		if !seen.Contains(v.Name) {
			seen.Add(v.Name)
			result.IndependentVars = append(result.IndependentVars, v.Name)
			result.Bindings.Define(v.Name, false)
		}
		return true
	})

	if selfRef {
		if opts.SelfReference == SelfReferenceReject {
			return nil, &SelfReferenceError{Name: assign.Name}
		}
		result.Bindings.Define(assign.Name, false)
	}

	return result, nil
}
