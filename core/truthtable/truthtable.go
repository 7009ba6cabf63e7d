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

// Package truthtable enumerates every assignment of an analyzed statement's
// independent variables and records the dependent variable for each.
package truthtable

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/truthtab/core/analysis"
	"github.com/google/truthtab/core/columns"
	"github.com/google/truthtab/core/expr"
	"github.com/google/truthtab/core/tables"
)

// HardVariableLimit bounds the variable count so that the 2^n rows of any
// accepted table can be held in memory
const HardVariableLimit = 24

// ErrNoInput is returned by Build for blank input
var ErrNoInput = errors.New("No input provided.")

// TooManyVariablesError is returned before any row is evaluated
type TooManyVariablesError struct {
	Count int
	Limit int
}

func (e *TooManyVariablesError) Error() string {
	return fmt.Sprintf("Too many variables: %d (limit %d).", e.Count, e.Limit)
}

// Options configures analysis and enumeration.
// MaxVariables of 0 leaves only HardVariableLimit in force.
type Options struct {
	Analysis     analysis.Options
	MaxVariables int
}

// Row is one assignment. Values follow Table.Header minus the last column.
type Row struct {
	Values []bool
	Output bool
}

// Table is a complete truth table: 2^n rows for n independent variables
type Table struct {
	Statement string
	Header    []string
	Rows      []Row
}

// Variables returns the sorted independent variable names
func (t *Table) Variables() []string {
	return t.Header[:len(t.Header)-1]
}

// Dependent returns the name of the output column
func (t *Table) Dependent() string {
	return t.Header[len(t.Header)-1]
}

// Cells returns every row as "1"/"0" strings, output last
func (t *Table) Cells() [][]string {
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		line := make([]string, 0, len(row.Values)+1)
		for _, v := range row.Values {
			line = append(line, columns.FormatBool(v))
		}
		cells[i] = append(line, columns.FormatBool(row.Output))
	}
	return cells
}

// Minterms returns the row indices whose output is true
func (t *Table) Minterms() []int {
	var m []int
	for i, row := range t.Rows {
		if row.Output {
			m = append(m, i)
		}
	}
	return m
}

// ToDataTable converts the table to columnar form for rendering
func (t *Table) ToDataTable() *tables.DataTable {
	dt := tables.NewDataTable()
	vars := t.Variables()
	for c, name := range vars {
		col := columns.NewBoolColumn(columns.NewColumnDef(name, columns.RoleInput))
		for _, row := range t.Rows {
			col.Append(row.Values[c])
		}
		dt.AddColumn(col)
	}
	out := columns.NewBoolColumn(columns.NewColumnDef(t.Dependent(), columns.RoleOutput))
	for _, row := range t.Rows {
		out.Append(row.Output)
	}
	dt.AddColumn(out)
	return dt
}

// Enumerate evaluates result.Expr once per assignment of the independent
// variables. Row t binds the lexicographically first variable to the most
// significant bit of t. After each row the output is written back under the
// dependent name, and row values are read back from the bindings so a
// nested assignment to an input is reflected in the row.
//
// result is not modified; enumeration runs against a copy of its bindings.
func Enumerate(result *analysis.Result, opts Options) (*Table, error) {
	vars := append([]string(nil), result.IndependentVars...)
	sort.Strings(vars)
	n := len(vars)

	limit := HardVariableLimit
	if opts.MaxVariables > 0 && opts.MaxVariables < limit {
		limit = opts.MaxVariables
	}
	if n > limit {
		return nil, &TooManyVariablesError{Count: n, Limit: limit}
	}

	bindings := result.Bindings.Clone()
	count := uint64(1) << uint(n)

	table := &Table{
		Header: append(append([]string(nil), vars...), result.DependentVar),
		Rows:   make([]Row, 0, count),
	}

	for t := uint64(0); t < count; t++ {
		for i := 0; i < n; i++ {
			// i counts from the end of the sorted list
			bindings.Define(vars[n-1-i], (t>>uint(i))&1 == 1)
		}

		output, err := expr.Evaluate(result.Expr, bindings)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", t, err)
		}
		bindings.Define(result.DependentVar, output)

		values := make([]bool, n)
		for i, name := range vars {
			values[i], _ = bindings.Get(name)
		}
		table.Rows = append(table.Rows, Row{Values: values, Output: output})
	}
	return table, nil
}

// Build runs the whole pipeline on one line of input: scan, parse, analyze
// and enumerate. Every statement on the line must parse; only the first is
// tabulated. Lexical diagnostics are returned even when err is non-nil.
func Build(source string, opts Options) (*Table, []expr.Diagnostic, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil, ErrNoInput
	}

	stmts, diags, err := expr.Parse(source)
	if err != nil {
		return nil, diags, err
	}
	if len(stmts) == 0 {
		// only unexpected characters on the line
		return nil, diags, ErrNoInput
	}

	result, err := analysis.Analyze(stmts[0], opts.Analysis)
	if err != nil {
		return nil, diags, err
	}

	table, err := Enumerate(result, opts)
	if err != nil {
		return nil, diags, err
	}
	table.Statement = expr.FormatStatement(stmts[0])
	return table, diags, nil
}
