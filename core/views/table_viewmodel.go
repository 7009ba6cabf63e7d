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

package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/safehtml"
	"github.com/google/truthtab/core/columns"
	"github.com/google/truthtab/core/query"
	"github.com/google/truthtab/core/tables"
	"github.com/google/truthtab/core/truthtable"
)

// TableViewModel contains the data from the table formatted for template consumption
type TableViewModel struct {
	Title        string
	Statement    string     // Canonical, fully parenthesised statement
	Headers      []string   // Column names, output last
	OutputIndex  int        // Index of the output column, -1 if none
	Rows         [][]string // Cell text per row
	TotalRows    int        // Rows in the full table
	TrueRows     int        // Rows whose output is 1
	Minterms     string     // e.g. "Σm(0, 1, 3)"
	Warnings     []string   // Lexical diagnostics
	FormatLinks  []Link     // Same table in the other formats
	FilterLinks  []Link     // Show all / only 1 / only 0
	Timing       []TimingEntry
	TotalElapsed string
}

// Link is an anchor in the page
type Link struct {
	Label    string
	URL      safehtml.URL
	IsActive bool
}

// TimingEntry is one row of the timing breakdown
type TimingEntry struct {
	Name     string
	Duration string
}

// LandingViewModel contains the data for the landing page
type LandingViewModel struct {
	Title    string
	Examples []Link
	Error    string
}

// Formats that the table page links to
var linkedFormats = []string{"ascii", "csv", "textproto", "json"}

// exampleStatements are offered on the landing page
var exampleStatements = []string{
	"c = a * b + a';",
	"s = a * b' + a' * b;",
	"m = a * b + a * c + b * c;",
	"y = !(a + b) * (c | d);",
}

// BuildTableViewModel builds the page model for table. dt is the table to
// display, possibly filtered; q may be nil when no links are wanted.
func BuildTableViewModel(table *truthtable.Table, dt *tables.DataTable, q *query.Query) TableViewModel {
	vm := TableViewModel{
		Title:     "Truth table for " + table.Dependent(),
		Statement: table.Statement,
		Headers:   dt.Header(),
		Rows:      dt.Rows(),
		TotalRows: len(table.Rows),
	}
	vm.OutputIndex = -1
	for i, col := range dt.Columns() {
		if col.ColumnDef().Role() == columns.RoleOutput {
			vm.OutputIndex = i
		}
	}

	minterms := table.Minterms()
	vm.TrueRows = len(minterms)
	vm.Minterms = FormatMinterms(minterms)

	if q != nil {
		for _, f := range linkedFormats {
			vm.FormatLinks = append(vm.FormatLinks, Link{Label: f, URL: q.WithFormat(f)})
		}
		vm.FilterLinks = []Link{
			{Label: "all", URL: q.WithOnly(""), IsActive: q.Only == ""},
			{Label: "only 1", URL: q.WithOnly("1"), IsActive: q.Only == "1"},
			{Label: "only 0", URL: q.WithOnly("0"), IsActive: q.Only == "0"},
		}
	}
	return vm
}

// FormatMinterms renders row indices as a sum of minterms
func FormatMinterms(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "Σm(" + strings.Join(parts, ", ") + ")"
}

// BuildLandingViewModel builds the landing page model. errMsg is shown
// above the form when non-empty.
func BuildLandingViewModel(errMsg string) LandingViewModel {
	vm := LandingViewModel{
		Title: "truthtab",
		Error: errMsg,
	}
	for _, s := range exampleStatements {
		q := &query.Query{Path: "/table", Statement: s}
		vm.Examples = append(vm.Examples, Link{Label: s, URL: q.ToSafeURL()})
	}
	return vm
}

// FormatDuration renders d in milliseconds with microsecond precision
func FormatDuration(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Microseconds())/1000, 'f', 3, 64) + " ms"
}
