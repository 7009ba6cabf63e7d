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

package tables

import (
	"fmt"

	"github.com/google/truthtab/core/columns"
)

// DataTable is a column-ordered table of boolean columns. The last column
// added with RoleOutput is the output column.
type DataTable struct {
	columns []*columns.BoolColumn
}

func NewDataTable() *DataTable {
	return &DataTable{}
}

// AddColumn appends col. Columns keep insertion order.
func (dt *DataTable) AddColumn(col *columns.BoolColumn) {
	dt.columns = append(dt.columns, col)
}

func (dt *DataTable) Columns() []*columns.BoolColumn {
	return dt.columns
}

// OutputColumn returns the output column, or nil if there is none
func (dt *DataTable) OutputColumn() *columns.BoolColumn {
	for i := len(dt.columns) - 1; i >= 0; i-- {
		if dt.columns[i].ColumnDef().IsOutput() {
			return dt.columns[i]
		}
	}
	return nil
}

// Header returns the column names in order
func (dt *DataTable) Header() []string {
	header := make([]string, len(dt.columns))
	for i, col := range dt.columns {
		header[i] = col.ColumnDef().Name()
	}
	return header
}

// Length returns the number of rows
func (dt *DataTable) Length() int {
	if len(dt.columns) == 0 {
		return 0
	}
	return dt.columns[0].Length()
}

// Row returns the cell text of row i
func (dt *DataTable) Row(i int) ([]string, error) {
	row := make([]string, len(dt.columns))
	for c, col := range dt.columns {
		s, err := col.GetString(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.ColumnDef().Name(), err)
		}
		row[c] = s
	}
	return row, nil
}

// Rows returns the cell text of every row
func (dt *DataTable) Rows() [][]string {
	rows := make([][]string, dt.Length())
	for i := range rows {
		// columns are filled in lockstep, so an index below Length is valid
		rows[i], _ = dt.Row(i)
	}
	return rows
}

// FilterRows returns a new table holding only the rows whose output equals
// want. The row order is preserved.
func (dt *DataTable) FilterRows(want bool) *DataTable {
	out := dt.OutputColumn()
	if out == nil {
		return dt
	}
	keep := out.Filter(func(v bool) bool { return v == want })

	filtered := NewDataTable()
	for _, col := range dt.columns {
		nc := columns.NewBoolColumn(col.ColumnDef())
		for _, i := range keep {
			v, _ := col.GetValue(uint32(i))
			nc.Append(v)
		}
		filtered.AddColumn(nc)
	}
	return filtered
}
