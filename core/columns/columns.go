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

package columns

// ColumnRole distinguishes input columns from the computed output column
type ColumnRole int

const (
	RoleInput ColumnRole = iota
	RoleOutput
)

type ColumnDef struct {
	name string // a variable name from the statement
	role ColumnRole
}

// NewColumnDef creates a new ColumnDef with the given name and role
func NewColumnDef(name string, role ColumnRole) *ColumnDef {
	return &ColumnDef{
		name: name,
		role: role,
	}
}

func (cd *ColumnDef) Name() string {
	return cd.name
}

func (cd *ColumnDef) Role() ColumnRole {
	return cd.role
}

func (cd *ColumnDef) IsOutput() bool {
	return cd.role == RoleOutput
}
