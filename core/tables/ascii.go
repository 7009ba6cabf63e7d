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
	"strings"
	"unicode/utf8"
)

// ToAscii returns the table with ASCII borders, the header as the first row
// and a separator line between every row:
//
//	+---+---+---+
//	| a | b | c |
//	+---+---+---+
//	| 0 | 0 | 1 |
//	+---+---+---+
func (dt *DataTable) ToAscii() string {
	return dt.ToAsciiStyled(nil)
}

// ToAsciiStyled is ToAscii with header cells passed through style after
// padding, so escape sequences do not disturb the column widths.
func (dt *DataTable) ToAsciiStyled(style func(string) string) string {
	header := dt.Header()
	rows := dt.Rows()
	colWidths := calculateColumnWidths(header, rows)

	var sb strings.Builder
	separator := separatorLine(colWidths)

	sb.WriteString(separator)
	writeRow(&sb, header, colWidths, style)
	sb.WriteString(separator)
	for _, row := range rows {
		writeRow(&sb, row, colWidths, nil)
		sb.WriteString(separator)
	}
	return sb.String()
}

func separatorLine(colWidths []int) string {
	var sb strings.Builder
	for _, w := range colWidths {
		sb.WriteString("+")
		sb.WriteString(strings.Repeat("-", w+2))
	}
	sb.WriteString("+\n")
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, colWidths []int, style func(string) string) {
	for col, cell := range cells {
		padded := cell + strings.Repeat(" ", colWidths[col]-utf8.RuneCountInString(cell))
		if style != nil {
			padded = style(padded)
		}
		sb.WriteString("| ")
		sb.WriteString(padded)
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
}

// calculateColumnWidths calculates the width needed for each column
func calculateColumnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))

	// Set minimum width to 1
	for i := range widths {
		widths[i] = 1
	}

	for i, name := range header {
		if n := utf8.RuneCountInString(name); n > widths[i] {
			widths[i] = n
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}
