/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors

Package expr provides the boolean-algebra statement language of truthtab.
It supports:
  - Variables: a letter or underscore followed by letters and digits
  - Or: + or |
  - And: * or &
  - Negation: prefix !a or postfix a' (postfix may repeat: a'')
  - Literals: true, false and unsigned integers (nonzero is true)
  - Grouping with parentheses
  - Assignment: c = a * b; at statement level, and nested as an expression
    whose value is the assigned value

Every statement ends with ';'.
*/
package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Walk visits node and its children depth-first, left to right. An Assign
// contributes only its value; its target name is not a child. If fn returns
// false the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Grouping:
		Walk(n.Inner, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Unary:
		Walk(n.Operand, fn)
	case *Assign:
		Walk(n.Value, fn)
	}
}

// Format renders node fully parenthesized with the surface operators.
// a + b * c formats as (a + (b * c)).
func Format(node Node) string {
	var sb strings.Builder
	format(&sb, node)
	return sb.String()
}

func format(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Grouping:
		format(sb, n.Inner)
	case *Binary:
		sb.WriteByte('(')
		format(sb, n.Left)
		if n.Op == TOKEN_AND {
			sb.WriteString(" * ")
		} else {
			sb.WriteString(" + ")
		}
		format(sb, n.Right)
		sb.WriteByte(')')
	case *Unary:
		if n.Op == TOKEN_POSTFIX_NOT {
			format(sb, n.Operand)
			sb.WriteByte('\'')
		} else {
			sb.WriteByte('!')
			format(sb, n.Operand)
		}
	case *Literal:
		if n.Kind == LiteralNumber {
			sb.WriteString(strconv.FormatUint(n.Number, 10))
		} else {
			sb.WriteString(strconv.FormatBool(n.Bool))
		}
	case *Variable:
		sb.WriteString(n.Name)
	case *Assign:
		sb.WriteByte('(')
		sb.WriteString(n.Name)
		sb.WriteString(" = ")
		format(sb, n.Value)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%T>", node)
	}
}

// FormatStatement renders a statement with its terminating ';'
func FormatStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case *AssignStmt:
		return s.Name + " = " + Format(s.Value) + ";"
	case *ExprStmt:
		return Format(s.Value) + ";"
	}
	return ""
}
