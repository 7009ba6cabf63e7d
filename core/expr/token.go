/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package expr

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_EOF         TokenType = iota
	TOKEN_OR                    // + or |
	TOKEN_AND                   // * or &
	TOKEN_POSTFIX_NOT           // '
	TOKEN_PREFIX_NOT            // !
	TOKEN_EQUALS                // =
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NUMBER
	TOKEN_IDENT
	TOKEN_SEMICOLON
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:         "end of input",
	TOKEN_OR:          "Or",
	TOKEN_AND:         "And",
	TOKEN_POSTFIX_NOT: "PostfixNot",
	TOKEN_PREFIX_NOT:  "PrefixNot",
	TOKEN_EQUALS:      "Equals",
	TOKEN_LPAREN:      "LeftParen",
	TOKEN_RPAREN:      "RightParen",
	TOKEN_TRUE:        "True",
	TOKEN_FALSE:       "False",
	TOKEN_NUMBER:      "Number",
	TOKEN_IDENT:       "Identifier",
	TOKEN_SEMICOLON:   "Semicolon",
}

// String returns a human-readable name for the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token. Value holds the exact matched text.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}
