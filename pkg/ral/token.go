// Package ral provides parsing and execution for RAL, the small relational
// algebra language the engine speaks: statements compile to operator trees
// and run against a catalog of named relations.
package ral

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT  // identifiers: relation names, attribute names
	TOKEN_INT    // integer literals
	TOKEN_STRING // string literals 'hello'

	// Operators and delimiters
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_STAR      // *
	TOKEN_EQ        // =
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_LE        // <=
	TOKEN_GT        // >
	TOKEN_GE        // >=

	// Keywords
	TOKEN_CREATE
	TOKEN_RELATION
	TOKEN_RELATIONS
	TOKEN_DROP
	TOKEN_INSERT
	TOKEN_INTO
	TOKEN_VALUES
	TOKEN_PROJECT
	TOKEN_RESTRICT
	TOKEN_FROM
	TOKEN_WHERE
	TOKEN_AND
	TOKEN_OR
	TOKEN_PRIMARY
	TOKEN_KEY
	TOKEN_INT_TYPE
	TOKEN_STR_TYPE
	TOKEN_SHOW
	TOKEN_DESCRIBE
)

var keywords = map[string]TokenType{
	"CREATE":    TOKEN_CREATE,
	"RELATION":  TOKEN_RELATION,
	"RELATIONS": TOKEN_RELATIONS,
	"DROP":      TOKEN_DROP,
	"INSERT":    TOKEN_INSERT,
	"INTO":      TOKEN_INTO,
	"VALUES":    TOKEN_VALUES,
	"PROJECT":   TOKEN_PROJECT,
	"RESTRICT":  TOKEN_RESTRICT,
	"FROM":      TOKEN_FROM,
	"WHERE":     TOKEN_WHERE,
	"AND":       TOKEN_AND,
	"OR":        TOKEN_OR,
	"PRIMARY":   TOKEN_PRIMARY,
	"KEY":       TOKEN_KEY,
	"INT":       TOKEN_INT_TYPE,
	"INTEGER":   TOKEN_INT_TYPE,
	"STR":       TOKEN_STR_TYPE,
	"STRING":    TOKEN_STR_TYPE,
	"TEXT":      TOKEN_STR_TYPE,
	"SHOW":      TOKEN_SHOW,
	"DESCRIBE":  TOKEN_DESCRIBE,
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}
