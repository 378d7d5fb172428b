// Package token defines the lexical vocabulary of the Hoshi pipe dialect.
//
// Core tokens are constants (IDs 0-999) for switch performance. Dialect
// aggregate functions beyond the ANSI five are registered dynamically via
// RegisterAggregate.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	COMMENT

	// Literals
	IDENT   // identifier
	STRING  // "text" or 'text'
	NUMBER  // 123, 45.67
	BOOLEAN // true, false

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	EQ       // =
	NE       // !=
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=
	PIPE     // |>
	DOT      // .
	COMMA    // ,
	SEMI     // ;
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]

	// Keywords (alphabetical)
	AGGREGATE
	AND
	AS
	ASC
	BY
	CASE
	DESC
	DISTINCT
	END
	FROM
	GROUP
	HAVING
	JOIN
	LIMIT
	OFFSET
	ON
	OR
	ORDER
	SELECT
	UNION
	WHERE
	WITH

	// Aggregate functions
	COUNT
	SUM
	AVG
	MIN
	MAX

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:   "IDENT",
	STRING:  "STRING",
	NUMBER:  "NUMBER",
	BOOLEAN: "BOOLEAN",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	EQ:       "=",
	NE:       "!=",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	PIPE:     "|>",
	DOT:      ".",
	COMMA:    ",",
	SEMI:     ";",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",

	AGGREGATE: "AGGREGATE",
	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BY:        "BY",
	CASE:      "CASE",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	END:       "END",
	FROM:      "FROM",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	JOIN:      "JOIN",
	LIMIT:     "LIMIT",
	OFFSET:    "OFFSET",
	ON:        "ON",
	OR:        "OR",
	ORDER:     "ORDER",
	SELECT:    "SELECT",
	UNION:     "UNION",
	WHERE:     "WHERE",
	WITH:      "WITH",

	COUNT: "COUNT",
	SUM:   "SUM",
	AVG:   "AVG",
	MIN:   "MIN",
	MAX:   "MAX",
}

// keywords maps keyword spellings to their token types. Matching is
// case-sensitive: only the upper-case spelling is a keyword.
var keywords = map[string]TokenType{
	"AGGREGATE": AGGREGATE,
	"AND":       AND,
	"AS":        AS,
	"ASC":       ASC,
	"BY":        BY,
	"CASE":      CASE,
	"DESC":      DESC,
	"DISTINCT":  DISTINCT,
	"END":       END,
	"FROM":      FROM,
	"GROUP":     GROUP,
	"HAVING":    HAVING,
	"JOIN":      JOIN,
	"LIMIT":     LIMIT,
	"OFFSET":    OFFSET,
	"ON":        ON,
	"OR":        OR,
	"ORDER":     ORDER,
	"SELECT":    SELECT,
	"UNION":     UNION,
	"WHERE":     WHERE,
	"WITH":      WITH,
	"COUNT":     COUNT,
	"SUM":       SUM,
	"AVG":       AVG,
	"MIN":       MIN,
	"MAX":       MAX,
	"true":      BOOLEAN,
	"false":     BOOLEAN,
}

// LookupIdent returns the token type for the given identifier text.
// Builtin keywords are checked first, then registered aggregate extensions.
// Anything else is IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if tok, ok := LookupDynamicKeyword(ident); ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AGGREGATE && t <= WITH
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= GE
}

// IsComparison returns true if the token type can join a condition.
func IsComparison(t TokenType) bool {
	switch t {
	case EQ, NE, LT, GT, LE, GE, AND, OR:
		return true
	}
	return false
}

// IsPunctuation returns true if the token type is punctuation.
func IsPunctuation(t TokenType) bool {
	return t >= DOT && t <= RBRACKET
}

// IsAggregate returns true if the token type names an aggregate function,
// builtin or registered.
func IsAggregate(t TokenType) bool {
	if t >= COUNT && t <= MAX {
		return true
	}
	return IsDynamic(t)
}

// Token is a lexeme with its classification and source range.
// Literal is only set for identifiers, strings, numbers, booleans and comments.
type Token struct {
	Type    TokenType
	Literal string
	Range   Range
}

// HasLiteral reports whether the token kind carries a payload.
func (t Token) HasLiteral() bool {
	switch t.Type {
	case IDENT, STRING, NUMBER, BOOLEAN, COMMENT:
		return true
	}
	return false
}

func (t Token) String() string {
	if t.HasLiteral() {
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}
