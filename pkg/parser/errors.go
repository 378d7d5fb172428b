package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// LexError is a fatal lexical analysis error.
type LexError struct {
	Range   token.Range
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at %s: %s", e.Range, e.Message)
}

// ParseError is a fatal parse error. Parsing stops at the first one.
type ParseError struct {
	Range   token.Range
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Range, e.Message)
}

// AsDiagnostic converts a *LexError or *ParseError into the single Error
// diagnostic reported for a failed parse.
func AsDiagnostic(err error) (diagnostic.Diagnostic, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return diagnostic.Fatal(lexErr.Message, lexErr.Range), true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return diagnostic.Fatal(parseErr.Message, parseErr.Range), true
	}
	return diagnostic.Diagnostic{}, false
}

// Common error messages
const (
	ErrExpectedNotEqual   = "expected `!=`"
	ErrExpectedPipe       = "expected `|>`"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnexpectedChar     = "unexpected character `%c`"
	ErrExpectedToken      = "expected `%s` but found `%s`"
	ErrUnexpectedToken    = "unexpected token `%s`"
)
