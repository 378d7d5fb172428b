// Package parser turns Hoshi pipe queries into a core.Program.
//
// # Usage
//
//	prog, err := parser.Parse("FROM users |> WHERE age > 18 |> SELECT name")
//	if err != nil {
//	    // *LexError or *ParseError, both carrying a token.Range
//	}
//
// # Grammar Overview
//
// The parser is recursive descent with one token of lookahead:
//
//	program   → pipeline ((';') pipeline)* [';']
//	pipeline  → stage ('|>' stage)*
//	stage     → select | from | join | where | group_by | order_by | limit | aggregate
//
// A pipeline A |> B |> C becomes the left-deep Pipe(Pipe(A, B), C).
// See parser_stmt.go and parser_expr.go for the per-stage rules.
//
// Parsing is fail-fast: the first lexical or syntax error is returned and
// no partial tree is produced.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Parser parses Hoshi source into an AST.
type Parser struct {
	lexer    *Lexer
	last     token.Range // range of the last consumed token
	comments []*token.Comment
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// Parse parses input into a Program.
func Parse(input string) (*core.Program, error) {
	return NewParser(input).ParseProgram()
}

// ParseSource parses the raw text of src.
func ParseSource(src *token.Source) (*core.Program, error) {
	return Parse(src.Raw)
}

// ParseProgram parses statements until end of input. Stages joined by |>
// form one statement; statements are separated by ';'.
func (p *Parser) ParseProgram() (*core.Program, error) {
	prog := &core.Program{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			break
		}

		stmt, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)

		if tok, err = p.peek(); err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			break
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
	}
	prog.Comments = p.comments
	return prog, nil
}

// parsePipeline parses stage ('|>' stage)* into a left-deep chain.
func (p *Parser) parsePipeline() (core.Statement, error) {
	left, err := p.parseStage()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.match(token.PIPE)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := p.parseStage()
		if err != nil {
			return nil, err
		}
		left = &core.PipeStmt{
			Left:  left,
			Right: right,
			Span:  token.Merge(left.Range(), right.Range()),
		}
	}
}

// parseStage dispatches on the keyword that opens a stage.
func (p *Parser) parseStage() (core.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.SELECT:
		return p.parseSelect()
	case token.FROM:
		return p.parseFrom()
	case token.JOIN:
		return p.parseJoin()
	case token.WHERE:
		return p.parseWhere()
	case token.GROUP:
		return p.parseGroupBy()
	case token.ORDER:
		return p.parseOrderBy()
	case token.LIMIT:
		return p.parseLimit()
	case token.AGGREGATE:
		return p.parseAggregate()
	default:
		return nil, p.unexpected(tok)
	}
}

// ---------- Token Helpers ----------

// peek returns the next significant token. Comments in front of it are
// consumed and collected.
func (p *Parser) peek() (token.Token, error) {
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return tok, err
		}
		if tok.Type != token.COMMENT {
			return tok, nil
		}
		if _, err := p.lexer.Next(); err != nil {
			return tok, err
		}
		p.comments = append(p.comments, &token.Comment{Text: tok.Literal, Range: tok.Range})
	}
}

// next consumes the next significant token.
func (p *Parser) next() (token.Token, error) {
	if _, err := p.peek(); err != nil {
		return token.Token{}, err
	}
	tok, err := p.lexer.Next()
	if err != nil {
		return tok, err
	}
	p.last = tok.Range
	return tok, nil
}

// check reports whether the next token is of the given type.
func (p *Parser) check(t token.TokenType) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.Type == t, nil
}

// match consumes the next token if it is of the given type.
func (p *Parser) match(t token.TokenType) (bool, error) {
	ok, err := p.check(t)
	if err != nil || !ok {
		return false, err
	}
	_, err = p.next()
	return err == nil, err
}

// expect consumes the next token, failing if it is not of type t.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != t {
		return tok, &ParseError{
			Range:   tok.Range,
			Message: fmt.Sprintf(ErrExpectedToken, t, tok.Type),
		}
	}
	return tok, nil
}

// unexpected builds the error for a token no rule accepts.
func (p *Parser) unexpected(tok token.Token) error {
	return &ParseError{
		Range:   tok.Range,
		Message: fmt.Sprintf(ErrUnexpectedToken, tok.Type),
	}
}

// spanFrom returns the range from start to the last consumed token.
func (p *Parser) spanFrom(start token.Range) token.Range {
	return token.Merge(start, p.last)
}
