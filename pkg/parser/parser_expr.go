package parser

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// parseExpr parses:
//
//	expression → column | call | number | string | boolean | '(' statement ')'
//
// Aggregate keywords are accepted as call names so select lists can hold
// COUNT(id) and friends.
func (p *Parser) parseExpr() (core.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Type == token.IDENT:
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		isCall, err := p.check(token.LPAREN)
		if err != nil {
			return nil, err
		}
		if isCall {
			return p.parseCall(name)
		}
		return p.parseColumnRest(name)

	case token.IsAggregate(tok.Type):
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return p.parseCall(&core.Ident{Name: tok.Type.String(), Span: tok.Range})

	case tok.Type == token.STRING:
		return p.parseLiteral(core.LiteralString)
	case tok.Type == token.NUMBER:
		return p.parseLiteral(core.LiteralNumber)
	case tok.Type == token.BOOLEAN:
		return p.parseLiteral(core.LiteralBoolean)
	case tok.Type == token.LPAREN:
		return p.parseSubquery()
	default:
		return nil, p.unexpected(tok)
	}
}

// parseCondition parses: expression operator expression
func (p *Parser) parseCondition() (*core.ConditionExpr, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	opTok, err := p.next()
	if err != nil {
		return nil, err
	}
	op, ok := core.OperatorFor(opTok.Type)
	if !ok {
		return nil, p.unexpected(opTok)
	}

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &core.ConditionExpr{
		Left:  left,
		Op:    op,
		Right: right,
		Span:  token.Merge(left.Range(), right.Range()),
	}, nil
}

// parseColumn parses: identifier ['.' identifier]
func (p *Parser) parseColumn() (*core.ColumnRef, error) {
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return p.parseColumnRest(first)
}

// parseColumnRest finishes a column whose first identifier is consumed.
// In a.b, a is the table qualifier and b the column name.
func (p *Parser) parseColumnRest(first *core.Ident) (*core.ColumnRef, error) {
	qualified, err := p.match(token.DOT)
	if err != nil {
		return nil, err
	}
	if !qualified {
		return &core.ColumnRef{Name: first, Span: first.Span}, nil
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &core.ColumnRef{Table: first, Name: name, Span: p.spanFrom(first.Span)}, nil
}

// parseCall parses: '(' [expression (',' expression)*] ')' after the name.
func (p *Parser) parseCall(name *core.Ident) (*core.FunctionCall, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	call := &core.FunctionCall{Name: name}

	empty, err := p.check(token.RPAREN)
	if err != nil {
		return nil, err
	}
	for !empty {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	call.Span = p.spanFrom(name.Span)
	return call, nil
}

// parseSubquery parses '(' ... ')'. A stage keyword inside the parentheses
// starts a nested pipeline; anything else is a parenthesized expression.
func (p *Parser) parseSubquery() (*core.SubqueryExpr, error) {
	start, err := p.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var stmt core.Statement
	if isStageStart(tok.Type) {
		stmt, err = p.parsePipeline()
	} else {
		var expr core.Expr
		expr, err = p.parseExpr()
		stmt = &core.ExprStmt{Expr: expr}
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &core.SubqueryExpr{Stmt: stmt, Span: p.spanFrom(start.Range)}, nil
}

func (p *Parser) parseIdent() (*core.Ident, error) {
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &core.Ident{Name: tok.Literal, Span: tok.Range}, nil
}

func (p *Parser) parseNumber() (*core.Literal, error) {
	tok, err := p.expect(token.NUMBER)
	if err != nil {
		return nil, err
	}
	return &core.Literal{Kind: core.LiteralNumber, Value: tok.Literal, Span: tok.Range}, nil
}

func (p *Parser) parseLiteral(kind core.LiteralKind) (*core.Literal, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	return &core.Literal{Kind: kind, Value: tok.Literal, Span: tok.Range}, nil
}

// isStageStart reports whether t opens a pipeline stage.
func isStageStart(t token.TokenType) bool {
	switch t {
	case token.SELECT, token.FROM, token.JOIN, token.WHERE,
		token.GROUP, token.ORDER, token.LIMIT, token.AGGREGATE:
		return true
	}
	return false
}
