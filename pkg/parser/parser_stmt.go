package parser

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// parseSelect parses:
//
//	SELECT [DISTINCT] select_expr (',' select_expr)* [FROM identifier]
func (p *Parser) parseSelect() (*core.SelectStmt, error) {
	start, err := p.expect(token.SELECT)
	if err != nil {
		return nil, err
	}

	stmt := &core.SelectStmt{}
	if stmt.Distinct, err = p.match(token.DISTINCT); err != nil {
		return nil, err
	}

	for {
		expr, err := p.parseSelectExpr()
		if err != nil {
			return nil, err
		}
		stmt.Expressions = append(stmt.Expressions, expr)

		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	// FROM directly after the select list belongs to this statement.
	inline, err := p.check(token.FROM)
	if err != nil {
		return nil, err
	}
	if inline {
		if stmt.From, err = p.parseFrom(); err != nil {
			return nil, err
		}
	}

	stmt.Span = p.spanFrom(start.Range)
	return stmt, nil
}

// parseSelectExpr parses: expression [AS identifier]
func (p *Parser) parseSelectExpr() (*core.SelectExpr, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	item := &core.SelectExpr{Expr: expr}
	if item.Alias, err = p.parseAlias(); err != nil {
		return nil, err
	}
	item.Span = p.spanFrom(expr.Range())
	return item, nil
}

// parseAlias parses an optional AS identifier.
func (p *Parser) parseAlias() (*core.Ident, error) {
	ok, err := p.match(token.AS)
	if err != nil || !ok {
		return nil, err
	}
	return p.parseIdent()
}

// parseFrom parses: FROM identifier
func (p *Parser) parseFrom() (*core.FromClause, error) {
	start, err := p.expect(token.FROM)
	if err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &core.FromClause{Table: table, Span: p.spanFrom(start.Range)}, nil
}

// parseJoin parses: JOIN identifier ON condition
func (p *Parser) parseJoin() (*core.JoinClause, error) {
	start, err := p.expect(token.JOIN)
	if err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ON); err != nil {
		return nil, err
	}
	on, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	return &core.JoinClause{
		Type:  core.JoinInner,
		Table: table,
		On:    on,
		Span:  p.spanFrom(start.Range),
	}, nil
}

// parseWhere parses: WHERE condition
func (p *Parser) parseWhere() (*core.WhereClause, error) {
	start, err := p.expect(token.WHERE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	return &core.WhereClause{Condition: cond, Span: p.spanFrom(start.Range)}, nil
}

// parseGroupBy parses: GROUP BY column (',' column)*
func (p *Parser) parseGroupBy() (*core.GroupByClause, error) {
	start, err := p.expect(token.GROUP)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BY); err != nil {
		return nil, err
	}

	clause := &core.GroupByClause{}
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		clause.Columns = append(clause.Columns, col)

		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	clause.Span = p.spanFrom(start.Range)
	return clause, nil
}

// parseOrderBy parses: ORDER BY column [ASC|DESC] (',' column [ASC|DESC])*
func (p *Parser) parseOrderBy() (*core.OrderClause, error) {
	start, err := p.expect(token.ORDER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BY); err != nil {
		return nil, err
	}

	clause := &core.OrderClause{}
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		item := &core.OrderColumn{Column: col, Direction: core.Asc}

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case token.ASC:
			_, err = p.next()
		case token.DESC:
			item.Direction = core.Desc
			_, err = p.next()
		}
		if err != nil {
			return nil, err
		}
		item.Span = p.spanFrom(col.Span)
		clause.Columns = append(clause.Columns, item)

		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	clause.Span = p.spanFrom(start.Range)
	return clause, nil
}

// parseLimit parses: LIMIT number [(',' | OFFSET) number]
func (p *Parser) parseLimit() (*core.LimitClause, error) {
	start, err := p.expect(token.LIMIT)
	if err != nil {
		return nil, err
	}
	clause := &core.LimitClause{}
	if clause.Count, err = p.parseNumber(); err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.COMMA || tok.Type == token.OFFSET {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		if clause.Offset, err = p.parseNumber(); err != nil {
			return nil, err
		}
	}
	clause.Span = p.spanFrom(start.Range)
	return clause, nil
}

// parseAggregate parses: AGGREGATE agg_fn '(' expression ')' [AS identifier]
func (p *Parser) parseAggregate() (*core.AggregateClause, error) {
	start, err := p.expect(token.AGGREGATE)
	if err != nil {
		return nil, err
	}

	fn, err := p.next()
	if err != nil {
		return nil, err
	}
	if !token.IsAggregate(fn.Type) {
		return nil, p.unexpected(fn)
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	clause := &core.AggregateClause{Function: core.AggregateFn(fn.Type), Argument: arg}
	if clause.Alias, err = p.parseAlias(); err != nil {
		return nil, err
	}
	clause.Span = p.spanFrom(start.Range)
	return clause, nil
}
