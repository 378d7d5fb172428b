package parser_test

import (
	"testing"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, input string) core.Statement {
	t.Helper()
	prog, err := parser.Parse(input)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	return prog.Statements[0]
}

func TestParse_Empty(t *testing.T) {
	prog, err := parser.Parse("  -- nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
	assert.Len(t, prog.Comments, 1)
}

func TestParse_SelectInlineFrom(t *testing.T) {
	stmt := parseOne(t, "SELECT DISTINCT name, age AS years FROM users")

	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "expected *SelectStmt, got %T", stmt)
	assert.True(t, sel.Distinct)
	require.Len(t, sel.Expressions, 2)
	assert.Equal(t, "years", sel.Expressions[1].Alias.Name)
	assert.Equal(t, token.NewRange(22, 34), sel.Expressions[1].Span)

	require.NotNil(t, sel.From)
	assert.Equal(t, "users", sel.From.Table.Name)
	assert.Equal(t, token.NewRange(35, 45), sel.From.Span)
	assert.Equal(t, token.NewRange(0, 45), sel.Span)
}

func TestParse_PipeIsLeftDeep(t *testing.T) {
	stmt := parseOne(t, "FROM users |> WHERE age > 18 |> SELECT name")

	outer, ok := stmt.(*core.PipeStmt)
	require.True(t, ok)
	assert.Equal(t, token.NewRange(0, 43), outer.Span)
	assert.IsType(t, &core.SelectStmt{}, outer.Right, "the last stage is the outer right operand")

	inner, ok := outer.Left.(*core.PipeStmt)
	require.True(t, ok)
	assert.Equal(t, token.NewRange(0, 28), inner.Span)

	from, ok := inner.Left.(*core.FromClause)
	require.True(t, ok)
	assert.Equal(t, token.NewRange(0, 10), from.Span)

	where, ok := inner.Right.(*core.WhereClause)
	require.True(t, ok)
	assert.Equal(t, token.NewRange(14, 28), where.Span)
	assert.Equal(t, core.OpGt, where.Condition.Op)
	assert.Equal(t, "age", where.Condition.Left.(*core.ColumnRef).Name.Name)
	assert.Equal(t, "18", where.Condition.Right.(*core.Literal).Value)
}

func TestParse_Statements(t *testing.T) {
	prog, err := parser.Parse("SELECT a FROM t; FROM u |> LIMIT 1;")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
	assert.IsType(t, &core.SelectStmt{}, prog.Statements[0])
	assert.IsType(t, &core.PipeStmt{}, prog.Statements[1])
}

func TestParse_Comments(t *testing.T) {
	prog, err := parser.Parse("-- adults\nFROM users -- source\n|> WHERE age >= 18")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	require.Len(t, prog.Comments, 2)
	assert.Equal(t, "adults", prog.Comments[0].Body())
	assert.Equal(t, "source", prog.Comments[1].Body())
}

func TestParse_Join(t *testing.T) {
	stmt := parseOne(t, "JOIN orders ON users.id = orders.user_id")

	join, ok := stmt.(*core.JoinClause)
	require.True(t, ok)
	assert.Equal(t, core.JoinInner, join.Type)
	assert.Equal(t, "orders", join.Table.Name)

	left := join.On.Left.(*core.ColumnRef)
	assert.Equal(t, "users", left.Table.Name)
	assert.Equal(t, "id", left.Name.Name)
	assert.Equal(t, token.NewRange(15, 23), left.Span)
	assert.Equal(t, core.OpEq, join.On.Op)
}

func TestParse_GroupAndOrder(t *testing.T) {
	prog, err := parser.Parse("GROUP BY region, t.city |> ORDER BY total DESC, region")
	require.NoError(t, err)

	pipe := prog.Statements[0].(*core.PipeStmt)
	group := pipe.Left.(*core.GroupByClause)
	require.Len(t, group.Columns, 2)
	assert.Equal(t, "t", group.Columns[1].Table.Name)
	assert.Equal(t, "city", group.Columns[1].Name.Name)

	order := pipe.Right.(*core.OrderClause)
	require.Len(t, order.Columns, 2)
	assert.Equal(t, core.Desc, order.Columns[0].Direction)
	assert.Equal(t, core.Asc, order.Columns[1].Direction, "direction defaults to ASC")
}

func TestParse_Limit(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		count  string
		offset string
	}{
		{"count only", "LIMIT 10", "10", ""},
		{"comma offset", "LIMIT 10, 5", "10", "5"},
		{"offset keyword", "LIMIT 10 OFFSET 5", "10", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, ok := parseOne(t, tt.input).(*core.LimitClause)
			require.True(t, ok)
			assert.Equal(t, tt.count, limit.Count.Value)
			if tt.offset == "" {
				assert.Nil(t, limit.Offset)
			} else {
				require.NotNil(t, limit.Offset)
				assert.Equal(t, tt.offset, limit.Offset.Value)
			}
			assert.Equal(t, token.NewRange(0, len(tt.input)), limit.Span)
		})
	}
}

func TestParse_Aggregate(t *testing.T) {
	agg, ok := parseOne(t, "AGGREGATE COUNT(id) AS total").(*core.AggregateClause)
	require.True(t, ok)
	assert.Equal(t, core.AggregateFn(token.COUNT), agg.Function)
	assert.Equal(t, "COUNT", agg.Function.String())
	assert.Equal(t, "id", agg.Argument.(*core.ColumnRef).Name.Name)
	assert.Equal(t, "total", agg.Alias.Name)
	assert.Equal(t, token.NewRange(0, 28), agg.Span)
}

func TestParse_AggregateExtension(t *testing.T) {
	agg, ok := parseOne(t, "AGGREGATE MEDIAN(price)").(*core.AggregateClause)
	require.True(t, ok)
	assert.Equal(t, "MEDIAN", agg.Function.String())
}

func TestParse_AggregateSubquery(t *testing.T) {
	agg := parseOne(t, "AGGREGATE SUM((SELECT amount FROM orders))").(*core.AggregateClause)

	sub, ok := agg.Argument.(*core.SubqueryExpr)
	require.True(t, ok)
	sel, ok := sub.Stmt.(*core.SelectStmt)
	require.True(t, ok)
	assert.Equal(t, "orders", sel.From.Table.Name)
	assert.Equal(t, token.NewRange(14, 41), sub.Span)
}

func TestParse_ParenthesizedExpression(t *testing.T) {
	where := parseOne(t, "WHERE (age) = 1").(*core.WhereClause)

	sub, ok := where.Condition.Left.(*core.SubqueryExpr)
	require.True(t, ok)
	expr, ok := sub.Stmt.(*core.ExprStmt)
	require.True(t, ok)
	assert.Equal(t, "age", expr.Expr.(*core.ColumnRef).Name.Name)

	inner, grouped := sub.Grouped()
	require.True(t, grouped)
	assert.Same(t, expr.Expr, inner)

	agg := parseOne(t, "AGGREGATE COUNT((SELECT id FROM t))").(*core.AggregateClause)
	_, grouped = agg.Argument.(*core.SubqueryExpr).Grouped()
	assert.False(t, grouped)
}

func TestParse_FunctionCalls(t *testing.T) {
	sel := parseOne(t, "SELECT COUNT(id), lower(name), now()").(*core.SelectStmt)
	require.Len(t, sel.Expressions, 3)

	count := sel.Expressions[0].Expr.(*core.FunctionCall)
	assert.Equal(t, "COUNT", count.Name.Name)
	assert.Len(t, count.Args, 1)

	lower := sel.Expressions[1].Expr.(*core.FunctionCall)
	assert.Equal(t, "lower", lower.Name.Name)
	assert.Equal(t, token.NewRange(18, 29), lower.Span)

	now := sel.Expressions[2].Expr.(*core.FunctionCall)
	assert.Empty(t, now.Args)
}

func TestParse_Literals(t *testing.T) {
	where := parseOne(t, `WHERE active != true`).(*core.WhereClause)
	lit := where.Condition.Right.(*core.Literal)
	assert.Equal(t, core.LiteralBoolean, lit.Kind)
	assert.True(t, lit.Bool())
	assert.Equal(t, core.OpNotEq, where.Condition.Op)

	where = parseOne(t, `WHERE status = "OR"`).(*core.WhereClause)
	lit = where.Condition.Right.(*core.Literal)
	assert.Equal(t, core.LiteralString, lit.Kind)
	assert.Equal(t, "OR", lit.Value)
}

func TestParse_LogicalOperators(t *testing.T) {
	where := parseOne(t, "WHERE a OR b").(*core.WhereClause)
	assert.Equal(t, core.OpOr, where.Condition.Op)

	where = parseOne(t, "WHERE a AND b").(*core.WhereClause)
	assert.Equal(t, core.OpAnd, where.Condition.Op)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		message   string
		wantRange token.Range
	}{
		{"unknown stage", "HAVING x", "unexpected token `HAVING`", token.NewRange(0, 6)},
		{"missing separator", "SELECT a SELECT b", "expected `;` but found `SELECT`", token.NewRange(9, 15)},
		{"missing table", "FROM |> SELECT a", "expected `IDENT` but found `|>`", token.NewRange(5, 7)},
		{"missing ON", "JOIN t x = y", "expected `ON` but found `IDENT`", token.NewRange(7, 8)},
		{"missing BY", "GROUP region", "expected `BY` but found `IDENT`", token.NewRange(6, 12)},
		{"bad operator", "WHERE a + b", "unexpected token `+`", token.NewRange(8, 9)},
		{"non aggregate function", "AGGREGATE foo(x)", "unexpected token `IDENT`", token.NewRange(10, 13)},
		{"limit needs number", "LIMIT ten", "expected `NUMBER` but found `IDENT`", token.NewRange(6, 9)},
		{"dangling pipe", "FROM t |>", "unexpected token `EOF`", token.NewRange(9, 9)},
		{"unclosed call", "SELECT f(a", "expected `)` but found `EOF`", token.NewRange(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, prog, "no partial tree on error")

			var parseErr *parser.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.message, parseErr.Message)
			assert.Equal(t, tt.wantRange, parseErr.Range)
		})
	}
}

func TestParse_LexErrorSurfaces(t *testing.T) {
	_, err := parser.Parse("SELECT 'abc")

	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, token.NewRange(7, 11), lexErr.Range)
}

func TestAsDiagnostic(t *testing.T) {
	_, err := parser.Parse("FROM |> SELECT a")
	require.Error(t, err)

	d, ok := parser.AsDiagnostic(err)
	require.True(t, ok)
	assert.True(t, d.IsError())
	assert.Equal(t, "expected `IDENT` but found `|>`", d.Message)
	assert.Equal(t, token.NewRange(5, 7), d.Range)

	_, ok = parser.AsDiagnostic(assert.AnError)
	assert.False(t, ok)
}
