package format

import (
	"strings"

	"github.com/leapstack-labs/hoshi/pkg/core"
)

// emitter renders nodes to single-line SQL.
type emitter struct {
	opts Options
}

func (e emitter) node(n core.Node) string {
	switch n := n.(type) {
	case *core.Program:
		return e.program(n)
	case core.Statement:
		return e.stmt(n)
	case core.Expr:
		return e.expr(n)
	case *core.SelectExpr:
		return e.selectExpr(n)
	case *core.OrderColumn:
		return e.orderColumn(n)
	case *core.Ident:
		return n.Name
	}
	return ""
}

func (e emitter) program(p *core.Program) string {
	parts := make([]string, len(p.Statements))
	for i, stmt := range p.Statements {
		parts[i] = e.stmt(stmt)
	}
	return strings.Join(parts, " ")
}

func (e emitter) stmt(s core.Statement) string {
	switch s := s.(type) {
	case *core.PipeStmt:
		return e.pipe(s)
	case *core.SelectStmt:
		return e.selectStmt(s)
	case *core.FromClause:
		return "FROM " + core.NameOf(s.Table)
	case *core.JoinClause:
		return "JOIN " + core.NameOf(s.Table) + " ON " + e.expr(s.On)
	case *core.WhereClause:
		return "WHERE " + e.expr(s.Condition)
	case *core.GroupByClause:
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = e.column(c)
		}
		return "GROUP BY " + strings.Join(cols, ", ")
	case *core.OrderClause:
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = e.orderColumn(c)
		}
		return "ORDER BY " + strings.Join(cols, ", ")
	case *core.LimitClause:
		return e.limit(s)
	case *core.AggregateClause:
		return e.aggregate(s)
	case *core.ExprStmt:
		return e.expr(s.Expr)
	}
	return ""
}

// pipe flattens Left |> Right into one SQL string.
func (e emitter) pipe(p *core.PipeStmt) string {
	base := e.stmt(p.Left)
	if agg, ok := p.Right.(*core.AggregateClause); ok {
		return combineAggregate(e.aggregate(agg), base)
	}
	return base + " " + e.stmt(p.Right)
}

// combineAggregate wraps base in SELECT fn. A base that already starts
// with FROM is used as is; anything else becomes the FROM source.
func combineAggregate(fn, base string) string {
	if strings.HasPrefix(strings.TrimSpace(base), "FROM") {
		return "SELECT " + fn + " " + base
	}
	return "SELECT " + fn + " FROM " + base
}

func (e emitter) selectStmt(s *core.SelectStmt) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, item := range s.Expressions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.selectExpr(item))
	}
	if s.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(core.NameOf(s.From.Table))
	}
	return sb.String()
}

func (e emitter) selectExpr(s *core.SelectExpr) string {
	return e.expr(s.Expr) + alias(s.Alias)
}

func (e emitter) orderColumn(c *core.OrderColumn) string {
	return e.column(c.Column) + " " + c.Direction.String()
}

func (e emitter) limit(l *core.LimitClause) string {
	out := "LIMIT " + l.Count.Value
	if l.Offset != nil {
		out += ", " + l.Offset.Value
	}
	return out
}

func (e emitter) aggregate(a *core.AggregateClause) string {
	return a.Function.String() + "(" + e.expr(a.Argument) + ")" + alias(a.Alias)
}

func (e emitter) expr(x core.Expr) string {
	switch x := x.(type) {
	case *core.ColumnRef:
		return e.column(x)
	case *core.Literal:
		return literal(x)
	case *core.ConditionExpr:
		return e.expr(x.Left) + " " + x.Op.Symbol() + " " + e.expr(x.Right)
	case *core.FunctionCall:
		args := make([]string, len(x.Args))
		for i, arg := range x.Args {
			args[i] = e.expr(arg)
		}
		return core.NameOf(x.Name) + "(" + strings.Join(args, ", ") + ")"
	case *core.SubqueryExpr:
		return "(" + e.stmt(x.Stmt) + ")"
	}
	return ""
}

func (e emitter) column(c *core.ColumnRef) string {
	if c.Table == nil {
		return core.NameOf(c.Name)
	}
	if e.opts.ColumnOrder == QualifierFirst {
		return c.Table.Name + "." + core.NameOf(c.Name)
	}
	return core.NameOf(c.Name) + "." + c.Table.Name
}

func literal(l *core.Literal) string {
	if l.Kind == core.LiteralString {
		return "'" + strings.ReplaceAll(l.Value, "'", "''") + "'"
	}
	return l.Value
}

func alias(a *core.Ident) string {
	if a == nil {
		return ""
	}
	return " AS " + a.Name
}
