package core

import "github.com/leapstack-labs/hoshi/pkg/token"

// ---------- Statement Types ----------

// PipeStmt chains two stages: Left |> Right. A chain A |> B |> C is
// left-deep: Pipe(Pipe(A, B), C).
type PipeStmt struct {
	Left  Statement
	Right Statement
	Span  token.Range
}

func (*PipeStmt) stmtNode() {}

// Range implements Node.
func (p *PipeStmt) Range() token.Range { return p.Span }

// SelectStmt is SELECT [DISTINCT] expr, ... [FROM table].
type SelectStmt struct {
	Distinct    bool
	Expressions []*SelectExpr
	// From is set only when FROM directly follows the select list.
	From *FromClause
	Span token.Range
}

func (*SelectStmt) stmtNode() {}

// Range implements Node.
func (s *SelectStmt) Range() token.Range { return s.Span }

// SelectExpr is one item of a select list.
type SelectExpr struct {
	Expr  Expr
	Alias *Ident
	Span  token.Range
}

// Range implements Node.
func (s *SelectExpr) Range() token.Range { return s.Span }

// FromClause is FROM table. It is a stage of its own and may also be
// attached inline to a SelectStmt.
type FromClause struct {
	Table *Ident
	Span  token.Range
}

func (*FromClause) stmtNode() {}

// Range implements Node.
func (f *FromClause) Range() token.Range { return f.Span }

// JoinType represents the type of join.
type JoinType string

// JoinInner is the only join the grammar produces.
const JoinInner JoinType = "INNER"

// JoinClause is JOIN table ON condition.
type JoinClause struct {
	Type  JoinType
	Table *Ident
	On    *ConditionExpr
	Span  token.Range
}

func (*JoinClause) stmtNode() {}

// Range implements Node.
func (j *JoinClause) Range() token.Range { return j.Span }

// WhereClause is WHERE condition.
type WhereClause struct {
	Condition *ConditionExpr
	Span      token.Range
}

func (*WhereClause) stmtNode() {}

// Range implements Node.
func (w *WhereClause) Range() token.Range { return w.Span }

// GroupByClause is GROUP BY column, ....
type GroupByClause struct {
	Columns []*ColumnRef
	Span    token.Range
}

func (*GroupByClause) stmtNode() {}

// Range implements Node.
func (g *GroupByClause) Range() token.Range { return g.Span }

// OrderDirection is ASC or DESC.
type OrderDirection int

// Order directions. Asc is the default.
const (
	Asc OrderDirection = iota
	Desc
)

func (d OrderDirection) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// OrderColumn is one ORDER BY item.
type OrderColumn struct {
	Column    *ColumnRef
	Direction OrderDirection
	Span      token.Range
}

// Range implements Node.
func (o *OrderColumn) Range() token.Range { return o.Span }

// OrderClause is ORDER BY column [ASC|DESC], ....
type OrderClause struct {
	Columns []*OrderColumn
	Span    token.Range
}

func (*OrderClause) stmtNode() {}

// Range implements Node.
func (o *OrderClause) Range() token.Range { return o.Span }

// LimitClause is LIMIT count [, offset].
type LimitClause struct {
	Count  *Literal
	Offset *Literal // nil when absent
	Span   token.Range
}

func (*LimitClause) stmtNode() {}

// Range implements Node.
func (l *LimitClause) Range() token.Range { return l.Span }

// AggregateClause is AGGREGATE FN(arg) [AS alias].
type AggregateClause struct {
	Function AggregateFn
	Argument Expr
	Alias    *Ident
	Span     token.Range
}

func (*AggregateClause) stmtNode() {}

// Range implements Node.
func (a *AggregateClause) Range() token.Range { return a.Span }

// AggregateFn identifies an aggregate function by its keyword token.
type AggregateFn token.TokenType

// String returns the function's SQL spelling.
func (f AggregateFn) String() string {
	return token.TokenType(f).String()
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// Range implements Node.
func (e *ExprStmt) Range() token.Range {
	if e.Expr == nil {
		return token.Range{}
	}
	return e.Expr.Range()
}
