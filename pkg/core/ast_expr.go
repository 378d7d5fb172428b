package core

import "github.com/leapstack-labs/hoshi/pkg/token"

// ---------- Expression Types ----------

// ColumnRef is a column reference, optionally qualified by a table.
type ColumnRef struct {
	Table *Ident // optional qualifier
	Name  *Ident
	Span  token.Range
}

func (*ColumnRef) exprNode() {}

// Range implements Node.
func (c *ColumnRef) Range() token.Range { return c.Span }

// LiteralKind represents the type of a literal.
type LiteralKind int

// LiteralKind constants.
const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Literal is a string, number or boolean constant. Value holds the string
// contents without quotes, the number as written, or "true"/"false".
type Literal struct {
	Kind  LiteralKind
	Value string
	Span  token.Range
}

func (*Literal) exprNode() {}

// Range implements Node.
func (l *Literal) Range() token.Range { return l.Span }

// Bool returns the value of a boolean literal.
func (l *Literal) Bool() bool {
	return l.Kind == LiteralBoolean && l.Value == "true"
}

// Operator is a binary condition operator.
type Operator int

// Operators. There is no precedence: a condition holds exactly one.
const (
	OpEq Operator = iota
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
)

var operatorSymbols = [...]string{
	OpEq:    "=",
	OpNotEq: "!=",
	OpLt:    "<",
	OpGt:    ">",
	OpLtEq:  "<=",
	OpGtEq:  ">=",
	OpAnd:   "AND",
	OpOr:    "OR",
}

// Symbol returns the SQL token for the operator.
func (o Operator) Symbol() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return "?"
	}
	return operatorSymbols[o]
}

func (o Operator) String() string { return o.Symbol() }

// OperatorFor maps a token type to its operator.
func OperatorFor(t token.TokenType) (Operator, bool) {
	switch t {
	case token.EQ:
		return OpEq, true
	case token.NE:
		return OpNotEq, true
	case token.LT:
		return OpLt, true
	case token.GT:
		return OpGt, true
	case token.LE:
		return OpLtEq, true
	case token.GE:
		return OpGtEq, true
	case token.AND:
		return OpAnd, true
	case token.OR:
		return OpOr, true
	}
	return 0, false
}

// ConditionExpr is left OP right.
type ConditionExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
	Span  token.Range
}

func (*ConditionExpr) exprNode() {}

// Range implements Node.
func (c *ConditionExpr) Range() token.Range { return c.Span }

// FunctionCall is name(arg, ...).
type FunctionCall struct {
	Name *Ident
	Args []Expr
	Span token.Range
}

func (*FunctionCall) exprNode() {}

// Range implements Node.
func (f *FunctionCall) Range() token.Range { return f.Span }

// SubqueryExpr wraps a parenthesized statement. Plain grouping parentheses
// around an expression are a SubqueryExpr holding an ExprStmt.
type SubqueryExpr struct {
	Stmt Statement
	Span token.Range
}

func (*SubqueryExpr) exprNode() {}

// Range implements Node.
func (s *SubqueryExpr) Range() token.Range { return s.Span }

// Grouped returns the inner expression when s only groups an expression,
// as in (id), and reports whether it does.
func (s *SubqueryExpr) Grouped() (Expr, bool) {
	if es, ok := s.Stmt.(*ExprStmt); ok {
		return es.Expr, true
	}
	return nil, false
}
