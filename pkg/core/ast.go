package core

import "github.com/leapstack-labs/hoshi/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Range returns the byte span of the node in its Source.
	Range() token.Range
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Statement is a marker interface for pipeline stages and their compositions.
type Statement interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Program is the root of a parsed Source. Statement order is the order the
// stages were written and is semantically meaningful.
type Program struct {
	Statements []Statement
	Comments   []*token.Comment
}

// Range implements Node. An empty program has an empty range.
func (p *Program) Range() token.Range {
	if len(p.Statements) == 0 {
		return token.Range{}
	}
	return token.Merge(p.Statements[0].Range(), p.Statements[len(p.Statements)-1].Range())
}

// Ident is an identifier with its source span.
type Ident struct {
	Name string
	Span token.Range
}

// Range implements Node.
func (i *Ident) Range() token.Range { return i.Span }

// NameOf returns the identifier's name, or "" for a nil identifier.
func NameOf(i *Ident) string {
	if i == nil {
		return ""
	}
	return i.Name
}
