// Package format renders a Hoshi AST as SQL.
//
// SQL produces the single-line form: top-level statements are joined by a
// space and pipelines are flattened stage by stage. Pretty produces the same
// SQL laid out one clause per line.
//
// # Pipe flattening
//
// Rendering Pipe(left, right) first renders left to a base string. An
// AGGREGATE on the right wraps the base:
//
//	FROM users |> AGGREGATE COUNT(id)   →  SELECT COUNT(id) FROM users
//	SELECT id |> AGGREGATE COUNT(id)    →  SELECT COUNT(id) FROM SELECT id
//
// Any other right stage is appended after a space. The emitter does no
// further reordering; stages must be written in an order that yields valid
// SQL.
package format

import (
	"strings"

	"github.com/leapstack-labs/hoshi/pkg/core"
)

// ColumnOrder controls how a table-qualified column is written.
type ColumnOrder int

const (
	// NameFirst writes the column name before its qualifier: id.users.
	// This is the historical Hoshi output and the default.
	NameFirst ColumnOrder = iota
	// QualifierFirst writes conventional SQL: users.id.
	QualifierFirst
)

// QualifiedColumnOrder is the order used by SQL and Pretty.
const QualifiedColumnOrder = NameFirst

func (o ColumnOrder) String() string {
	if o == QualifierFirst {
		return "qualifier-first"
	}
	return "name-first"
}

// ParseColumnOrder parses "name-first" or "qualifier-first".
func ParseColumnOrder(s string) (ColumnOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name-first":
		return NameFirst, true
	case "qualifier-first":
		return QualifierFirst, true
	}
	return NameFirst, false
}

// Options configures rendering.
type Options struct {
	ColumnOrder ColumnOrder
}

// DefaultOptions returns the options used by SQL and Pretty.
func DefaultOptions() Options {
	return Options{ColumnOrder: QualifiedColumnOrder}
}

// SQL renders a Program, Statement or Expr as single-line SQL.
func SQL(node core.Node) string {
	return SQLWith(node, DefaultOptions())
}

// SQLWith renders node with the given options.
func SQLWith(node core.Node, opts Options) string {
	e := emitter{opts: opts}
	return e.node(node)
}

// Pretty renders a Program or Statement one clause per line.
func Pretty(node core.Node) string {
	return PrettyWith(node, DefaultOptions())
}

// PrettyWith renders node one clause per line with the given options.
func PrettyWith(node core.Node, opts Options) string {
	p := newPrinter(opts)
	switch n := node.(type) {
	case *core.Program:
		p.formatProgram(n)
	case core.Statement:
		p.formatStmt(n)
	default:
		p.write(SQLWith(node, opts))
	}
	return p.String()
}
