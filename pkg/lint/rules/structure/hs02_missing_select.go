package structure

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(MissingSelect)
}

// MissingSelect flags a SELECT with an empty expression list.
var MissingSelect = lint.RuleDef{
	ID:          "HS02",
	Name:        "structure.missing_select",
	Group:       "structure",
	Description: "A SELECT stage has no expressions.",
	Severity:    core.SeverityError,
	Message:     "missing `SELECT` clause",
	Hint:        "ensure the query starts with `SELECT`",
	Check:       checkMissingSelect,

	Rationale:   "A SELECT without expressions renders as invalid SQL.",
	GoodExample: `SELECT name FROM users`,
}

func checkMissingSelect(stmt core.Statement, _ lint.Scope, _ map[string]any) []token.Range {
	sel, ok := stmt.(*core.SelectStmt)
	if !ok || len(sel.Expressions) > 0 {
		return nil
	}
	return []token.Range{sel.Span}
}
