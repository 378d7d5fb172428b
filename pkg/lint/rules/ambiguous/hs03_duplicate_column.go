package ambiguous

import (
	"slices"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(DuplicateColumn)
}

// DuplicateColumn flags a plain column selected more than once anywhere in
// the program.
var DuplicateColumn = lint.RuleDef{
	ID:          "HS03",
	Name:        "ambiguous.duplicate_column",
	Group:       "ambiguous",
	Description: "A SELECT lists a column that was already selected earlier in the program.",
	Severity:    core.SeverityWarning,
	Message:     "duplicate column",
	Hint:        "remove or rename the duplicate column",
	Check:       checkDuplicateColumn,
	ConfigKeys:  []string{"ignore"},

	Rationale: `Columns are tracked across the whole program, not per statement. Selecting
the same name twice produces ambiguous output columns for the consumer of
the generated SQL.`,
	BadExample:  `SELECT id, name FROM users; SELECT id FROM orders`,
	GoodExample: `SELECT id, name FROM users; SELECT order_id FROM orders`,
	Fix:         "Alias or drop the repeated column, or list it under the rule's `ignore` option.",
}

func checkDuplicateColumn(stmt core.Statement, scope lint.Scope, opts map[string]any) []token.Range {
	sel, ok := stmt.(*core.SelectStmt)
	if !ok {
		return nil
	}
	ignore := lint.GetStringSliceOption(opts, "ignore", nil)

	var found []token.Range
	for _, item := range sel.Expressions {
		col, ok := item.Expr.(*core.ColumnRef)
		if !ok {
			continue
		}
		name := core.NameOf(col.Name)
		if slices.Contains(ignore, name) {
			continue
		}
		if scope.HasColumn(name) {
			found = append(found, col.Span)
			continue
		}
		scope = scope.WithColumn(name)
	}
	return found
}
