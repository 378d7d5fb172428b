package performance

import (
	"slices"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(JoinScope)
}

// JoinScope flags a JOIN on a table no earlier FROM introduced.
var JoinScope = lint.RuleDef{
	ID:          "HS04",
	Name:        "performance.join_scope",
	Group:       "performance",
	Description: "A JOIN names a table that was not introduced by a prior FROM.",
	Severity:    core.SeverityWarning,
	Message:     "missing index on join",
	Hint:        "consider adding an index to improve performance",
	Check:       checkJoinScope,
	ConfigKeys:  []string{"known_tables"},

	Rationale: `Tables reached only through a JOIN are not known to the program, so
nothing ensures the join column is indexed.`,
	BadExample:  `FROM users |> JOIN orders ON id = user_id`,
	GoodExample: `FROM orders |> WHERE total > 0; FROM users |> JOIN orders ON id = user_id`,
	Fix:         "Introduce the table with FROM first, or list it under the rule's `known_tables` option.",
}

func checkJoinScope(stmt core.Statement, scope lint.Scope, opts map[string]any) []token.Range {
	join, ok := stmt.(*core.JoinClause)
	if !ok {
		return nil
	}
	name := core.NameOf(join.Table)
	if scope.HasTable(name) || slices.Contains(lint.GetStringSliceOption(opts, "known_tables", nil), name) {
		return nil
	}
	return []token.Range{join.Span}
}
