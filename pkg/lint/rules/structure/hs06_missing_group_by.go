package structure

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(MissingGroupBy)
}

// MissingGroupBy flags a GROUP BY with no columns.
var MissingGroupBy = lint.RuleDef{
	ID:          "HS06",
	Name:        "structure.missing_group_by",
	Group:       "structure",
	Description: "A GROUP BY stage has no columns.",
	Severity:    core.SeverityError,
	Message:     "missing `GROUP BY` clause",
	Hint:        "add `GROUP BY` to group results correctly",
	Check:       checkMissingGroupBy,

	Rationale:   "An empty GROUP BY renders as invalid SQL.",
	GoodExample: `FROM sales |> GROUP BY region`,
}

func checkMissingGroupBy(stmt core.Statement, _ lint.Scope, _ map[string]any) []token.Range {
	group, ok := stmt.(*core.GroupByClause)
	if !ok || len(group.Columns) > 0 {
		return nil
	}
	return []token.Range{group.Span}
}
