package performance

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(AggregateSubquery)
}

// AggregateSubquery flags an AGGREGATE whose argument is a subquery.
var AggregateSubquery = lint.RuleDef{
	ID:          "HS07",
	Name:        "performance.aggregate_subquery",
	Group:       "performance",
	Description: "An AGGREGATE stage wraps its argument in a subquery.",
	Severity:    core.SeverityWarning,
	Message:     "redundant subquery",
	Hint:        "optimize by refactoring the subquery",
	Check:       checkAggregateSubquery,

	Rationale:   "The subquery runs per row; aggregating the column directly is equivalent and cheaper.",
	BadExample:  `FROM orders |> AGGREGATE SUM((SELECT total FROM orders))`,
	GoodExample: `FROM orders |> AGGREGATE SUM(total)`,
}

func checkAggregateSubquery(stmt core.Statement, _ lint.Scope, _ map[string]any) []token.Range {
	agg, ok := stmt.(*core.AggregateClause)
	if !ok {
		return nil
	}
	sub, ok := agg.Argument.(*core.SubqueryExpr)
	if !ok {
		return nil
	}
	if _, grouped := sub.Grouped(); grouped {
		return nil
	}
	return []token.Range{agg.Span}
}
