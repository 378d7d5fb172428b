package performance

import (
	"strings"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// OR detection modes.
const (
	ModeStructural = "structural"
	ModeTextual    = "textual"
)

func init() {
	lint.Register(OrCondition)
}

// OrCondition flags WHERE conditions that use OR.
var OrCondition = lint.RuleDef{
	ID:          "HS05",
	Name:        "performance.or_condition",
	Group:       "performance",
	Description: "A WHERE condition uses OR, which defeats index use.",
	Severity:    core.SeverityError,
	Message:     "unsupported operator",
	Hint:        "use supported operators like `=`, `<`, `>`",
	Check:       checkOrCondition,
	ConfigKeys:  []string{"mode"},

	Rationale: `Most engines cannot use a single index to satisfy an OR across columns.
Prefer AND or split the query.`,
	BadExample:  `FROM users |> WHERE active OR admin`,
	GoodExample: `FROM users |> WHERE active = true`,
	Fix: `Rewrite the condition without OR. With mode "textual" the rule searches
the rendered condition for " OR ", which also matches string literals.`,
}

func checkOrCondition(stmt core.Statement, _ lint.Scope, opts map[string]any) []token.Range {
	where, ok := stmt.(*core.WhereClause)
	if !ok || where.Condition == nil {
		return nil
	}

	var found bool
	if lint.GetStringOption(opts, "mode", ModeStructural) == ModeTextual {
		found = strings.Contains(format.SQL(where.Condition), " OR ")
	} else {
		found = usesOr(where.Condition)
	}
	if !found {
		return nil
	}
	return []token.Range{where.Span}
}

// usesOr reports whether cond or any condition nested in it is an OR.
// Grouping parentheses are looked through; subqueries are not.
func usesOr(expr core.Expr) bool {
	switch e := expr.(type) {
	case *core.ConditionExpr:
		return e.Op == core.OpOr || usesOr(e.Left) || usesOr(e.Right)
	case *core.SubqueryExpr:
		inner, ok := e.Grouped()
		return ok && usesOr(inner)
	}
	return false
}
