package ambiguous

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func init() {
	lint.Register(DuplicateTable)
}

// DuplicateTable flags a FROM naming a table that is already in scope.
var DuplicateTable = lint.RuleDef{
	ID:          "HS01",
	Name:        "ambiguous.duplicate_table",
	Group:       "ambiguous",
	Description: "A FROM stage names a table that an earlier FROM already introduced.",
	Severity:    core.SeverityWarning,
	Message:     "duplicate table",
	Hint:        "remove the repeated `FROM` or read the table once",
	Check:       checkDuplicateTable,

	Rationale: `Reading the same table twice in one program usually means a stage was
copied by mistake. The generated SQL repeats the FROM clause, which most
databases reject.`,
	BadExample: `FROM users |> WHERE age > 18;
FROM users |> AGGREGATE COUNT(id)`,
	GoodExample: `FROM users |> WHERE age > 18 |> AGGREGATE COUNT(id)`,
	Fix:         "Merge the pipelines so each table is read by one FROM.",
}

func checkDuplicateTable(stmt core.Statement, scope lint.Scope, _ map[string]any) []token.Range {
	var from *core.FromClause
	switch s := stmt.(type) {
	case *core.FromClause:
		from = s
	case *core.SelectStmt:
		from = s.From
	}
	if from == nil || !scope.HasTable(core.NameOf(from.Table)) {
		return nil
	}
	return []token.Range{from.Span}
}
