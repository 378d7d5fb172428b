// Package lint checks a parsed Hoshi program for structural problems before
// it is emitted as SQL.
//
// # Architecture
//
//  1. Root package (pkg/lint/): rule definitions, the registry, configuration
//     and the Analyzer that walks a program.
//  2. Rule packages (pkg/lint/rules/...): one package per group, each
//     registering its rules from init().
//
// # Rule Registration
//
// Rules register themselves when their package is imported:
//
//	import _ "github.com/leapstack-labs/hoshi/pkg/lint/rules"
//
// # Rule Groups
//
//   - ambiguous: repeated tables and columns (HS01, HS03)
//   - structure: empty SELECT and GROUP BY stages (HS02, HS06)
//   - performance: joins, OR conditions and aggregate subqueries (HS04, HS05, HS07)
//
// # Scope
//
// The Analyzer threads a Scope through the walk: the tables introduced by
// FROM and the plain column names selected so far. The scope covers the
// whole program, not a single statement, so a column selected in one
// statement is a duplicate when selected again in the next. Pipes are
// visited left then right. Analysis never stops early; every statement is
// visited and every finding is returned.
//
// # Configuration
//
//	cfg := lint.NewConfig().
//		Disable("HS04").
//		SetSeverity("HS03", core.SeverityError).
//		SetOption("HS05", "mode", "textual")
//	diags := lint.NewAnalyzer(cfg).Analyze(prog)
package lint
