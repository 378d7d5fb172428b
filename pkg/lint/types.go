package lint

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// RuleDef is a data-driven rule definition.
// Rules are stateless; all context comes in through Check's parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "HS01"
	Name        string        // Human-readable name, e.g., "ambiguous.duplicate_table"
	Group       string        // Category, e.g., "ambiguous", "structure", "performance"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Message     string        // Diagnostic message
	Hint        string        // Shown as HELP under the excerpt
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Options this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects one pipeline stage against the scope accumulated
// before it and returns the ranges to report. It is called for every
// non-pipe statement; rules ignore stages they do not handle.
type CheckFunc func(stmt core.Statement, scope Scope, opts map[string]any) []token.Range
