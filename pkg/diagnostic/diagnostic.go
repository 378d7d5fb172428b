// Package diagnostic collects problems found while compiling a Source and
// prints them with a highlighted excerpt of the offending text.
package diagnostic

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Diagnostic is a reported problem.
type Diagnostic struct {
	RuleID   string        `json:"rule_id,omitempty"` // empty for lex and parse errors
	Message  string        `json:"message"`
	Hint     string        `json:"hint,omitempty"`
	Range    token.Range   `json:"range"`
	Severity core.Severity `json:"severity"`
}

// IsError reports whether d blocks emission.
func (d Diagnostic) IsError() bool {
	return d.Severity == core.SeverityError
}

// Fatal builds the Error diagnostic for a lexer or parser failure.
func Fatal(message string, r token.Range) Diagnostic {
	return Diagnostic{Message: message, Range: r, Severity: core.SeverityError}
}

// Manager accumulates diagnostics in insertion order.
type Manager struct {
	diagnostics []Diagnostic
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends d.
func (m *Manager) Add(d Diagnostic) {
	m.diagnostics = append(m.diagnostics, d)
}

// AddAll appends ds in order.
func (m *Manager) AddAll(ds []Diagnostic) {
	m.diagnostics = append(m.diagnostics, ds...)
}

// Diagnostics returns a copy of the collected diagnostics.
func (m *Manager) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(m.diagnostics))
	copy(out, m.diagnostics)
	return out
}

// Len returns the number of collected diagnostics.
func (m *Manager) Len() int {
	return len(m.diagnostics)
}

// ContainsError reports whether any diagnostic has Error severity.
func (m *Manager) ContainsError() bool {
	return ContainsError(m.diagnostics)
}

// Counts returns the number of errors and warnings.
func (m *Manager) Counts() (errors, warnings int) {
	for _, d := range m.diagnostics {
		if d.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// ContainsError reports whether any of ds has Error severity.
func ContainsError(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.IsError() {
			return true
		}
	}
	return false
}
