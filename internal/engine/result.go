package engine

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Result is the outcome of one run over one source.
type Result struct {
	RunID  string        `json:"run_id"`
	Path   string        `json:"path"`
	Source *token.Source `json:"-"`
	// Program is nil when lexing or parsing failed.
	Program *core.Program `json:"-"`
	// SQL is empty when emission was skipped or gated.
	SQL         string                  `json:"sql,omitempty"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	// Fatal is set when the single diagnostic came from the lexer or parser.
	Fatal bool `json:"fatal,omitempty"`
}

// ContainsError reports whether any diagnostic has Error severity.
func (r *Result) ContainsError() bool {
	return diagnostic.ContainsError(r.Diagnostics)
}

// Err returns ErrCheckFailed when the run is not clean enough to emit.
func (r *Result) Err() error {
	if r.ContainsError() {
		return ErrCheckFailed
	}
	return nil
}

// Manager returns the run's diagnostics loaded into a manager for
// reporting.
func (r *Result) Manager() *diagnostic.Manager {
	m := diagnostic.NewManager()
	m.AddAll(r.Diagnostics)
	return m
}
