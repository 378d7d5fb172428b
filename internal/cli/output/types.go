package output

import (
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// DiagnosticOutput is the JSON form of a diagnostic.
type DiagnosticOutput struct {
	RuleID   string         `json:"rule_id,omitempty"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Hint     string         `json:"hint,omitempty"`
	Range    token.Range    `json:"range"`
	Start    token.Position `json:"start"`
	End      token.Position `json:"end"`
}

// FileOutput is the JSON form of one compiled or checked file.
type FileOutput struct {
	Path        string             `json:"path"`
	RunID       string             `json:"run_id"`
	SQL         string             `json:"sql,omitempty"`
	Errors      int                `json:"errors"`
	Warnings    int                `json:"warnings"`
	Diagnostics []DiagnosticOutput `json:"diagnostics"`
}

// CompileOutput is the JSON document written by compile and check.
type CompileOutput struct {
	Files   []FileOutput `json:"files"`
	Summary Summary      `json:"summary"`
}

// Summary totals a multi-file run.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// TokenOutput is the JSON form of a token. Literal is only set for tokens
// that carry a lexeme; Text is always the source text under Range.
type TokenOutput struct {
	Type    string         `json:"type"`
	Literal string         `json:"literal,omitempty"`
	Text    string         `json:"text"`
	Range   token.Range    `json:"range"`
	Start   token.Position `json:"start"`
}

// NewDiagnosticOutputs converts diagnostics, resolving line and column
// positions against src.
func NewDiagnosticOutputs(ds []diagnostic.Diagnostic, src *token.Source) []DiagnosticOutput {
	out := make([]DiagnosticOutput, 0, len(ds))
	for _, d := range ds {
		out = append(out, DiagnosticOutput{
			RuleID:   d.RuleID,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Hint:     d.Hint,
			Range:    d.Range,
			Start:    src.Position(d.Range.Start),
			End:      src.Position(d.Range.End),
		})
	}
	return out
}
