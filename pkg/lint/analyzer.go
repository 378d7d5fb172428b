package lint

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
)

// Analyzer runs lint rules against a parsed program.
type Analyzer struct {
	config *Config
	rules  []RuleDef
}

// NewAnalyzer creates an analyzer over all registered rules.
func NewAnalyzer(config *Config) *Analyzer {
	return NewAnalyzerWithRules(config, GetAll()...)
}

// NewAnalyzerWithRules creates an analyzer over the given rules only.
func NewAnalyzerWithRules(config *Config, rules ...RuleDef) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config, rules: rules}
}

// Analyze visits every statement of prog and returns all findings in
// traversal order.
func (a *Analyzer) Analyze(prog *core.Program) []diagnostic.Diagnostic {
	diags, _ := a.AnalyzeScope(prog)
	return diags
}

// AnalyzeScope is Analyze that also returns the scope left after the last
// statement.
func (a *Analyzer) AnalyzeScope(prog *core.Program) ([]diagnostic.Diagnostic, Scope) {
	scope := NewScope()
	var diags []diagnostic.Diagnostic
	if prog == nil {
		return nil, scope
	}
	for _, stmt := range prog.Statements {
		scope, diags = a.visit(stmt, scope, diags)
	}
	return diags, scope
}

// visit checks stmt against scope and returns the advanced scope.
func (a *Analyzer) visit(stmt core.Statement, scope Scope, diags []diagnostic.Diagnostic) (Scope, []diagnostic.Diagnostic) {
	if pipe, ok := stmt.(*core.PipeStmt); ok {
		scope, diags = a.visit(pipe.Left, scope, diags)
		return a.visit(pipe.Right, scope, diags)
	}

	for _, rule := range a.rules {
		if a.config.IsDisabled(rule.ID) {
			continue
		}
		severity := a.config.GetSeverity(rule.ID, rule.Severity)
		for _, r := range rule.Check(stmt, scope, a.config.GetRuleOptions(rule.ID)) {
			diags = append(diags, diagnostic.Diagnostic{
				RuleID:   rule.ID,
				Message:  rule.Message,
				Hint:     rule.Hint,
				Range:    r,
				Severity: severity,
			})
		}
	}
	return Advance(scope, stmt), diags
}
