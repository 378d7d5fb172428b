package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/hoshi/internal/cli/output"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/lint"
)

// Validate checks that every value is one the CLI understands.
func (c *Config) Validate() error {
	var errs []error

	if _, err := output.ParseMode(c.Output); err != nil {
		errs = append(errs, err)
	}
	if _, err := output.ParseColor(c.Color); err != nil {
		errs = append(errs, err)
	}
	if _, ok := format.ParseColumnOrder(c.Emit.QualifiedOrder); !ok {
		errs = append(errs, fmt.Errorf("invalid emit.qualified_order %q (want name-first or qualifier-first)", c.Emit.QualifiedOrder))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}

	for _, id := range c.Lint.Disabled {
		errs = append(errs, checkRuleID("lint.disabled", id))
	}
	for id := range c.Lint.Severity {
		errs = append(errs, checkRuleID("lint.severity", id))
	}
	for id, opts := range c.Lint.Rules {
		if err := checkRuleID("lint.rules", id); err != nil {
			errs = append(errs, err)
			continue
		}
		rule, _ := lint.GetByID(normalizeRuleID(id))
		for key := range opts {
			if !containsFold(rule.ConfigKeys, key) {
				errs = append(errs, fmt.Errorf("lint.rules.%s: unknown option %q", id, key))
			}
		}
	}

	return errors.Join(errs...)
}

func checkRuleID(section, id string) error {
	if _, ok := lint.GetByID(normalizeRuleID(id)); !ok {
		return fmt.Errorf("%s: unknown rule %q", section, id)
	}
	return nil
}

func normalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
