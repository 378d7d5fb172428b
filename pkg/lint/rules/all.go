package rules

// Import all rule subpackages to register them with the global registry.
import (
	_ "github.com/leapstack-labs/hoshi/pkg/lint/rules/ambiguous"
	_ "github.com/leapstack-labs/hoshi/pkg/lint/rules/performance"
	_ "github.com/leapstack-labs/hoshi/pkg/lint/rules/structure"
)
