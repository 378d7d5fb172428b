// Package core defines the shared language of the Hoshi compiler.
//
// This package contains:
//   - The typed syntax tree (Program, Statement and Expr families)
//   - Operators and aggregate function identities
//   - Diagnostic severities
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
