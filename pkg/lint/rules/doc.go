// Package rules registers every Hoshi lint rule. Import it for side
// effects:
//
//	import _ "github.com/leapstack-labs/hoshi/pkg/lint/rules"
package rules
