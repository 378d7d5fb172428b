package format

import (
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Decorate assigns each program comment to the statement it precedes.
// leading[i] holds the comments written before statement i (after the end
// of statement i-1); comments inside or after the last statement are
// returned as trailing.
func Decorate(prog *core.Program) (leading [][]*token.Comment, trailing []*token.Comment) {
	leading = make([][]*token.Comment, len(prog.Statements))
	if len(prog.Comments) == 0 {
		return leading, nil
	}

	used := make([]bool, len(prog.Comments))
	prevEnd := 0
	for i, stmt := range prog.Statements {
		start := stmt.Range().Start
		for j, c := range prog.Comments {
			if used[j] {
				continue
			}
			if c.Range.Start >= prevEnd && c.Range.End <= start {
				leading[i] = append(leading[i], c)
				used[j] = true
			}
		}
		prevEnd = stmt.Range().End
	}

	for j, c := range prog.Comments {
		if !used[j] {
			trailing = append(trailing, c)
		}
	}
	return leading, trailing
}
