package token

import "strings"

// Comment is a `--` line comment skipped by the parser.
type Comment struct {
	Text  string // text after the leading --, up to the end of line
	Range Range  // covers the -- marker too
}

// Body returns the comment text with surrounding whitespace removed.
func (c *Comment) Body() string {
	return strings.TrimSpace(c.Text)
}
