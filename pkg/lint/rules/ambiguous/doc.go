// Package ambiguous contains rules for tables and columns that appear more
// than once in a program.
package ambiguous
