package token

import "fmt"

// DebugRanges enables the ordering assertion in Merge. It is off by default
// and switched on by tests.
var DebugRanges = false

// Range is a half-open byte-offset interval [Start, End) into a Source's raw text.
// A Range is only meaningful against the Source it was produced from.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// NewRange returns the range [start, end).
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the range contains the given offset.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Merge returns the range spanning from the start of a to the end of b.
//
// The caller must guarantee that a precedes b in source order. Merge does not
// reorder its arguments; with DebugRanges set, a violation panics.
func Merge(a, b Range) Range {
	if DebugRanges && (a.Start > b.Start || a.End > b.End) {
		panic(fmt.Sprintf("token.Merge: range %s does not precede %s", a, b))
	}
	return Range{Start: a.Start, End: b.End}
}
