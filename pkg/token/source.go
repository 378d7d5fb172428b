package token

import "strings"

// Position is a human-readable location in a Source.
type Position struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number, in bytes
	Offset int `json:"offset"` // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Source owns the raw text of one compilation and its display path.
type Source struct {
	Path string
	Raw  string
}

// NewSource creates a Source.
func NewSource(path, raw string) *Source {
	return &Source{Path: path, Raw: raw}
}

// Text returns the raw text covered by r, clamped to the source bounds.
func (s *Source) Text(r Range) string {
	start, end := s.clamp(r.Start), s.clamp(r.End)
	if start > end {
		return ""
	}
	return s.Raw[start:end]
}

// Position converts a byte offset to a line/column position.
func (s *Source) Position(offset int) Position {
	offset = s.clamp(offset)
	before := s.Raw[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - (strings.LastIndexByte(before, '\n') + 1) + 1
	return Position{Line: line, Column: col, Offset: offset}
}

// LineBounds returns the byte offsets of the start and end (exclusive, without
// the newline) of the line containing offset.
func (s *Source) LineBounds(offset int) (int, int) {
	offset = s.clamp(offset)
	start := strings.LastIndexByte(s.Raw[:offset], '\n') + 1
	end := strings.IndexByte(s.Raw[offset:], '\n')
	if end < 0 {
		return start, len(s.Raw)
	}
	return start, offset + end
}

func (s *Source) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.Raw) {
		return len(s.Raw)
	}
	return offset
}
