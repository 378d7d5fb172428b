package lsp

import (
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string        // Document URI (file:///path/to/file.hoshi)
	Version int           // Version number, incremented on each change
	Source  *token.Source // Path and full content
	Lines   []int         // Byte offsets of line starts for fast position lookups
}

func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Version: version,
		Source:  token.NewSource(URIToPath(uri), content),
		Lines:   computeLineOffsets(content),
	}
}

// Content returns the full document text.
func (d *Document) Content() string { return d.Source.Raw }

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. Documents that were never
// opened are ignored.
func (s *DocumentStore) Update(uri, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = newDocument(uri, content, version)
	}
}

// List returns all open document URIs, sorted.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// PositionToOffset converts a Position to a byte offset in the document.
// Characters are counted in bytes.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content())
	}

	end := len(d.Content())
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
	}
	return min(d.Lines[line]+int(pos.Character), end)
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}
	offset = max(0, min(offset, len(d.Content())))

	line := sort.Search(len(d.Lines), func(i int) bool { return d.Lines[i] > offset }) - 1
	return Position{
		Line:      uint32(line),                   //nolint:gosec // G115: line index is non-negative
		Character: uint32(offset - d.Lines[line]), //nolint:gosec // G115: offset is at or after line start
	}
}

// ToRange converts a byte range to an LSP range.
func (d *Document) ToRange(r token.Range) Range {
	return Range{Start: d.OffsetToPosition(r.Start), End: d.OffsetToPosition(r.End)}
}

// GetWordAtPosition returns the word at the given position and its byte range.
func (d *Document) GetWordAtPosition(pos Position) (string, token.Range) {
	content := d.Content()
	offset := d.PositionToOffset(pos)

	start := offset
	for start > 0 && isWordChar(content[start-1]) {
		start--
	}
	end := offset
	for end < len(content) && isWordChar(content[end]) {
		end++
	}
	return content[start:end], token.NewRange(start, end)
}

// isWordChar returns true if the character is part of a word.
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
