package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// keywordDocs documents the keywords offered by completion and hover.
var keywordDocs = map[string]string{
	"SELECT":    "Project columns: `SELECT [DISTINCT] expr [AS alias], ...`",
	"FROM":      "Bring a table into scope: `FROM table`",
	"WHERE":     "Filter rows: `WHERE condition`",
	"JOIN":      "Inner join a table: `JOIN table ON condition`",
	"GROUP":     "Group rows: `GROUP BY column, ...`",
	"ORDER":     "Sort rows: `ORDER BY column [ASC|DESC], ...`",
	"LIMIT":     "Cap the row count: `LIMIT n [OFFSET m]`",
	"AGGREGATE": "Apply one aggregate to the stage: `AGGREGATE FN(column) [AS alias]`",
	"DISTINCT":  "Drop duplicate rows in a SELECT",
	"AS":        "Name a projected expression or aggregate",
	"ON":        "Join condition",
	"AND":       "Logical conjunction",
	"OR":        "Logical disjunction",
	"ASC":       "Ascending sort order (default)",
	"DESC":      "Descending sort order",
	"OFFSET":    "Skip rows before the limit applies",
}

// pipeStages are the keywords that may start a stage after |>.
var pipeStages = []string{"SELECT", "WHERE", "JOIN", "GROUP BY", "ORDER BY", "LIMIT", "AGGREGATE"}

// aggregateNames returns the builtin and registered aggregate names, sorted.
func aggregateNames() []string {
	names := []string{"AVG", "COUNT", "MAX", "MIN", "SUM"}
	for _, name := range token.RegisteredTokens() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tableRef is a table named after FROM or JOIN.
type tableRef struct {
	Name  string
	Range token.Range
}

// tableRefs lexes as much of the document as possible and returns every
// table named after FROM or JOIN, in source order.
func tableRefs(doc *Document) []tableRef {
	toks, _ := parser.Tokenize(doc.Content())

	var refs []tableRef
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Type != token.FROM && toks[i].Type != token.JOIN {
			continue
		}
		if next := toks[i+1]; next.Type == token.IDENT {
			refs = append(refs, tableRef{Name: next.Literal, Range: next.Range})
		}
	}
	return refs
}

func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	content := doc.Content()
	offset := doc.PositionToOffset(params.Position)
	start := offset
	for start > 0 && isWordChar(content[start-1]) {
		start--
	}
	prefix := content[start:offset]
	lead := strings.TrimRight(content[:start], " \t\r\n")
	upper := strings.ToUpper(prefix)

	var items []CompletionItem
	switch {
	case strings.HasSuffix(lead, "|>"):
		for _, kw := range pipeStages {
			if strings.HasPrefix(kw, upper) {
				items = append(items, CompletionItem{
					Label:         kw,
					Kind:          CompletionItemKindKeyword,
					Detail:        "pipe stage",
					Documentation: keywordDocs[strings.Fields(kw)[0]],
				})
			}
		}

	case strings.HasSuffix(lead, "FROM") || strings.HasSuffix(lead, "JOIN"):
		seen := make(map[string]bool)
		for _, ref := range tableRefs(doc) {
			if seen[ref.Name] || ref.Name == prefix || !strings.HasPrefix(ref.Name, prefix) {
				continue
			}
			seen[ref.Name] = true
			items = append(items, CompletionItem{
				Label:  ref.Name,
				Kind:   CompletionItemKindClass,
				Detail: "table",
			})
		}

	default:
		keywords := make([]string, 0, len(keywordDocs))
		for kw := range keywordDocs {
			keywords = append(keywords, kw)
		}
		sort.Strings(keywords)
		for _, kw := range keywords {
			if strings.HasPrefix(kw, upper) {
				items = append(items, CompletionItem{
					Label:         kw,
					Kind:          CompletionItemKindKeyword,
					Documentation: keywordDocs[kw],
				})
			}
		}
		for _, fn := range aggregateNames() {
			if strings.HasPrefix(fn, upper) {
				items = append(items, CompletionItem{
					Label:      fn,
					Kind:       CompletionItemKindFunction,
					Detail:     "aggregate",
					InsertText: fn + "(",
				})
			}
		}
	}
	return items
}

func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	word, wordRange := doc.GetWordAtPosition(params.Position)
	if word == "" {
		return nil
	}
	hoverRange := doc.ToRange(wordRange)

	var content string
	switch {
	case keywordDocs[word] != "":
		content = fmt.Sprintf("**%s**\n\n%s", word, keywordDocs[word])
	case isAggregate(word):
		content = fmt.Sprintf("**%s** (aggregate)\n\n`%s(column)` or `AGGREGATE %s(column)`", word, word, word)
	default:
		for _, ref := range tableRefs(doc) {
			if ref.Name == word {
				pos := doc.Source.Position(ref.Range.Start)
				content = fmt.Sprintf("**%s** (table)\n\nFirst brought into scope at line %d", word, pos.Line)
				break
			}
		}
	}
	if content == "" {
		return nil
	}
	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: content},
		Range:    &hoverRange,
	}
}

func isAggregate(word string) bool {
	for _, name := range aggregateNames() {
		if name == word {
			return true
		}
	}
	return false
}

// getDefinition resolves a table name to the first FROM or JOIN naming it.
func (s *Server) getDefinition(params DefinitionParams) *Location {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	word, _ := doc.GetWordAtPosition(params.Position)
	if word == "" {
		return nil
	}
	for _, ref := range tableRefs(doc) {
		if ref.Name == word {
			return &Location{URI: doc.URI, Range: doc.ToRange(ref.Range)}
		}
	}
	return nil
}

// getFormatting replaces the document with its pretty-printed SQL form.
// Documents that do not parse are left alone.
func (s *Server) getFormatting(params DocumentFormattingParams) []TextEdit {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	prog, err := parser.ParseSource(doc.Source)
	if err != nil {
		s.logger.Debug("formatting skipped", "uri", doc.URI, "error", err)
		return nil
	}

	formatted := format.PrettyWith(prog, s.format)
	if formatted == doc.Content() {
		return []TextEdit{}
	}
	return []TextEdit{{
		Range:   Range{Start: Position{}, End: doc.OffsetToPosition(len(doc.Content()))},
		NewText: formatted,
	}}
}
