package diagnostic

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Styles holds the lipgloss styles used for reporting.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Message lipgloss.Style
	Path    lipgloss.Style
	Help    lipgloss.Style
	Gutter  lipgloss.Style
}

// NewStyles builds report styles bound to renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).TabWidth(lipgloss.NoTabConversion),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).TabWidth(lipgloss.NoTabConversion),
		Message: r.NewStyle().Foreground(lipgloss.Color("15")),
		Path:    r.NewStyle().Foreground(lipgloss.Color("14")),
		Help:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Gutter:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Reporter prints diagnostics to a writer.
type Reporter struct {
	w      io.Writer
	styles Styles
}

// NewReporter creates a Reporter whose color profile is detected from w.
// Writers that are not terminals get plain text.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// NewReporterWithProfile creates a Reporter with a fixed color profile.
// termenv.Ascii disables color.
func NewReporterWithProfile(w io.Writer, profile termenv.Profile) *Reporter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Reporter{w: w, styles: NewStyles(r)}
}

// Report prints every diagnostic in insertion order. Nothing is filtered
// or deduplicated.
func (m *Manager) Report(w io.Writer, src *token.Source) {
	NewReporter(w).Report(m.diagnostics, src)
}

// Report prints ds against src.
func (r *Reporter) Report(ds []Diagnostic, src *token.Source) {
	for _, d := range ds {
		r.ReportOne(d, src)
	}
}

// ReportOne prints a single diagnostic:
//
//	ERROR >>> [RULE] message
//	path
//
//	excerpt
//
//	HELP: hint
func (r *Reporter) ReportOne(d Diagnostic, src *token.Source) {
	banner := r.styles.Error.Render("ERROR >>>")
	if !d.IsError() {
		banner = r.styles.Warning.Render("WARNING >>>")
	}

	message := d.Message
	if d.RuleID != "" {
		message = "[" + d.RuleID + "] " + message
	}

	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s %s\n", banner, r.styles.Message.Render(message))
	fmt.Fprintln(r.w, r.styles.Path.Render(src.Path))
	fmt.Fprintln(r.w)
	fmt.Fprint(r.w, r.RenderExcerpt(d.Range.Start, d.Range.End, src.Raw, d.Severity))
	if d.Hint != "" {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "%s %s\n", r.styles.Help.Render("HELP:"), r.styles.Message.Render(d.Hint))
	}
	fmt.Fprintln(r.w)
}

// RenderExcerpt renders the plain-text excerpt for raw[start:end].
func RenderExcerpt(start, end int, raw string, sev core.Severity) string {
	return NewReporterWithProfile(io.Discard, termenv.Ascii).RenderExcerpt(start, end, raw, sev)
}

// RenderExcerpt renders the source lines touched by raw[start:end] with a
// line-number gutter, the span highlighted and underlined with carets.
// Offsets outside raw are clamped.
func (r *Reporter) RenderExcerpt(start, end int, raw string, sev core.Severity) string {
	start = clamp(start, 0, len(raw))
	end = clamp(end, start, len(raw))

	mark := r.styles.Error
	if sev != core.SeverityError {
		mark = r.styles.Warning
	}

	pos := strings.LastIndexByte(raw[:start], '\n') + 1
	lineNo := strings.Count(raw[:pos], "\n") + 1
	width := len(strconv.Itoa(lineNo + strings.Count(raw[start:end], "\n")))

	var sb strings.Builder
	for {
		lineEnd := len(raw)
		if i := strings.IndexByte(raw[pos:], '\n'); i >= 0 {
			lineEnd = pos + i
		}
		line := raw[pos:lineEnd]
		hs := max(start, pos) - pos
		he := min(end, lineEnd) - pos

		sb.WriteString(r.styles.Gutter.Render(fmt.Sprintf("%*d | ", width, lineNo)))
		sb.WriteString(line[:hs])
		sb.WriteString(mark.Render(line[hs:he]))
		sb.WriteString(line[he:])
		sb.WriteByte('\n')

		sb.WriteString(r.styles.Gutter.Render(fmt.Sprintf("%*s | ", width, "")))
		sb.WriteString(padding(line[:hs]))
		sb.WriteString(mark.Render(strings.Repeat("^", max(he-hs, 1))))
		sb.WriteByte('\n')

		if end <= lineEnd || lineEnd >= len(raw) {
			break
		}
		pos = lineEnd + 1
		lineNo++
	}
	return sb.String()
}

// padding returns whitespace as wide as prefix, keeping tabs so carets
// line up under the highlighted text.
func padding(prefix string) string {
	var sb strings.Builder
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
