package lsp

import (
	"context"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
)

// diagnosticSource labels every published diagnostic.
const diagnosticSource = "hoshi"

// publishDiagnostics checks the document and publishes the result,
// replacing whatever the client showed before.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	res, err := s.engine.Check(ctx, doc.Source)
	if err != nil {
		s.logger.Warn("check failed", "uri", uri, "error", err)
		return
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: toLSPDiagnostics(doc, res.Diagnostics),
	})
}

func toLSPDiagnostics(doc *Document, ds []diagnostic.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		msg := d.Message
		if d.Hint != "" {
			msg += "\n" + d.Hint
		}
		out = append(out, Diagnostic{
			Range:    doc.ToRange(d.Range),
			Severity: toLSPSeverity(d.Severity),
			Code:     d.RuleID,
			Source:   diagnosticSource,
			Message:  msg,
		})
	}
	return out
}

// toLSPSeverity converts core.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s core.Severity) DiagnosticSeverity {
	if s == core.SeverityError {
		return DiagnosticSeverityError
	}
	return DiagnosticSeverityWarning
}
