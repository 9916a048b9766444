package lsp

import (
	"github.com/clutch-assistant/siglint/internal/analysis"
	"github.com/clutch-assistant/siglint/pkg/lint"
)

// publishDiagnostics lints the document and publishes the findings.
// Fixes from this pass replace the URI's cached fixes, so code actions
// always reflect the most recent publish.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.diagnosticsFor(doc)

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnosticsFor runs the analysis over the document's current buffer
// and converts the report into LSP diagnostics.
func (s *Server) diagnosticsFor(doc *Document) []Diagnostic {
	// Always send a slice so stale diagnostics are cleared client-side.
	diagnostics := []Diagnostic{}

	report := analysis.Analyze(s.linter, doc.Content)
	if report.ParseErr != nil {
		s.fixes.clearURI(doc.URI)
		return append(diagnostics, Diagnostic{
			Range:    doc.RangeForSpan(report.ParseErr.Pos.Offset, 1),
			Severity: DiagnosticSeverityError,
			Source:   "siglint",
			Message:  report.ParseErr.Message,
		})
	}

	for _, res := range report.Results {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    doc.RangeForSpan(res.Node.Offset, res.Node.Length),
			Severity: s.diagnosticSeverity(res.RuleID),
			Code:     res.RuleID,
			Source:   "siglint",
			Message:  res.Message,
		})
	}

	s.fixes.store(doc.URI, report.Results)
	return diagnostics
}

// diagnosticSeverity resolves a rule's configured severity into the
// LSP enum. Every emitted RuleID is guaranteed registered; an
// unrecognized severity value falls back to Warning.
func (s *Server) diagnosticSeverity(ruleID string) DiagnosticSeverity {
	sev, ok := s.linter.Registry().Severity(ruleID)
	if !ok {
		// Results only carry registered rule ids; hitting this means a
		// rule emitted under a foreign id.
		s.logger.Error("result references unregistered rule", "rule", ruleID)
		return DiagnosticSeverityWarning
	}

	switch sev {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
