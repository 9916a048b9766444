package lsp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/lint/rules"
)

func newTestServer(t *testing.T, cfg *lint.Config) *Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	s := NewServer(strings.NewReader(""), &bytes.Buffer{}, lint.NewLinter(rules.NewRegistry(cfg)), logger)
	s.exit = func(int) { t.Fatal("unexpected exit") }
	return s
}

func openDoc(s *Server, uri, content string) *Document {
	s.documents.Open(uri, content, 1)
	return s.documents.Get(uri)
}

const testURI = "file:///vehicle/signalset.json"

func TestDiagnosticsCleanDocument(t *testing.T) {
	s := newTestServer(t, nil)
	doc := openDoc(s, testURI, `{
  "commands": [
    {
      "hdr": "7E0",
      "cmd": {"22": "0C"},
      "signals": [
        {"id": "COOLANT_TEMP", "name": "Coolant temperature", "suggestedMetric": "coolantTemperature"}
      ]
    }
  ]
}`)

	diags := s.diagnosticsFor(doc)
	assert.Empty(t, diags)
	assert.Nil(t, s.fixes.get(testURI))
}

func TestDiagnosticsParseError(t *testing.T) {
	s := newTestServer(t, nil)
	doc := openDoc(s, testURI, "{\n  \"commands\": [,]\n}")

	diags := s.diagnosticsFor(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
	assert.Equal(t, "siglint", diags[0].Source)
	assert.Empty(t, diags[0].Code)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
}

func TestDiagnosticsSuggestion(t *testing.T) {
	s := newTestServer(t, nil)
	doc := openDoc(s, testURI, `{
  "commands": [
    {
      "hdr": "7E0",
      "cmd": {"22": "0C"},
      "signals": [
        {"id": "ENGINE_RPM", "name": "Engine RPM"}
      ]
    }
  ]
}`)

	diags := s.diagnosticsFor(doc)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "suggested-metric-suggestion", d.Code)
	assert.Equal(t, DiagnosticSeverityInformation, d.Severity)
	assert.Equal(t, "siglint", d.Source)
	// The finding spans the signal object node.
	assert.Equal(t, uint32(6), d.Range.Start.Line)

	// The fix is cached for code actions.
	fixes := s.fixes.get(testURI)
	require.Len(t, fixes, 1)
	assert.Equal(t, "suggested-metric-suggestion", fixes[0].RuleID)
	require.NotNil(t, fixes[0].Suggestion)
	require.Len(t, fixes[0].Suggestion.Edits, 1)
	assert.Contains(t, fixes[0].Suggestion.Edits[0].NewText, `"suggestedMetric":"rpm"`)
}

func TestDiagnosticsSeverityOverride(t *testing.T) {
	cfg := lint.NewConfig().SetSeverity("suggested-metric-suggestion", lint.SeverityError)
	s := newTestServer(t, cfg)
	doc := openDoc(s, testURI, `{"commands": [{"hdr": "7E0", "cmd": {"22": "0C"},
  "signals": [{"id": "ENGINE_RPM", "name": "Engine RPM"}]}]}`)

	diags := s.diagnosticsFor(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
}

func TestDiagnosticSeverityUnknownRule(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, DiagnosticSeverityWarning, s.diagnosticSeverity("no-such-rule"))
}

func TestDiagnosticsReplacedOnReparse(t *testing.T) {
	s := newTestServer(t, nil)
	doc := openDoc(s, testURI, `{"commands": [{"hdr": "7E0", "cmd": {"22": "0C"},
  "signals": [{"id": "ENGINE_RPM", "name": "Engine RPM"}]}]}`)

	require.Len(t, s.diagnosticsFor(doc), 1)
	require.Len(t, s.fixes.get(testURI), 1)

	// The fixed buffer must clear the finding and its cached fix.
	s.documents.Update(testURI, `{"commands": [{"hdr": "7E0", "cmd": {"22": "0C"},
  "signals": [{"id": "ENGINE_RPM", "name": "Engine RPM", "suggestedMetric": "rpm"}]}]}`, 2)
	doc = s.documents.Get(testURI)

	assert.Empty(t, s.diagnosticsFor(doc))
	assert.Nil(t, s.fixes.get(testURI))
}
