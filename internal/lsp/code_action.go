package lsp

import (
	"encoding/json"
	"sync"

	"github.com/clutch-assistant/siglint/pkg/lint"
)

// cachedFix pairs a suggestion with the finding it came from, in
// result order. The span addresses the buffer of the publish that
// produced it.
type cachedFix struct {
	RuleID     string
	Offset     int
	Length     int
	Suggestion *lint.Suggestion
}

// fixCache holds the fixable findings of the last publish per URI.
// Code actions are answered from here, so an action always matches
// the diagnostics the client currently shows. The cache belongs to
// one Server; there is no process-wide instance.
type fixCache struct {
	mu    sync.RWMutex
	fixes map[string][]cachedFix
}

func newFixCache() *fixCache {
	return &fixCache{fixes: make(map[string][]cachedFix)}
}

// store replaces the URI's cached fixes with the fixable results of a
// fresh pass.
func (c *fixCache) store(uri string, results []lint.Result) {
	var fixes []cachedFix
	for _, res := range results {
		if res.Suggestion == nil || len(res.Suggestion.Edits) == 0 {
			continue
		}
		fixes = append(fixes, cachedFix{
			RuleID:     res.RuleID,
			Offset:     res.Node.Offset,
			Length:     res.Node.Length,
			Suggestion: res.Suggestion,
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(fixes) == 0 {
		delete(c.fixes, uri)
		return
	}
	c.fixes[uri] = fixes
}

// get returns the cached fixes for a URI.
func (c *fixCache) get(uri string) []cachedFix {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fixes[uri]
}

// clearURI removes all cached fixes for a URI.
func (c *fixCache) clearURI(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fixes, uri)
}

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: -32602, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions converts the cached fixes overlapping the requested
// range into quickfix actions.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	start := doc.PositionToOffset(params.Range.Start)
	end := doc.PositionToOffset(params.Range.End)

	var matched []cachedFix
	for _, f := range s.fixes.get(params.TextDocument.URI) {
		if !spansOverlap(f.Offset, f.Offset+f.Length, start, end) {
			continue
		}
		matched = append(matched, f)
	}

	var actions []CodeAction
	for _, f := range matched {
		actions = append(actions, CodeAction{
			Title: f.Suggestion.Title,
			Kind:  CodeActionKindQuickFix,
			Diagnostics: []Diagnostic{{
				Range:    doc.RangeForSpan(f.Offset, f.Length),
				Severity: s.diagnosticSeverity(f.RuleID),
				Code:     f.RuleID,
				Source:   "siglint",
			}},
			IsPreferred: len(matched) == 1,
			Edit: &WorkspaceEdit{
				Changes: map[string][]TextEdit{
					params.TextDocument.URI: convertTextEdits(doc, f.Suggestion.Edits),
				},
			},
		})
	}

	return actions
}

// spansOverlap reports whether [aStart, aEnd) intersects
// [bStart, bEnd). An empty request range matches the span containing
// its position.
func spansOverlap(aStart, aEnd, bStart, bEnd int) bool {
	if bStart == bEnd {
		return aStart <= bStart && bStart <= aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// convertTextEdits maps byte-offset edits onto LSP ranges through the
// document's line index.
func convertTextEdits(doc *Document, edits []lint.TextEdit) []TextEdit {
	result := make([]TextEdit, len(edits))
	for i, edit := range edits {
		result[i] = TextEdit{
			Range:   doc.RangeForSpan(edit.Offset, edit.Length),
			NewText: edit.NewText,
		}
	}
	return result
}
