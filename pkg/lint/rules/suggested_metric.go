package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// SuggestedMetric proposes suggestedMetric mappings for signals whose
// id or name matches the pattern table.
type SuggestedMetric struct{}

// Config implements lint.Rule.
func (SuggestedMetric) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "suggested-metric-suggestion",
		Name:        "metric.suggestion",
		Description: "Signals matching a known pattern should declare the standard metric they map to via suggestedMetric.",
		Severity:    lint.SeverityInfo,
		Enabled:     true,
	}
}

// CheckSignal implements lint.SignalRule. Signal groups use
// suggestedMetricGroup and are not covered by the pattern table, so
// only plain signals are considered.
func (SuggestedMetric) CheckSignal(target signalset.Target, node *jsonc.Node) []lint.Result {
	sig, ok := target.(*signalset.Signal)
	if !ok {
		return nil
	}
	if sig.SuggestedMetric != "" || sig.ID == "" || sig.Name == "" {
		return nil
	}

	pat, ok := MatchMetric(metricPatterns, sig.ID, sig.Name)
	if !ok {
		return nil
	}

	return []lint.Result{{
		RuleID:  "suggested-metric-suggestion",
		Message: fmt.Sprintf("signal %s looks like the %q metric: %s", sig.ID, pat.Metric, pat.Rationale),
		Node:    node,
		Suggestion: &lint.Suggestion{
			Title: fmt.Sprintf("Set suggestedMetric to %q", pat.Metric),
			Edits: []lint.TextEdit{lint.Span(node, insertSuggestedMetric(node, pat.Metric))},
		},
	}}
}

// knownFirstKeys is the canonical leading property order of a
// re-serialized signal. Other tooling diffs suggested changes against
// this order, so it must stay stable.
var knownFirstKeys = []string{"id", "path", "fmt", "name"}

// insertSuggestedMetric renders the signal object compactly with the
// canonical property order: id, path, fmt, name (each only if
// originally present, first occurrence only), then suggestedMetric,
// then every remaining property in source order. Values keep their
// original source text.
func insertSuggestedMetric(node *jsonc.Node, metric string) string {
	props := node.Properties()
	used := make(map[int]bool, len(props))

	var parts []string
	for _, key := range knownFirstKeys {
		for i, prop := range props {
			if used[i] || prop.Key != key {
				continue
			}
			parts = append(parts, jsonString(prop.Key)+":"+prop.Value.Text())
			used[i] = true
			break
		}
	}

	parts = append(parts, jsonString("suggestedMetric")+":"+jsonString(metric))

	for i, prop := range props {
		if used[i] {
			continue
		}
		parts = append(parts, jsonString(prop.Key)+":"+prop.Value.Text())
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// jsonString renders s as a JSON string literal.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(b)
}
