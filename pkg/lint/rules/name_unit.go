package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// nameUnitSuffix captures a parenthesised trailing unit, e.g.
// "Coolant Temperature (C)".
var nameUnitSuffix = regexp.MustCompile(`^(.*\S)\s*\(([^()]+)\)\s*$`)

// SignalNameUnitSuffix reports names that repeat the format unit in a
// trailing parenthesis. Front-ends render the unit next to the value
// already, so the suffix shows up twice on screen.
type SignalNameUnitSuffix struct{}

// Config implements lint.Rule.
func (SignalNameUnitSuffix) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "signal-name-unit-suffix",
		Name:        "signal.name-unit-suffix",
		Description: "Signal names should not repeat the unit of their format.",
		Severity:    lint.SeverityInfo,
		Enabled:     true,
	}
}

// CheckSignal implements lint.SignalRule.
func (SignalNameUnitSuffix) CheckSignal(target signalset.Target, node *jsonc.Node) []lint.Result {
	sig, ok := target.(*signalset.Signal)
	if !ok || sig.Fmt == nil || sig.Fmt.Unit == "" {
		return nil
	}

	m := nameUnitSuffix.FindStringSubmatch(sig.Name)
	if m == nil || !strings.EqualFold(strings.TrimSpace(m[2]), sig.Fmt.Unit) {
		return nil
	}
	trimmed := m[1]

	result := lint.Result{
		RuleID:  "signal-name-unit-suffix",
		Message: fmt.Sprintf("name %q repeats the unit %q", sig.Name, sig.Fmt.Unit),
		Node:    node,
	}
	if prop := node.Property("name"); prop != nil {
		result.Node = prop
		result.Suggestion = &lint.Suggestion{
			Title: fmt.Sprintf("Rename to %q", trimmed),
			Edits: []lint.TextEdit{lint.Span(prop, jsonString(trimmed))},
		}
	}
	return []lint.Result{result}
}
