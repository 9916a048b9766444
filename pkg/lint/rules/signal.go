package rules

import (
	"fmt"
	"regexp"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// SignalMissingName reports signals and signal groups without a
// human-readable name. Dashboards fall back to the raw id otherwise.
type SignalMissingName struct{}

// Config implements lint.Rule.
func (SignalMissingName) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "signal-missing-name",
		Name:        "signal.missing-name",
		Description: "Every signal needs a display name.",
		Severity:    lint.SeverityWarning,
		Enabled:     true,
	}
}

// CheckSignal implements lint.SignalRule.
func (SignalMissingName) CheckSignal(target signalset.Target, node *jsonc.Node) []lint.Result {
	if target.DisplayName() != "" {
		return nil
	}
	msg := "signal has no name"
	if id := target.SignalID(); id != "" {
		msg = fmt.Sprintf("signal %s has no name", id)
	}
	return []lint.Result{{
		RuleID:  "signal-missing-name",
		Message: msg,
		Node:    node,
	}}
}

// signalIDPattern is the shape every stable identifier follows:
// uppercase alphanumeric words joined by underscores.
var signalIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// SignalIDFormat reports signals whose id is missing or does not follow
// the uppercase underscore convention. Ids are referenced from metric
// mappings and UI config, so a drifting id breaks downstream lookups.
type SignalIDFormat struct{}

// Config implements lint.Rule.
func (SignalIDFormat) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "signal-id-format",
		Name:        "signal.id-format",
		Description: "Signal ids must be uppercase alphanumeric with underscores.",
		Severity:    lint.SeverityWarning,
		Enabled:     true,
	}
}

// CheckSignal implements lint.SignalRule.
func (SignalIDFormat) CheckSignal(target signalset.Target, node *jsonc.Node) []lint.Result {
	id := target.SignalID()
	if id == "" {
		return []lint.Result{{
			RuleID:  "signal-id-format",
			Message: "signal has no id",
			Node:    node,
		}}
	}
	if signalIDPattern.MatchString(id) {
		return nil
	}

	result := lint.Result{
		RuleID:  "signal-id-format",
		Message: fmt.Sprintf("signal id %q is not uppercase alphanumeric with underscores", id),
		Node:    node,
	}
	if prop := node.Property("id"); prop != nil {
		result.Node = prop
	}
	return []lint.Result{result}
}
