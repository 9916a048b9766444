package rules

import (
	"fmt"
	"strings"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// CommandMissingSignals reports commands that decode nothing. A command
// without signals still occupies bus time on every poll cycle.
type CommandMissingSignals struct{}

// Config implements lint.Rule.
func (CommandMissingSignals) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "command-missing-signals",
		Name:        "command.missing-signals",
		Description: "Every command should define at least one signal.",
		Severity:    lint.SeverityWarning,
		Enabled:     true,
	}
}

// CheckCommand implements lint.CommandRule.
func (CommandMissingSignals) CheckCommand(cmd *signalset.Command, node *jsonc.Node) []lint.Result {
	if len(cmd.Signals) > 0 {
		return nil
	}
	return []lint.Result{{
		RuleID:  "command-missing-signals",
		Message: fmt.Sprintf("command %s defines no signals", cmd.Identity()),
		Node:    node,
	}}
}

// CommandHeaderFormat reports headers that are not uppercase
// hexadecimal. Transports compare headers byte for byte, so a
// lowercase header silently fails to match its ECU.
type CommandHeaderFormat struct{}

// Config implements lint.Rule.
func (CommandHeaderFormat) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "command-header-format",
		Name:        "command.header-format",
		Description: "Command headers must be uppercase hexadecimal.",
		Severity:    lint.SeverityWarning,
		Enabled:     true,
	}
}

// CheckCommand implements lint.CommandRule.
func (CommandHeaderFormat) CheckCommand(cmd *signalset.Command, node *jsonc.Node) []lint.Result {
	if cmd.Hdr == "" || isUpperHex(cmd.Hdr) {
		return nil
	}

	result := lint.Result{
		RuleID:  "command-header-format",
		Message: fmt.Sprintf("header %q is not uppercase hexadecimal", cmd.Hdr),
		Node:    node,
	}
	if hdr := node.Property("hdr"); hdr != nil {
		result.Node = hdr
		if fixed := strings.ToUpper(cmd.Hdr); isUpperHex(fixed) {
			result.Suggestion = &lint.Suggestion{
				Title: fmt.Sprintf("Uppercase header to %q", fixed),
				Edits: []lint.TextEdit{lint.Span(hdr, jsonString(fixed))},
			}
		}
	}
	return []lint.Result{result}
}

func isUpperHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}
