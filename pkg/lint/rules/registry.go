// Package rules carries the built-in analysis rules for signalset
// documents and assembles them into a lint.Registry.
//
// Registration order is part of the output contract: results for a
// node surface in the order the rules were registered, so the order in
// NewRegistry is fixed and new rules are appended at the granularity
// block they belong to.
package rules

import (
	"github.com/clutch-assistant/siglint/pkg/lint"
)

// NewRegistry returns a registry holding every built-in rule,
// configured by cfg. A nil cfg leaves every rule at its default
// severity and enablement.
func NewRegistry(cfg *lint.Config) *lint.Registry {
	reg := lint.NewRegistry(cfg)

	// Document rules.
	reg.MustRegister(DocumentMissingCommands{})

	// Command list rules.
	reg.MustRegister(DuplicateCommand{})

	// Per-command rules.
	reg.MustRegister(CommandMissingSignals{})
	reg.MustRegister(CommandHeaderFormat{})

	// Per-signal rules.
	reg.MustRegister(SignalMissingName{})
	reg.MustRegister(SignalIDFormat{})
	reg.MustRegister(SignalNameUnitSuffix{})
	reg.MustRegister(SuggestedMetric{})

	return reg
}
