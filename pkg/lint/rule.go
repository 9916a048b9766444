package lint

import (
	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// RuleConfig is a rule's metadata and defaults.
type RuleConfig struct {
	// ID is the stable identifier, e.g. "suggested-metric-suggestion".
	// It is the sole correlation key between a result, its severity
	// lookup, and enable/disable configuration.
	ID string

	// Name is the human-readable name.
	Name string

	// Description explains what the rule reports.
	Description string

	// Severity is the default severity, overridable per run.
	Severity Severity

	// Enabled is the default enabled state, overridable per run.
	Enabled bool
}

// Rule is the base interface all rules implement. Config must return
// the same ID on every call. Rules are stateless: pure functions of
// their inputs with no I/O, so the engine may invoke them repeatedly
// and in any order relative to other rules.
type Rule interface {
	Config() RuleConfig
}

// A rule participates in a traversal granularity by implementing the
// matching capability interface. The engine dispatches by explicit
// type assertion; a rule that does not implement an entry point is
// skipped at that granularity.

// SignalRule checks one signal or signal group.
type SignalRule interface {
	Rule

	// CheckSignal reports findings for one target. A nil or empty
	// return means no finding.
	CheckSignal(target signalset.Target, node *jsonc.Node) []Result
}

// CommandRule checks one command together with its contained signals.
type CommandRule interface {
	Rule

	// CheckCommand reports findings for one command. The command value
	// carries its decoded signals, each paired with its node.
	CheckCommand(cmd *signalset.Command, node *jsonc.Node) []Result
}

// CommandsRule checks the commands collection as a whole.
type CommandsRule interface {
	Rule

	// CheckCommands reports findings across the commands array. node is
	// the commands array node.
	CheckCommands(cmds []*signalset.Command, node *jsonc.Node) []Result
}

// DocumentRule checks the whole document.
type DocumentRule interface {
	Rule

	// CheckDocument reports document-level findings. root is the
	// document's root node.
	CheckDocument(doc *signalset.Document, root *jsonc.Node) []Result
}
