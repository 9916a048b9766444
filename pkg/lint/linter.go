package lint

import (
	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// Linter dispatches enabled rules at the four traversal granularities.
// Each operation has the identical shape: fetch the enabled rules,
// invoke every rule implementing the matching entry point, and
// concatenate the returned findings in rule registration order. No
// sorting, merging, or deduplication happens here.
//
// The linter does not walk the tree itself. The caller is responsible
// for traversal, in this fixed order: the whole-document check, the
// commands-collection check, then for every command the per-command
// check followed by a per-signal check for each contained signal, then
// the per-signal check for each signal group. Result order depends on
// call order, so front-ends must follow that convention consistently.
//
// Rule panics are not recovered: a faulty rule aborts the entire pass.
// A partially-linted document would silently under-report, which is
// worse than a hard stop.
type Linter struct {
	registry *Registry
}

// NewLinter creates a linter over the given registry.
func NewLinter(reg *Registry) *Linter {
	return &Linter{registry: reg}
}

// Registry returns the registry the linter dispatches over.
func (l *Linter) Registry() *Registry {
	return l.registry
}

// LintSignal runs signal-level rules against one signal or signal
// group.
func (l *Linter) LintSignal(target signalset.Target, node *jsonc.Node) []Result {
	var results []Result
	for _, rule := range l.registry.EnabledRules() {
		sr, ok := rule.(SignalRule)
		if !ok {
			continue
		}
		results = append(results, sr.CheckSignal(target, node)...)
	}
	return results
}

// LintCommand runs command-level rules against one command.
func (l *Linter) LintCommand(cmd *signalset.Command, node *jsonc.Node) []Result {
	var results []Result
	for _, rule := range l.registry.EnabledRules() {
		cr, ok := rule.(CommandRule)
		if !ok {
			continue
		}
		results = append(results, cr.CheckCommand(cmd, node)...)
	}
	return results
}

// LintCommands runs collection-level rules against the commands array.
func (l *Linter) LintCommands(cmds []*signalset.Command, node *jsonc.Node) []Result {
	var results []Result
	for _, rule := range l.registry.EnabledRules() {
		cr, ok := rule.(CommandsRule)
		if !ok {
			continue
		}
		results = append(results, cr.CheckCommands(cmds, node)...)
	}
	return results
}

// LintDocument runs document-level rules against the whole document.
func (l *Linter) LintDocument(doc *signalset.Document, root *jsonc.Node) []Result {
	var results []Result
	for _, rule := range l.registry.EnabledRules() {
		dr, ok := rule.(DocumentRule)
		if !ok {
			continue
		}
		results = append(results, dr.CheckDocument(doc, root)...)
	}
	return results
}
