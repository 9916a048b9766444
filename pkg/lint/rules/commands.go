package rules

import (
	"fmt"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// DuplicateCommand reports commands whose request identity repeats an
// earlier command in the same document. Identity covers the header, the
// command bytes, the receive address and the filter, so two commands
// that would race over the same request are flagged even when their
// signal lists differ.
type DuplicateCommand struct{}

// Config implements lint.Rule.
func (DuplicateCommand) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "duplicate-command",
		Name:        "command.duplicate",
		Description: "Two commands in one document must not share the same request identity.",
		Severity:    lint.SeverityWarning,
		Enabled:     true,
	}
}

// CheckCommands implements lint.CommandsRule.
func (DuplicateCommand) CheckCommands(cmds []*signalset.Command, node *jsonc.Node) []lint.Result {
	var results []lint.Result
	seen := make(map[string]int, len(cmds))

	for i, cmd := range cmds {
		id := cmd.Identity()
		first, dup := seen[id]
		if !dup {
			seen[id] = i
			continue
		}
		results = append(results, lint.Result{
			RuleID:  "duplicate-command",
			Message: fmt.Sprintf("command %d repeats the request of command %d (%s)", i, first, id),
			Node:    cmd.Node,
		})
	}

	return results
}
