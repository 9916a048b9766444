package rules

import (
	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// DocumentMissingCommands reports documents without a commands array.
type DocumentMissingCommands struct{}

// Config implements lint.Rule.
func (DocumentMissingCommands) Config() lint.RuleConfig {
	return lint.RuleConfig{
		ID:          "document-missing-commands",
		Name:        "document.missing-commands",
		Description: "A signalset document must carry a top-level commands array.",
		Severity:    lint.SeverityError,
		Enabled:     true,
	}
}

// CheckDocument implements lint.DocumentRule.
func (DocumentMissingCommands) CheckDocument(doc *signalset.Document, root *jsonc.Node) []lint.Result {
	if doc.CommandsNode != nil {
		return nil
	}

	msg := `document has no "commands" array`
	node := root
	if root == nil {
		return nil
	}
	if root.Kind != jsonc.ObjectNode {
		msg = "document root must be an object"
	} else if cmds := root.Property("commands"); cmds != nil {
		msg = `"commands" must be an array, found ` + cmds.Kind.String()
		node = cmds
	}

	return []lint.Result{{
		RuleID:  "document-missing-commands",
		Message: msg,
		Node:    node,
	}}
}
