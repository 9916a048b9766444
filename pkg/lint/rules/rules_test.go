package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/lint/rules"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

func parseDoc(t *testing.T, src string) *signalset.Document {
	t.Helper()
	root, err := jsonc.Parse(src)
	require.NoError(t, err)
	return signalset.Decode(root)
}

// lintAll drives the canonical traversal: document, command list, then
// each command followed by its signals, then the signal groups.
func lintAll(linter *lint.Linter, doc *signalset.Document) []lint.Result {
	results := linter.LintDocument(doc, doc.Root)
	results = append(results, linter.LintCommands(doc.Commands, doc.CommandsNode)...)
	for _, cmd := range doc.Commands {
		results = append(results, linter.LintCommand(cmd, cmd.Node)...)
		for _, sig := range cmd.Signals {
			results = append(results, linter.LintSignal(sig, sig.Node)...)
		}
	}
	for _, group := range doc.SignalGroups {
		results = append(results, linter.LintSignal(group, group.Node)...)
	}
	return results
}

func TestNewRegistryCanonicalOrder(t *testing.T) {
	reg := rules.NewRegistry(nil)

	var ids []string
	for _, rule := range reg.Rules() {
		ids = append(ids, rule.Config().ID)
	}
	assert.Equal(t, []string{
		"document-missing-commands",
		"duplicate-command",
		"command-missing-signals",
		"command-header-format",
		"signal-missing-name",
		"signal-id-format",
		"signal-name-unit-suffix",
		"suggested-metric-suggestion",
	}, ids)

	for _, rule := range reg.Rules() {
		cfg := rule.Config()
		assert.True(t, cfg.Enabled, "rule %s should default to enabled", cfg.ID)
		assert.NotEmpty(t, cfg.Name, "rule %s needs a name", cfg.ID)
		assert.NotEmpty(t, cfg.Description, "rule %s needs a description", cfg.ID)
	}

	defaults := map[string]lint.Severity{
		"document-missing-commands":   lint.SeverityError,
		"duplicate-command":           lint.SeverityWarning,
		"command-missing-signals":     lint.SeverityWarning,
		"command-header-format":       lint.SeverityWarning,
		"signal-missing-name":         lint.SeverityWarning,
		"signal-id-format":            lint.SeverityWarning,
		"signal-name-unit-suffix":     lint.SeverityInfo,
		"suggested-metric-suggestion": lint.SeverityInfo,
	}
	for id, want := range defaults {
		sev, ok := reg.Severity(id)
		require.True(t, ok, "rule %s not registered", id)
		assert.Equal(t, want, sev, "default severity for %s", id)
	}
}

func TestDocumentMissingCommands(t *testing.T) {
	rule := rules.DocumentMissingCommands{}

	t.Run("absent", func(t *testing.T) {
		doc := parseDoc(t, `{"signalGroups":[]}`)
		results := rule.CheckDocument(doc, doc.Root)
		require.Len(t, results, 1)
		assert.Equal(t, `document has no "commands" array`, results[0].Message)
		assert.Same(t, doc.Root, results[0].Node)
	})

	t.Run("wrong kind", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":"nope"}`)
		results := rule.CheckDocument(doc, doc.Root)
		require.Len(t, results, 1)
		assert.Equal(t, `"commands" must be an array, found string`, results[0].Message)
		assert.Same(t, doc.Root.Property("commands"), results[0].Node)
	})

	t.Run("non-object root", func(t *testing.T) {
		doc := parseDoc(t, `[]`)
		results := rule.CheckDocument(doc, doc.Root)
		require.Len(t, results, 1)
		assert.Equal(t, "document root must be an object", results[0].Message)
	})

	t.Run("present", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[]}`)
		assert.Empty(t, rule.CheckDocument(doc, doc.Root))
	})
}

func TestDuplicateCommand(t *testing.T) {
	rule := rules.DuplicateCommand{}

	t.Run("duplicate identity", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[
			{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[]},
			{"hdr":"7E1","cmd":{"22":"0C40"},"signals":[]},
			{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[{"id":"A","name":"a"}]}
		]}`)
		results := rule.CheckCommands(doc.Commands, doc.CommandsNode)
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Message, "command 2 repeats the request of command 0")
		assert.Same(t, doc.Commands[2].Node, results[0].Node)
	})

	t.Run("rax distinguishes", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[
			{"hdr":"7E0","rax":"7E8","cmd":{"22":"0C40"}},
			{"hdr":"7E0","cmd":{"22":"0C40"}}
		]}`)
		assert.Empty(t, rule.CheckCommands(doc.Commands, doc.CommandsNode))
	})

	t.Run("triplicate reports each repeat", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[
			{"hdr":"7E0","cmd":{"22":"0C40"}},
			{"hdr":"7E0","cmd":{"22":"0C40"}},
			{"hdr":"7E0","cmd":{"22":"0C40"}}
		]}`)
		results := rule.CheckCommands(doc.Commands, doc.CommandsNode)
		require.Len(t, results, 2)
		assert.Contains(t, results[0].Message, "command 1 repeats the request of command 0")
		assert.Contains(t, results[1].Message, "command 2 repeats the request of command 0")
	})
}

func TestCommandMissingSignals(t *testing.T) {
	rule := rules.CommandMissingSignals{}

	doc := parseDoc(t, `{"commands":[
		{"hdr":"7E0","cmd":{"22":"0C40"}},
		{"hdr":"7E0","cmd":{"22":"0C41"},"signals":[{"id":"A","name":"a"}]}
	]}`)

	results := rule.CheckCommand(doc.Commands[0], doc.Commands[0].Node)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Message, "defines no signals")

	assert.Empty(t, rule.CheckCommand(doc.Commands[1], doc.Commands[1].Node))
}

func TestCommandHeaderFormat(t *testing.T) {
	rule := rules.CommandHeaderFormat{}

	t.Run("lowercase header", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[{"hdr":"7e0","cmd":{"22":"0C40"}}]}`)
		cmd := doc.Commands[0]
		results := rule.CheckCommand(cmd, cmd.Node)
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, `header "7e0" is not uppercase hexadecimal`, r.Message)
		assert.Same(t, cmd.Node.Property("hdr"), r.Node)
		require.NotNil(t, r.Suggestion)
		require.Len(t, r.Suggestion.Edits, 1)
		assert.Equal(t, `"7E0"`, r.Suggestion.Edits[0].NewText)
	})

	t.Run("not hex at all", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[{"hdr":"DAXX","cmd":{"22":"0C40"}}]}`)
		cmd := doc.Commands[0]
		results := rule.CheckCommand(cmd, cmd.Node)
		require.Len(t, results, 1)
		assert.Nil(t, results[0].Suggestion)
	})

	t.Run("clean", func(t *testing.T) {
		doc := parseDoc(t, `{"commands":[{"hdr":"7E0","cmd":{"22":"0C40"}},{"cmd":{"22":"0C41"}}]}`)
		for _, cmd := range doc.Commands {
			assert.Empty(t, rule.CheckCommand(cmd, cmd.Node))
		}
	})
}

func TestSignalMissingName(t *testing.T) {
	rule := rules.SignalMissingName{}

	doc := parseDoc(t, `{"commands":[{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[
		{"id":"ENGINE_RPM"},
		{"id":"VSS","name":"Vehicle Speed"}
	]}],"signalGroups":[{"id":"WHEELS","matchingRegex":"WHEEL_.*"}]}`)

	sig := doc.Commands[0].Signals[0]
	results := rule.CheckSignal(sig, sig.Node)
	require.Len(t, results, 1)
	assert.Equal(t, "signal ENGINE_RPM has no name", results[0].Message)

	named := doc.Commands[0].Signals[1]
	assert.Empty(t, rule.CheckSignal(named, named.Node))

	group := doc.SignalGroups[0]
	results = rule.CheckSignal(group, group.Node)
	require.Len(t, results, 1)
	assert.Equal(t, "signal WHEELS has no name", results[0].Message)
}

func TestSignalIDFormat(t *testing.T) {
	rule := rules.SignalIDFormat{}

	tests := []struct {
		name    string
		src     string
		message string
	}{
		{name: "missing id", src: `{"name":"Engine RPM"}`, message: "signal has no id"},
		{name: "lowercase", src: `{"id":"engine_rpm","name":"Engine RPM"}`, message: `signal id "engine_rpm" is not uppercase alphanumeric with underscores`},
		{name: "leading digit", src: `{"id":"0C40_RPM","name":"Engine RPM"}`, message: `signal id "0C40_RPM" is not uppercase alphanumeric with underscores`},
		{name: "clean", src: `{"id":"ENGINE_RPM","name":"Engine RPM"}`},
		{name: "single letter", src: `{"id":"A","name":"a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, node := parseSignal(t, tt.src)
			results := rule.CheckSignal(sig, node)
			if tt.message == "" {
				assert.Empty(t, results)
				return
			}
			require.Len(t, results, 1)
			assert.Equal(t, tt.message, results[0].Message)
		})
	}

	t.Run("finding lands on the id property", func(t *testing.T) {
		sig, node := parseSignal(t, `{"id":"bad id","name":"x"}`)
		results := rule.CheckSignal(sig, node)
		require.Len(t, results, 1)
		assert.Same(t, node.Property("id"), results[0].Node)
	})
}

func TestSignalNameUnitSuffix(t *testing.T) {
	rule := rules.SignalNameUnitSuffix{}

	t.Run("redundant suffix", func(t *testing.T) {
		src := `{"id":"COOLANT_TEMP","name":"Coolant Temperature (C)","fmt":{"unit":"C"}}`
		sig, node := parseSignal(t, src)
		results := rule.CheckSignal(sig, node)
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, `name "Coolant Temperature (C)" repeats the unit "C"`, r.Message)
		assert.Same(t, node.Property("name"), r.Node)
		require.NotNil(t, r.Suggestion)
		assert.Equal(t, `Rename to "Coolant Temperature"`, r.Suggestion.Title)
		require.Len(t, r.Suggestion.Edits, 1)

		fixed := applyEdit(t, src, r.Suggestion.Edits[0])
		assert.Equal(t, `{"id":"COOLANT_TEMP","name":"Coolant Temperature","fmt":{"unit":"C"}}`, fixed)
	})

	t.Run("case insensitive unit", func(t *testing.T) {
		sig, node := parseSignal(t, `{"id":"X","name":"Boost (PSI)","fmt":{"unit":"psi"}}`)
		results := rule.CheckSignal(sig, node)
		require.Len(t, results, 1)
		assert.Equal(t, `Rename to "Boost"`, results[0].Suggestion.Title)
	})

	t.Run("different unit kept", func(t *testing.T) {
		sig, node := parseSignal(t, `{"id":"X","name":"Pressure (bar)","fmt":{"unit":"psi"}}`)
		assert.Empty(t, rule.CheckSignal(sig, node))
	})

	t.Run("no fmt", func(t *testing.T) {
		sig, node := parseSignal(t, `{"id":"X","name":"Pressure (bar)"}`)
		assert.Empty(t, rule.CheckSignal(sig, node))
	})

	t.Run("parenthetical elsewhere kept", func(t *testing.T) {
		sig, node := parseSignal(t, `{"id":"X","name":"Front (Left) Temperature","fmt":{"unit":"C"}}`)
		assert.Empty(t, rule.CheckSignal(sig, node))
	})
}

func TestLintAllSingleSuggestion(t *testing.T) {
	src := `{"commands":[{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[
		{"id":"ENGINE_RPM","name":"Engine RPM"}
	]}]}`
	doc := parseDoc(t, src)
	linter := lint.NewLinter(rules.NewRegistry(nil))

	results := lintAll(linter, doc)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "suggested-metric-suggestion", r.RuleID)
	sig := doc.Commands[0].Signals[0]
	assert.Same(t, sig.Node, r.Node)
	require.NotNil(t, r.Suggestion)
	require.Len(t, r.Suggestion.Edits, 1)
	assert.Equal(t, sig.Node.Offset, r.Suggestion.Edits[0].Offset)
	assert.Equal(t, sig.Node.Length, r.Suggestion.Edits[0].Length)
}

func TestLintAllRegistrationOrderPerNode(t *testing.T) {
	// One signal violating several rules reports them in registration
	// order.
	doc := parseDoc(t, `{"commands":[{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[
		{"path":"Engine"}
	]}]}`)
	linter := lint.NewLinter(rules.NewRegistry(nil))

	results := lintAll(linter, doc)
	var ids []string
	for _, r := range results {
		ids = append(ids, r.RuleID)
	}
	assert.Equal(t, []string{"signal-missing-name", "signal-id-format"}, ids)
}

func TestLintAllConfig(t *testing.T) {
	doc := parseDoc(t, `{"commands":[{"hdr":"7E0","cmd":{"22":"0C40"},"signals":[
		{"id":"ENGINE_RPM","name":"Engine RPM"}
	]}]}`)

	cfg := lint.NewConfig().Disable("suggested-metric-suggestion")
	linter := lint.NewLinter(rules.NewRegistry(cfg))

	assert.Empty(t, lintAll(linter, doc))
}

func TestLintAllGroups(t *testing.T) {
	doc := parseDoc(t, `{"commands":[],"signalGroups":[
		{"id":"wheels","name":"Wheel Speeds","matchingRegex":"WHEEL_.*"}
	]}`)
	linter := lint.NewLinter(rules.NewRegistry(nil))

	results := lintAll(linter, doc)
	require.Len(t, results, 1)
	assert.Equal(t, "signal-id-format", results[0].RuleID)
}
