package lint_test

import (
	"testing"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseRule implements Rule and nothing else.
type baseRule struct {
	cfg lint.RuleConfig
}

func (r baseRule) Config() lint.RuleConfig { return r.cfg }

// signalStub implements SignalRule with a pluggable check.
type signalStub struct {
	baseRule
	check func(signalset.Target, *jsonc.Node) []lint.Result
}

func (r signalStub) CheckSignal(target signalset.Target, node *jsonc.Node) []lint.Result {
	return r.check(target, node)
}

// commandStub implements CommandRule.
type commandStub struct {
	baseRule
	check func(*signalset.Command, *jsonc.Node) []lint.Result
}

func (r commandStub) CheckCommand(cmd *signalset.Command, node *jsonc.Node) []lint.Result {
	return r.check(cmd, node)
}

// documentStub implements DocumentRule.
type documentStub struct {
	baseRule
	check func(*signalset.Document, *jsonc.Node) []lint.Result
}

func (r documentStub) CheckDocument(doc *signalset.Document, root *jsonc.Node) []lint.Result {
	return r.check(doc, root)
}

func enabledCfg(id string, sev lint.Severity) lint.RuleConfig {
	return lint.RuleConfig{ID: id, Name: id, Severity: sev, Enabled: true}
}

func finding(id, msg string) lint.Result {
	return lint.Result{RuleID: id, Message: msg, Node: &jsonc.Node{}}
}

func signalFinding(id, msg string) signalStub {
	return signalStub{
		baseRule: baseRule{cfg: enabledCfg(id, lint.SeverityWarning)},
		check: func(signalset.Target, *jsonc.Node) []lint.Result {
			return []lint.Result{finding(id, msg)}
		},
	}
}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(signalFinding("b-rule", "b"))
	reg.MustRegister(signalFinding("a-rule", "a"))
	reg.MustRegister(signalFinding("c-rule", "c"))

	var ids []string
	for _, r := range reg.EnabledRules() {
		ids = append(ids, r.Config().ID)
	}
	assert.Equal(t, []string{"b-rule", "a-rule", "c-rule"}, ids)
	assert.Equal(t, 3, reg.Len())
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	require.NoError(t, reg.Register(signalFinding("dup", "x")))

	err := reg.Register(signalFinding("dup", "y"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")

	assert.Panics(t, func() { reg.MustRegister(signalFinding("dup", "z")) })
}

func TestRegistryRuleByID(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(signalFinding("present", "x"))

	rule, ok := reg.RuleByID("present")
	require.True(t, ok)
	assert.Equal(t, "present", rule.Config().ID)

	_, ok = reg.RuleByID("absent")
	assert.False(t, ok)
}

func TestRegistryEnabledRules(t *testing.T) {
	cfg := lint.NewConfig().
		Disable("off-by-config").
		Enable("on-by-config")

	offByDefault := signalStub{
		baseRule: baseRule{cfg: lint.RuleConfig{ID: "on-by-config", Severity: lint.SeverityHint, Enabled: false}},
		check:    func(signalset.Target, *jsonc.Node) []lint.Result { return nil },
	}
	stillOff := signalStub{
		baseRule: baseRule{cfg: lint.RuleConfig{ID: "off-by-default", Severity: lint.SeverityHint, Enabled: false}},
		check:    func(signalset.Target, *jsonc.Node) []lint.Result { return nil },
	}

	reg := lint.NewRegistry(cfg)
	reg.MustRegister(signalFinding("on", "x"))
	reg.MustRegister(signalFinding("off-by-config", "y"))
	reg.MustRegister(offByDefault)
	reg.MustRegister(stillOff)

	var ids []string
	for _, r := range reg.EnabledRules() {
		ids = append(ids, r.Config().ID)
	}
	assert.Equal(t, []string{"on", "on-by-config"}, ids)

	assert.True(t, reg.IsEnabled("on"))
	assert.False(t, reg.IsEnabled("off-by-config"))
	assert.False(t, reg.IsEnabled("off-by-default"))
	assert.False(t, reg.IsEnabled("never-registered"))
}

func TestConfigDisableBeatsEnable(t *testing.T) {
	cfg := lint.NewConfig().Enable("r").Disable("r")
	assert.False(t, cfg.IsEnabled("r", true))
	assert.False(t, cfg.IsEnabled("r", false))
}

func TestRegistrySeverity(t *testing.T) {
	cfg := lint.NewConfig().SetSeverity("tuned", lint.SeverityError)

	reg := lint.NewRegistry(cfg)
	reg.MustRegister(signalStub{
		baseRule: baseRule{cfg: enabledCfg("tuned", lint.SeverityInfo)},
		check:    func(signalset.Target, *jsonc.Node) []lint.Result { return nil },
	})
	reg.MustRegister(signalFinding("plain", "x"))

	sev, ok := reg.Severity("tuned")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityError, sev)

	sev, ok = reg.Severity("plain")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityWarning, sev)

	_, ok = reg.Severity("unknown-rule")
	assert.False(t, ok, "unknown rule id must be reported to the caller")
}

func TestLinterDispatchesByCapability(t *testing.T) {
	var calls []string

	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(signalStub{
		baseRule: baseRule{cfg: enabledCfg("sig", lint.SeverityWarning)},
		check: func(signalset.Target, *jsonc.Node) []lint.Result {
			calls = append(calls, "sig")
			return []lint.Result{finding("sig", "signal finding")}
		},
	})
	reg.MustRegister(commandStub{
		baseRule: baseRule{cfg: enabledCfg("cmd", lint.SeverityWarning)},
		check: func(*signalset.Command, *jsonc.Node) []lint.Result {
			calls = append(calls, "cmd")
			return []lint.Result{finding("cmd", "command finding")}
		},
	})
	reg.MustRegister(baseRule{cfg: enabledCfg("inert", lint.SeverityWarning)})

	linter := lint.NewLinter(reg)
	node := &jsonc.Node{}

	results := linter.LintSignal(&signalset.Signal{ID: "X"}, node)
	require.Len(t, results, 1)
	assert.Equal(t, "sig", results[0].RuleID)

	results = linter.LintCommand(&signalset.Command{}, node)
	require.Len(t, results, 1)
	assert.Equal(t, "cmd", results[0].RuleID)

	// Granularities without implementors return nothing.
	assert.Empty(t, linter.LintCommands(nil, node))
	assert.Empty(t, linter.LintDocument(&signalset.Document{}, node))

	assert.Equal(t, []string{"sig", "cmd"}, calls)
}

func TestLinterFlattensMultipleFindings(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(signalStub{
		baseRule: baseRule{cfg: enabledCfg("multi", lint.SeverityWarning)},
		check: func(signalset.Target, *jsonc.Node) []lint.Result {
			return []lint.Result{finding("multi", "first"), finding("multi", "second")}
		},
	})
	reg.MustRegister(signalFinding("single", "third"))

	results := lint.NewLinter(reg).LintSignal(&signalset.Signal{}, &jsonc.Node{})
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Message)
	assert.Equal(t, "second", results[1].Message)
	assert.Equal(t, "third", results[2].Message)
}

func TestLinterDeterminism(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(signalFinding("first-rule", "a"))
	reg.MustRegister(signalFinding("second-rule", "b"))
	linter := lint.NewLinter(reg)

	target := &signalset.Signal{ID: "ENGINE_RPM"}
	node := &jsonc.Node{}

	run1 := linter.LintSignal(target, node)
	run2 := linter.LintSignal(target, node)
	assert.Equal(t, run1, run2)

	var ids []string
	for _, r := range run1 {
		ids = append(ids, r.RuleID)
	}
	assert.Equal(t, []string{"first-rule", "second-rule"}, ids)
}

func TestLinterRuleIsolation(t *testing.T) {
	build := func(cfg *lint.Config) *lint.Linter {
		reg := lint.NewRegistry(cfg)
		reg.MustRegister(signalFinding("keep", "kept"))
		reg.MustRegister(signalFinding("drop", "dropped"))
		return lint.NewLinter(reg)
	}

	full := build(lint.NewConfig()).LintSignal(&signalset.Signal{}, &jsonc.Node{})
	require.Len(t, full, 2)

	trimmed := build(lint.NewConfig().Disable("drop")).LintSignal(&signalset.Signal{}, &jsonc.Node{})
	require.Len(t, trimmed, 1)
	assert.Equal(t, "keep", trimmed[0].RuleID)
	assert.Equal(t, full[0], trimmed[0], "disabling one rule must not change another rule's output")
}

func TestLinterEmptyCommands(t *testing.T) {
	reg := lint.NewRegistry(lint.NewConfig())
	reg.MustRegister(documentStub{
		baseRule: baseRule{cfg: enabledCfg("doc", lint.SeverityError)},
		check: func(*signalset.Document, *jsonc.Node) []lint.Result {
			return []lint.Result{finding("doc", "document finding")}
		},
	})
	linter := lint.NewLinter(reg)

	assert.Empty(t, linter.LintCommands(nil, &jsonc.Node{}))
	assert.Len(t, linter.LintDocument(&signalset.Document{}, &jsonc.Node{}), 1,
		"document-level findings are independent of the commands walk")
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   lint.Severity
		wantOK bool
	}{
		{"error", lint.SeverityError, true},
		{"Warning", lint.SeverityWarning, true},
		{"info", lint.SeverityInfo, true},
		{"information", lint.SeverityInfo, true},
		{"HINT", lint.SeverityHint, true},
		{"fatal", lint.SeverityWarning, false},
		{"", lint.SeverityWarning, false},
	}

	for _, tt := range tests {
		got, ok := lint.ParseSeverity(tt.in)
		assert.Equal(t, tt.want, got, "ParseSeverity(%q)", tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseSeverity(%q) ok", tt.in)
	}
}

func TestTextEditSpan(t *testing.T) {
	n := &jsonc.Node{Offset: 10, Length: 5}
	edit := lint.Span(n, "xyz")
	assert.Equal(t, 10, edit.Offset)
	assert.Equal(t, 5, edit.Length)
	assert.Equal(t, 15, edit.End())
	assert.Equal(t, "xyz", edit.NewText)
}
