package signalset_test

import (
	"testing"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/signalset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *jsonc.Node {
	t.Helper()
	root, err := jsonc.Parse(src)
	require.NoError(t, err)
	return root
}

func TestDecodeDocument(t *testing.T) {
	src := `{
	"commands": [
		{
			"hdr": "7E0",
			"rax": "7E8",
			"cmd": {"22": "0C40"},
			"freq": 0.5,
			"signals": [
				{
					"id": "ENGINE_RPM",
					"path": "Engine",
					"fmt": {"len": 16, "max": 16383.75, "unit": "rpm"},
					"name": "Engine RPM",
					"suggestedMetric": "rpm"
				},
				{"id": "COOLANT_TEMP", "name": "Coolant temperature", "hidden": true}
			]
		}
	],
	"signalGroups": [
		{"id": "TIRES", "matchingRegex": "TIRE_", "name": "Tire pressure", "suggestedMetricGroup": "pressure"}
	]
}`

	doc := signalset.Decode(parse(t, src))

	require.Len(t, doc.Commands, 1)
	require.NotNil(t, doc.CommandsNode)

	cmd := doc.Commands[0]
	assert.Equal(t, "7E0", cmd.Hdr)
	assert.Equal(t, "7E8", cmd.Rax)
	assert.Equal(t, 0.5, cmd.Freq)
	require.Len(t, cmd.Cmd, 1)
	assert.Equal(t, signalset.CmdEntry{Mode: "22", Param: "0C40"}, cmd.Cmd[0])
	require.NotNil(t, cmd.Node)

	require.Len(t, cmd.Signals, 2)
	rpm := cmd.Signals[0]
	assert.Equal(t, "ENGINE_RPM", rpm.ID)
	assert.Equal(t, "Engine", rpm.Path)
	assert.Equal(t, "Engine RPM", rpm.Name)
	assert.Equal(t, "rpm", rpm.SuggestedMetric)
	require.NotNil(t, rpm.Fmt)
	assert.Equal(t, 16, rpm.Fmt.Len)
	assert.Equal(t, 16383.75, rpm.Fmt.Max)
	assert.Equal(t, "rpm", rpm.Fmt.Unit)
	require.NotNil(t, rpm.Node)

	coolant := cmd.Signals[1]
	assert.True(t, coolant.Hidden)
	assert.Nil(t, coolant.Fmt)
	assert.Empty(t, coolant.SuggestedMetric)

	require.Len(t, doc.SignalGroups, 1)
	grp := doc.SignalGroups[0]
	assert.Equal(t, "TIRES", grp.ID)
	assert.Equal(t, "pressure", grp.SuggestedMetricGroup)
}

func TestDecodeToleratesMissingSections(t *testing.T) {
	doc := signalset.Decode(parse(t, `{"meta": 1}`))
	assert.Empty(t, doc.Commands)
	assert.Nil(t, doc.CommandsNode)
	assert.Empty(t, doc.SignalGroups)
	require.NotNil(t, doc.Root)

	// commands present but not an array
	doc = signalset.Decode(parse(t, `{"commands": "nope"}`))
	assert.Nil(t, doc.CommandsNode)

	// non-object root
	doc = signalset.Decode(parse(t, `[1, 2]`))
	assert.Empty(t, doc.Commands)
}

func TestTargetInterface(t *testing.T) {
	sig := &signalset.Signal{ID: "ENGINE_RPM", Name: "Engine RPM", SuggestedMetric: "rpm"}
	grp := &signalset.SignalGroup{ID: "TIRES", Name: "Tire pressure", SuggestedMetricGroup: "pressure"}

	targets := []signalset.Target{sig, grp}
	assert.Equal(t, "ENGINE_RPM", targets[0].SignalID())
	assert.Equal(t, "Engine RPM", targets[0].DisplayName())
	assert.Equal(t, "rpm", targets[0].Metric())
	assert.Equal(t, "TIRES", targets[1].SignalID())
	assert.Equal(t, "pressure", targets[1].Metric())
}

func TestCommandIdentity(t *testing.T) {
	a := &signalset.Command{Hdr: "7E0", Cmd: []signalset.CmdEntry{{Mode: "22", Param: "0C"}}, Rax: "7E8"}
	b := &signalset.Command{Hdr: "7E0", Cmd: []signalset.CmdEntry{{Mode: "22", Param: "0C"}}, Rax: "7E8"}
	c := &signalset.Command{Hdr: "7E0", Cmd: []signalset.CmdEntry{{Mode: "22", Param: "0D"}}, Rax: "7E8"}

	assert.Equal(t, a.Identity(), b.Identity())
	assert.NotEqual(t, a.Identity(), c.Identity())
}
