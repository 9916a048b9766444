package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-assistant/siglint/internal/cli/output"
)

func sampleDoctorOutput() *DoctorOutput {
	return &DoctorOutput{
		Summary: CollectionSummary{
			Files:        3,
			Commands:     7,
			Signals:      42,
			SignalGroups: 2,
			Fixable:      4,
		},
		HealthChecks: []HealthCheck{
			{RuleID: "parse", Name: "Valid JSON", Group: "syntax", Status: "pass"},
			{
				RuleID:     "signal-id-format",
				Name:       "Signal id format",
				Group:      "naming",
				Status:     "warn",
				IssueCount: 2,
				Details:    []string{"pack.json: id \"rpm\""},
			},
		},
		Score:           85,
		Recommendations: []string{"Rename signal ids to uppercase alphanumerics with underscores"},
	}
}

func TestRenderDoctorText(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeText)

	require.NoError(t, renderDoctorText(r, sampleDoctorOutput()))
	got := buf.String()

	// The collection summary renders as a table, headers uppercased.
	assert.Contains(t, got, "FILES")
	assert.Contains(t, got, "COMMANDS")
	assert.Contains(t, got, "FIXABLE")
	assert.Contains(t, got, "42")
	assert.Contains(t, got, "Health Score")
	assert.Contains(t, got, "85/100")
	assert.Contains(t, got, "signal-id-format")
	assert.Contains(t, got, "(2 issues)")
}

func TestRenderDoctorMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeMarkdown)

	require.NoError(t, renderDoctorMarkdown(r, sampleDoctorOutput()))
	got := buf.String()

	assert.Contains(t, got, "# Signalset Health Report")
	assert.Contains(t, got, "## Collection Summary")
	assert.Contains(t, got, output.FormatKeyValue("Files", "3"))
	assert.Contains(t, got, output.FormatKeyValue("Signals", "42"))
	assert.Contains(t, got, "### Naming")
	assert.Contains(t, got, "## Health Score")
	assert.Contains(t, got, "**85/100**")
	assert.Contains(t, got, "## Recommendations")
}
