package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/clutch-assistant/siglint/internal/analysis"
	"github.com/clutch-assistant/siglint/internal/cli/output"
	"github.com/clutch-assistant/siglint/pkg/lint"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [paths...]",
		Short: "Run a comprehensive signalset health check",
		Long: `Analyze a signalset tree for potential issues and best practices.

The doctor command runs every rule across the tree and provides a
consolidated report including:
- Collection summary (files, commands, signals, signal groups)
- Health checks grouped by category
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check on the current directory
  siglint doctor

  # Check one signalset collection
  siglint doctor signalsets/v3

  # Output as JSON
  siglint doctor --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         CollectionSummary `json:"summary"`
	HealthChecks    []HealthCheck     `json:"health_checks"`
	Score           int               `json:"score"`
	Recommendations []string          `json:"recommendations"`
	IssueCount      int               `json:"issue_count"`
}

// CollectionSummary contains tree-level statistics.
type CollectionSummary struct {
	Files        int `json:"files"`
	Commands     int `json:"commands"`
	Signals      int `json:"signals"`
	SignalGroups int `json:"signal_groups"`
	Fixable      int `json:"fixable"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	linter, reg, err := buildLinter(cmdCtx.Cfg, nil, nil)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := analysis.Discover(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Warning("No signalset files found")
		return nil
	}

	reports := make([]*analysis.Report, 0, len(files))
	for _, path := range files {
		rep, err := analysis.AnalyzeFile(linter, path)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	doctorOutput := buildDoctorOutput(reports, reg)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(reports []*analysis.Report, reg *lint.Registry) *DoctorOutput {
	summary := buildCollectionSummary(reports)

	// Group findings by rule
	findingsByRule := make(map[string][]string)
	issueCount := 0
	for _, rep := range reports {
		for _, res := range rep.Results {
			findingsByRule[res.RuleID] = append(findingsByRule[res.RuleID],
				fmt.Sprintf("%s: %s", rep.Path, res.Message))
			issueCount++
		}
	}

	// Files that do not parse fail a dedicated check
	var parseFailures []string
	for _, rep := range reports {
		if rep.ParseErr != nil {
			parseFailures = append(parseFailures, fmt.Sprintf("%s: %s", rep.Path, rep.ParseErr.Message))
		}
	}
	issueCount += len(parseFailures)

	healthChecks := []HealthCheck{{
		RuleID:     "parse",
		Name:       "files parse cleanly",
		Group:      "document",
		Status:     statusFor(lint.SeverityError, len(parseFailures)),
		IssueCount: len(parseFailures),
		Details:    parseFailures,
	}}

	// One check per registered rule, in registration order
	for _, rule := range reg.Rules() {
		cfg := rule.Config()
		details := findingsByRule[cfg.ID]
		sev, _ := reg.Severity(cfg.ID)
		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     cfg.ID,
			Name:       cfg.Name,
			Group:      ruleGroup(cfg.Name),
			Status:     statusFor(sev, len(details)),
			IssueCount: len(details),
			Details:    details,
		})
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           calculateHealthScore(healthChecks, summary.Files),
		Recommendations: generateRecommendations(healthChecks),
		IssueCount:      issueCount,
	}
}

func buildCollectionSummary(reports []*analysis.Report) CollectionSummary {
	summary := CollectionSummary{Files: len(reports)}
	for _, rep := range reports {
		if rep.Doc == nil {
			continue
		}
		summary.Commands += len(rep.Doc.Commands)
		for _, cmd := range rep.Doc.Commands {
			summary.Signals += len(cmd.Signals)
		}
		summary.SignalGroups += len(rep.Doc.SignalGroups)
		for _, res := range rep.Results {
			if res.Suggestion != nil {
				summary.Fixable++
			}
		}
	}
	return summary
}

// ruleGroup derives the check category from the rule's dotted name.
func ruleGroup(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

func statusFor(sev lint.Severity, issues int) string {
	if issues == 0 {
		return "pass"
	}
	if sev == lint.SeverityError {
		return "error"
	}
	return "warn"
}

// calculateHealthScore computes a health score from 0-100. Larger
// trees absorb individual issues with a smaller penalty; errors count
// double.
func calculateHealthScore(checks []HealthCheck, fileCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if fileCount > 10 {
		basePenalty = 3.0
	}
	if fileCount > 50 {
		basePenalty = 2.0
	}
	if fileCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on
// findings, capped at the top 5.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "parse":
		return "Fix JSON syntax errors; unparseable files are invisible to every other check"
	case "document-missing-commands":
		return "Add a top-level \"commands\" array to empty documents"
	case "duplicate-command":
		return "Merge commands that share a header and request into one entry"
	case "command-missing-signals":
		return "Remove or populate commands that decode no signals"
	case "command-header-format":
		return "Run 'siglint fix' to normalize command headers to uppercase hex"
	case "signal-missing-name":
		return "Name every signal; names are what scan tooling displays"
	case "signal-id-format":
		return "Rename signal ids to uppercase alphanumerics with underscores"
	case "signal-name-unit-suffix":
		return "Run 'siglint fix' to drop unit suffixes that repeat fmt.unit"
	case "suggested-metric-suggestion":
		return "Run 'siglint fix' to connect well-known signals to suggestedMetric"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("Signalset Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Collection Summary
	r.Println(styles.Header2.Render("Collection Summary"))
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Files", "Commands", "Signals", "Groups", "Fixable"})
	t.AppendRow(table.Row{
		out.Summary.Files,
		out.Summary.Commands,
		out.Summary.Signals,
		out.Summary.SignalGroups,
		out.Summary.Fixable,
	})
	t.Render()
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println(output.FormatHeader(1, "Signalset Health Report"))
	r.Println("")

	// Collection Summary
	r.Println(output.FormatHeader(2, "Collection Summary"))
	r.Println("")
	r.Println(output.FormatKeyValue("Files", strconv.Itoa(out.Summary.Files)))
	r.Println(output.FormatKeyValue("Commands", strconv.Itoa(out.Summary.Commands)))
	r.Println(output.FormatKeyValue("Signals", strconv.Itoa(out.Summary.Signals)))
	r.Println(output.FormatKeyValue("Signal Groups", strconv.Itoa(out.Summary.SignalGroups)))
	r.Println(output.FormatKeyValue("Fixable Issues", strconv.Itoa(out.Summary.Fixable)))
	r.Println("")

	// Health Checks
	r.Println(output.FormatHeader(2, "Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(output.FormatHeader(3, titleCaser.String(currentGroup)))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Health Score
	r.Println(output.FormatHeader(2, "Health Score"))
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(output.FormatHeader(2, "Recommendations"))
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
