package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/clutch-assistant/siglint/internal/cli/output"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/lint/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Check  string // Filter by granularity: document, commands, command, signal
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List the lint rule catalog with effective severities.

The listing reflects the loaded configuration: rules disabled or
re-levelled in siglint.yaml show their effective state, not their
defaults.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  siglint rules

  # Show details for a specific rule
  siglint rules suggested-metric-suggestion

  # List rules that check individual signals
  siglint rules --check signal

  # Output as JSON
  siglint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Check, "check", "", "Filter by granularity: document, commands, command, signal")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	reg, err := configuredRegistry(cmdCtx)
	if err != nil {
		return err
	}

	infos := ruleInfos(reg)
	if opts.Check != "" {
		infos = filterRulesByCheck(infos, opts.Check)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, infos)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, infos)
	default:
		return listRulesText(r, infos)
	}
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	reg, err := configuredRegistry(cmdCtx)
	if err != nil {
		return err
	}

	var info *output.RuleInfo
	for _, ri := range ruleInfos(reg) {
		if ri.ID == ruleID {
			info = &ri
			break
		}
	}
	if info == nil {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, info)
	default:
		return showRuleText(r, info)
	}
}

// configuredRegistry builds the rule catalog under the loaded config
// so enabled state and severities are the effective ones.
func configuredRegistry(cmdCtx *CommandContext) (*lint.Registry, error) {
	lcfg, err := cmdCtx.Cfg.LintConfig()
	if err != nil {
		return nil, err
	}
	return rules.NewRegistry(lcfg), nil
}

// ruleInfos projects the registry into the output shape, in
// registration order.
func ruleInfos(reg *lint.Registry) []output.RuleInfo {
	var infos []output.RuleInfo
	for _, rule := range reg.Rules() {
		cfg := rule.Config()
		sev, _ := reg.Severity(cfg.ID)
		infos = append(infos, output.RuleInfo{
			ID:          cfg.ID,
			Name:        cfg.Name,
			Description: cfg.Description,
			Severity:    sev.String(),
			Enabled:     reg.IsEnabled(cfg.ID),
			Checks:      ruleChecks(rule),
		})
	}
	return infos
}

// ruleChecks lists the granularities a rule participates in, by
// capability.
func ruleChecks(rule lint.Rule) []string {
	var checks []string
	if _, ok := rule.(lint.DocumentRule); ok {
		checks = append(checks, "document")
	}
	if _, ok := rule.(lint.CommandsRule); ok {
		checks = append(checks, "commands")
	}
	if _, ok := rule.(lint.CommandRule); ok {
		checks = append(checks, "command")
	}
	if _, ok := rule.(lint.SignalRule); ok {
		checks = append(checks, "signal")
	}
	return checks
}

func filterRulesByCheck(infos []output.RuleInfo, check string) []output.RuleInfo {
	var filtered []output.RuleInfo
	for _, info := range infos {
		for _, c := range info.Checks {
			if c == check {
				filtered = append(filtered, info)
				break
			}
		}
	}
	return filtered
}

// listRulesText outputs the catalog as a styled table.
func listRulesText(r *output.Renderer, infos []output.RuleInfo) error {
	styles := r.Styles()

	enabled := 0
	for _, info := range infos {
		if info.Enabled {
			enabled++
		}
	}

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d enabled of %d)", enabled, len(infos))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Severity", "Enabled", "Checks", "Description"})
	for _, info := range infos {
		enabledMark := ""
		if info.Enabled {
			enabledMark = "yes"
		}
		t.AppendRow(table.Row{
			info.ID,
			info.Severity,
			enabledMark,
			strings.Join(info.Checks, ","),
			info.Description,
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'siglint rules <rule-id>' for details"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs the catalog as a markdown table.
func listRulesMarkdown(r *output.Renderer, infos []output.RuleInfo) error {
	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")
	r.Println("| ID | Severity | Enabled | Checks | Description |")
	r.Println("|----|----------|---------|--------|-------------|")
	for _, info := range infos {
		r.Printf("| %s | %s | %t | %s | %s |\n",
			info.ID,
			info.Severity,
			info.Enabled,
			strings.Join(info.Checks, ", "),
			info.Description,
		)
	}
	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for the rules listing.
type RulesJSONOutput struct {
	Rules []output.RuleInfo `json:"rules"`
	Count struct {
		Enabled int `json:"enabled"`
		Total   int `json:"total"`
	} `json:"count"`
}

func listRulesJSON(r *output.Renderer, infos []output.RuleInfo) error {
	jsonOutput := RulesJSONOutput{Rules: infos}
	for _, info := range infos {
		if info.Enabled {
			jsonOutput.Count.Enabled++
		}
	}
	jsonOutput.Count.Total = len(infos)
	return r.JSON(jsonOutput)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, info *output.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), styles.SeverityStyle(info.Severity).Render(info.Severity))
	r.Printf("  %s: %t\n", styles.Bold.Render("Enabled"), info.Enabled)
	r.Printf("  %s: %s\n", styles.Bold.Render("Checks"), strings.Join(info.Checks, ", "))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + info.Description)
	r.Println("")

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, info *output.RuleInfo) error {
	r.Println(output.FormatHeader(1, info.ID+" - "+info.Name))
	r.Println("")
	r.Printf("**Severity:** `%s` | **Enabled:** %t | **Checks:** %s\n\n",
		info.Severity, info.Enabled, strings.Join(info.Checks, ", "))
	r.Println(info.Description)
	r.Println("")
	return nil
}
