package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clutch-assistant/siglint/internal/analysis"
	"github.com/clutch-assistant/siglint/internal/cli/output"
	"github.com/clutch-assistant/siglint/internal/fix"
	"github.com/clutch-assistant/siglint/internal/tui"
	"github.com/clutch-assistant/siglint/pkg/lint"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format      string   // Output format
	DryRun      bool     // Report what would change without writing
	Interactive bool     // Pick fixes one by one in a terminal UI
	Disable     []string // Rule IDs to disable
	Rules       []string // Apply fixes from specific rules only
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply suggested fixes to signalset files",
		Long: `Apply the machine-applicable fixes suggested by lint rules.

Files are rewritten in place. When two suggestions want overlapping
text ranges the first one wins and the rest are reported as skipped;
re-running the command picks them up against the rewritten file.

Unparseable files are skipped and left untouched.`,
		Example: `  # Fix everything under the current directory
  siglint fix

  # Preview without writing
  siglint fix --dry-run

  # Pick fixes interactively
  siglint fix -i

  # Apply fixes from one rule only
  siglint fix --rule suggested-metric-suggestion`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report fixes without modifying files")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Choose which fixes to apply")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Apply fixes from specific rules only")

	return cmd
}

func runFix(cmd *cobra.Command, opts *FixOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	linter, _, err := buildLinter(cmdCtx.Cfg, opts.Disable, opts.Rules)
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

	var reports []*analysis.Report
	for _, path := range files {
		rep, err := analysis.AnalyzeFile(linter, path)
		if err != nil {
			return err
		}
		if rep.ParseErr != nil {
			logger.Warn("skipping unparseable file", "path", path, "error", rep.ParseErr.Message)
			continue
		}
		reports = append(reports, rep)
	}

	// picks holds, per report, the findings whose suggestions to apply.
	picks := make([][]lint.Result, len(reports))
	for i, rep := range reports {
		picks[i] = fixableResults(rep.Results)
	}

	if opts.Interactive {
		picks, err = pickInteractive(reports, picks)
		if errors.Is(err, tui.ErrAborted) {
			r.Muted("Aborted, no files changed.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	out := &output.FixOutput{
		DryRun:  opts.DryRun,
		Summary: output.FixSummary{Files: len(reports)},
	}
	for i, rep := range reports {
		if len(picks[i]) == 0 {
			continue
		}

		res := fix.Apply(rep.Source, picks[i])
		fileRes := output.FixFileResult{Path: rep.Path, Changed: res.Changed()}
		for _, a := range res.Applied {
			fileRes.Applied = append(fileRes.Applied, output.FixApplied{
				RuleID: a.RuleID,
				Title:  a.Title,
				Edits:  a.Edits,
			})
		}
		for _, s := range res.Skipped {
			fileRes.Skipped = append(fileRes.Skipped, output.FixSkipped{
				RuleID: s.RuleID,
				Title:  s.Title,
				Reason: s.Reason,
			})
		}
		out.Files = append(out.Files, fileRes)

		out.Summary.Applied += len(res.Applied)
		out.Summary.Skipped += len(res.Skipped)
		if res.Changed() {
			out.Summary.Changed++
			if !opts.DryRun {
				if err := os.WriteFile(rep.Path, []byte(res.Text), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", rep.Path, err)
				}
			}
		}
	}

	renderFixResults(r, out)
	return nil
}

// fixableResults keeps the findings that carry a suggestion, in result
// order so first-wins conflict resolution stays deterministic.
func fixableResults(results []lint.Result) []lint.Result {
	var fixable []lint.Result
	for _, res := range results {
		if res.Suggestion != nil && len(res.Suggestion.Edits) > 0 {
			fixable = append(fixable, res)
		}
	}
	return fixable
}

// pickInteractive shows one picker across every file and narrows picks
// to the accepted entries.
func pickInteractive(reports []*analysis.Report, picks [][]lint.Result) ([][]lint.Result, error) {
	var items []tui.FixItem
	// owner maps the flat item index back to (report, result).
	type ref struct{ report, result int }
	var owners []ref

	for i, rep := range reports {
		for j, res := range picks[i] {
			edit := res.Suggestion.Edits[0]
			items = append(items, tui.FixItem{
				Path:    rep.Path,
				Line:    res.Node.Pos.Line,
				Column:  res.Node.Pos.Column,
				RuleID:  res.RuleID,
				Title:   res.Suggestion.Title,
				OldText: rep.Source[edit.Offset:edit.End()],
				NewText: edit.NewText,
				Edits:   len(res.Suggestion.Edits),
			})
			owners = append(owners, ref{report: i, result: j})
		}
	}
	if len(items) == 0 {
		return make([][]lint.Result, len(reports)), nil
	}

	selected, err := tui.RunFixPicker(items)
	if err != nil {
		return nil, err
	}

	narrowed := make([][]lint.Result, len(reports))
	for _, idx := range selected {
		o := owners[idx]
		narrowed[o.report] = append(narrowed[o.report], picks[o.report][o.result])
	}
	return narrowed, nil
}

func renderFixResults(r *output.Renderer, out *output.FixOutput) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(out)
		return
	}

	if len(out.Files) == 0 {
		r.Success(fmt.Sprintf("No fixable issues in %d files", out.Summary.Files))
		return
	}

	styles := r.Styles()
	for _, f := range out.Files {
		r.Println(styles.Header2.Render(f.Path))
		for _, a := range f.Applied {
			r.Printf("  %s %s  %s\n",
				styles.StatusSuccess.String(),
				a.Title,
				styles.Muted.Render(a.RuleID),
			)
		}
		for _, s := range f.Skipped {
			r.Printf("  %s %s  %s\n",
				styles.StatusFailed.String(),
				s.Title,
				styles.Muted.Render(s.Reason),
			)
		}
		r.Println("")
	}

	verb := "applied"
	if out.DryRun {
		verb = "would apply"
	}
	summary := fmt.Sprintf("Summary: %s %d fixes in %d files", verb, out.Summary.Applied, out.Summary.Changed)
	if out.Summary.Skipped > 0 {
		summary += fmt.Sprintf(" (%d skipped)", out.Summary.Skipped)
	}
	r.Println(summary)
	if out.DryRun {
		r.Muted("Dry run: no files were modified")
	}
}
