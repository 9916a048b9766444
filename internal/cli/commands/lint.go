package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clutch-assistant/siglint/internal/analysis"
	"github.com/clutch-assistant/siglint/internal/cli/output"
	"github.com/clutch-assistant/siglint/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, markdown, json
	Severity string   // Minimum severity to report: error, warning, info, hint
	FailOn   string   // Severity threshold for a non-zero exit
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Watch    bool     // Re-lint when watched files change
	Jobs     int      // File-level parallelism, 0 = NumCPU
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run lint rules on signalset files",
		Long: `Analyze signalset files for potential issues.

Runs the rule catalog against each file and reports any findings.
Directories are searched recursively for .json and .jsonc files.
Rules can be configured in siglint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  siglint lint

  # Lint specific files or directories
  siglint lint signalsets/v3 extra.json

  # Output as JSON
  siglint lint --format json

  # Disable specific rules
  siglint lint --disable signal-name-unit-suffix

  # Only report errors (ignore warnings/infos/hints)
  siglint lint --severity error

  # Re-lint whenever watched files change
  siglint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", "", "Exit non-zero at this severity or stronger (overrides config)")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-lint on change")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of files to lint in parallel (0 = all CPUs)")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	linter, reg, err := buildLinter(cfg, opts.Disable, opts.Rules)
	if err != nil {
		return err
	}

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("severity: unknown severity %q", opts.Severity)
	}

	failOn := cfg.FailOn
	if opts.FailOn != "" {
		failOn = opts.FailOn
	}
	failSev, ok := lint.ParseSeverity(failOn)
	if !ok {
		return fmt.Errorf("fail-on: unknown severity %q", failOn)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = cfg.Jobs
	}

	if opts.Watch {
		return watchLint(cmd.Context(), cmdCtx, r, linter, reg, paths, jobs, threshold)
	}

	out, err := lintPaths(linter, reg, paths, jobs, threshold)
	if err != nil {
		return err
	}
	renderLintResults(r, out)

	if lintFailure(out, failSev) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// lintPaths discovers the files under paths and analyzes them,
// fanning out across jobs workers. Output order follows discovery
// order regardless of which worker finishes first.
func lintPaths(linter *lint.Linter, reg *lint.Registry, paths []string, jobs int, threshold lint.Severity) (*output.LintOutput, error) {
	files, err := analysis.Discover(paths)
	if err != nil {
		return nil, err
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	reports := make([]*analysis.Report, len(files))
	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			report, err := analysis.AnalyzeFile(linter, path)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildLintOutput(reports, reg, threshold), nil
}

// buildLintOutput converts the raw reports into the output shape,
// resolving each finding's severity through its owning rule and
// dropping findings weaker than threshold.
func buildLintOutput(reports []*analysis.Report, reg *lint.Registry, threshold lint.Severity) *output.LintOutput {
	out := &output.LintOutput{
		RunID:   uuid.New().String(),
		Summary: output.LintSummary{Files: len(reports)},
	}

	for _, rep := range reports {
		file := output.LintFileResult{Path: rep.Path}

		if rep.ParseErr != nil {
			file.ParseError = &output.LintParseError{
				Message: rep.ParseErr.Message,
				Line:    rep.ParseErr.Pos.Line,
				Column:  rep.ParseErr.Pos.Column,
				Offset:  rep.ParseErr.Pos.Offset,
			}
			out.Summary.Errors++
			out.Files = append(out.Files, file)
			continue
		}

		for _, res := range rep.Results {
			sev, _ := reg.Severity(res.RuleID)
			if sev > threshold {
				continue
			}

			d := output.LintDiagnostic{
				RuleID:   res.RuleID,
				Severity: sev.String(),
				Message:  res.Message,
			}
			if res.Node != nil {
				d.Line = res.Node.Pos.Line
				d.Column = res.Node.Pos.Column
				d.Offset = res.Node.Offset
				d.Length = res.Node.Length
			}
			if res.Suggestion != nil {
				d.Suggestion = res.Suggestion.Title
				out.Summary.Fixable++
			}

			switch sev {
			case lint.SeverityError:
				out.Summary.Errors++
			case lint.SeverityWarning:
				out.Summary.Warnings++
			case lint.SeverityInfo:
				out.Summary.Infos++
			case lint.SeverityHint:
				out.Summary.Hints++
			}

			file.Diagnostics = append(file.Diagnostics, d)
		}

		out.Files = append(out.Files, file)
	}

	return out
}

// lintFailure reports whether the run crosses the fail threshold. A
// parse error always does: severities compare numerically and error is
// the strongest.
func lintFailure(out *output.LintOutput, failOn lint.Severity) bool {
	for _, f := range out.Files {
		if f.ParseError != nil {
			return true
		}
		for _, d := range f.Diagnostics {
			if sev, ok := lint.ParseSeverity(d.Severity); ok && sev <= failOn {
				return true
			}
		}
	}
	return false
}

func renderLintResults(r *output.Renderer, out *output.LintOutput) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(out)
		return
	}

	issues := 0
	for _, f := range out.Files {
		issues += len(f.Diagnostics)
		if f.ParseError != nil {
			issues++
		}
	}
	if issues == 0 {
		r.Success(fmt.Sprintf("No issues found in %d files", out.Summary.Files))
		return
	}

	// Text/Markdown output
	for _, f := range out.Files {
		if f.ParseError == nil && len(f.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().Header2.Render(f.Path))

		if f.ParseError != nil {
			loc := fmt.Sprintf("%d:%d", f.ParseError.Line, f.ParseError.Column)
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-7s", loc)),
				r.Styles().Error.Render("error  "),
				r.Styles().Bold.Render("parse"),
				f.ParseError.Message,
			)
			r.Println("")
			continue
		}

		for _, d := range f.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
			if d.Line == 0 {
				loc = "-"
			}
			fixable := ""
			if d.Suggestion != "" {
				fixable = "  " + r.Styles().Muted.Render("[fixable]")
			}
			r.Printf("  %s  %s  %s  %s%s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
				fixable,
			)
		}
		r.Println("")
	}

	// Print summary
	total := out.Summary.Errors + out.Summary.Warnings + out.Summary.Infos + out.Summary.Hints
	summaryParts := []string{fmt.Sprintf("%d issues", total)}
	if out.Summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", out.Summary.Errors))
	}
	if out.Summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", out.Summary.Warnings))
	}
	if out.Summary.Infos > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", out.Summary.Infos))
	}
	if out.Summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", out.Summary.Hints))
	}
	if out.Summary.Fixable > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d fixable", out.Summary.Fixable))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), out.Summary.Files)
}

// severityLabel returns the styled, width-padded severity column.
func severityLabel(r *output.Renderer, sev string) string {
	switch sev {
	case "error":
		return r.Styles().Error.Render("error  ")
	case "warning":
		return r.Styles().Warning.Render("warning")
	case "info":
		return r.Styles().Info.Render("info   ")
	case "hint":
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

// watchLint runs an initial pass and then re-lints whenever a
// signalset file under paths changes. Findings never abort the loop;
// the command exits only on context cancellation or a watcher failure.
func watchLint(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, linter *lint.Linter, reg *lint.Registry, paths []string, jobs int, threshold lint.Severity) error {
	run := func() {
		out, err := lintPaths(linter, reg, paths, jobs, threshold)
		if err != nil {
			r.Error(err.Error())
			return
		}
		renderLintResults(r, out)
	}

	run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watchPath(watcher, path); err != nil {
			return err
		}
	}

	r.Muted("Watching for changes (Ctrl+C to stop)...")

	logger := cmdCtx.Logger
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only handle write/create/remove/rename of signalset files
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !analysis.IsSignalsetFile(event.Name) {
				continue
			}

			// Debounce re-lint bursts from editors that write in stages
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				r.Printf("\nChange detected: %s\n\n", filepath.Base(event.Name))
				run()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// watchPath registers path with the watcher. Directories are walked
// recursively so nested signalset folders are covered; hidden
// directories are skipped.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		// Watch the parent so atomic saves (rename-over) are seen.
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if fi.IsDir() {
			if len(fi.Name()) > 1 && fi.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(p)
		}
		return nil
	})
}
