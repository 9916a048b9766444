package output

// JSON output shapes for the lint, fix and rules commands. Commands
// fill these; the renderer only encodes them.

// LintOutput is the machine-readable result of one lint run.
type LintOutput struct {
	RunID   string           `json:"run_id"`
	Files   []LintFileResult `json:"files"`
	Summary LintSummary      `json:"summary"`
}

// LintFileResult holds the findings for a single file.
type LintFileResult struct {
	Path        string           `json:"path"`
	ParseError  *LintParseError  `json:"parse_error,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintParseError reports a file that could not be parsed.
type LintParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
}

// LintDiagnostic is one finding.
type LintDiagnostic struct {
	RuleID     string `json:"rule_id"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Offset     int    `json:"offset"`
	Length     int    `json:"length"`
	Suggestion string `json:"suggestion,omitempty"`
}

// LintSummary aggregates a run, bucketed by configured severity.
type LintSummary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Hints    int `json:"hints"`
	Fixable  int `json:"fixable"`
}

// FixOutput is the machine-readable result of one fix run.
type FixOutput struct {
	DryRun  bool            `json:"dry_run"`
	Files   []FixFileResult `json:"files"`
	Summary FixSummary      `json:"summary"`
}

// FixFileResult holds the applied and skipped fixes for one file.
type FixFileResult struct {
	Path    string       `json:"path"`
	Changed bool         `json:"changed"`
	Applied []FixApplied `json:"applied"`
	Skipped []FixSkipped `json:"skipped,omitempty"`
}

// FixApplied is one applied suggestion.
type FixApplied struct {
	RuleID string `json:"rule_id"`
	Title  string `json:"title"`
	Edits  int    `json:"edits"`
}

// FixSkipped is one suggestion that could not be applied.
type FixSkipped struct {
	RuleID string `json:"rule_id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// FixSummary aggregates a fix run.
type FixSummary struct {
	Files   int `json:"files"`
	Changed int `json:"changed"`
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// RuleInfo describes one rule in the catalog.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Checks      []string `json:"checks"`
}
