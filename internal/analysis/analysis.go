// Package analysis drives the lint engine over signalset sources. It
// owns the traversal order contract: document first, then the command
// collection, then each command followed by its signals, then the
// signal groups. Front-ends hand it a buffer or a path and get back
// one ordered result sequence.
package analysis

import (
	"errors"
	"fmt"
	"os"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/signalset"
)

// Report is the analysis outcome for one source buffer.
type Report struct {
	// Path is the originating file, empty for in-memory buffers.
	Path string

	// Source is the analyzed text. Result offsets address it.
	Source string

	// Doc is the projected document, nil when parsing failed.
	Doc *signalset.Document

	// ParseErr is set when the source is not parseable; no results are
	// produced in that case.
	ParseErr *jsonc.ParseError

	Results []lint.Result
}

// Analyze parses src, projects the document model and walks it through
// the linter. A parse failure is reported on the Report, not as an
// error: broken buffers are an expected input for a linter.
func Analyze(linter *lint.Linter, src string) *Report {
	report := &Report{Source: src}

	root, err := jsonc.Parse(src)
	if err != nil {
		var perr *jsonc.ParseError
		if !errors.As(err, &perr) {
			perr = &jsonc.ParseError{Message: err.Error()}
		}
		report.ParseErr = perr
		return report
	}

	report.Doc = signalset.Decode(root)
	report.Results = Run(linter, report.Doc)
	return report
}

// AnalyzeFile reads path and analyzes its content.
func AnalyzeFile(linter *lint.Linter, path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	report := Analyze(linter, string(data))
	report.Path = path
	return report, nil
}

// Run walks doc in the fixed traversal order and collects the results
// of every granularity into one sequence.
func Run(linter *lint.Linter, doc *signalset.Document) []lint.Result {
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
