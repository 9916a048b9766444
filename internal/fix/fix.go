// Package fix applies suggestion edits from lint results to a source
// buffer. The engine itself never touches files; callers decide where
// the rewritten text goes.
package fix

import (
	"sort"

	"github.com/clutch-assistant/siglint/pkg/lint"
)

// Applied records one accepted suggestion.
type Applied struct {
	RuleID string
	Title  string
	Edits  int
}

// Skipped records a suggestion that was not applied and why.
type Skipped struct {
	RuleID string
	Title  string
	Reason string
}

// Result is the outcome of one Apply pass over a single buffer.
type Result struct {
	// Text is the rewritten buffer. Equal to the input when nothing
	// was applied.
	Text    string
	Applied []Applied
	Skipped []Skipped
}

// Changed reports whether any suggestion was applied.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// Apply takes every suggested fix in results, in result order, and
// splices the accepted edits into src. When two suggestions want
// overlapping spans the first one in result order wins and the rest
// are reported as skipped. Each suggestion is all-or-nothing: one bad
// or conflicting edit skips the whole suggestion.
//
// Accepted edits are applied in a single descending-offset pass, so an
// edit never invalidates the offsets of the edits before it.
func Apply(src string, results []lint.Result) *Result {
	out := &Result{Text: src}

	var accepted []lint.TextEdit
	for _, r := range results {
		sug := r.Suggestion
		if sug == nil || len(sug.Edits) == 0 {
			continue
		}

		if reason := vet(src, sug.Edits, accepted); reason != "" {
			out.Skipped = append(out.Skipped, Skipped{
				RuleID: r.RuleID,
				Title:  sug.Title,
				Reason: reason,
			})
			continue
		}

		accepted = append(accepted, sug.Edits...)
		out.Applied = append(out.Applied, Applied{
			RuleID: r.RuleID,
			Title:  sug.Title,
			Edits:  len(sug.Edits),
		})
	}

	if len(accepted) == 0 {
		return out
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Offset == accepted[j].Offset {
			return accepted[i].End() > accepted[j].End()
		}
		return accepted[i].Offset > accepted[j].Offset
	})

	text := src
	for _, e := range accepted {
		text = text[:e.Offset] + e.NewText + text[e.End():]
	}
	out.Text = text
	return out
}

// vet checks a suggestion's edits against the buffer and the edits
// already accepted. It returns an empty string when the suggestion is
// applicable, otherwise the reason to skip it.
func vet(src string, edits, accepted []lint.TextEdit) string {
	for i, e := range edits {
		if e.Offset < 0 || e.Length < 0 || e.End() > len(src) {
			return "edit span out of range"
		}
		for _, prev := range edits[:i] {
			if spansConflict(prev, e) {
				return "suggestion edits overlap each other"
			}
		}
		for _, prev := range accepted {
			if spansConflict(prev, e) {
				return "conflicts with an earlier suggestion"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edits' spans overlap. Spans are
// half-open intervals [Offset, End). Two zero-length edits never
// conflict; a zero-length edit conflicts with a span that contains its
// position.
func spansConflict(a, b lint.TextEdit) bool {
	if a.Length == 0 && b.Length == 0 {
		return false
	}
	if a.Length == 0 {
		return b.Offset <= a.Offset && a.Offset < b.End()
	}
	if b.Length == 0 {
		return a.Offset <= b.Offset && b.Offset < a.End()
	}
	return a.Offset < b.End() && b.Offset < a.End()
}
