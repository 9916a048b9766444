package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutch-assistant/siglint/internal/fix"
	"github.com/clutch-assistant/siglint/pkg/lint"
)

func suggestion(ruleID, title string, edits ...lint.TextEdit) lint.Result {
	return lint.Result{
		RuleID:     ruleID,
		Message:    title,
		Suggestion: &lint.Suggestion{Title: title, Edits: edits},
	}
}

func TestApplySingleEdit(t *testing.T) {
	src := `{"hdr":"7e0"}`
	results := []lint.Result{
		suggestion("command-header-format", "Uppercase header",
			lint.TextEdit{Offset: 7, Length: 5, NewText: `"7E0"`}),
	}

	out := fix.Apply(src, results)
	require.True(t, out.Changed())
	assert.Equal(t, `{"hdr":"7E0"}`, out.Text)
	require.Len(t, out.Applied, 1)
	assert.Equal(t, "command-header-format", out.Applied[0].RuleID)
	assert.Empty(t, out.Skipped)
}

func TestApplyDescendingOffsets(t *testing.T) {
	// Two edits in ascending source order. Applying the later one
	// first keeps the earlier offset valid even though the
	// replacement changes the buffer length.
	src := "aaa bbb"
	results := []lint.Result{
		suggestion("r1", "first",
			lint.TextEdit{Offset: 0, Length: 3, NewText: "AAAA"}),
		suggestion("r2", "second",
			lint.TextEdit{Offset: 4, Length: 3, NewText: "B"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, "AAAA B", out.Text)
	assert.Len(t, out.Applied, 2)
}

func TestApplyFirstWinsOnConflict(t *testing.T) {
	src := "0123456789"
	results := []lint.Result{
		suggestion("r1", "take 2..6",
			lint.TextEdit{Offset: 2, Length: 4, NewText: "X"}),
		suggestion("r2", "take 4..8",
			lint.TextEdit{Offset: 4, Length: 4, NewText: "Y"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, "01X6789", out.Text)
	require.Len(t, out.Applied, 1)
	assert.Equal(t, "r1", out.Applied[0].RuleID)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "r2", out.Skipped[0].RuleID)
	assert.Equal(t, "conflicts with an earlier suggestion", out.Skipped[0].Reason)
}

func TestApplySuggestionIsAtomic(t *testing.T) {
	// One in-range edit plus one out-of-range edit: neither lands.
	src := "0123"
	results := []lint.Result{
		suggestion("r1", "half broken",
			lint.TextEdit{Offset: 0, Length: 1, NewText: "X"},
			lint.TextEdit{Offset: 2, Length: 99, NewText: "Y"}),
	}

	out := fix.Apply(src, results)
	assert.False(t, out.Changed())
	assert.Equal(t, src, out.Text)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "edit span out of range", out.Skipped[0].Reason)
}

func TestApplySelfOverlapSkipped(t *testing.T) {
	src := "0123456789"
	results := []lint.Result{
		suggestion("r1", "self overlap",
			lint.TextEdit{Offset: 0, Length: 5, NewText: "X"},
			lint.TextEdit{Offset: 3, Length: 5, NewText: "Y"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, src, out.Text)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "suggestion edits overlap each other", out.Skipped[0].Reason)
}

func TestApplyInsertions(t *testing.T) {
	// Zero-length edits at distinct positions are insertions and never
	// conflict with each other.
	src := "ab"
	results := []lint.Result{
		suggestion("r1", "insert mid",
			lint.TextEdit{Offset: 1, Length: 0, NewText: "-"}),
		suggestion("r2", "insert front",
			lint.TextEdit{Offset: 0, Length: 0, NewText: ">"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, ">a-b", out.Text)
	assert.Len(t, out.Applied, 2)
}

func TestApplyInsertionInsideReplacedSpan(t *testing.T) {
	src := "abcdef"
	results := []lint.Result{
		suggestion("r1", "replace",
			lint.TextEdit{Offset: 1, Length: 4, NewText: "X"}),
		suggestion("r2", "insert inside",
			lint.TextEdit{Offset: 3, Length: 0, NewText: "!"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, "aXf", out.Text)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "r2", out.Skipped[0].RuleID)
}

func TestApplyNoSuggestions(t *testing.T) {
	src := "unchanged"
	out := fix.Apply(src, []lint.Result{{RuleID: "r1", Message: "finding only"}})
	assert.False(t, out.Changed())
	assert.Equal(t, src, out.Text)
	assert.Empty(t, out.Skipped)
}

func TestApplyAdjacentSpansDoNotConflict(t *testing.T) {
	// Half-open spans: [0,2) and [2,4) touch but do not overlap.
	src := "0123"
	results := []lint.Result{
		suggestion("r1", "left",
			lint.TextEdit{Offset: 0, Length: 2, NewText: "A"}),
		suggestion("r2", "right",
			lint.TextEdit{Offset: 2, Length: 2, NewText: "B"}),
	}

	out := fix.Apply(src, results)
	assert.Equal(t, "AB", out.Text)
	assert.Len(t, out.Applied, 2)
}
