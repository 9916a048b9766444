// Package lint provides the rule-based analysis engine for signalset
// documents: the rule contract, the rule registry, the multi-level
// dispatch (document, commands, command, signal), and the result and
// suggestion types both front-ends consume.
//
// The package defines types and dispatch only. Rule implementations
// live in pkg/lint/rules; walking a document and applying suggestion
// edits are front-end responsibilities.
package lint

import (
	"strings"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
)

// Severity indicates the importance of a finding. Severity is carried
// on rule metadata, never on the result itself; a result's effective
// severity is resolved by looking up its owning rule.
type Severity int

// Severity levels, ordered from most to least severe.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value. Returns the
// severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info", "information":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// Result represents a single lint finding.
type Result struct {
	// RuleID traces the finding back to its registered rule. Every
	// emitted RuleID must resolve in the registry the producing linter
	// was built from; consumers treat an unresolvable id as a
	// programming error.
	RuleID string

	// Message is the human-readable finding text.
	Message string

	// Node is the tree node the finding applies to. It is only valid
	// against the text buffer the tree was parsed from.
	Node *jsonc.Node

	// Suggestion optionally carries a machine-applicable fix.
	Suggestion *Suggestion
}

// Suggestion is a machine-applicable fix: a title plus an ordered list
// of text edits. Edits within one suggestion replace disjoint ranges;
// the engine never merges or deduplicates edits across results, that
// is the applier's job.
type Suggestion struct {
	Title string
	Edits []TextEdit
}

// TextEdit replaces Length bytes at Offset in the original source
// buffer with NewText. Offsets are only valid against the exact buffer
// the finding's tree was parsed from, never across re-parses.
type TextEdit struct {
	Offset  int
	Length  int
	NewText string
}

// End returns the byte offset one past the replaced range.
func (e TextEdit) End() int {
	return e.Offset + e.Length
}

// Span is a convenience constructor for an edit replacing a node.
func Span(n *jsonc.Node, newText string) TextEdit {
	return TextEdit{Offset: n.Offset, Length: n.Length, NewText: newText}
}
