// Package signalset projects parsed signalset documents onto plain
// domain values. Every projected value keeps a reference to the
// concrete-syntax-tree node it was decoded from, so consumers can map
// findings back to exact byte ranges in the source text.
package signalset

import "github.com/clutch-assistant/siglint/pkg/jsonc"

// Target is the role shared by Signal and SignalGroup in signal-level
// rule dispatch. Rules that do not care which of the two they are
// looking at program against this interface.
type Target interface {
	// SignalID returns the stable identifier, or "" when absent.
	SignalID() string
	// DisplayName returns the human-readable name, or "" when absent.
	DisplayName() string
	// Metric returns the assigned metric mapping, or "" when unset.
	Metric() string
}

// Signal is a leaf measurement definition.
type Signal struct {
	ID              string
	Path            string
	Fmt             *Format
	Name            string
	SuggestedMetric string
	Description     string
	Hidden          bool

	// Node is the object node the signal was decoded from. Properties
	// not modeled here remain reachable through it.
	Node *jsonc.Node
}

// SignalID implements Target.
func (s *Signal) SignalID() string { return s.ID }

// DisplayName implements Target.
func (s *Signal) DisplayName() string { return s.Name }

// Metric implements Target.
func (s *Signal) Metric() string { return s.SuggestedMetric }

// Format describes how a signal's raw bytes decode to a value. Only
// the fields the rules consult are modeled; the full format object
// stays available on the signal's node.
type Format struct {
	Len  int
	Max  float64
	Min  float64
	Unit string
}

// SignalGroup is a named cluster of signals.
type SignalGroup struct {
	ID                   string
	Path                 string
	Name                 string
	MatchingRegex        string
	SuggestedMetricGroup string

	Node *jsonc.Node
}

// SignalID implements Target.
func (g *SignalGroup) SignalID() string { return g.ID }

// DisplayName implements Target.
func (g *SignalGroup) DisplayName() string { return g.Name }

// Metric implements Target.
func (g *SignalGroup) Metric() string { return g.SuggestedMetricGroup }

// CmdEntry is one mode/parameter pair of a command's cmd object, in
// source order.
type CmdEntry struct {
	Mode  string
	Param string
}

// Command describes one diagnostic request and the signals it decodes.
type Command struct {
	Hdr     string
	Rax     string
	Filter  string
	Freq    float64
	Cmd     []CmdEntry
	Signals []*Signal

	Node *jsonc.Node
}

// Identity returns the value identity used to detect duplicate
// commands: header, request, receive address and filter together.
func (c *Command) Identity() string {
	s := "hdr=" + c.Hdr
	for _, e := range c.Cmd {
		s += " cmd=" + e.Mode + ":" + e.Param
	}
	if c.Rax != "" {
		s += " rax=" + c.Rax
	}
	if c.Filter != "" {
		s += " filter=" + c.Filter
	}
	return s
}

// Document is a decoded signalset.
type Document struct {
	Commands     []*Command
	SignalGroups []*SignalGroup

	// CommandsNode is the commands array node, nil when the document
	// has no commands array.
	CommandsNode *jsonc.Node
	// Root is the document's root node.
	Root *jsonc.Node
}
