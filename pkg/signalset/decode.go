package signalset

import (
	"strconv"

	"github.com/clutch-assistant/siglint/pkg/jsonc"
)

// Decode projects a parsed document onto domain values. Decoding is
// tolerant: missing or mistyped properties come out as zero values so
// the lint rules, not the decoder, report them.
func Decode(root *jsonc.Node) *Document {
	doc := &Document{Root: root}
	if root == nil || root.Kind != jsonc.ObjectNode {
		return doc
	}

	if cmds := root.Property("commands"); cmds != nil && cmds.Kind == jsonc.ArrayNode {
		doc.CommandsNode = cmds
		for _, cn := range cmds.Children {
			doc.Commands = append(doc.Commands, DecodeCommand(cn))
		}
	}

	if groups := root.Property("signalGroups"); groups != nil && groups.Kind == jsonc.ArrayNode {
		for _, gn := range groups.Children {
			doc.SignalGroups = append(doc.SignalGroups, DecodeSignalGroup(gn))
		}
	}

	return doc
}

// DecodeCommand projects one command object.
func DecodeCommand(n *jsonc.Node) *Command {
	cmd := &Command{
		Hdr:    stringProp(n, "hdr"),
		Rax:    stringProp(n, "rax"),
		Filter: stringProp(n, "filter"),
		Freq:   numberProp(n, "freq"),
		Node:   n,
	}

	if cn := n.Property("cmd"); cn != nil && cn.Kind == jsonc.ObjectNode {
		for _, prop := range cn.Properties() {
			cmd.Cmd = append(cmd.Cmd, CmdEntry{Mode: prop.Key, Param: scalarText(prop.Value)})
		}
	}

	if signals := n.Property("signals"); signals != nil && signals.Kind == jsonc.ArrayNode {
		for _, sn := range signals.Children {
			cmd.Signals = append(cmd.Signals, DecodeSignal(sn))
		}
	}

	return cmd
}

// DecodeSignal projects one signal object.
func DecodeSignal(n *jsonc.Node) *Signal {
	sig := &Signal{
		ID:              stringProp(n, "id"),
		Path:            stringProp(n, "path"),
		Name:            stringProp(n, "name"),
		SuggestedMetric: stringProp(n, "suggestedMetric"),
		Description:     stringProp(n, "description"),
		Hidden:          boolProp(n, "hidden"),
		Node:            n,
	}

	if fn := n.Property("fmt"); fn != nil && fn.Kind == jsonc.ObjectNode {
		sig.Fmt = &Format{
			Len:  int(numberProp(fn, "len")),
			Max:  numberProp(fn, "max"),
			Min:  numberProp(fn, "min"),
			Unit: stringProp(fn, "unit"),
		}
	}

	return sig
}

// DecodeSignalGroup projects one signal group object.
func DecodeSignalGroup(n *jsonc.Node) *SignalGroup {
	return &SignalGroup{
		ID:                   stringProp(n, "id"),
		Path:                 stringProp(n, "path"),
		Name:                 stringProp(n, "name"),
		MatchingRegex:        stringProp(n, "matchingRegex"),
		SuggestedMetricGroup: stringProp(n, "suggestedMetricGroup"),
		Node:                 n,
	}
}

func stringProp(n *jsonc.Node, key string) string {
	v, _ := n.Property(key).StringValue()
	return v
}

func numberProp(n *jsonc.Node, key string) float64 {
	v, _ := n.Property(key).NumberValue()
	return v
}

func boolProp(n *jsonc.Node, key string) bool {
	v, _ := n.Property(key).BoolValue()
	return v
}

// scalarText renders a scalar node as text for identity comparison.
func scalarText(n *jsonc.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case jsonc.StringNode:
		s, _ := n.StringValue()
		return s
	case jsonc.NumberNode:
		f, _ := n.NumberValue()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case jsonc.BoolNode:
		b, _ := n.BoolValue()
		return strconv.FormatBool(b)
	case jsonc.NullNode:
		return "null"
	default:
		return n.Kind.String()
	}
}
