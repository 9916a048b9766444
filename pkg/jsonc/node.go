package jsonc

// NodeKind identifies the syntactic class of a Node.
type NodeKind int

const (
	ObjectNode NodeKind = iota
	ArrayNode
	StringNode
	NumberNode
	BoolNode
	NullNode
	PropertyNode
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case ObjectNode:
		return "object"
	case ArrayNode:
		return "array"
	case StringNode:
		return "string"
	case NumberNode:
		return "number"
	case BoolNode:
		return "boolean"
	case NullNode:
		return "null"
	case PropertyNode:
		return "property"
	default:
		return "unknown"
	}
}

// Node is a node of the concrete syntax tree. Offsets and lengths
// address the exact source text the node was parsed from, comments and
// whitespace included in between but never inside a leaf; they are only
// meaningful against that same text buffer.
type Node struct {
	Kind   NodeKind
	Offset int // byte offset of the node's first character
	Length int // byte length of the node's source text
	Pos    Position

	// Key and Value are set on PropertyNode only. Key is the decoded
	// property name; the node's span covers key through value.
	Key   string
	Value *Node

	// Children holds an object's properties or an array's elements in
	// source order. Duplicate object keys are preserved.
	Children []*Node

	text string
	str  string
	num  float64
	b    bool
}

// End returns the byte offset one past the node's last character.
func (n *Node) End() int {
	return n.Offset + n.Length
}

// Text returns the node's raw source text. For containers it includes
// everything between the delimiters, comments included.
func (n *Node) Text() string {
	return n.text
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Properties returns an object's property nodes in source order, or
// nil for non-objects.
func (n *Node) Properties() []*Node {
	if n == nil || n.Kind != ObjectNode {
		return nil
	}
	return n.Children
}

// Property returns the value node of the first property with the given
// key, or nil if the node is not an object or has no such property.
func (n *Node) Property(key string) *Node {
	if n == nil || n.Kind != ObjectNode {
		return nil
	}
	for _, prop := range n.Children {
		if prop.Key == key {
			return prop.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array, or nil when out of range
// or not an array.
func (n *Node) Index(i int) *Node {
	if n == nil || n.Kind != ArrayNode || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// StringValue returns the decoded string value and true for string
// nodes.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != StringNode {
		return "", false
	}
	return n.str, true
}

// NumberValue returns the numeric value and true for number nodes.
func (n *Node) NumberValue() (float64, bool) {
	if n == nil || n.Kind != NumberNode {
		return 0, false
	}
	return n.num, true
}

// BoolValue returns the boolean value and true for boolean nodes.
func (n *Node) BoolValue() (bool, bool) {
	if n == nil || n.Kind != BoolNode {
		return false, false
	}
	return n.b, true
}

// IsNull returns true for null nodes.
func (n *Node) IsNull() bool {
	return n != nil && n.Kind == NullNode
}
