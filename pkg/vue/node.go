// Package vue scans Vue single-file components and their templates into a
// position-annotated tree.
//
// The scanner is deliberately lenient: it keeps attribute names exactly as
// written, treats "{{ ... }}" as an opaque interpolation even when the
// expression contains "<", and closes unterminated elements at end of
// input. Every node records byte offsets into the scanned source.
package vue

import "strings"

// NodeType classifies template nodes.
type NodeType uint8

// Node types.
const (
	NodeRoot NodeType = iota
	NodeElement
	NodeText
	NodeInterpolation
	NodeComment
)

func (t NodeType) String() string {
	switch t {
	case NodeRoot:
		return "Root"
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeInterpolation:
		return "Interpolation"
	case NodeComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Range is a half-open byte range [Start, End) into the scanned source.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// Attribute is an element attribute or directive.
type Attribute struct {
	// Name is the attribute name as written, e.g. "title", ":title" or
	// "v-for".
	Name string

	// Value is the raw value without quotes. Entities are not decoded.
	Value string

	// HasValue is false for bare attributes such as "disabled".
	HasValue bool

	// Quote is the delimiter around the value, or 0 when unquoted.
	Quote byte

	// Range covers the whole attribute.
	Range Range

	// NameRange covers the name.
	NameRange Range

	// ValueRange covers the value including its quotes.
	ValueRange Range
}

// ValueContentRange covers the value without its quotes.
func (a Attribute) ValueContentRange() Range {
	if a.Quote == 0 {
		return a.ValueRange
	}
	return Range{Start: a.ValueRange.Start + 1, End: a.ValueRange.End - 1}
}

// Directive splits a Vue directive name into its directive and argument:
// ":title" and "v-bind:title" give ("bind", "title"), "@click" gives
// ("on", "click"), "#header" gives ("slot", "header") and "v-for" gives
// ("for", ""). Modifiers are dropped. Plain attributes return ok == false.
func (a Attribute) Directive() (name, arg string, ok bool) {
	raw := a.Name
	switch {
	case strings.HasPrefix(raw, ":"), strings.HasPrefix(raw, "."):
		name, raw = "bind", raw[1:]
	case strings.HasPrefix(raw, "@"):
		name, raw = "on", raw[1:]
	case strings.HasPrefix(raw, "#"):
		name, raw = "slot", raw[1:]
	case strings.HasPrefix(raw, "v-"):
		raw = raw[2:]
		name = raw
		if idx := strings.IndexAny(raw, ":."); idx >= 0 {
			name = raw[:idx]
			raw = raw[idx:]
		} else {
			raw = ""
		}
		raw = strings.TrimPrefix(raw, ":")
	default:
		return "", "", false
	}

	if strings.HasPrefix(raw, "[") {
		if end := strings.IndexByte(raw, ']'); end >= 0 {
			return name, raw[:end+1], true
		}
	}
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		raw = raw[:idx]
	}
	return name, raw, true
}

// Node is a template node.
type Node struct {
	// Type identifies what type of node this is.
	Type NodeType

	// Tag is the element name as written.
	Tag string

	// Attrs lists element attributes in source order.
	Attrs []Attribute

	// Children lists child nodes in source order.
	Children []*Node

	// Range covers the whole node.
	Range Range

	// ContentRange covers element content between the tags, text, the
	// expression inside "{{ }}", or the body of a comment.
	ContentRange Range

	// SelfClosing marks elements written as "<x/>" and void elements.
	SelfClosing bool

	// Closed is false for elements that ran to end of input.
	Closed bool
}

// Attr returns the attribute with the given name.
func (n *Node) Attr(name string) (Attribute, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Text returns the source text covered by r.
func Text(src string, r Range) string {
	if r.Start < 0 || r.End > len(src) || r.Start > r.End {
		return ""
	}
	return src[r.Start:r.End]
}

// Walk visits n and its descendants in document order. Returning false
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}
