// Package dom provides a minimal HTML node tree used as the boundary between
// fragment parsers and the rich-text converters.
package dom

import "slices"

// Kind identifies the type of a node.
type Kind int

// Node kinds.
const (
	DocumentNode Kind = iota
	ElementNode
	TextNode
	// RawNode holds markup that is emitted verbatim, such as script bodies
	// and the inner HTML of opaque objects.
	RawNode
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case RawNode:
		return "raw"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an HTML tree node. Element tag names are lowercase.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Data     string
	Parent   *Node
	Children []*Node
}

// NewDocument returns an empty root node.
func NewDocument() *Node {
	return &Node{Kind: DocumentNode}
}

// NewElement returns an element node.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Kind: TextNode, Data: text}
}

// NewRaw returns a node emitted verbatim.
func NewRaw(markup string) *Node {
	return &Node{Kind: RawNode, Data: markup}
}

// AppendChild adds child as the last child of n and returns child.
func (n *Node) AppendChild(child *Node) *Node {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) {
	if i := slices.Index(n.Children, child); i >= 0 {
		n.Children = slices.Delete(n.Children, i, i+1)
		child.Parent = nil
	}
}

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// ElementChildren returns the element children of n.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == TextNode
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// HasElements reports whether any descendant of n is an element.
func HasElements(n *Node) bool {
	found := false
	Walk(n, func(c *Node) bool {
		if c != n && c.Kind == ElementNode {
			found = true
		}
		return !found
	})
	return found
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *Node) string {
	var b []byte
	Walk(n, func(c *Node) bool {
		if c.Kind == TextNode {
			b = append(b, c.Data...)
		}
		return true
	})
	return string(b)
}
