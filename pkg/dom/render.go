package dom

import "strings"

//nolint:gochecknoglobals // read-only lookup table
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoid reports whether tag is an HTML void element, which has no content
// and no closing tag.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

//nolint:gochecknoglobals // read-only replacers
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", ">", "&gt;")
)

// EscapeText escapes a text node value.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttribute escapes an attribute value for a double-quoted attribute.
func EscapeAttribute(s string) string {
	return attrEscaper.Replace(s)
}

// IsValidAttributeName reports whether name can be written as an attribute.
func IsValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= 0x20, r >= 0x7f && r <= 0x9f, r >= 0xfdd0 && r <= 0xfdef:
			return false
		case r == '"', r == '\'', r == '>', r == '/', r == '=':
			return false
		}
	}
	return true
}

// HTML serializes n. A document node renders its children only.
func HTML(n *Node) string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		render(&b, c)
	}
	return b.String()
}

func render(b *strings.Builder, n *Node) {
	switch n.Kind {
	case DocumentNode:
		for _, c := range n.Children {
			render(b, c)
		}
	case TextNode:
		b.WriteString(EscapeText(n.Data))
	case RawNode:
		b.WriteString(n.Data)
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			if !IsValidAttributeName(a.Name) {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(EscapeAttribute(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if IsVoid(n.Tag) {
			return
		}
		for _, c := range n.Children {
			render(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}
