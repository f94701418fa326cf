package markup

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// ToHTMLString serializes v.
func (c *Converter) ToHTMLString(v *richtext.Value) string {
	return dom.HTML(c.ToTree(v))
}

// ToTree builds the element tree of v.
//
// Elements are opened for each character's formats. The element opened for
// the previous character is reused while the formats up to that depth are the
// same pointers, so a run sharing a format renders as one element. In
// multiline regions every character is prefixed with the formats of its line
// (the line element, then list and line elements per nesting level), and a
// line separator never reuses its innermost line element, which starts the
// next line.
func (c *Converter) ToTree(v *richtext.Value) *dom.Node {
	tree := dom.NewDocument()
	multiline := c.lineFormat != nil

	var lastSeparatorFormats, lastCharacterFormats []*richtext.Format
	if multiline {
		tree.AppendChild(c.fromFormat(c.lineFormat)).AppendChild(dom.NewText(""))
		lastSeparatorFormats = []*richtext.Format{c.lineFormat}
		lastCharacterFormats = lastSeparatorFormats
	} else {
		tree.AppendChild(dom.NewText(""))
	}

	for i, ch := range v.Text {
		characterFormats := v.Formats[i]
		if multiline {
			if ch == richtext.LineSeparator {
				chain := []*richtext.Format{c.lineFormat}
				if rep := v.Replacements[i]; rep != nil {
					for _, list := range rep.Lists {
						chain = append(chain, list, c.lineFormat)
					}
				}
				lastSeparatorFormats = chain
				characterFormats = chain
			} else {
				characterFormats = slices.Concat(lastSeparatorFormats, characterFormats)
			}
		}

		pointer := tree.LastChild()
		for depth, f := range characterFormats {
			if lastCharacterFormats != nil &&
				isEqualUntil(characterFormats, lastCharacterFormats, depth) &&
				(ch != richtext.LineSeparator || depth != len(characterFormats)-1) {
				if next := pointer.LastChild(); next != nil {
					pointer = next
					continue
				}
			}
			parent := pointer.Parent
			el := parent.AppendChild(c.fromFormat(f))
			if pointer.IsText() && pointer.Data == "" {
				parent.RemoveChild(pointer)
			}
			pointer = el.AppendChild(dom.NewText(""))
		}

		switch {
		case ch == richtext.ObjectReplacement:
			if rep := v.Replacements[i]; rep != nil && rep.Format != nil {
				pointer.Parent.AppendChild(c.objectElement(rep.Format))
				pointer = pointer.Parent.AppendChild(dom.NewText(""))
			}
		case ch == richtext.LineSeparator && multiline:
		case (ch == '\n' && !c.whitespace.Preserve()) || ch == richtext.LineSeparator:
			pointer.Parent.AppendChild(dom.NewElement("br"))
			pointer = pointer.Parent.AppendChild(dom.NewText(""))
		case !pointer.IsText():
			pointer.Parent.AppendChild(dom.NewText(string(ch)))
		default:
			pointer.Data += string(ch)
		}

		lastCharacterFormats = characterFormats
	}

	pruneEmptyText(tree)
	return tree
}

// isEqualUntil reports whether a and b hold the same pointers at every index
// up to and including index.
func isEqualUntil(a, b []*richtext.Format, index int) bool {
	if index >= len(a) || index >= len(b) {
		return false
	}
	for i := index; i >= 0; i-- {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fromFormat creates the element for f. Registered attributes are mapped back
// to HTML attribute names and the format class is prepended to any remaining
// classes. Unknown namespaced types, and types that are not element names,
// render as span.
func (c *Converter) fromFormat(f *richtext.Format) *dom.Node {
	ft, ok := c.registry.Get(f.Type)
	if !ok {
		tag := f.Type
		if strings.Contains(tag, "/") || !richtext.IsValidFormatType(tag) {
			tag = "span"
		}
		return newElement(tag, f.Attributes)
	}

	attrs := make(map[string]string, len(f.Attributes)+len(f.UnregisteredAttributes)+1)
	for name, value := range f.UnregisteredAttributes {
		attrs[name] = value
	}
	for key, value := range f.Attributes {
		attrs[ft.HTMLAttribute(key)] = value
	}
	if ft.ClassName != "" {
		if class := attrs["class"]; class != "" {
			attrs["class"] = ft.ClassName + " " + class
		} else {
			attrs["class"] = ft.ClassName
		}
	}
	return newElement(ft.TagName, attrs)
}

func (c *Converter) objectElement(f *richtext.Format) *dom.Node {
	el := c.fromFormat(f)
	if f.InnerHTML != "" && !dom.IsVoid(el.Tag) {
		el.AppendChild(dom.NewRaw(f.InnerHTML))
	}
	return el
}

// newElement creates an element with attributes in name order. Event
// handler attributes are renamed the way Create renames them.
func newElement(tag string, attributes map[string]string) *dom.Node {
	el := dom.NewElement(tag)
	for name, value := range attributes {
		if len(name) >= 2 && strings.EqualFold(name[:2], "on") {
			name = disabledAttrPrefix + name
		}
		el.Attrs = append(el.Attrs, dom.Attr{Name: name, Value: value})
	}
	slices.SortFunc(el.Attrs, func(a, b dom.Attr) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return el
}

func pruneEmptyText(n *dom.Node) {
	n.Children = slices.DeleteFunc(n.Children, func(child *dom.Node) bool {
		return child.IsText() && child.Data == ""
	})
	for _, child := range n.Children {
		pruneEmptyText(child)
	}
}
