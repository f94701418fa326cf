package markup

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/formattype"
	"github.com/yaklabco/richtext/pkg/richtext"
)

const (
	internalAttrPrefix = "data-rich-text-"
	disabledAttrPrefix = "data-disable-rich-text-"
)

// Create parses an HTML fragment into a value with the caret at its end.
func (c *Converter) Create(s string) (*richtext.Value, error) {
	if s == "" {
		return richtext.Empty(), nil
	}
	root, err := c.parser.ParseFragment(s)
	if err != nil {
		return nil, fmt.Errorf("create value: %w", err)
	}
	return c.CreateFromNode(root), nil
}

// CreateFromNode converts the children of root into a value with the caret
// at its end.
func (c *Converter) CreateFromNode(root *dom.Node) *richtext.Value {
	var acc *accumulator
	if c.multilineTag == "" {
		acc = c.fromElement(root, nil)
	} else {
		acc = c.fromMultilineElement(root, nil)
	}
	n := len(acc.text)
	return &richtext.Value{
		Text:         acc.text,
		Formats:      acc.formats,
		Replacements: acc.replacements,
		Start:        n,
		End:          n,
	}
}

type accumulator struct {
	text         []rune
	formats      [][]*richtext.Format
	replacements []*richtext.Replacement
}

func (a *accumulator) appendText(s string) {
	for _, r := range s {
		a.text = append(a.text, r)
		a.formats = append(a.formats, nil)
		a.replacements = append(a.replacements, nil)
	}
}

func (a *accumulator) appendSlot(r rune, rep *richtext.Replacement) {
	a.text = append(a.text, r)
	a.formats = append(a.formats, nil)
	a.replacements = append(a.replacements, rep)
}

func (a *accumulator) merge(b *accumulator) {
	a.text = append(a.text, b.text...)
	a.formats = append(a.formats, b.formats...)
	a.replacements = append(a.replacements, b.replacements...)
}

// mergeWithFormat appends b with f prepended to every character. Characters
// that shared a formats slot in b share the new slot as well.
func (a *accumulator) mergeWithFormat(b *accumulator, f *richtext.Format) {
	var lastIn, lastOut []*richtext.Format
	first := true
	for _, atIndex := range b.formats {
		if first || !sameSlot(atIndex, lastIn) {
			lastOut = slices.Concat([]*richtext.Format{f}, atIndex)
			lastIn = atIndex
			first = false
		}
		a.formats = append(a.formats, lastOut)
	}
	a.text = append(a.text, b.text...)
	a.replacements = append(a.replacements, b.replacements...)
}

// sameSlot reports whether two slots are the same slice.
func sameSlot(a, b []*richtext.Format) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}
	return len(a) == len(b) && &a[0] == &b[0]
}

func (c *Converter) fromElement(el *dom.Node, wrappers []*richtext.Format) *accumulator {
	acc := &accumulator{}
	for _, n := range el.Children {
		switch n.Kind {
		case dom.TextNode:
			acc.appendText(removeReserved(c.whitespace.Collapse(n.Data)))
			continue
		case dom.ElementNode:
		default:
			continue
		}

		switch n.Tag {
		case "script":
			acc.appendSlot(richtext.ObjectReplacement, richtext.ObjectReplacementOf(&richtext.Format{
				Type:       "script",
				Attributes: elementAttributes(n.Attrs),
				Object:     true,
				InnerHTML:  dom.InnerHTML(n),
			}))
			continue
		case "br":
			acc.appendText("\n")
			continue
		}

		format, ft := c.toFormat(n.Tag, n.Attrs)

		if c.multilineTag != "" && slices.Contains(c.wrapperTags, n.Tag) {
			acc.merge(c.fromMultilineElement(n, slices.Concat(wrappers, []*richtext.Format{format})))
			continue
		}

		if ft != nil && (ft.Object || !ft.Editable()) {
			format.Object = true
			if !ft.Editable() {
				format.InnerHTML = dom.InnerHTML(n)
			}
			acc.appendSlot(richtext.ObjectReplacement, richtext.ObjectReplacementOf(format))
			continue
		}

		child := c.fromElement(n, nil)
		switch {
		case slices.Contains(c.disabled, format.Type):
			acc.merge(child)
		case len(child.text) == 0:
			if len(n.Attrs) > 0 {
				format.Object = true
				acc.appendSlot(richtext.ObjectReplacement, richtext.ObjectReplacementOf(format))
			}
		default:
			acc.mergeWithFormat(child, format)
		}
	}
	return acc
}

// fromMultilineElement converts the line elements directly below el. Lines
// nested in a list carry the wrapper chain on their separator, and every
// line but the very first one is preceded by a separator.
func (c *Converter) fromMultilineElement(el *dom.Node, wrappers []*richtext.Format) *accumulator {
	acc := &accumulator{}
	lines := 0
	for _, n := range el.ElementChildren() {
		if n.Tag != c.multilineTag {
			continue
		}
		line := c.fromElement(n, wrappers)
		if lines > 0 || len(wrappers) > 0 {
			acc.appendSlot(richtext.LineSeparator, richtext.ListReplacement(wrappers...))
		}
		acc.merge(line)
		lines++
	}
	return acc
}

// toFormat maps an element onto a format. Class names take precedence over
// bare tags; the matched class is stripped from the remaining classes.
// Attributes the format type declares become registered attributes keyed by
// format key, the rest are kept as unregistered attributes. Elements no
// format type claims become formats named after their tag.
func (c *Converter) toFormat(tag string, attrs []dom.Attr) (*richtext.Format, *formattype.FormatType) {
	attributes := elementAttributes(attrs)

	var ft *formattype.FormatType
	if class, ok := attributes["class"]; ok {
		if found, ok := c.registry.ForClassName(tag, class); ok {
			ft = found
			rest := slices.DeleteFunc(strings.Fields(class), func(s string) bool { return s == ft.ClassName })
			if len(rest) == 0 {
				delete(attributes, "class")
			} else {
				attributes["class"] = strings.Join(rest, " ")
			}
		}
	}
	if ft == nil {
		ft, _ = c.registry.ForBareElement(tag)
	}
	if ft == nil {
		return &richtext.Format{Type: tag, Attributes: nilIfEmpty(attributes)}, nil
	}

	registered := make(map[string]string)
	for key, name := range ft.Attributes {
		if value, ok := attributes[name]; ok {
			registered[key] = value
			delete(attributes, name)
		}
	}
	return &richtext.Format{
		Type:                   ft.Name,
		Attributes:             nilIfEmpty(registered),
		UnregisteredAttributes: nilIfEmpty(attributes),
		Object:                 ft.Object,
	}, ft
}

// elementAttributes collects element attributes, dropping internal
// data-rich-text- attributes and renaming event handlers so they are inert.
func elementAttributes(attrs []dom.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		name := a.Name
		if strings.HasPrefix(name, internalAttrPrefix) {
			continue
		}
		if len(name) >= 2 && strings.EqualFold(name[:2], "on") {
			name = disabledAttrPrefix + name
		}
		out[name] = a.Value
	}
	return out
}

func nilIfEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}

func removeReserved(s string) string {
	if !strings.ContainsFunc(s, richtext.IsReserved) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if richtext.IsReserved(r) {
			return -1
		}
		return r
	}, s)
}
