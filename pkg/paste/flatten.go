package paste

import (
	"strings"

	"github.com/yaklabco/richtext/pkg/dom"
)

//nolint:gochecknoglobals // read-only lookup table
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// flattener copies inline content into a new tree, turning block
// boundaries into line breaks.
type flattener struct {
	started bool
	pending bool
}

// flatten returns a document holding the inline content of root with a br
// element between consecutive blocks.
func flatten(root *dom.Node) *dom.Node {
	out := dom.NewDocument()
	f := &flattener{}
	f.copyChildren(out, root, false)
	return out
}

func (f *flattener) copyChildren(dst, src *dom.Node, pre bool) {
	container := src.Kind == dom.DocumentNode || blockTags[src.Tag]
	for _, n := range src.Children {
		switch n.Kind {
		case dom.TextNode:
			if container && !pre && strings.TrimSpace(n.Data) == "" {
				continue
			}
			if pre {
				f.copyPreformatted(dst, n.Data)
				continue
			}
			f.emit(dst, dom.NewText(n.Data))
		case dom.ElementNode:
			if blockTags[n.Tag] {
				f.pending = true
				f.copyChildren(dst, n, pre || n.Tag == "pre")
				f.pending = true
				continue
			}
			el := f.emit(dst, dom.NewElement(n.Tag, n.Attrs...))
			f.copyChildren(el, n, pre)
		default:
			f.emit(dst, dom.NewRaw(n.Data))
		}
	}
}

// copyPreformatted keeps the line structure of preformatted text, which the
// whitespace policy would otherwise collapse.
func (f *flattener) copyPreformatted(dst *dom.Node, text string) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			f.pending = true
		}
		if line != "" {
			f.emit(dst, dom.NewText(line))
		}
	}
}

func (f *flattener) emit(dst, n *dom.Node) *dom.Node {
	if f.pending && f.started {
		dst.AppendChild(dom.NewElement("br"))
	}
	f.pending = false
	f.started = true
	return dst.AppendChild(n)
}
