// Package html provides a fragment parser built on golang.org/x/net/html.
package html

import (
	"fmt"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/richtext/pkg/dom"
)

// Parser parses HTML fragments in a <body> context. It is stateless and safe
// for concurrent use.
type Parser struct {
	keepComments bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithComments keeps comments as raw nodes instead of dropping them.
func WithComments() Option {
	return func(p *Parser) {
		p.keepComments = true
	}
}

// New creates a fragment parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFragment parses s as the content of a <body> element and returns a
// document node holding the result. Malformed markup is repaired the way
// browsers repair it.
func (p *Parser) ParseFragment(s string) (*dom.Node, error) {
	body := &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := nethtml.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	doc := dom.NewDocument()
	for _, n := range nodes {
		p.convert(doc, n, false)
	}
	return doc, nil
}

func (p *Parser) convert(parent *dom.Node, n *nethtml.Node, raw bool) {
	switch n.Type {
	case nethtml.TextNode:
		if raw {
			parent.AppendChild(dom.NewRaw(n.Data))
		} else {
			parent.AppendChild(dom.NewText(n.Data))
		}
	case nethtml.CommentNode:
		if p.keepComments {
			parent.AppendChild(dom.NewRaw("<!--" + n.Data + "-->"))
		}
	case nethtml.ElementNode:
		el := dom.NewElement(strings.ToLower(n.Data), convertAttrs(n.Attr)...)
		parent.AppendChild(el)
		rawText := isRawTextElement(n.DataAtom)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.convert(el, c, rawText)
		}
	case nethtml.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.convert(parent, c, raw)
		}
	case nethtml.ErrorNode, nethtml.DoctypeNode, nethtml.RawNode:
	}
}

func convertAttrs(attrs []nethtml.Attribute) []dom.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]dom.Attr, 0, len(attrs))
	for _, a := range attrs {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, dom.Attr{Name: name, Value: a.Val})
	}
	return out
}

func isRawTextElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Plaintext:
		return true
	default:
		return false
	}
}
