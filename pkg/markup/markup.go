// Package markup converts between HTML fragments and rich-text values.
//
// A Converter is configured once with a format registry, a fragment parser
// and the multiline settings of an editable region, then used for both
// directions:
//
//	conv := markup.New(markup.Config{MultilineTag: "li"})
//	v, err := conv.Create("<li>one</li><li>two</li>")
//	html := conv.ToHTMLString(v)
//
// Serializing a value created from HTML that only uses registered formats,
// list wrappers and line tags yields the same HTML up to attribute order and
// whitespace collapsing.
package markup

import (
	"fmt"
	"slices"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/formattype"
	"github.com/yaklabco/richtext/pkg/parser/html"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// FragmentParser parses an HTML fragment into a node tree.
//
// Implementations must be side-effect free and repair malformed input
// instead of failing on it; errors are reserved for I/O-level failures.
type FragmentParser interface {
	ParseFragment(s string) (*dom.Node, error)
}

// Config configures a Converter. Zero values select defaults.
type Config struct {
	// Registry maps elements to formats. Defaults to the core formats.
	Registry *formattype.Registry

	// Parser parses HTML strings. Defaults to the x/net/html parser.
	Parser FragmentParser

	// MultilineTag is the element that delimits lines, e.g. "p" or "li".
	// Empty means a single-line region.
	MultilineTag string

	// MultilineWrapperTags are list elements nested inside lines. Defaults
	// to ul and ol when MultilineTag is "li".
	MultilineWrapperTags []string

	// Whitespace is the text node whitespace policy. Defaults to
	// CollapseControl.
	Whitespace WhitespacePolicy

	// DisableFormats lists format types whose elements are flattened to
	// their content.
	DisableFormats []string
}

// Converter converts between HTML and values. It is safe for concurrent use
// as long as its registry is not modified concurrently.
type Converter struct {
	registry     *formattype.Registry
	parser       FragmentParser
	multilineTag string
	wrapperTags  []string
	whitespace   WhitespacePolicy
	disabled     []string
	lineFormat   *richtext.Format
}

// New creates a converter.
func New(cfg Config) *Converter {
	c := &Converter{
		registry:     cfg.Registry,
		parser:       cfg.Parser,
		multilineTag: cfg.MultilineTag,
		wrapperTags:  cfg.MultilineWrapperTags,
		whitespace:   cfg.Whitespace,
		disabled:     slices.Clone(cfg.DisableFormats),
	}
	if c.registry == nil {
		c.registry = formattype.NewCoreRegistry()
	}
	if c.parser == nil {
		c.parser = html.New()
	}
	if c.whitespace == nil {
		c.whitespace = CollapseControl
	}
	if c.wrapperTags == nil && c.multilineTag == "li" {
		c.wrapperTags = []string{"ul", "ol"}
	}
	if c.multilineTag != "" {
		c.lineFormat = &richtext.Format{Type: c.multilineTag}
	}
	return c
}

// Registry returns the registry used by c.
func (c *Converter) Registry() *formattype.Registry {
	return c.registry
}

// Parser returns the fragment parser used by c.
func (c *Converter) Parser() FragmentParser {
	return c.parser
}

// MultilineTag returns the line element, or "" for single-line regions.
func (c *Converter) MultilineTag() string {
	return c.multilineTag
}

// Whitespace returns the whitespace policy.
func (c *Converter) Whitespace() WhitespacePolicy {
	return c.whitespace
}

// WithMultilineTag returns a copy of c using a different line element.
func (c *Converter) WithMultilineTag(tag string) *Converter {
	return New(Config{
		Registry:       c.registry,
		Parser:         c.parser,
		MultilineTag:   tag,
		Whitespace:     c.whitespace,
		DisableFormats: c.disabled,
	})
}

// Normalize parses s and serializes the result.
func (c *Converter) Normalize(s string) (string, error) {
	v, err := c.Create(s)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return c.ToHTMLString(v), nil
}
