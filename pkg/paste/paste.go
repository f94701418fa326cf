// Package paste turns clipboard content into rich-text insertions.
//
// Plain-text mode inserts the clipboard text and nothing else. Content copied
// from another rich-text region is created as it is, list structure
// included. Otherwise Handle chooses between three paths. Plain text that looks like source code
// is inserted verbatim, wrapped in an inline code format when it fits on one
// line. Plain text that uses Markdown syntax is rendered to HTML first. All
// HTML is reduced to inline formats, with block boundaries becoming line
// breaks, before it is inserted at the selection with the formats active at
// the caret.
package paste

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/formattype"
	"github.com/yaklabco/richtext/pkg/langdetect"
	"github.com/yaklabco/richtext/pkg/markdown"
	"github.com/yaklabco/richtext/pkg/markup"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// ErrNoConverter is returned when Options lacks a converter.
var ErrNoConverter = errors.New("paste: converter is required")

// Input is the clipboard content. Either field may be empty.
type Input struct {
	HTML      string
	PlainText string

	// Internal marks HTML copied from another rich-text region. It is
	// trusted: formats are kept and blocks are not flattened.
	Internal bool

	// MultilineTag is the line element of the region internal content was
	// copied from, or "" for a single-line region.
	MultilineTag string
}

// Options configures Handle.
type Options struct {
	// Converter parses the pasted HTML. Its multiline tag decides whether
	// line breaks become line separators.
	Converter *markup.Converter

	// Markdown enables converting Markdown plain text to HTML.
	Markdown bool

	// CodeDetection enables inserting source code verbatim.
	CodeDetection bool

	// Renderer renders Markdown. Defaults to GitHub Flavored Markdown.
	Renderer *markdown.Renderer

	// PlainText inserts only the plain text, for regions that disable
	// formats. HTML is used for its text content when there is no plain
	// text.
	PlainText bool
}

// Kind names the path Handle took.
type Kind string

// Paste kinds.
const (
	KindCode     Kind = "code"
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindInternal Kind = "internal"
	KindText     Kind = "text"
)

// Result is a pasted value together with the path that produced it.
type Result struct {
	Value    *richtext.Value
	Kind     Kind
	Language string
}

//nolint:gochecknoglobals // compiled patterns are read-only
var (
	newlines   = regexp.MustCompile(`\n+`)
	separators = regexp.MustCompile(string(richtext.LineSeparator))
)

// Handle inserts in into v at its selection.
func Handle(ctx context.Context, v *richtext.Value, in Input, opts Options) (*richtext.Value, error) {
	res, err := Convert(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	if res.Value.Len() == 0 {
		return v, nil
	}
	pasted := richtext.AddActiveFormats(res.Value, richtext.GetActiveFormats(v))
	return richtext.Insert(v, pasted), nil
}

// Convert builds the value Handle would insert without inserting it.
func Convert(ctx context.Context, in Input, opts Options) (Result, error) {
	if opts.Converter == nil {
		return Result{}, ErrNoConverter
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("paste: %w", err)
	}

	conv := opts.Converter
	var root *dom.Node
	if in.HTML != "" {
		var err error
		if root, err = conv.Parser().ParseFragment(in.HTML); err != nil {
			return Result{}, fmt.Errorf("paste: parse clipboard html: %w", err)
		}
	}
	plainHTML := root == nil || !dom.HasElements(root)

	text := in.PlainText
	if text == "" && root != nil && (plainHTML || opts.PlainText) {
		text = dom.TextContent(root)
	}

	switch {
	case opts.PlainText:
		return Result{Value: adjustLines(conv, plainText(text)), Kind: KindText}, nil
	case in.Internal && root != nil:
		v := conv.WithMultilineTag(in.MultilineTag).CreateFromNode(root)
		return Result{Value: adjustLines(conv, v), Kind: KindInternal}, nil
	}

	if plainHTML {
		if opts.CodeDetection {
			if lang, ok := langdetect.IsCode(text); ok {
				return Result{Value: code(conv, text), Kind: KindCode, Language: lang}, nil
			}
		}
		if !opts.Markdown {
			return Result{Value: adjustLines(conv, plainText(text)), Kind: KindText}, nil
		}
		renderer := opts.Renderer
		if renderer == nil {
			renderer = markdown.New(markdown.FlavorGFM)
		}
		if !renderer.LooksLikeMarkdown(text) {
			return Result{Value: adjustLines(conv, plainText(text)), Kind: KindText}, nil
		}
		rendered, err := renderer.Render(ctx, text)
		if err != nil {
			return Result{}, fmt.Errorf("paste: %w", err)
		}
		v, err := fromHTML(conv, rendered)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: v, Kind: KindMarkdown}, nil
	}

	return Result{Value: fromNode(conv, root), Kind: KindHTML}, nil
}

// fromHTML creates an inline value from s with block boundaries as line
// breaks.
func fromHTML(conv *markup.Converter, s string) (*richtext.Value, error) {
	root, err := conv.Parser().ParseFragment(s)
	if err != nil {
		return nil, fmt.Errorf("paste: parse rendered markdown: %w", err)
	}
	return fromNode(conv, root), nil
}

func fromNode(conv *markup.Converter, root *dom.Node) *richtext.Value {
	v := conv.WithMultilineTag("").CreateFromNode(flatten(root))
	return adjustLines(conv, v)
}

// plainText creates a value from text with reserved characters removed.
func plainText(text string) *richtext.Value {
	return richtext.New(strings.Map(func(r rune) rune {
		if r == '\r' || richtext.IsReserved(r) {
			return -1
		}
		return r
	}, text))
}

// adjustLines converts line breaks to line separators in multiline regions
// and back to newlines in single-line regions.
func adjustLines(conv *markup.Converter, v *richtext.Value) *richtext.Value {
	if conv.MultilineTag() != "" {
		return richtext.Replace(v, newlines, string(richtext.LineSeparator))
	}
	return richtext.Replace(v, separators, "\n")
}

// code creates a value holding text verbatim. Single-line snippets are
// wrapped in the code format when the registry knows it.
func code(conv *markup.Converter, text string) *richtext.Value {
	text = strings.TrimRight(text, "\r\n")
	v := plainText(text)
	if strings.Contains(text, "\n") {
		return adjustLines(conv, v)
	}
	if _, ok := conv.Registry().Get(formattype.Code); !ok {
		return v
	}
	return richtext.ApplyFormatAt(v, richtext.NewFormat(formattype.Code, nil), 0, v.Len())
}
