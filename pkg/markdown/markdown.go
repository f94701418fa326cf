// Package markdown converts pasted Markdown into HTML fragments.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown dialect.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer renders Markdown to HTML. The zero value is not usable; create one
// with New.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a renderer for flavor. Unknown flavors fall back to GFM.
func New(flavor string) *Renderer {
	if flavor != FlavorCommonMark {
		flavor = FlavorGFM
	}
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return &Renderer{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured dialect.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts src to HTML. Raw HTML in src is omitted.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// LooksLikeMarkdown reports whether src uses any Markdown syntax beyond
// plain paragraphs.
func (r *Renderer) LooksLikeMarkdown(src string) bool {
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if isSyntax(n) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

func isSyntax(n ast.Node) bool {
	switch n.(type) {
	case *ast.Heading, *ast.Emphasis, *ast.CodeSpan, *ast.Link, *ast.Image,
		*ast.List, *ast.Blockquote, *ast.FencedCodeBlock, *ast.ThematicBreak:
		return true
	case *extast.Strikethrough, *extast.Table, *extast.TaskCheckBox:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals // shared renderer, goldmark instances are safe for concurrent use
var defaultRenderer = New(FlavorGFM)

// Render converts src to HTML using GitHub Flavored Markdown.
func Render(ctx context.Context, src string) (string, error) {
	return defaultRenderer.Render(ctx, src)
}

// LooksLikeMarkdown reports whether src uses GitHub Flavored Markdown syntax.
func LooksLikeMarkdown(src string) bool {
	return defaultRenderer.LooksLikeMarkdown(src)
}
