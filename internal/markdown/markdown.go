package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown bodies (frontmatter already removed) to HTML.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a renderer with strikethrough, table and footnote support.
// Relative links to Markdown files are rewritten to their .html outputs.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)),
		),
		goldmark.WithRendererOptions(
			// Documents are the author's own; embedded HTML is passed through.
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts body to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// linkRewriter rewrites link destinations in place before rendering.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			link.Destination = []byte(TransformMarkdownLink(string(link.Destination)))
		}
		return gmast.WalkContinue, nil
	})
}
