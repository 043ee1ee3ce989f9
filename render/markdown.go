package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Markdown renders CommonMark/GFM body text to HTML via goldmark,
// with tables, task lists, strikethrough, footnotes, definition
// lists, heading attributes, inline math, and Chroma syntax
// highlighting enabled.
type Markdown struct {
	theme string
}

// NewMarkdown returns a Markdown renderer using the named Chroma
// style for fenced code blocks. An empty theme falls back to
// "github".
func NewMarkdown(theme string) *Markdown {
	if theme == "" {
		theme = "github"
	}
	return &Markdown{theme: theme}
}

func (m *Markdown) Render(body []byte, rewrite RewriteFunc) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			mathExtension{},
			highlighting.NewHighlighting(
				highlighting.WithStyle(m.theme),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
			parser.WithASTTransformers(
				util.Prioritized(&linkRewriteTransformer{rewrite: rewrite}, 500),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// linkRewriteTransformer runs every link/image destination through
// RewriteFunc before the HTML renderer sees it, so linkrewrite's
// policy applies regardless of markup dialect.
type linkRewriteTransformer struct {
	rewrite RewriteFunc
}

func (t *linkRewriteTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	if t.rewrite == nil {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = []byte(t.rewrite(string(v.Destination)))
		case *ast.Image:
			v.Destination = []byte(t.rewrite(string(v.Destination)))
		}
		return ast.WalkContinue, nil
	})
}
