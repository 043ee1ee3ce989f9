package render

import (
	"fmt"

	"go.tpnote.dev/tpnote/scheme"
)

// RewriteFunc rewrites a single hyperlink destination before it is
// written into the rendered HTML. Callers pass linkrewrite's resolver;
// a nil RewriteFunc leaves destinations untouched.
type RewriteFunc func(dest string) string

// Renderer turns a note body into HTML.
type Renderer interface {
	Render(body []byte, rewrite RewriteFunc) ([]byte, error)
}

// New returns the Renderer for markup, configured with the given
// Chroma theme name (Markdown only; ignored otherwise).
func New(markup scheme.Markup, theme string) (Renderer, error) {
	switch markup {
	case scheme.Markdown:
		return NewMarkdown(theme), nil
	case scheme.RST:
		return NewRST(), nil
	case scheme.PlainText:
		return NewPlainText(), nil
	default:
		return nil, fmt.Errorf("render: unknown markup %v", markup)
	}
}
