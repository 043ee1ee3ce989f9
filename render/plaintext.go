package render

import (
	"html"
	"strings"

	"go.tpnote.dev/tpnote/linkscan"
)

// PlainText renders an extensionless/plain-text note as a
// preformatted block with any of linkscan's five hyperlink dialects
// turned into anchors, so a plain-text note's URLs and pasted
// Markdown/HTML/RST links stay clickable in the viewer without the
// note being reinterpreted as one of those dialects.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (p *PlainText) Render(body []byte, rewrite RewriteFunc) ([]byte, error) {
	text := string(body)
	links := linkscan.All(text)

	var out strings.Builder
	out.WriteString("<pre>")

	pos := 0
	for _, l := range links {
		out.WriteString(html.EscapeString(text[pos:l.Start]))
		dest := l.Dest
		if rewrite != nil {
			dest = rewrite(dest)
		}
		linkText := l.Text
		if linkText == "" {
			linkText = l.Dest
		}
		out.WriteString(`<a href="`)
		out.WriteString(html.EscapeString(dest))
		out.WriteString(`">`)
		out.WriteString(html.EscapeString(linkText))
		out.WriteString("</a>")
		pos = l.End
	}
	out.WriteString(html.EscapeString(text[pos:]))
	out.WriteString("</pre>")

	return []byte(out.String()), nil
}
