package viewer

import (
	"net/url"
	"os"
	"path/filepath"

	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/linkrewrite"
	"go.tpnote.dev/tpnote/linkscan"
	"go.tpnote.dev/tpnote/render"
	"go.tpnote.dev/tpnote/scheme"
	"go.tpnote.dev/tpnote/tmpl"
)

// RenderedDocument is one viewer-server render pass over a note: either
// the rendered document HTML, or — on a header failure — the error
// template, plus the local links the successful path found (for the
// allow-list) and whether the path degraded to the error template.
type RenderedDocument struct {
	HTML     []byte
	Links    []string
	Degraded bool
}

// RenderDocument reads path, renders it through the scheme's markup
// renderer and link rewriter, and wraps the result in the scheme's
// viewer_doc HTML template. A header parse/deserialize/precondition
// failure does not propagate as an error: per spec.md §4.J, it instead
// renders the viewer_error template over the raw text, exposing path
// and doc_error but never fm.*.
func RenderDocument(path string, sch *scheme.Scheme, resolver *linkrewrite.Resolver, theme string) (RenderedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderedDocument{}, err
	}

	engine := tmpl.New(sch)

	parsed, perr := frontmatter.Parse(data)
	if perr != nil {
		return renderError(engine, sch, path, string(data), perr)
	}

	fm, derr := frontmatter.Deserialize(parsed.Header)
	if derr != nil {
		return renderError(engine, sch, path, string(data), derr)
	}

	if cerr := frontmatter.AssertPreconditions(fm, sch.Preconditions); cerr != nil {
		return renderError(engine, sch, path, string(data), cerr)
	}

	ext := trimDot(filepath.Ext(path))
	markup, ok := sch.Extensions[ext]
	if !ok {
		markup = scheme.PlainText
	}

	renderer, err := render.New(markup, theme)
	if err != nil {
		return RenderedDocument{}, err
	}

	noteDir := filepath.Dir(path)
	var rewrite render.RewriteFunc
	if resolver != nil {
		rewrite = resolver.Func(noteDir)
	}

	body, err := renderer.Render([]byte(parsed.Body), rewrite)
	if err != nil {
		return RenderedDocument{}, err
	}

	ctx := tmpl.BuildContext(tmpl.ContextOptions{Path: path, FM: fm})
	ctx["rendered"] = string(body)

	out, err := engine.RenderHTML(scheme.TmplHTMLViewerDoc, ctx)
	if err != nil {
		return RenderedDocument{}, err
	}

	links := localLinks(string(out), noteDir)

	return RenderedDocument{HTML: []byte(out), Links: links}, nil
}

func renderError(engine *tmpl.Engine, sch *scheme.Scheme, path, text string, docErr error) (RenderedDocument, error) {
	ctx := tmpl.Context{
		"path":      path,
		"doc_error": docErr.Error(),
		"doc_text":  text,
	}

	out, err := engine.RenderHTML(scheme.TmplHTMLViewerError, ctx)
	if err != nil {
		return RenderedDocument{}, err
	}

	return RenderedDocument{HTML: []byte(out), Degraded: true}, nil
}

// localLinks scans rendered HTML for hyperlinks and resolves every
// non-absolute-URL destination against noteDir, for ViewerState.Reference.
func localLinks(html, noteDir string) []string {
	var out []string

	for _, l := range linkscan.All(html) {
		if l.Dest == "" || isAbsoluteURL(l.Dest) {
			continue
		}

		out = append(out, filepath.Clean(filepath.Join(noteDir, l.Dest)))
	}

	return out
}

func isAbsoluteURL(dest string) bool {
	u, err := url.Parse(dest)
	return err == nil && u.Scheme != ""
}
