package tmpl

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"go.tpnote.dev/tpnote/scheme"
)

// Engine expands a scheme's content, filename, and HTML templates over a
// [Context], applying the filter set spec.md §4.C defines.
type Engine struct {
	scheme *scheme.Scheme
}

// New returns an Engine bound to s.
func New(s *scheme.Scheme) *Engine {
	return &Engine{scheme: s}
}

// RenderContent expands the content template named key (one of the
// scheme.Tmpl*Content constants) over ctx.
func (e *Engine) RenderContent(key string, ctx Context) (string, error) {
	text, ok := e.scheme.ContentTemplates[key]
	if !ok {
		return "", fmt.Errorf("tmpl: no content template %q in scheme %q", key, e.scheme.Name)
	}

	return e.renderText(key, text, ctx)
}

// RenderFilename expands the filename template named key (one of the
// scheme.Tmpl*Filename constants) over ctx.
func (e *Engine) RenderFilename(key string, ctx Context) (string, error) {
	text, ok := e.scheme.FilenameTemplates[key]
	if !ok {
		return "", fmt.Errorf("tmpl: no filename template %q in scheme %q", key, e.scheme.Name)
	}

	return e.renderText(key, text, ctx)
}

func (e *Engine) renderText(key, text string, ctx Context) (string, error) {
	t, err := texttemplate.New(key).Funcs(texttemplate.FuncMap(funcMap(e.scheme))).Parse(text)
	if err != nil {
		return "", fmt.Errorf("tmpl: parse %q: %w", key, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("tmpl: execute %q: %w", key, err)
	}

	return buf.String(), nil
}

// RenderHTML expands the HTML template named key (one of the
// scheme.TmplHTML* constants) over ctx. Unlike content/filename
// templates, HTML templates escape every variable by default; a
// template author opts out per spec.md §4.C with the `safe` filter.
func (e *Engine) RenderHTML(key string, ctx Context) (htmltemplate.HTML, error) {
	text, ok := e.scheme.HTMLTemplates[key]
	if !ok {
		return "", fmt.Errorf("tmpl: no HTML template %q in scheme %q", key, e.scheme.Name)
	}

	t, err := htmltemplate.New(key).Funcs(htmltemplate.FuncMap(funcMap(e.scheme))).Parse(text)
	if err != nil {
		return "", fmt.Errorf("tmpl: parse %q: %w", key, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("tmpl: execute %q: %w", key, err)
	}

	return htmltemplate.HTML(buf.String()), nil //nolint:gosec
}
