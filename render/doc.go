// Package render turns a note's body text into HTML for the viewer.
//
// Three renderers share one [Renderer] interface, selected by the
// note's markup dialect ([scheme.Markup]): Markdown via goldmark,
// reStructuredText via a small hand-written subset parser, and plain
// text via preformatted HTML plus hyperlink detection. All three run
// local links through a caller-supplied [RewriteFunc] so that
// linkrewrite's policy applies uniformly regardless of dialect.
package render
