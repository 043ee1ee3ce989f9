// Package tmpl is the template engine layer (spec.md §4.C): it expands a
// scheme's content and filename templates over a typed variable context
// using a fixed filter set.
//
// The underlying engine is Go's text/template (html/template for HTML
// templates, so variables are escaped by default unless passed through
// the safe filter) — only the filter set and variable schema are
// specified, so reusing the standard template language satisfies the
// "general expression-and-control-flow language with filters"
// requirement without inventing a parser.
package tmpl
