// Package linkscan finds hyperlinks across the markup dialects tpnote
// ingests and renders: Markdown, reStructuredText, AsciiDoc, HTML, and
// bare URLs.
//
// First returns the earliest hyperlink in a text, feeding the
// link_text/link_dest/link_title template filters. All returns every
// non-overlapping hyperlink in source order, feeding the PlainText
// renderer's anchor conversion.
package linkscan
