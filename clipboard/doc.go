// Package clipboard ingests the plain-text and HTML selections a note is
// created from, abstracting over the capability set {ReadPlain, ReadHTML,
// Clear, ReadStdin} so interactive (clipboard) and batch (stdin) modes
// share one code path.
//
// Ingest applies that capability set and splits any front-matter-prefixed
// input into its header and body halves, producing the txt_clipboard(_header),
// html_clipboard(_header), and stdin(_header) template variables.
package clipboard
