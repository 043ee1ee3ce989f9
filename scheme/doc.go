// Package scheme bundles everything spec.md §3.3 calls a scheme: the
// extension table, default extension, sort-tag grammar, content and
// filename templates, HTML templates, header-field localization table,
// language-detector candidate list, and precondition table.
//
// Two schemes ship: [Default] and [Zettel]. The scheme used for filename
// synchronization is selected by a note's own `scheme:` header field
// (default [DefaultName]); the scheme used for creation comes from
// CLI/env/config.
package scheme
