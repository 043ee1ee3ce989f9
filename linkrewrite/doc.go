// Package linkrewrite resolves and rewrites local hyperlink
// destinations found in a rendered note body: document-root
// resolution by walking up for a marker file, shorthand/format-string
// destinations that name a sort-tag instead of a filename, and the
// off/short/long destination-rewriting policies.
package linkrewrite
