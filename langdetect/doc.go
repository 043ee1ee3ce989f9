// Package langdetect resolves the natural language of note content and
// maps detected or configured language codes to the tag tpnote writes
// into front matter.
//
// GetLang wraps github.com/abadojack/whatlanggo, bounded to a caller-supplied
// candidate list via its Options.Whitelist so detection cost stays
// proportional to the candidate count rather than the library's full
// language set. MapLang resolves a bare code (commonly a GetLang result)
// to an IETF BCP-47 tag through a configured alist, passing unmapped codes
// through unchanged.
package langdetect
