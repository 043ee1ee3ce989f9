// Package sorttag implements the sort-tag grammar described in the tpnote
// filename model: the leading, order-controlling prefix of a note's
// filename, built from digit and lowercase-letter counters.
//
// A sort-tag is either empty, [Chronological] (it contains a wide numeric
// counter, interpreted as a date), or [Sequential] (every numeric counter is
// narrow enough to increment). Only sequential tags are incrementable; use
// [Incr] to produce the next one in a directory listing.
//
//	tag, rest := sorttag.Split("20251231-meeting_notes.md", sorttag.DefaultGrammar())
//	sorttag.Classify(tag, sorttag.DefaultGrammar()) // Chronological
package sorttag
