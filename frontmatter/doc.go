// Package frontmatter extracts and validates the delimited YAML header at
// the start of a note file.
//
// A note file is an optional ignorable prefix, a header delimited by `---`
// and `---`/`...`, and a body. [Parse] splits the three apart; [Deserialize]
// turns the header text into a [FrontMatter] of tagged [Value]s;
// [AssertPreconditions] checks a deserialized FrontMatter against a
// [PreconditionTable] of required fields and expected types.
package frontmatter
