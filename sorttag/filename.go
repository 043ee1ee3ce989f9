package sorttag

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// copyCounterRE matches a trailing parenthesized integer copy-counter
// immediately before the extension, e.g. "(3)" in "stem(3).md".
var copyCounterRE = regexp.MustCompile(`\((\d+)\)$`)

// Decomposed is the four-way split of a filename into its sort-tag, stem,
// copy-counter, and extension, per the tpnote filename model (spec.md §3.2):
//
//	<sort_tag><sep><stem>(--<subtitle-or-keywords>)?(<copy_counter>)?.<ext>
type Decomposed struct {
	SortTag     string
	Stem        string
	CopyCounter int // 0 if absent
	HasCounter  bool
	Ext         string // without leading dot
}

// Decompose splits a filename (base name, not a path) into its sort-tag,
// stem, copy-counter, and extension.
func Decompose(g Grammar, name string) Decomposed {
	ext := filepath.Ext(name)
	noExt := name[:len(name)-len(ext)]
	ext = trimDot(ext)

	tag, rest := g.Split(noExt)

	stem := rest
	counter := 0
	hasCounter := false

	if m := copyCounterRE.FindStringSubmatch(stem); m != nil {
		hasCounter = true
		counter, _ = strconv.Atoi(m[1])
		stem = stem[:len(stem)-len(m[0])]
	}

	return Decomposed{
		SortTag:     tag,
		Stem:        stem,
		CopyCounter: counter,
		HasCounter:  hasCounter,
		Ext:         ext,
	}
}

func trimDot(s string) string {
	if len(s) > 0 && s[0] == '.' {
		return s[1:]
	}

	return s
}

// FileName returns the final path component (directory or file), per the
// `file_name` filter contract.
func FileName(path string) string {
	return filepath.Base(path)
}

// FileSortTag returns the sort-tag of the final path component, per the
// `file_sort_tag` filter contract.
func FileSortTag(g Grammar, path string) string {
	name := filepath.Base(path)
	noExt := name[:len(name)-len(filepath.Ext(name))]
	tag, _ := g.Split(noExt)

	return tag
}

// TrimFileSortTag returns the final path component minus its sort-tag (and
// the separator, if one was consumed), per the `trim_file_sort_tag` filter
// contract. The extension, if any, is preserved.
func TrimFileSortTag(g Grammar, path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	noExt := name[:len(name)-len(ext)]
	_, rest := g.Split(noExt)

	return rest + ext
}

// FileStem returns the name minus sort-tag, copy-counter, and extension,
// per the `file_stem` filter contract.
func FileStem(g Grammar, path string) string {
	return Decompose(g, filepath.Base(path)).Stem
}

// FileCopyCounter returns the parenthesized integer copy-counter of path,
// if any, and whether one was present, per the `file_copy_counter` filter
// contract.
func FileCopyCounter(g Grammar, path string) (int, bool) {
	d := Decompose(g, filepath.Base(path))

	return d.CopyCounter, d.HasCounter
}

// FileExt returns the extension without its leading dot, per the
// `file_ext` filter contract.
func FileExt(path string) string {
	return trimDot(filepath.Ext(path))
}

// Compose rebuilds a filename from its parts, inserting [Grammar.Separator]
// between the sort-tag and stem only when the sort-tag is non-empty and the
// stem does not already begin with the separator or [Grammar.ExtraSeparator].
func Compose(g Grammar, d Decomposed) string {
	var out string

	if d.SortTag != "" {
		out = d.SortTag

		if len(d.Stem) == 0 || (d.Stem[0] != g.Separator && d.Stem[0] != g.ExtraSeparator) {
			out += string(g.Separator)
		}
	}

	out += d.Stem

	if d.HasCounter {
		out += "(" + strconv.Itoa(d.CopyCounter) + ")"
	}

	if d.Ext != "" {
		out += "." + d.Ext
	}

	return out
}

// PrependWithSortTag prepends tag and the grammar separator to stem. Before
// returning, it verifies that [Split] applied to the result recovers exactly
// (tag, stem); if it would not (stem begins with digits that bridge across
// the separator into what looks like a continuation of the tag), it inserts
// [Grammar.ExtraSeparator] to mark the boundary unambiguously instead. This
// is the mechanism spec.md §4.A and §8 (invariant 4, boundary unambiguity)
// describe to guarantee fix-point idempotence of the sync filename
// template.
func PrependWithSortTag(g Grammar, tag, stem string) string {
	if tag == "" {
		return stem
	}

	naive := tag + string(g.Separator) + stem
	if gotTag, gotRest := g.Split(naive); gotTag == tag && gotRest == stem {
		return naive
	}

	return tag + string(g.ExtraSeparator) + string(g.Separator) + stem
}
