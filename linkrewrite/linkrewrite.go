package linkrewrite

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.tpnote.dev/tpnote/sorttag"
)

// DefaultMarkerName is the document-root marker file looked for when
// none is configured.
const DefaultMarkerName = ".tpnote.toml"

// BrokenLinkMarker prefixes the destination returned when a shorthand
// reference resolves to no file.
const BrokenLinkMarker = "#broken-link:"

// Policy selects how local link destinations are rewritten.
type Policy int

const (
	PolicyOff Policy = iota
	PolicyShort
	PolicyLong
)

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "off":
		return PolicyOff, nil
	case "short":
		return PolicyShort, nil
	case "long":
		return PolicyLong, nil
	default:
		return 0, &PolicyError{Value: s}
	}
}

// PolicyError reports an unrecognized rewrite-policy configuration
// value.
type PolicyError struct {
	Value string
}

func (e *PolicyError) Error() string {
	return "linkrewrite: unknown policy " + e.Value
}

var absoluteURLRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Resolver rewrites local link destinations found in a rendered note
// body, per spec.md §4.I: document-root resolution, sort-tag
// shorthand resolution, and the off/short/long policies.
type Resolver struct {
	Grammar    sorttag.Grammar
	MarkerName string
	// Extensions are the scheme's registered note-file extensions
	// (without the leading dot); used to decide whether to append
	// ".html" on export.
	Extensions map[string]bool
	Policy     Policy
	Export     bool
}

// NewResolver builds a Resolver; an empty markerName defaults to
// [DefaultMarkerName].
func NewResolver(g sorttag.Grammar, markerName string, extensions map[string]bool, policy Policy, export bool) *Resolver {
	if markerName == "" {
		markerName = DefaultMarkerName
	}
	return &Resolver{
		Grammar:    g,
		MarkerName: markerName,
		Extensions: extensions,
		Policy:     policy,
		Export:     export,
	}
}

// Func returns a closure over noteDir suitable for [render.RewriteFunc].
func (r *Resolver) Func(noteDir string) func(string) string {
	return func(dest string) string {
		return r.Rewrite(dest, noteDir)
	}
}

// DocRoot walks upward from dir looking for the marker file, returning
// its containing directory; "/" if no marker is found.
func (r *Resolver) DocRoot(dir string) string {
	cur := dir
	for {
		if _, err := os.Stat(filepath.Join(cur, r.MarkerName)); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "/"
		}
		cur = parent
	}
}

// Rewrite resolves and rewrites a single link destination found in the
// note at noteDir.
func (r *Resolver) Rewrite(dest string, noteDir string) string {
	if dest == "" || absoluteURLRE.MatchString(dest) {
		return dest
	}

	dest = strings.TrimPrefix(dest, "tpnote:")

	dir, last := splitLastSegment(dest)
	if tag, formatSpec, hasFormat, ok := parseShorthand(last, r.Grammar); ok {
		targetDirOS := r.resolveTargetDir(dir, noteDir)
		filename, found := r.resolveShorthand(targetDirOS, tag)
		if !found {
			return BrokenLinkMarker + dest
		}
		dest = joinDestDir(dir, r.applyFormat(filename, formatSpec, hasFormat))
	}

	dest = r.applyPolicy(dest, noteDir)

	if r.Export && r.isRegisteredNoteFile(dest) {
		dest += ".html"
	}
	return dest
}

func (r *Resolver) resolveTargetDir(destDir, noteDir string) string {
	if strings.HasPrefix(destDir, "/") {
		return filepath.Join(r.DocRoot(noteDir), filepath.FromSlash(strings.TrimPrefix(destDir, "/")))
	}
	return filepath.Join(noteDir, filepath.FromSlash(destDir))
}

func (r *Resolver) resolveShorthand(dirOS, tag string) (string, bool) {
	entries, err := os.ReadDir(dirOS)
	if err != nil {
		return "", false
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sorttag.FileSortTag(r.Grammar, e.Name()) == tag {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

func (r *Resolver) applyFormat(filename, formatSpec string, hasFormat bool) string {
	if !hasFormat {
		return sorttag.FileName(filename)
	}
	switch formatSpec {
	case "":
		return sorttag.FileStem(r.Grammar, filename)
	case "?":
		return sorttag.FileName(filename)
	case "#":
		return sorttag.FileSortTag(r.Grammar, filename)
	default:
		stem := sorttag.FileStem(r.Grammar, filename)
		from, to, hasColon := strings.Cut(formatSpec, ":")
		if !hasColon {
			from, to = "", formatSpec
		}
		return substringFromTo(stem, from, to)
	}
}

func substringFromTo(s, from, to string) string {
	start := 0
	if from != "" {
		idx := strings.Index(s, from)
		if idx < 0 {
			return s
		}
		start = idx + len(from)
	}
	end := len(s)
	if to != "" {
		idx := strings.Index(s[start:], to)
		if idx >= 0 {
			end = start + idx
		}
	}
	return s[start:end]
}

func (r *Resolver) applyPolicy(dest, noteDir string) string {
	switch r.Policy {
	case PolicyOff:
		return dest
	case PolicyShort:
		if strings.HasPrefix(dest, "/") {
			return dest
		}
		root := r.DocRoot(noteDir)
		abs := filepath.Join(noteDir, filepath.FromSlash(dest))
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return dest
		}
		return "/" + filepath.ToSlash(rel)
	case PolicyLong:
		if strings.HasPrefix(dest, "/") {
			return filepath.Join(r.DocRoot(noteDir), filepath.FromSlash(strings.TrimPrefix(dest, "/")))
		}
		return filepath.Join(noteDir, filepath.FromSlash(dest))
	default:
		return dest
	}
}

func (r *Resolver) isRegisteredNoteFile(dest string) bool {
	ext := sorttag.FileExt(dest)
	return r.Extensions[ext]
}

func splitLastSegment(dest string) (dir, last string) {
	idx := strings.LastIndex(dest, "/")
	if idx < 0 {
		return "", dest
	}
	return dest[:idx], dest[idx+1:]
}

func joinDestDir(dir, last string) string {
	if dir == "" {
		return last
	}
	return dir + "/" + last
}

// parseShorthand reports whether segment is a bare sort-tag, optionally
// followed by a `?...` format string. hasFormat distinguishes "no
// format string" from an empty one (plain `?`).
func parseShorthand(segment string, g sorttag.Grammar) (tag, formatSpec string, hasFormat, ok bool) {
	before, after, found := strings.Cut(segment, "?")
	tag, rest := g.Split(before)
	if tag == "" || rest != "" {
		return "", "", false, false
	}
	return tag, after, found, true
}
