package tmpl

import (
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/goccy/go-yaml"

	"go.tpnote.dev/tpnote/langdetect"
	"go.tpnote.dev/tpnote/linkscan"
	"go.tpnote.dev/tpnote/scheme"
	"go.tpnote.dev/tpnote/sorttag"
)

// CutLength is the byte budget of the `cut` filter.
const CutLength = 200

// spaceForbidden are filesystem-forbidden characters the `sanit` filter
// replaces with a space (quote-like characters that typically separate
// words rather than delimit a path segment).
const spaceForbidden = `"'`

// underscoreForbidden are filesystem-forbidden characters the `sanit`
// filter replaces with "_" (path separators and other reserved bytes).
const underscoreForbidden = `<>:/\|?*`

// sentenceEndRE matches the end of the first sentence, for `heading`.
var sentenceEndRE = regexp.MustCompile(`[.!?](\s|$)`)

// funcMap builds the filter set over s, closing over its sort-tag grammar
// and language-detector configuration so each filter needs only the
// pipeline value as an argument.
func funcMap(s *scheme.Scheme) map[string]any {
	g := s.Grammar

	return map[string]any{
		"fileName":         sorttag.FileName,
		"fileSortTag":      func(path string) string { return sorttag.FileSortTag(g, path) },
		"fileStem":         func(path string) string { return sorttag.FileStem(g, path) },
		"fileExt":          sorttag.FileExt,
		"trimFileSortTag":  func(path string) string { return sorttag.TrimFileSortTag(g, path) },
		"fileCopyCounter": func(path string) string {
			n, ok := sorttag.FileCopyCounter(g, path)
			if !ok {
				return ""
			}

			return strconv.Itoa(n)
		},

		"findLastCreatedFile": func(dir string) (string, error) {
			return findLastCreatedFile(s, dir)
		},

		"incrSortTag": func(def, tag string) string { return g.Incr(tag, def) },

		"assertValidSortTag": func(tag string) (string, error) {
			if err := g.AssertValid(tag); err != nil {
				return "", &FilterError{Name: "assert_valid_sort_tag", Reason: err.Error()}
			}

			return tag, nil
		},

		"sanit": sanit,

		"prependWith":       func(with, s string) string { return with + s },
		"prependNewline":    func(s string) string { return prependIfNonEmpty("\n", s) },
		"prependWithSortTag": func(tag, stem string) string { return sorttag.PrependWithSortTag(g, tag, stem) },

		"appendWith":    func(with, s string) string { return s + with },
		"appendNewline": func(s string) string { return appendIfNonEmpty("\n", s) },

		"cut": func(s string) string {
			if len(s) <= CutLength {
				return s
			}

			return s[:CutLength]
		},

		"heading": heading,

		"linkText":  func(s string) string { l, _ := linkscan.First(s); return l.Text },
		"linkDest":  func(s string) string { l, _ := linkscan.First(s); return l.Dest },
		"linkTitle": func(s string) string { l, _ := linkscan.First(s); return l.Title },

		"htmlToMarkup": func(ext, def, input string) string {
			out := htmlToMarkup(input)
			if out == "" {
				return def
			}

			return out
		},

		"getLang": func(text string) string { return langdetect.GetLang(text, s.LangDetect.Candidates) },
		"mapLang": func(def, code string) string { return langdetect.MapLang(code, s.LangDetect.Alist, def) },

		"toYaml":    toYAML,
		"toYamlKey": toYAMLKey,
		"toYamlTab": toYAMLTab,
		"toHtml":    toHTML,

		"insert": insertKey,
		"remove": removeKey,

		"name": func(key string) string {
			if n, ok := s.FieldLocalization[key]; ok {
				return n
			}

			return key
		},

		"safe":        func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec
		"linkifyHTML": linkifyHTML,

		"default": defaultFilter,
	}
}

func prependIfNonEmpty(prefix, s string) string {
	if s == "" {
		return s
	}

	return prefix + s
}

func appendIfNonEmpty(suffix, s string) string {
	if s == "" {
		return s
	}

	return s + suffix
}

// sanit replaces filesystem-forbidden characters with "_" or a space
// (quote-like characters become a space, path separators and other
// reserved bytes become "_"); a leading dot is preserved by prepending
// an apostrophe so the result is never interpreted as a hidden dot-file.
func sanit(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch {
		case strings.ContainsRune(spaceForbidden, r):
			b.WriteRune(' ')
		case strings.ContainsRune(underscoreForbidden, r) || r < 0x20:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if strings.HasPrefix(out, ".") {
		out = "'" + out
	}

	return out
}

// heading returns the input up to (exclusive) the end of the first
// sentence, or the first newline, whichever comes first.
func heading(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	if m := sentenceEndRE.FindStringIndex(s); m != nil {
		return s[:m[0]+1]
	}

	return s
}

func htmlToMarkup(input string) string {
	if input == "" {
		return ""
	}

	conv := md.NewConverter("", true, nil)

	out, err := conv.ConvertString(input)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

func toYAML(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", &FilterError{Name: "to_yaml", Reason: err.Error()}
	}

	return string(b), nil
}

func toYAMLKey(key string, v any) (string, error) {
	body, err := toYAML(v)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s: %s", key, strings.TrimSuffix(body, "\n")), nil
}

func toYAMLTab(tab int, key string, v any) (string, error) {
	body, err := toYAML(v)
	if err != nil {
		return "", err
	}

	pad := tab - len(key) - 1
	if pad < 1 {
		pad = 1
	}

	return fmt.Sprintf("%s:%s%s", key, strings.Repeat(" ", pad), strings.TrimSuffix(body, "\n")), nil
}

// toHTML emits an HTML rendition of a scalar, map, or sequence,
// HTML-escaping scalar text by default.
func toHTML(v any) template.HTML {
	return template.HTML(toHTMLString(v)) //nolint:gosec
}

func toHTMLString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return html.EscapeString(val)
	case []any:
		var b strings.Builder

		b.WriteString("<ul>")

		for _, e := range val {
			b.WriteString("<li>")
			b.WriteString(toHTMLString(e))
			b.WriteString("</li>")
		}

		b.WriteString("</ul>")

		return b.String()
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		var b strings.Builder

		b.WriteString("<dl>")

		for _, k := range keys {
			b.WriteString("<dt>")
			b.WriteString(html.EscapeString(k))
			b.WriteString("</dt><dd>")
			b.WriteString(toHTMLString(val[k]))
			b.WriteString("</dd>")
		}

		b.WriteString("</dl>")

		return b.String()
	default:
		return html.EscapeString(fmt.Sprintf("%v", val))
	}
}

func insertKey(key string, value any, m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}

	out[key] = value

	return out
}

func removeKey(key string, m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == key {
			continue
		}

		out[k] = v
	}

	return out
}

// defaultFilter returns value if it is a non-empty string (or any
// non-zero value), otherwise fallback. Mirrors the common
// template-ecosystem `default` helper used for fields like fm_sort_tag
// that may be absent.
func defaultFilter(fallback, value any) any {
	switch v := value.(type) {
	case string:
		if v == "" {
			return fallback
		}
	case nil:
		return fallback
	}

	return value
}

// linkifyHTML escapes text and turns every hyperlink [linkscan.All] finds
// into a clickable anchor, for the viewer's error template (spec.md §4.J:
// "the raw doc_text with clickable hyperlinks").
func linkifyHTML(text string) template.HTML {
	links := linkscan.All(text)

	var b strings.Builder

	pos := 0

	for _, l := range links {
		b.WriteString(html.EscapeString(text[pos:l.Start]))
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, html.EscapeString(l.Dest), html.EscapeString(text[l.Start:l.End]))
		pos = l.End
	}

	b.WriteString(html.EscapeString(text[pos:]))

	return template.HTML(b.String()) //nolint:gosec
}

// findLastCreatedFile returns the newest registered-extension note file
// in dir by modification time, ties broken by name, per the
// `find_last_created_file` filter contract.
func findLastCreatedFile(s *scheme.Scheme, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &FilterError{Name: "find_last_created_file", Reason: err.Error()}
	}

	var (
		best     string
		bestTime int64
	)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.TrimPrefix(filepath.Ext(e.Name()), ".")
		if _, ok := s.Extensions[ext]; !ok {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		mtime := info.ModTime().Unix()

		switch {
		case best == "":
			best, bestTime = e.Name(), mtime
		case mtime > bestTime, mtime == bestTime && e.Name() < best:
			best, bestTime = e.Name(), mtime
		}
	}

	if best == "" {
		return "", &FilterError{Name: "find_last_created_file", Reason: "no note file found in " + dir}
	}

	return best, nil
}
