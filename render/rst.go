package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// RST renders a small, practical subset of reStructuredText: section
// headings (underline only; an overline renders as a paragraph of its
// punctuation), bullet and enumerated lists, inline
// emphasis/strong/literal markup, and both RST hyperlink forms
// (`` `text <dest>`_ `` and a bare `text_` reference resolved against
// a trailing `.. _text: dest` target list). No maintained Go RST
// renderer exists in the examined ecosystem, so this is hand-written
// against the standard library; it is not a full RST implementation.
type RST struct{}

func NewRST() *RST { return &RST{} }

var (
	rstBullet    = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	rstEnum      = regexp.MustCompile(`^(\s*)\d+[.)]\s+(.*)$`)
	rstTarget    = regexp.MustCompile(`(?m)^\.\.\s+_([^:]+):\s*(\S+)\s*$`)
	rstStrong    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	rstEmphasis  = regexp.MustCompile(`\*(.+?)\*`)
	rstLiteral   = regexp.MustCompile("``(.+?)``")
	rstHyperlink = regexp.MustCompile("`([^`<]+)\\s*<([^>]+)>`_")
	rstBareRef   = regexp.MustCompile(`\b([A-Za-z]\w*)_\b`)
)

func (r *RST) Render(body []byte, rewrite RewriteFunc) ([]byte, error) {
	targets := map[string]string{}
	for _, m := range rstTarget.FindAllStringSubmatch(string(body), -1) {
		targets[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}
	text := rstTarget.ReplaceAllString(string(body), "")

	lines := strings.Split(text, "\n")
	var out strings.Builder
	listOpen := false
	listKind := ""

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.TrimSpace(line) != "" && i+1 < len(lines) && isUnderline(lines[i+1]) {
			closeList(&out, &listOpen, &listKind)
			level := headingLevel(strings.TrimSpace(lines[i+1])[0])
			title := strings.TrimSpace(line)
			fmt.Fprintf(&out, "<h%d>%s</h%d>\n", level, r.inline(title, targets, rewrite), level)
			i++ // consume the underline line too
			continue
		}

		if m := rstBullet.FindStringSubmatch(line); m != nil {
			openList(&out, &listOpen, &listKind, "ul")
			fmt.Fprintf(&out, "<li>%s</li>\n", r.inline(m[2], targets, rewrite))
			continue
		}
		if m := rstEnum.FindStringSubmatch(line); m != nil {
			openList(&out, &listOpen, &listKind, "ol")
			fmt.Fprintf(&out, "<li>%s</li>\n", r.inline(m[2], targets, rewrite))
			continue
		}

		closeList(&out, &listOpen, &listKind)

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		fmt.Fprintf(&out, "<p>%s</p>\n", r.inline(trimmed, targets, rewrite))
	}
	closeList(&out, &listOpen, &listKind)

	return []byte(out.String()), nil
}

func isUnderline(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 2 {
		return false
	}
	c := t[0]
	if !strings.ContainsRune("=-~^\"'`#*+.:_", rune(c)) {
		return false
	}
	for _, r := range t {
		if byte(r) != c {
			return false
		}
	}
	return true
}

func headingLevel(underlineChar byte) int {
	order := "=-~^\"'`#*+.:_"
	for i := 0; i < len(order); i++ {
		if order[i] == underlineChar {
			if i >= 5 {
				return 6
			}
			return i + 1
		}
	}
	return 6
}

func openList(out *strings.Builder, open *bool, kind *string, want string) {
	if *open && *kind == want {
		return
	}
	closeList(out, open, kind)
	fmt.Fprintf(out, "<%s>\n", want)
	*open = true
	*kind = want
}

func closeList(out *strings.Builder, open *bool, kind *string) {
	if !*open {
		return
	}
	fmt.Fprintf(out, "</%s>\n", *kind)
	*open = false
	*kind = ""
}

// inline applies RST inline markup, hyperlink resolution, and finally
// HTML-escapes literal text segments outside of markup.
//
// Markup is resolved first against the raw (unescaped) text, each
// match replaced with a placeholder token; only then is the remaining
// literal text HTML-escaped, and the placeholders substituted back in
// as already-safe HTML. Escaping before scanning would hide every "<"
// the hyperlink form depends on; escaping after substituting real
// anchors in would double-escape them.
func (r *RST) inline(s string, targets map[string]string, rewrite RewriteFunc) string {
	var placeholders []string
	place := func(fragment string) string {
		placeholders = append(placeholders, fragment)
		return fmt.Sprintf("\x00%d\x00", len(placeholders)-1)
	}

	s = rstHyperlink.ReplaceAllStringFunc(s, func(m string) string {
		sub := rstHyperlink.FindStringSubmatch(m)
		dest := strings.TrimSpace(sub[2])
		if rewrite != nil {
			dest = rewrite(dest)
		}
		return place(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(dest), html.EscapeString(strings.TrimSpace(sub[1]))))
	})

	s = rstBareRef.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.TrimSuffix(m, "_")
		dest, ok := targets[name]
		if !ok {
			return m
		}
		if rewrite != nil {
			dest = rewrite(dest)
		}
		return place(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(dest), html.EscapeString(name)))
	})

	s = rstLiteral.ReplaceAllStringFunc(s, func(m string) string {
		sub := rstLiteral.FindStringSubmatch(m)
		return place(fmt.Sprintf("<code>%s</code>", html.EscapeString(sub[1])))
	})
	s = rstStrong.ReplaceAllStringFunc(s, func(m string) string {
		sub := rstStrong.FindStringSubmatch(m)
		return place(fmt.Sprintf("<strong>%s</strong>", html.EscapeString(sub[1])))
	})
	s = rstEmphasis.ReplaceAllStringFunc(s, func(m string) string {
		sub := rstEmphasis.FindStringSubmatch(m)
		return place(fmt.Sprintf("<em>%s</em>", html.EscapeString(sub[1])))
	})

	s = html.EscapeString(s)
	for i, ph := range placeholders {
		s = strings.ReplaceAll(s, fmt.Sprintf("\x00%d\x00", i), ph)
	}

	return s
}
