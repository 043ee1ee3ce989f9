package linkscan

import (
	"regexp"
	"sort"
)

// Link is one hyperlink found in a source text.
type Link struct {
	Text, Dest, Title string
	// Start and End are the byte offsets of the link's full match in the
	// source text, used by [All] to resolve overlaps and order results.
	Start, End int
}

// matcher extracts every non-overlapping Link a single markup dialect's
// pattern finds in text.
type matcher func(text string) []Link

var matchers = []matcher{
	matchMarkdown,
	matchHTML,
	matchRST,
	matchAsciidoc,
	matchBareURL,
}

// markdownLinkRe matches [text](dest) or [text](dest "title").
var markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"([^"]*)")?\)`)

func matchMarkdown(text string) []Link {
	var links []Link

	for _, m := range markdownLinkRe.FindAllStringSubmatchIndex(text, -1) {
		links = append(links, Link{
			Text:  text[m[2]:m[3]],
			Dest:  text[m[4]:m[5]],
			Title: group(text, m, 3),
			Start: m[0],
			End:   m[1],
		})
	}

	return links
}

// htmlLinkRe matches <a href="dest" title="title">text</a>, with href
// and title allowed in either order.
var htmlLinkRe = regexp.MustCompile(`(?is)<a\s+[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
var htmlTitleRe = regexp.MustCompile(`(?is)title="([^"]*)"`)

func matchHTML(text string) []Link {
	var links []Link

	for _, m := range htmlLinkRe.FindAllStringSubmatchIndex(text, -1) {
		full := text[m[0]:m[1]]

		title := ""
		if tm := htmlTitleRe.FindStringSubmatch(full); tm != nil {
			title = tm[1]
		}

		links = append(links, Link{
			Text:  text[m[4]:m[5]],
			Dest:  text[m[2]:m[3]],
			Title: title,
			Start: m[0],
			End:   m[1],
		})
	}

	return links
}

// rstLinkRe matches `text <dest>`_.
var rstLinkRe = regexp.MustCompile("`([^<`]+?)\\s*<([^>`]+)>`_")

func matchRST(text string) []Link {
	var links []Link

	for _, m := range rstLinkRe.FindAllStringSubmatchIndex(text, -1) {
		links = append(links, Link{
			Text:  text[m[2]:m[3]],
			Dest:  text[m[4]:m[5]],
			Start: m[0],
			End:   m[1],
		})
	}

	return links
}

// asciidocLinkRe matches dest[text], with an optional link: prefix.
var asciidocLinkRe = regexp.MustCompile(`(?:link:)?(https?://[^\s\[\]]+)\[([^\]]*)\]`)

func matchAsciidoc(text string) []Link {
	var links []Link

	for _, m := range asciidocLinkRe.FindAllStringSubmatchIndex(text, -1) {
		links = append(links, Link{
			Text:  text[m[4]:m[5]],
			Dest:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}

	return links
}

// bareURLRe matches an unadorned http(s) URL.
var bareURLRe = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)

func matchBareURL(text string) []Link {
	var links []Link

	for _, m := range bareURLRe.FindAllStringIndex(text, -1) {
		dest := text[m[0]:m[1]]
		links = append(links, Link{
			Text:  dest,
			Dest:  dest,
			Start: m[0],
			End:   m[1],
		})
	}

	return links
}

func group(text string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}

	return text[m[2*i]:m[2*i+1]]
}

// First returns the earliest hyperlink found in text across all
// supported dialects, and whether any was found.
func First(text string) (Link, bool) {
	links := All(text)
	if len(links) == 0 {
		return Link{}, false
	}

	return links[0], true
}

// All returns every non-overlapping hyperlink found in text, in source
// order. When two dialects' patterns match overlapping spans, the
// earliest-starting match wins and the later one is dropped.
func All(text string) []Link {
	var all []Link

	for _, m := range matchers {
		all = append(all, m(text)...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })

	var result []Link

	end := -1

	for _, l := range all {
		if l.Start < end {
			continue
		}

		result = append(result, l)
		end = l.End
	}

	return result
}
