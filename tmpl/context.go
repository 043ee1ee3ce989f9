package tmpl

import (
	"time"

	"go.tpnote.dev/tpnote/clipboard"
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/sorttag"
)

// Context is the variable context a template is expanded over: a flat
// map so that Go templates can address spec.md's snake_case variable
// names (e.g. `{{ .dir_path }}`) directly as map keys.
type Context map[string]any

// ContextOptions bundles everything [BuildContext] needs; fields are
// populated according to which operation mode is active (spec.md §4.C's
// "always available" vs "available in text-file and sync modes" split).
type ContextOptions struct {
	Path             string
	DirPath          string
	ExtensionDefault string
	Username         string
	Lang             string
	Now              time.Time
	Grammar          sorttag.Grammar

	Clipboard clipboard.Variables

	// DocFMText, DocBodyText, DocFileDate are only set in text-file and
	// sync modes.
	DocFMText   string
	DocBodyText string
	DocFileDate string

	// FM is the deserialized header, available in filename templates and
	// the YAML-passthrough content template.
	FM frontmatter.FrontMatter
}

// BuildContext assembles the variable context spec.md §4.C describes.
func BuildContext(o ContextOptions) Context {
	ctx := Context{
		"path":              o.Path,
		"dir_path":          o.DirPath,
		"extension_default": o.ExtensionDefault,
		"username":          o.Username,
		"lang":              o.Lang,
		"now":               o.Now.Format("2006-01-02"),
		"today_sort_tag":    sorttag.TodayChronological(o.Now),

		"txt_clipboard":        o.Clipboard.TxtClipboard,
		"txt_clipboard_header": o.Clipboard.TxtClipboardHeader,
		"html_clipboard":       o.Clipboard.HTMLClipboard,
		"html_clipboard_header": o.Clipboard.HTMLClipboardHeader,
		"stdin":                o.Clipboard.Stdin,
		"stdin_header":         o.Clipboard.StdinHeader,

		"doc_fm_text":   o.DocFMText,
		"doc_body_text": o.DocBodyText,
		"doc_file_date": o.DocFileDate,
	}

	// Go's text/template prints "<no value>" for a missing key on a
	// map[string]any, rather than treating it as empty — so the two
	// optional header overrides the sync filename template consults
	// (spec.md §3.2's `sort_tag:`/`file_ext:`) must always be present,
	// even when the header doesn't carry them.
	ctx["fm_sort_tag"] = ""
	ctx["fm_file_ext"] = ""

	if o.FM != nil {
		m := valueToAny(frontmatter.Map(o.FM))
		ctx["fm"] = m

		for k, v := range o.FM {
			ctx["fm_"+k] = valueToAny(v)
		}
	}

	return ctx
}

// valueToAny converts a [frontmatter.Value] to a plain Go value (string,
// int64, float64, bool, []any, map[string]any, or nil) suitable for
// template field/index access and for the to_yaml/to_html filters.
func valueToAny(v frontmatter.Value) any {
	switch v.Kind() {
	case frontmatter.KindNull:
		return nil
	case frontmatter.KindString:
		s, _ := v.AsString()
		return s
	case frontmatter.KindInt:
		i, _ := v.AsInt()
		return i
	case frontmatter.KindFloat:
		f, _ := v.AsFloat()
		return f
	case frontmatter.KindBool:
		b, _ := v.AsBool()
		return b
	case frontmatter.KindSeq:
		seq, _ := v.AsSeq()
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = valueToAny(e)
		}
		return out
	case frontmatter.KindMap:
		m, _ := v.AsMap()
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = valueToAny(e)
		}
		return out
	default:
		return nil
	}
}
