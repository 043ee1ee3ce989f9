package scheme

import (
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/sorttag"

	"github.com/google/jsonschema-go/jsonschema"
)

func minLength(n int) *int { return &n }

// Default is the scheme used when no scheme is named: Markdown by
// default, with a plain-text fallback.
func Default() *Scheme {
	return &Scheme{
		Name: DefaultName,

		Extensions: map[string]Markup{
			"md":       Markdown,
			"markdown": Markdown,
			"mdtxt":    Markdown,
			"rst":      RST,
			"txt":      PlainText,
		},
		ExtensionDefault: "md",

		Grammar: sorttag.DefaultGrammar(),

		ContentTemplates: map[string]string{
			TmplFromDirContent: `---
{{ toYamlTab 12 "title" (.dir_path | fileName) }}
{{ toYamlTab 12 "subtitle" "Note" }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .now }}
lang:       {{ .lang }}
---

`,
			TmplFromClipboardContent: `---
{{ toYamlTab 12 "title" (.txt_clipboard | heading) }}
{{ toYamlTab 12 "subtitle" (.txt_clipboard | heading | cut) }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .now }}
lang:       {{ .lang }}
---

{{ .txt_clipboard }}
`,
			TmplFromClipboardYamlContent: `{{ .txt_clipboard_header | prependWith "---\n" | appendWith "---\n" }}
{{ .txt_clipboard }}
`,
			TmplAnnotateFileContent: `---
{{ toYamlTab 12 "title" (.path | fileName) }}
{{ toYamlTab 12 "subtitle" "Note" }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .now }}
lang:       {{ .lang }}
---

{{ .txt_clipboard }}
`,
			TmplFromTextFileContent: `---
{{ toYamlTab 12 "title" (.path | fileStem) }}
{{ toYamlTab 12 "subtitle" (.doc_body_text | heading) }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .doc_file_date }}
lang:       {{ .lang }}
---

{{ .doc_body_text }}
`,
		},

		FilenameTemplates: map[string]string{
			TmplFromDirFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}--{{ .fm_subtitle | sanit }}.{{ .extension_default }}`,

			TmplFromClipboardFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}--{{ .fm_subtitle | sanit }}.{{ .extension_default }}`,

			TmplFromClipboardYamlFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}--{{ .fm_subtitle | sanit }}.{{ .fm_file_ext | default .extension_default }}`,

			TmplAnnotateFileFilename: `{{ .path | fileName }}--Note.{{ .extension_default }}`,

			TmplFromTextFileFilename: `{{ prependWithSortTag (.path | fileSortTag) (.fm_title | sanit) }}--{{ .fm_subtitle | sanit }}.{{ .path | fileExt }}`,

			TmplSyncFilename: `{{ prependWithSortTag (.fm_sort_tag | default (.path | fileSortTag)) (.fm_title | sanit) }}--{{ .fm_subtitle | sanit }}{{ with .path | fileCopyCounter }}({{ . }}){{ end }}.{{ .fm_file_ext | default (.path | fileExt) }}`,
		},

		HTMLTemplates: map[string]string{
			TmplHTMLViewerError: `<!DOCTYPE html><html><body><h1>Error</h1>
<p>{{ .path }}: {{ .doc_error }}</p>
<pre>{{ .doc_text | linkifyHTML }}</pre>
</body></html>`,
			TmplHTMLViewerDoc: `<!DOCTYPE html><html><head><title>{{ .fm_title }}</title></head><body>{{ .rendered | safe }}</body></html>`,
		},

		FieldLocalization: map[string]string{
			"title":    "Title",
			"subtitle": "Subtitle",
			"author":   "Author",
			"date":     "Date",
			"lang":     "Language",
			"revision": "Revision",
			"keywords": "Keywords",
		},

		LangDetect: LangDetect{
			Candidates: []string{"en", "de", "fr", "es"},
			Alist:      map[string]string{"en": "en-US", "de": "de-DE", "fr": "fr-FR", "es": "es-ES"},
		},

		Preconditions: frontmatter.PreconditionTable{
			"title": {
				Schema:   &jsonschema.Schema{Type: "string", MinLength: minLength(1)},
				Required: true,
			},
			"subtitle": {Schema: &jsonschema.Schema{Type: "string"}},
			"author":   {Schema: &jsonschema.Schema{Type: "string"}},
			"lang":     {Schema: &jsonschema.Schema{Type: "string"}},
		},

		CompulsoryField: "title",
	}
}
