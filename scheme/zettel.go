package scheme

import (
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/sorttag"

	"github.com/google/jsonschema-go/jsonschema"
)

// Zettel is a Zettelkasten-flavored scheme: its headers carry a
// `keywords` list, and its filenames consist of the sort-tag and the
// title only, with no subtitle. Keywords do not appear in filenames, and
// new notes get the same date-based sort-tag as the default scheme.
func Zettel() *Scheme {
	grammar := sorttag.DefaultGrammar()

	return &Scheme{
		Name: ZettelName,

		Extensions: map[string]Markup{
			"md":  Markdown,
			"txt": PlainText,
		},
		ExtensionDefault: "md",

		Grammar: grammar,

		ContentTemplates: map[string]string{
			TmplFromDirContent: `---
{{ toYamlTab 12 "title" (.dir_path | fileName) }}
{{ toYamlTab 12 "subtitle" "Note" }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .now }}
lang:       {{ .lang }}
keywords:   []
---

`,
			TmplFromClipboardContent: `---
{{ toYamlTab 12 "title" (.txt_clipboard | heading) }}
{{ toYamlTab 12 "subtitle" "Note" }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .now }}
lang:       {{ .lang }}
keywords:   []
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
keywords:   []
---

{{ .txt_clipboard }}
`,
			TmplFromTextFileContent: `---
{{ toYamlTab 12 "title" (.path | fileStem) }}
{{ toYamlTab 12 "subtitle" "Note" }}
{{ toYamlTab 12 "author" .username }}
date:       {{ .doc_file_date }}
lang:       {{ .lang }}
keywords:   []
---

{{ .doc_body_text }}
`,
		},

		FilenameTemplates: map[string]string{
			TmplFromDirFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}.{{ .extension_default }}`,

			TmplFromClipboardFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}.{{ .extension_default }}`,

			TmplFromClipboardYamlFilename: `{{ prependWithSortTag .today_sort_tag (.fm_title | sanit) }}.{{ .fm_file_ext | default .extension_default }}`,

			TmplAnnotateFileFilename: `{{ .path | fileName }}--Note.{{ .extension_default }}`,

			TmplFromTextFileFilename: `{{ prependWithSortTag (.path | fileSortTag) (.fm_title | sanit) }}.{{ .path | fileExt }}`,

			TmplSyncFilename: `{{ prependWithSortTag (.fm_sort_tag | default (.path | fileSortTag)) (.fm_title | sanit) }}{{ with .path | fileCopyCounter }}({{ . }}){{ end }}.{{ .fm_file_ext | default (.path | fileExt) }}`,
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
			"keywords": "Keywords",
		},

		LangDetect: LangDetect{
			Candidates: []string{"en", "de"},
			Alist:      map[string]string{"en": "en-US", "de": "de-DE"},
		},

		Preconditions: frontmatter.PreconditionTable{
			"title": {
				Schema:   &jsonschema.Schema{Type: "string", MinLength: minLength(1)},
				Required: true,
			},
			"keywords": {Schema: &jsonschema.Schema{Type: "array"}},
		},

		CompulsoryField: "title",
	}
}
