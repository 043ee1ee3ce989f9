package scheme

import (
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/sorttag"
)

// Markup identifies which renderer an extension maps to.
type Markup int

const (
	Markdown Markup = iota
	RST
	PlainText
)

// Template keys. Filename templates always exist for a scheme; content
// templates exist for every mode except Sync, which only renames.
const (
	TmplFromDirContent    = "from_dir_content"
	TmplFromDirFilename   = "from_dir_filename"

	TmplFromClipboardContent  = "from_clipboard_content"
	TmplFromClipboardFilename = "from_clipboard_filename"

	TmplFromClipboardYamlContent  = "from_clipboard_yaml_content"
	TmplFromClipboardYamlFilename = "from_clipboard_yaml_filename"

	TmplAnnotateFileContent  = "annotate_file_content"
	TmplAnnotateFileFilename = "annotate_file_filename"

	TmplFromTextFileContent  = "from_text_file_content"
	TmplFromTextFileFilename = "from_text_file_filename"

	TmplSyncFilename = "sync_filename"
)

// HTML template keys.
const (
	TmplHTMLViewerError = "viewer_error"
	TmplHTMLViewerDoc   = "viewer_doc"
)

// DefaultName is the scheme selected when a note carries no `scheme:`
// header field.
const DefaultName = "default"

// ZettelName is the second scheme tpnote ships.
const ZettelName = "zettel"

// LangDetect bundles the language-detector configuration a scheme
// carries: the candidate set [langdetect.GetLang] is restricted to, and
// the alist [langdetect.MapLang] resolves a detected code through.
type LangDetect struct {
	Candidates []string
	Alist      map[string]string
}

// Scheme is a named bundle of everything spec.md §3.3 groups together.
type Scheme struct {
	Name string

	// Extensions maps a registered extension (without the dot) to the
	// markup it is rendered as.
	Extensions       map[string]Markup
	ExtensionDefault string

	Grammar sorttag.Grammar

	ContentTemplates  map[string]string
	FilenameTemplates map[string]string
	HTMLTemplates     map[string]string

	// FieldLocalization backs the `name` filter: a header field
	// identifier's localized display name.
	FieldLocalization map[string]string

	LangDetect LangDetect

	Preconditions frontmatter.PreconditionTable

	// CompulsoryField must be present and non-empty for a header to be
	// valid (spec.md §3.1); defaults to "title".
	CompulsoryField string
}

// Registry is the set of schemes available by name.
type Registry map[string]*Scheme

// NewRegistry returns the two shipped schemes, keyed by name.
func NewRegistry() Registry {
	d := Default()
	z := Zettel()

	return Registry{
		d.Name: d,
		z.Name: z,
	}
}

// Get returns the scheme named name, or the default scheme if name is
// empty or unregistered.
func (r Registry) Get(name string) *Scheme {
	if name != "" {
		if s, ok := r[name]; ok {
			return s
		}
	}

	return r[DefaultName]
}
