package tmpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/scheme"
)

func TestEngineRenderFilenameSync(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	fm := frontmatter.FrontMatter{
		"title":    frontmatter.String("xxx"),
		"subtitle": frontmatter.String("yyy"),
	}

	ctx := BuildContext(ContextOptions{
		Path: "123-abc--edf.md",
		FM:   fm,
	})

	got, err := e.RenderFilename(scheme.TmplSyncFilename, ctx)
	require.NoError(t, err)
	assert.Equal(t, "123-xxx--yyy.md", got)
}

func TestEngineRenderFilenameSyncWithPinnedSortTag(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	fm := frontmatter.FrontMatter{
		"title":    frontmatter.String("xxx"),
		"subtitle": frontmatter.String("yyy"),
		"sort_tag": frontmatter.String("111"),
		"file_ext": frontmatter.String("md"),
	}

	ctx := BuildContext(ContextOptions{
		Path: "123-abc--edf.md",
		FM:   fm,
	})

	got, err := e.RenderFilename(scheme.TmplSyncFilename, ctx)
	require.NoError(t, err)
	assert.Equal(t, "111-xxx--yyy.md", got)
}

func TestEngineRenderFilenameAnnotateFile(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	ctx := BuildContext(ContextOptions{
		Path:             "test3-annotate+clipboard-input-dummy.pdf",
		ExtensionDefault: "md",
	})

	got, err := e.RenderFilename(scheme.TmplAnnotateFileFilename, ctx)
	require.NoError(t, err)
	assert.Equal(t, "test3-annotate+clipboard-input-dummy.pdf--Note.md", got)
}

func TestEngineRenderContentFromDir(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	ctx := BuildContext(ContextOptions{
		DirPath:  "test_output",
		Username: "myuser",
		Lang:     "en-US",
		Now:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	got, err := e.RenderContent(scheme.TmplFromDirContent, ctx)
	require.NoError(t, err)
	assert.Contains(t, got, "title:      test_output")
	assert.Contains(t, got, "author:     myuser")
	assert.Contains(t, got, "lang:       en-US")
}

func TestEngineRenderHTMLEscapesByDefault(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	fm := frontmatter.FrontMatter{"title": frontmatter.String("<b>hi</b>")}
	ctx := BuildContext(ContextOptions{FM: fm})
	ctx["path"] = "/notes/a.md"
	ctx["doc_error"] = "<b>header syntax</b>"
	ctx["doc_text"] = "raw text"

	got, err := e.RenderHTML(scheme.TmplHTMLViewerError, ctx)
	require.NoError(t, err)
	assert.Contains(t, string(got), "/notes/a.md")
	assert.Contains(t, string(got), "&lt;b&gt;header syntax&lt;/b&gt;")
}

func TestEngineRenderHTMLSafeBypassesEscaping(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())

	ctx := Context{"fm_title": "Note", "rendered": "<p>hello</p>"}

	got, err := e.RenderHTML(scheme.TmplHTMLViewerDoc, ctx)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<p>hello</p>")
}

func TestEngineUnknownTemplateKeyErrors(t *testing.T) {
	t.Parallel()

	e := New(scheme.Default())
	_, err := e.RenderContent("no_such_template", Context{})
	require.Error(t, err)
}
