package linkrewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/sorttag"
)

func newResolver(t *testing.T, policy Policy, export bool) *Resolver {
	t.Helper()
	return NewResolver(sorttag.DefaultGrammar(), "", map[string]bool{"md": true, "txt": true}, policy, export)
}

func TestRewriteLeavesAbsoluteURLUnchanged(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyLong, false)
	got := r.Rewrite("https://example.com/a", "/notes/sub")
	assert.Equal(t, "https://example.com/a", got)
}

func TestDocRootFallsBackToSlashWhenNoMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newResolver(t, PolicyOff, false)
	assert.Equal(t, "/", r.DocRoot(dir))
}

func TestDocRootFindsMarkerWalkingUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultMarkerName), []byte(""), 0o644))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r := newResolver(t, PolicyOff, false)
	assert.Equal(t, root, r.DocRoot(sub))
}

func TestRewritePolicyShortMakesRelativeLinkRootRelative(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultMarkerName), []byte(""), 0o644))
	noteDir := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(noteDir, 0o755))

	r := newResolver(t, PolicyShort, false)
	got := r.Rewrite("other.md", noteDir)
	assert.Equal(t, "/sub/other.md", got)
}

func TestRewritePolicyShortLeavesAbsoluteLocalUnchanged(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyShort, false)
	got := r.Rewrite("/dir/file.md", "/notes/sub")
	assert.Equal(t, "/dir/file.md", got)
}

func TestRewritePolicyLongPrependsNoteDir(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyLong, false)
	got := r.Rewrite("other.md", "/notes/sub")
	assert.Equal(t, "/notes/sub/other.md", got)
}

func TestRewritePolicyLongPrependsDocRootForAbsolute(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultMarkerName), []byte(""), 0o644))
	noteDir := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(noteDir, 0o755))

	r := newResolver(t, PolicyLong, false)
	got := r.Rewrite("/other/file.md", noteDir)
	assert.Equal(t, filepath.Join(root, "other", "file.md"), got)
}

func TestRewriteAppendsHTMLSuffixOnExport(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyOff, true)
	got := r.Rewrite("other.md", "/notes/sub")
	assert.Equal(t, "other.md.html", got)
}

func TestRewriteDoesNotSuffixNonNoteFiles(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyOff, true)
	got := r.Rewrite("image.png", "/notes/sub")
	assert.Equal(t, "image.png", got)
}

func TestRewriteShorthandResolvesBySortTag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_note.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231", dir)
	assert.Equal(t, "20251231-my_note.md", got)
}

func TestRewriteShorthandBrokenLinkMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231", dir)
	assert.Equal(t, BrokenLinkMarker+"20251231", got)
}

func TestRewriteShorthandFormatStem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_note.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231?", dir)
	assert.Equal(t, "my_note", got)
}

func TestRewriteShorthandFormatWholeFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_note.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231??", dir)
	assert.Equal(t, "20251231-my_note.md", got)
}

func TestRewriteShorthandFormatSortTagOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_note.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231?#", dir)
	assert.Equal(t, "20251231", got)
}

func TestRewriteShorthandFormatToSubstring(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_note.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231?_note", dir)
	assert.Equal(t, "my", got)
}

func TestRewriteShorthandFormatFromToSubstring(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20251231-my_notebook.md"), []byte(""), 0o644))

	r := newResolver(t, PolicyOff, false)
	got := r.Rewrite("20251231?my:book", dir)
	assert.Equal(t, "_note", got)
}

func TestParsePolicyRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParsePolicy("bogus")
	require.Error(t, err)
}

func TestFuncClosesOverNoteDir(t *testing.T) {
	t.Parallel()

	r := newResolver(t, PolicyLong, false)
	f := r.Func("/notes/sub")
	assert.Equal(t, "/notes/sub/other.md", f("other.md"))
}
