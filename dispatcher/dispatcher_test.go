package dispatcher_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/config"
	"go.tpnote.dev/tpnote/dispatcher"
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/scheme"
)

type fakeIngester struct {
	plain, html, stdin string
}

func (f *fakeIngester) ReadPlain() (string, error) { return f.plain, nil }
func (f *fakeIngester) ReadHTML() (string, error)  { return f.html, nil }
func (f *fakeIngester) ReadStdin() (string, error) { return f.stdin, nil }
func (f *fakeIngester) Clear() error               { return nil }

func testConfig() *config.Config {
	c := config.NewConfig()
	c.User = "alice"
	c.Lang = "en-US"
	return c
}

var fixedNow = time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

func TestRunFromDirCreatesAndSyncsNote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig()
	cfg.Batch = true

	res, err := dispatcher.Run(dir, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.FromDir, res.Mode)
	assert.FileExists(t, res.Path)
	assert.Contains(t, res.Path, dir)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "author:     alice")
}

func TestRunFromClipboardInteractive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig()

	ing := &fakeIngester{plain: "Meeting notes\n\nDiscuss roadmap."}
	res, err := dispatcher.Run(dir, cfg, scheme.NewRegistry(), ing, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.FromClipboard, res.Mode)
	assert.FileExists(t, res.Path)
}

func TestRunAnnotateFileLeavesForeignFileUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	foreign := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(foreign, []byte("binary"), 0o644))

	cfg := testConfig()
	cfg.Batch = true

	res, err := dispatcher.Run(foreign, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.AnnotateFile, res.Mode)
	assert.NotEqual(t, foreign, res.Path)
	assert.FileExists(t, foreign)

	original, err := os.ReadFile(foreign)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(original))
}

func TestRunFromTextFileConvertsPlainFileInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "ideas.md")
	require.NoError(t, os.WriteFile(plain, []byte("Some raw notes without a header."), 0o644))

	cfg := testConfig()
	cfg.Batch = true

	res, err := dispatcher.Run(plain, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.FromTextFile, res.Mode)
	assert.FileExists(t, res.Path)
	assert.NoFileExists(t, plain)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Some raw notes without a header.")
}

func TestRunSyncRenamesHeaderedFileToMatchFrontMatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "stale-name.md")
	body := "---\ntitle:      New Title\nsubtitle:   Note\nauthor:     alice\ndate:       2026-07-31\nlang:       en-US\n---\n\nbody\n"
	require.NoError(t, os.WriteFile(note, []byte(body), 0o644))

	cfg := testConfig()
	cfg.Batch = true

	res, err := dispatcher.Run(note, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.Sync, res.Mode)
	assert.NoError(t, res.Degraded)
	assert.FileExists(t, res.Path)
}

func TestRunSyncDegradedWhenPreconditionFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "broken.md")
	// title is compulsory and empty here, violating the default scheme's
	// precondition table.
	body := "---\ntitle:      \nauthor:     alice\n---\n\nbody\n"
	require.NoError(t, os.WriteFile(note, []byte(body), 0o644))

	cfg := testConfig()
	cfg.Batch = true

	res, err := dispatcher.Run(note, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dispatcher.Sync, res.Mode)
	assert.Error(t, res.Degraded)
	assert.True(t, dispatcher.IsDegradedHeader(res.Degraded))
}

func TestRunNoFilenameSyncLeavesPathAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "stale-name.md")
	body := "---\ntitle:      New Title\nauthor:     alice\n---\n\nbody\n"
	require.NoError(t, os.WriteFile(note, []byte(body), 0o644))

	cfg := testConfig()
	cfg.Batch = true
	cfg.NoFilenameSync = true

	res, err := dispatcher.Run(note, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, note, res.Path)
}

func TestRunForceLangEmptyFallsBackToConfigLang(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig()
	cfg.Batch = true
	cfg.ForceLangSet = true
	cfg.ForceLang = ""

	res, err := dispatcher.Run(dir, cfg, scheme.NewRegistry(), &fakeIngester{}, fixedNow)
	require.NoError(t, err)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "lang:       en-US")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, dispatcher.ExitCode(nil))
	assert.Equal(t, 5, dispatcher.ExitCode(&config.LoadError{Path: "x", Err: errors.New("bad")}))
	assert.Equal(t, 1, dispatcher.ExitCode(errors.New("some other failure")))
}

func TestIsDegradedHeader(t *testing.T) {
	t.Parallel()

	assert.True(t, dispatcher.IsDegradedHeader(frontmatter.ErrHeaderMissing))
	assert.True(t, dispatcher.IsDegradedHeader(frontmatter.ErrHeaderSyntax))
	assert.True(t, dispatcher.IsDegradedHeader(frontmatter.ErrPrecondition))
	assert.False(t, dispatcher.IsDegradedHeader(errors.New("unrelated")))
}
