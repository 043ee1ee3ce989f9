package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestSyncNoopWhenNamesMatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "note.md")

	got, err := Sync(dir, "note.md", "note.md")
	require.NoError(t, err)
	assert.Equal(t, "note.md", got)
	assert.FileExists(t, filepath.Join(dir, "note.md"))
}

func TestSyncRenamesWhenFree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "old.md")

	got, err := Sync(dir, "new.md", "old.md")
	require.NoError(t, err)
	assert.Equal(t, "new.md", got)
	assert.FileExists(t, filepath.Join(dir, "new.md"))
	assert.NoFileExists(t, filepath.Join(dir, "old.md"))
}

func TestSyncAllocatesLowestFreeCopyCounter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "old.md")
	touch(t, dir, "new.md")
	touch(t, dir, "new(1).md")

	got, err := Sync(dir, "new.md", "old.md")
	require.NoError(t, err)
	assert.Equal(t, "new(2).md", got)
	assert.FileExists(t, filepath.Join(dir, "new(2).md"))
}

func TestSyncIdempotentAcrossCollision(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "new.md") // occupied by an unrelated file
	touch(t, dir, "old.md") // the note being synced

	first, err := Sync(dir, "new.md", "old.md")
	require.NoError(t, err)
	assert.Equal(t, "new(1).md", first)

	second, err := Sync(dir, "new.md", first)
	require.NoError(t, err)
	assert.Equal(t, first, second, "sync(sync(f)) must equal sync(f)")
}

func TestSyncNoExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "old")
	touch(t, dir, "new")

	got, err := Sync(dir, "new", "old")
	require.NoError(t, err)
	assert.Equal(t, "new(1)", got)
}

func TestSyncErrorsWhenSourceMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Sync(dir, "new.md", "old.md")
	require.Error(t, err)
}
