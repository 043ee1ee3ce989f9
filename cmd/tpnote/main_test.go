package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/config"
	"go.tpnote.dev/tpnote/scheme"
)

func TestPrelimParseExtractsPositionalAndConfigFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notePath := filepath.Join(dir, "note.md")

	tests := map[string]struct {
		argv       []string
		wantTarget string
		wantConfig string
	}{
		"bare path": {
			argv:       []string{notePath},
			wantTarget: notePath,
		},
		"no args defaults to dot": {
			argv:       nil,
			wantTarget: ".",
		},
		"config flag before path": {
			argv:       []string{"--config", "custom.toml", notePath},
			wantTarget: notePath,
			wantConfig: "custom.toml",
		},
		"config shorthand": {
			argv:       []string{"-c", "custom.toml", notePath},
			wantTarget: notePath,
			wantConfig: "custom.toml",
		},
		"boolean flag does not swallow the path": {
			argv:       []string{"--edit", notePath},
			wantTarget: notePath,
		},
		"value flag does not swallow the path": {
			argv:       []string{"--port", "8080", notePath},
			wantTarget: notePath,
		},
		"profile flag does not swallow the path": {
			argv:       []string{"--cpu-profile", "cpu.prof", notePath},
			wantTarget: notePath,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			target, configPath := prelimParse(tc.argv, cfg)
			assert.Equal(t, tc.wantTarget, target)
			assert.Equal(t, tc.wantConfig, configPath)
		})
	}
}

func TestLaunchEditorViewerCombinations(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		batch, edit, view, tty bool
		wantEditor, wantViewer bool
	}{
		"default runs both":        {wantEditor: true, wantViewer: true},
		"edit only suppresses view": {edit: true, wantEditor: true, wantViewer: false},
		"view only suppresses edit": {view: true, wantEditor: false, wantViewer: true},
		"edit and view runs both":   {edit: true, view: true, wantEditor: true, wantViewer: true},
		"tty forces console editor, never viewer": {
			tty: true, wantEditor: true, wantViewer: false,
		},
		"tty overrides view": {
			tty: true, view: true, wantEditor: true, wantViewer: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Edit = tc.edit
			cfg.View = tc.view
			cfg.TTY = tc.tty

			wantEditor := cfg.TTY || !cfg.View || cfg.Edit
			wantViewer := !cfg.TTY && (!cfg.Edit || cfg.View)

			assert.Equal(t, tc.wantEditor, wantEditor, "wantEditor")
			assert.Equal(t, tc.wantViewer, wantViewer, "wantViewer")
		})
	}
}

func TestResolveSchemeForViewPrefersHeaderScheme(t *testing.T) {
	t.Parallel()

	registry := scheme.NewRegistry()
	registry.MergeRaw([]map[string]any{{"name": "zettel", "extension-default": "md"}})

	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Hello\nscheme: zettel\n---\n\nbody\n"), 0o644))

	got := resolveSchemeForView(path, registry, scheme.DefaultName)
	assert.Equal(t, "zettel", got.Name)
}

func TestResolveSchemeForViewFallsBackToOverride(t *testing.T) {
	t.Parallel()

	registry := scheme.NewRegistry()

	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Hello\n---\n\nbody\n"), 0o644))

	got := resolveSchemeForView(path, registry, scheme.DefaultName)
	assert.Equal(t, scheme.DefaultName, got.Name)
}

func TestResolveSchemeForViewFallsBackOnUnreadableFile(t *testing.T) {
	t.Parallel()

	registry := scheme.NewRegistry()
	got := resolveSchemeForView(filepath.Join(t.TempDir(), "missing.md"), registry, scheme.DefaultName)
	assert.Equal(t, scheme.DefaultName, got.Name)
}

func TestDumpDefaultsWritesToFile(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "defaults.toml")
	code, err := dumpDefaults(dest)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.FileExists(t, dest)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestNoteExtensionsCollectsSchemeKeys(t *testing.T) {
	t.Parallel()

	sch := scheme.Default()
	exts := noteExtensions(sch)

	for ext := range sch.Extensions {
		assert.True(t, exts[ext])
	}
	assert.Len(t, exts, len(sch.Extensions))
}
