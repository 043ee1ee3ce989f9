package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvReadsTPNoteVars(t *testing.T) {
	t.Setenv("TPNOTE_LANG", "fr-FR")
	t.Setenv("TPNOTE_SCHEME", "zettel")
	t.Setenv("TPNOTE_EXTENSION_DEFAULT", "markdown")
	t.Setenv("TPNOTE_USER", "alice")

	c := NewConfig()
	c.ApplyEnv()

	assert.Equal(t, "fr-FR", c.Lang)
	assert.Equal(t, "zettel", c.Scheme)
	assert.Equal(t, "markdown", c.ExtensionDefault)
	assert.Equal(t, "alice", c.User)
}

func TestApplyEnvFallsBackToLognameWhenUserUnset(t *testing.T) {
	t.Setenv("TPNOTE_USER", "")
	t.Setenv("LOGNAME", "bob")

	c := NewConfig()
	c.ApplyEnv()

	assert.Equal(t, "bob", c.User)
}

func TestApplyEnvDerivesLangFromLocale(t *testing.T) {
	t.Setenv("TPNOTE_LANG", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	c := NewConfig()
	c.ApplyEnv()

	assert.Equal(t, "de-DE", c.Lang)
}

func TestParseCommandSplitsAndDecodesTokens(t *testing.T) {
	t.Parallel()

	got, err := ParseCommand("code%20insiders --wait")
	require.NoError(t, err)
	assert.Equal(t, []string{"code insiders", "--wait"}, got)
}

func TestParseCommandEmptyDisables(t *testing.T) {
	t.Parallel()

	got, err := ParseCommand("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
