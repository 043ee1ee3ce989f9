package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/log"
)

func TestNewConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	assert.Equal(t, "default", c.Scheme)
	assert.Equal(t, "md", c.ExtensionDefault)
	assert.Equal(t, "long", c.ExportLinkRewriting)

	level, err := c.DebugLevel()
	require.NoError(t, err)
	assert.Equal(t, log.LevelInfo, level)
}

func TestRegisterFlagsUsesConfigAsDefault(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.Scheme = "zettel" // as if Load had already set this from TOML

	flags := pflag.NewFlagSet("tpnote", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))
	assert.Equal(t, "zettel", c.Scheme, "unset flags must keep the pre-registration value")
}

func TestRegisterFlagsCLIOverridesLoadedValue(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.Scheme = "zettel"

	flags := pflag.NewFlagSet("tpnote", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"--scheme", "default"}))
	assert.Equal(t, "default", c.Scheme)
}

func TestCaptureChangedDistinguishesExplicitEmptyFromUnset(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	flags := pflag.NewFlagSet("tpnote", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"--force-lang", ""}))
	c.CaptureChanged(flags)

	assert.True(t, c.ForceLangSet, "--force-lang '' must be recorded as explicitly passed")
	assert.Equal(t, "", c.ForceLang)
}

func TestCaptureChangedFalseWhenFlagNeverPassed(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.ForceLang = "fr-FR" // as if Load had already set this

	flags := pflag.NewFlagSet("tpnote", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))
	c.CaptureChanged(flags)

	assert.False(t, c.ForceLangSet)
	assert.Equal(t, "fr-FR", c.ForceLang, "value from Load must survive an absent flag")
}

func TestDumpDefaultsOmitsRuntimeOnlyFields(t *testing.T) {
	t.Parallel()

	out, err := DumpDefaults()
	require.NoError(t, err)

	assert.Contains(t, out, "scheme-default")
	assert.NotContains(t, out, "Flags")
	assert.NotContains(t, out, "ForceLangSet")
}
