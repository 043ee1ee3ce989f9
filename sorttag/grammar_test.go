package sorttag_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/sorttag"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	g := sorttag.DefaultGrammar()

	tcs := map[string]struct {
		input    string
		wantTag  string
		wantRest string
	}{
		"numeric tag":        {"123-abc--edf", "123", "abc--edf"},
		"no tag":             {"abc--edf", "", "abc--edf"},
		"empty":              {"", "", ""},
		"chronological tag":  {"20251231-notes", "20251231", "notes"},
		"letters tag":        {"ab-notes", "ab", "notes"},
		"letters run too long is not a tag": {"abc-notes", "", "abc-notes"},
		"mixed counters":     {"20251231_01-notes", "20251231_01", "notes"},
		"no separator at all": {"123abc", "123", "abc"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tag, rest := g.Split(tc.input)
			assert.Equal(t, tc.wantTag, tag)
			assert.Equal(t, tc.wantRest, rest)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	g := sorttag.DefaultGrammar()

	tcs := map[string]struct {
		input string
		want  sorttag.Class
	}{
		"empty":               {"", sorttag.Empty},
		"short numeric":       {"12", sorttag.Sequential},
		"long numeric":        {"20251231", sorttag.Chronological},
		"letters only":        {"ab", sorttag.Sequential},
		"mixed short numeric": {"12_ab", sorttag.Sequential},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, g.Classify(tc.input))
		})
	}
}

func TestIncr(t *testing.T) {
	t.Parallel()

	g := sorttag.DefaultGrammar()

	tcs := map[string]struct {
		input string
		def   string
		want  string
	}{
		"increments numeric":         {"001", "default", "002"},
		"increments letters":         {"aa", "default", "ab"},
		"carries into next letter":   {"az", "default", "ba"},
		"rolls zz over":              {"zz", "default", "aaa"},
		"chronological not incremented": {"20251231", "default", "default"},
		"empty not incremented":      {"", "default", "default"},
		"too wide numeric falls back to default": {"123456", "default", "default"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, g.Incr(tc.input, tc.def))
		})
	}
}

func TestIncrDoNotIncrementChars(t *testing.T) {
	t.Parallel()

	g := sorttag.DefaultGrammar()
	g.DoNotIncrementChars = "x"

	assert.Equal(t, "default", g.Incr("12x34", "default"))
}

func TestAssertValid(t *testing.T) {
	t.Parallel()

	g := sorttag.DefaultGrammar()

	require.NoError(t, g.AssertValid("123-ab"))
	require.NoError(t, g.AssertValid(""))

	err := g.AssertValid("123#45")
	require.Error(t, err)
	require.ErrorIs(t, err, sorttag.ErrBadSortTag)
}

func TestTodayChronological(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "20251231", sorttag.TodayChronological(now))
}
