package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/stringtest"
)

func TestDeserialize(t *testing.T) {
	t.Parallel()

	header := stringtest.Input(`
		title: My Note
		count: 3
		ratio: 1.5
		draft: true
		keywords:
		  - one
		  - two
		author:
		  name: Jane
		  email: jane@example.com`)

	fm, err := frontmatter.Deserialize(header)
	require.NoError(t, err)

	title, err := fm["title"].AsString()
	require.NoError(t, err)
	assert.Equal(t, "My Note", title)

	assert.Equal(t, frontmatter.KindInt, fm["count"].Kind())
	assert.Equal(t, frontmatter.KindFloat, fm["ratio"].Kind())
	assert.Equal(t, frontmatter.KindBool, fm["draft"].Kind())

	keywords, err := fm["keywords"].AsSeq()
	require.NoError(t, err)
	require.Len(t, keywords, 2)

	k0, err := keywords[0].AsString()
	require.NoError(t, err)
	assert.Equal(t, "one", k0)

	author, err := fm["author"].AsMap()
	require.NoError(t, err)

	name, err := author["name"].AsString()
	require.NoError(t, err)
	assert.Equal(t, "Jane", name)
}

func TestDeserializeDateNormalization(t *testing.T) {
	t.Parallel()

	fm, err := frontmatter.Deserialize("date: 2025-12-31")
	require.NoError(t, err)

	date, err := fm["date"].AsString()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", date)
}

func TestDeserializeSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := frontmatter.Deserialize("not: [valid: yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, frontmatter.ErrHeaderSyntax)
}
