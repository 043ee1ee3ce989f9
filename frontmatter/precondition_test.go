package frontmatter_test

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tpnote.dev/tpnote/frontmatter"
)

func minLen(n int) *int { return &n }

func TestAssertPreconditions(t *testing.T) {
	t.Parallel()

	table := frontmatter.PreconditionTable{
		"title": {
			Schema:   &jsonschema.Schema{Type: "string", MinLength: minLen(1)},
			Required: true,
		},
		"subtitle": {
			Schema: &jsonschema.Schema{Type: "string"},
		},
	}

	t.Run("valid header passes", func(t *testing.T) {
		t.Parallel()

		fm := frontmatter.FrontMatter{
			"title":    frontmatter.String("My Note"),
			"subtitle": frontmatter.String("a note"),
		}
		require.NoError(t, frontmatter.AssertPreconditions(fm, table))
	})

	t.Run("optional field absent is fine", func(t *testing.T) {
		t.Parallel()

		fm := frontmatter.FrontMatter{"title": frontmatter.String("My Note")}
		require.NoError(t, frontmatter.AssertPreconditions(fm, table))
	})

	t.Run("missing required field fails", func(t *testing.T) {
		t.Parallel()

		fm := frontmatter.FrontMatter{"subtitle": frontmatter.String("a note")}
		err := frontmatter.AssertPreconditions(fm, table)
		require.Error(t, err)
		assert.ErrorIs(t, err, frontmatter.ErrPrecondition)
	})

	t.Run("empty required field fails", func(t *testing.T) {
		t.Parallel()

		fm := frontmatter.FrontMatter{"title": frontmatter.String("")}
		err := frontmatter.AssertPreconditions(fm, table)
		require.Error(t, err)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		t.Parallel()

		fm := frontmatter.FrontMatter{"title": frontmatter.Int(5)}
		err := frontmatter.AssertPreconditions(fm, table)
		require.Error(t, err)

		var preErr *frontmatter.HeaderPreconditionError
		require.ErrorAs(t, err, &preErr)
		assert.Equal(t, "title", preErr.Field)
	})
}
