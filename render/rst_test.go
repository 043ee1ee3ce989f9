package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSTRendersHeadingFromUnderline(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("Title\n=====\n\nBody text.\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<h1>Title</h1>")
	assert.Contains(t, string(got), "<p>Body text.</p>")
}

func TestRSTRendersBulletList(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("- one\n- two\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<ul>")
	assert.Contains(t, string(got), "<li>one</li>")
	assert.Contains(t, string(got), "<li>two</li>")
	assert.Contains(t, string(got), "</ul>")
}

func TestRSTRendersInlineStyles(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("a **bold** and *em* and ``code``\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<strong>bold</strong>")
	assert.Contains(t, string(got), "<em>em</em>")
	assert.Contains(t, string(got), "<code>code</code>")
}

func TestRSTHyperlinkInlineForm(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("See `Example <https://example.com>`_ for more.\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), `href="https://example.com"`)
	assert.Contains(t, string(got), ">Example<")
}

func TestRSTHyperlinkTargetForm(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("See Example_ for more.\n\n.. _Example: https://example.com\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), `href="https://example.com"`)
}

func TestRSTAppliesRewrite(t *testing.T) {
	t.Parallel()

	r := NewRST()
	got, err := r.Render([]byte("`Example <other.rst>`_\n"), func(dest string) string {
		return "REWRITTEN"
	})
	require.NoError(t, err)
	assert.Contains(t, string(got), `href="REWRITTEN"`)
}
