package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	articles := c.Articles()
	require.Len(t, articles, 2)
	assert.Equal(t, "labor-care", articles[0].ID)
	assert.Equal(t, "labor-knowledge", articles[1].ID)

	a, ok := c.Article("labor-care")
	require.True(t, ok)
	assert.Equal(t, "待產注意事項", a.Title)
	assert.NotEmpty(t, a.Sections)

	_, ok = c.Article("missing")
	assert.False(t, ok)
}

func TestAllSectionIDsIncludeSubsections(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	ids := c.AllSectionIDs()
	assert.Contains(t, ids, "labor-signs")
	assert.Contains(t, ids, "true-vs-false-labor", "subsections count toward progress")

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate section id %s", id)
		seen[id] = true
	}
}

func TestSectionLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	ref, ok := c.Section("labor-signs")
	require.True(t, ok)
	assert.Equal(t, "labor-care", ref.ArticleID)
	assert.Equal(t, "認識產兆", ref.Title)
	assert.Equal(t, 5, ref.EstimatedReadTime)

	// Subsections inherit the parent estimate
	sub, ok := c.Section("true-vs-false-labor")
	require.True(t, ok)
	assert.Equal(t, 5, sub.EstimatedReadTime)

	_, ok = c.Section("missing")
	assert.False(t, ok)
}

func TestRenderHTML(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	ref, ok := c.Section("true-vs-false-labor")
	require.True(t, ok)

	html, err := RenderHTML(ref.Content)
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "<h2"), "headings render")
	assert.True(t, strings.Contains(html, "<table"), "GFM tables render")
}
