package content_test

import (
	"testing"

	"postsync/core/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const htmlSource = `<!DOCTYPE html>
<html>
<head>
<title>A Scraped Page</title>
<meta name="description" content="Scraped summary.">
<meta name="keywords" content="go, sync tools ,">
</head>
<body>
<h1>Heading</h1>
<p>Paragraph text.</p>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	doc, err := content.FromHTML("pages/page.html", []byte(htmlSource), content.HTMLOptions{
		TreatAsDraft: true,
		FallbackTag:  "hashnode",
	})
	require.NoError(t, err)

	assert.Equal(t, "pages/page.html", doc.Path)
	assert.Equal(t, "a-scraped-page", doc.Slug)
	assert.Equal(t, content.Fingerprint([]byte(htmlSource)), doc.Hash)
	assert.True(t, doc.Attributes.Draft)

	assert.Equal(t, "A Scraped Page", doc.Attributes.Title)
	assert.Equal(t, "Scraped summary.", doc.Attributes.Description)

	require.Len(t, doc.Attributes.Tags, 2)
	assert.Equal(t, content.Tag{Name: "go", Slug: "go"}, doc.Attributes.Tags[0])
	assert.Equal(t, content.Tag{Name: "sync tools", Slug: "sync-tools"}, doc.Attributes.Tags[1])

	// Body is Markdown with the title element stripped before conversion.
	assert.Contains(t, doc.Content, "Paragraph text.")
	assert.NotContains(t, doc.Content, "A Scraped Page")
	assert.NotContains(t, doc.Content, "<p>")
}

func TestFromHTML_Fallbacks(t *testing.T) {
	t.Run("title falls back to file name", func(t *testing.T) {
		doc, err := content.FromHTML("pages/untitled-page.html", []byte("<p>no head</p>"), content.HTMLOptions{})
		require.NoError(t, err)
		assert.Equal(t, "untitled-page", doc.Attributes.Title)
		assert.Equal(t, "untitled-page", doc.Slug)
	})

	t.Run("fallback tag when no keywords", func(t *testing.T) {
		doc, err := content.FromHTML("p.html", []byte("<title>T</title>"), content.HTMLOptions{FallbackTag: "hashnode"})
		require.NoError(t, err)
		require.Len(t, doc.Attributes.Tags, 1)
		assert.Equal(t, content.Tag{Name: "hashnode", Slug: "hashnode"}, doc.Attributes.Tags[0])
	})

	t.Run("no fallback tag configured", func(t *testing.T) {
		doc, err := content.FromHTML("p.html", []byte("<title>T</title>"), content.HTMLOptions{})
		require.NoError(t, err)
		assert.Empty(t, doc.Attributes.Tags)
	})

	t.Run("publish policy from options", func(t *testing.T) {
		doc, err := content.FromHTML("p.html", []byte("<title>T</title>"), content.HTMLOptions{TreatAsDraft: false})
		require.NoError(t, err)
		assert.False(t, doc.Attributes.Draft)
	})
}
