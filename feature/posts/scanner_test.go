package posts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"postsync/feature/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestNewScanner_Validation(t *testing.T) {
	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := posts.NewScanner(posts.Config{Directory: ".", Formats: "md,docx"})
		assert.ErrorContains(t, err, "docx")
	})

	t.Run("rejects empty format list", func(t *testing.T) {
		_, err := posts.NewScanner(posts.Config{Directory: ".", Formats: " , "})
		assert.Error(t, err)
	})

	t.Run("tolerates spaces in list", func(t *testing.T) {
		_, err := posts.NewScanner(posts.Config{Directory: ".", Formats: " md , html "})
		assert.NoError(t, err)
	})
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "first.md", "---\ntitle: First\n---\nbody one\n")
	writeFile(t, dir, "nested/second.md", "---\ntitle: Second\ntags: [go]\n---\nbody two\n")
	writeFile(t, dir, "page.html", "<title>Page</title><p>hi</p>")
	writeFile(t, dir, "README.md", "# not a post\n")
	writeFile(t, dir, "LICENSE.md", "MIT\n")
	writeFile(t, dir, "notes.txt", "ignored format\n")
	writeFile(t, dir, "broken.md", "---\ndescription: no title\n---\nbody\n")

	scanner, err := posts.NewScanner(posts.Config{
		Directory:   dir,
		Formats:     "md,html",
		HTMLAsDraft: true,
		FallbackTag: "hashnode",
	})
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, doc := range result.Documents {
		paths = append(paths, doc.Path)
	}
	assert.Equal(t, []string{"first.md", "nested/second.md", "page.html"}, paths)

	// The broken document became an issue, not an abort.
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "broken.md", result.Issues[0].Path)
	assert.ErrorContains(t, result.Issues[0].Err, "title")

	// HTML document followed the configured draft policy.
	html := result.Documents[2]
	assert.True(t, html.Attributes.Draft)
	assert.Equal(t, "Page", html.Attributes.Title)
}

func TestScanner_PathsAreRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deep/tree/post.md", "---\ntitle: Deep\n---\nbody\n")

	scanner, err := posts.NewScanner(posts.Config{Directory: dir, Formats: "md"})
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)

	// Identity must survive a re-clone under a different root.
	assert.Equal(t, "deep/tree/post.md", result.Documents[0].Path)
	assert.False(t, filepath.IsAbs(result.Documents[0].Path))
}

func TestScanner_MarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "---\ntitle: Post\n---\nbody\n")
	writeFile(t, dir, "page.html", "<title>Page</title>")

	scanner, err := posts.NewScanner(posts.Config{Directory: dir, Formats: "md"})
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "post.md", result.Documents[0].Path)
}
