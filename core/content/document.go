package content

import (
	"crypto/sha256"
	"encoding/hex"
)

// Tag is a publish tag with a display name and a URL-safe slug.
type Tag struct {
	// Name is the display name, as authored.
	Name string `json:"name"`
	// Slug is derived from Name via Slugify.
	Slug string `json:"slug"`
}

// Attributes holds the publish-facing metadata of a document.
type Attributes struct {
	// Title is required; normalization fails without it.
	Title string `yaml:"title"`
	// Description is an optional summary used by the platform.
	Description string `yaml:"description"`
	// CoverImageURL is an optional cover image. It may reference a local
	// file, in which case the posts scanner sideloads it to object storage
	// and replaces it with the resulting URL.
	CoverImageURL string `yaml:"coverImageUrl"`
	// Draft excludes the document from publishing.
	Draft bool `yaml:"draft"`
	// Tags is the ordered tag set.
	Tags []Tag `yaml:"-"`
}

// Document is the canonical record for one local source file.
// It is rebuilt from the filesystem on every run; only the lockfile
// persists between runs.
type Document struct {
	// Path identifies the document across runs. It is relative to the posts
	// directory, never absolute, so a re-clone under a different root maps
	// to the same lockfile entry.
	Path string
	// Slug is the URL-safe identifier derived from the title.
	Slug string
	// Hash is the fingerprint of the raw source bytes, pre-transformation.
	Hash string
	// Content is the publish-ready Markdown body.
	Content string
	// Attributes holds the publish metadata.
	Attributes Attributes
}

// Fingerprint returns the hex-encoded SHA-256 digest of data.
// It is used purely for change detection, not as a security primitive.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
