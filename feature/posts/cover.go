package posts

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"postsync/core/content"
	"postsync/core/storage"

	"github.com/minio/minio-go/v7"
)

// CoverUploader sideloads local cover images to object storage so the
// platform receives a reachable URL.
type CoverUploader struct {
	client  storage.Client
	bucket  string
	baseURL string
	dir     string
}

// NewCoverUploader builds an uploader rooted at the posts directory.
func NewCoverUploader(client storage.Client, cfg storage.Config, postsDir string) *CoverUploader {
	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}

	return &CoverUploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		dir:     postsDir,
	}
}

// Sideload uploads each document's cover image when the attribute points
// at a local file, rewriting the attribute to the object URL. A document
// whose upload fails is removed from the batch so the run retries it
// next time, matching the isolation rule for normalization failures.
func (u *CoverUploader) Sideload(ctx context.Context, docs []content.Document) ([]content.Document, []Issue) {
	kept := make([]content.Document, 0, len(docs))
	var issues []Issue

	for _, doc := range docs {
		cover := doc.Attributes.CoverImageURL
		if cover == "" || isRemoteURL(cover) {
			kept = append(kept, doc)
			continue
		}

		url, err := u.upload(ctx, doc, cover)
		if err != nil {
			issues = append(issues, Issue{Path: doc.Path, Err: err})
			continue
		}
		doc.Attributes.CoverImageURL = url
		kept = append(kept, doc)
	}

	return kept, issues
}

func (u *CoverUploader) upload(ctx context.Context, doc content.Document, cover string) (string, error) {
	local := filepath.Join(u.dir, filepath.FromSlash(cover))
	data, err := os.ReadFile(local)
	if err != nil {
		return "", fmt.Errorf("reading cover image %s: %w", cover, err)
	}

	ext := filepath.Ext(cover)
	objectName := "covers/" + doc.Slug + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("uploading cover image %s: %w", cover, err)
	}

	return u.baseURL + "/" + objectName, nil
}

func isRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
