package posts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"postsync/core/content"

	"github.com/bmatcuk/doublestar/v4"
)

// alwaysExcluded are repository housekeeping files that are never posts,
// regardless of extension.
var alwaysExcluded = map[string]struct{}{
	"README":       {},
	"LICENSE":      {},
	"CONTRIBUTING": {},
}

// Issue records a per-document problem that excluded the document from
// the batch without aborting the run.
type Issue struct {
	Path string
	Err  error
}

// ScanResult is the outcome of one directory scan.
type ScanResult struct {
	// Documents are the successfully normalized documents, ordered by path.
	Documents []content.Document
	// Issues are the documents that failed normalization.
	Issues []Issue
}

// Scanner expands the configured glob patterns under the posts directory
// and normalizes every match.
type Scanner struct {
	dir         string
	formats     []string
	htmlOptions content.HTMLOptions
}

// NewScanner validates cfg and builds a scanner. Unknown formats are a
// configuration error rather than a silent skip.
func NewScanner(cfg Config) (*Scanner, error) {
	formats := cfg.FormatList()
	if len(formats) == 0 {
		return nil, fmt.Errorf("posts: no source formats configured")
	}
	for _, format := range formats {
		switch format {
		case "md", "html":
		default:
			return nil, fmt.Errorf("posts: unsupported source format %q", format)
		}
	}

	return &Scanner{
		dir:     cfg.Directory,
		formats: formats,
		htmlOptions: content.HTMLOptions{
			TreatAsDraft: cfg.HTMLAsDraft,
			FallbackTag:  cfg.FallbackTag,
		},
	}, nil
}

// Scan walks the posts directory and returns every normalized document.
// Paths are relative to the directory and slash-separated, so the same
// document maps to the same lockfile entry wherever the repository is
// checked out.
func (s *Scanner) Scan(ctx context.Context) (ScanResult, error) {
	fsys := os.DirFS(s.dir)

	var paths []string
	for _, format := range s.formats {
		matches, err := doublestar.Glob(fsys, "**/*."+format)
		if err != nil {
			return ScanResult{}, fmt.Errorf("posts: expanding %q glob: %w", format, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var result ScanResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return ScanResult{}, err
		}
		if excluded(path) {
			continue
		}

		doc, err := s.normalize(path)
		if err != nil {
			result.Issues = append(result.Issues, Issue{Path: path, Err: err})
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	return result, nil
}

func (s *Scanner) normalize(path string) (content.Document, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(path)))
	if err != nil {
		return content.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return content.FromMarkdown(path, raw)
	case ".html":
		return content.FromHTML(path, raw, s.htmlOptions)
	default:
		return content.Document{}, fmt.Errorf("no normalizer for %s", path)
	}
}

func excluded(path string) bool {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	_, ok := alwaysExcluded[strings.ToUpper(name)]
	return ok
}
