package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLOptions controls HTML normalization policy.
type HTMLOptions struct {
	// TreatAsDraft marks HTML-sourced documents as drafts. HTML pages
	// rarely carry an explicit draft flag, so the policy is a
	// configuration choice rather than a per-document attribute.
	TreatAsDraft bool
	// FallbackTag is used when the page declares no keywords.
	FallbackTag string
}

var (
	titleElementRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaTagRe      = regexp.MustCompile(`(?is)<meta\s[^>]*>`)
	metaNameRe     = regexp.MustCompile(`(?is)name\s*=\s*["']([^"']+)["']`)
	metaContentRe  = regexp.MustCompile(`(?is)content\s*=\s*["']([^"']*)["']`)
)

// FromHTML normalizes an HTML page into a Document.
//
// The title comes from the <title> element, falling back to the file's
// base name. Description and keywords are scraped from the corresponding
// meta tags; keywords are comma-separated and become the tag set, with
// opts.FallbackTag substituted when none are present. The body is the
// HTML converted to Markdown with the <title> element removed first so
// it does not leak into the output. The fingerprint covers the raw HTML.
func FromHTML(path string, raw []byte, opts HTMLOptions) (Document, error) {
	page := string(raw)

	title := extractTitle(page)
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	body, err := htmltomarkdown.ConvertString(titleElementRe.ReplaceAllString(page, ""))
	if err != nil {
		return Document{}, fmt.Errorf("document %s: converting html: %w", path, err)
	}

	tags := deriveTags(extractKeywords(page))
	if len(tags) == 0 && opts.FallbackTag != "" {
		tags = deriveTags([]string{opts.FallbackTag})
	}

	return Document{
		Path:    path,
		Slug:    Slugify(title),
		Hash:    Fingerprint(raw),
		Content: body,
		Attributes: Attributes{
			Title:       title,
			Description: extractMeta(page, "description"),
			Draft:       opts.TreatAsDraft,
			Tags:        tags,
		},
	}, nil
}

// extractTitle returns the text of the first <title> element, or "".
func extractTitle(page string) string {
	m := titleElementRe.FindStringSubmatch(page)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractMeta returns the content of the first <meta name=...> tag with
// the given name, or "".
func extractMeta(page, name string) string {
	for _, tag := range metaTagRe.FindAllString(page, -1) {
		nm := metaNameRe.FindStringSubmatch(tag)
		if len(nm) < 2 || !strings.EqualFold(strings.TrimSpace(nm[1]), name) {
			continue
		}
		cm := metaContentRe.FindStringSubmatch(tag)
		if len(cm) < 2 {
			return ""
		}
		return strings.TrimSpace(cm[1])
	}
	return ""
}

// extractKeywords splits the keywords meta tag into individual names.
func extractKeywords(page string) []string {
	raw := extractMeta(page, "keywords")
	if raw == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
