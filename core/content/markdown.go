package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// frontMatter is the YAML front-matter shape of a Markdown source file.
type frontMatter struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	CoverImageURL string   `yaml:"coverImageUrl"`
	Draft         bool     `yaml:"draft"`
	Tags          []string `yaml:"tags"`
}

// FromMarkdown normalizes a Markdown source file into a Document.
//
// The file must start with a YAML front-matter block delimited by "---"
// lines, and the block must carry a title. The draft flag defaults to
// false when absent. The fingerprint covers the raw file bytes, front
// matter included, so editing only metadata still counts as a change.
func FromMarkdown(path string, raw []byte) (Document, error) {
	matter, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return Document{}, fmt.Errorf("document %s: %w", path, err)
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(matter), &fm); err != nil {
		return Document{}, fmt.Errorf("document %s: malformed front matter: %w", path, err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Document{}, fmt.Errorf("document %s: front matter is missing a title", path)
	}

	return Document{
		Path:    path,
		Slug:    Slugify(fm.Title),
		Hash:    Fingerprint(raw),
		Content: body,
		Attributes: Attributes{
			Title:         fm.Title,
			Description:   fm.Description,
			CoverImageURL: fm.CoverImageURL,
			Draft:         fm.Draft,
			Tags:          deriveTags(fm.Tags),
		},
	}, nil
}

// splitFrontMatter separates the leading YAML block from the body.
func splitFrontMatter(src string) (matter, body string, err error) {
	trimmed := strings.TrimLeft(src, "\n\r")
	lines := strings.SplitN(trimmed, "\n", 2)
	if strings.TrimRight(lines[0], "\r") != frontMatterDelimiter || len(lines) < 2 {
		return "", "", fmt.Errorf("no front-matter block found")
	}

	rest := lines[1]
	for i, line := range strings.Split(rest, "\n") {
		if strings.TrimRight(line, "\r") == frontMatterDelimiter {
			matter = strings.Join(strings.Split(rest, "\n")[:i], "\n")
			bodyStart := len(matter) + len(line) + 1
			if bodyStart >= len(rest) {
				return matter, "", nil
			}
			return matter, strings.TrimLeft(rest[bodyStart:], "\n\r"), nil
		}
	}

	return "", "", fmt.Errorf("front-matter block is not terminated")
}

// deriveTags pairs each authored tag name with its derived slug.
func deriveTags(names []string) []Tag {
	if len(names) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tags = append(tags, Tag{Name: name, Slug: Slugify(name)})
	}
	return tags
}
