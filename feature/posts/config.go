package posts

import "strings"

// Config holds configuration for the local source scan.
type Config struct {
	// Directory is the root of the posts tree.
	Directory string `mapstructure:"directory" default:"posts"`
	// Formats is the comma-separated list of source formats to scan.
	Formats string `mapstructure:"formats" default:"md,html"`
	// HTMLAsDraft publishes HTML-sourced documents as drafts. HTML pages
	// carry no explicit draft flag, so the policy lives here.
	HTMLAsDraft bool `mapstructure:"html_as_draft" default:"true"`
	// FallbackTag is applied to HTML documents that declare no keywords.
	FallbackTag string `mapstructure:"fallback_tag" default:"hashnode"`
}

// FormatList returns the cleaned-up format names.
func (c Config) FormatList() []string {
	var formats []string
	for _, f := range strings.Split(c.Formats, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
