package content

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from s.
//
// Non-ASCII runes and symbols are stripped outright (not hyphenated),
// whitespace runs collapse to a single hyphen, and leading/trailing
// hyphens are trimmed. The stripping order matters: "$peci@l" becomes
// "pecil", not "peci-l", which keeps slugs stable for titles that were
// published before symbol handling changed.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			// strip
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r), r == '-':
			b.WriteRune(' ')
		default:
			// symbols strip
		}
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, "-")
}
