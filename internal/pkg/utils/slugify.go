package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-safe slug from a display name: lowercase, strip
// anything that is not a word character, whitespace or hyphen, collapse
// whitespace/underscore runs to a single hyphen, trim edge hyphens.
// Deterministic for a given input.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugEdgeHyphens.ReplaceAllString(s, "")
	return s
}
