package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators   = regexp.MustCompile(`[\s-]+`)
)

// Make derives a URL-safe, lowercase, hyphen-delimited slug from a
// human-readable name. Derivation happens once at creation time and the
// result is never recomputed on rename.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
