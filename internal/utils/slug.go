package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	notSlug  = regexp.MustCompile(`[^a-z0-9\-.]`)
	dashRun  = regexp.MustCompile(`-+`)
)

// SEOSlug makes a file name safe for an object key: diacritics are dropped,
// whitespace becomes dashes, "&" becomes "-and-" and anything outside
// [a-z0-9-.] is removed.
func SEOSlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = spaceRun.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "-and-")
	s = notSlug.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
