// Package sanitize cleans free text received from upstream datasets before
// it is echoed in API responses.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes HTML tags, decodes entities and strips again so encoded
// tags do not survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips HTML and control characters and collapses runs of whitespace
// to a single space.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, StripHTML(s))
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Join sanitizes and space-joins parts, skipping empty ones.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := Text(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}
