// file: internals/helpers/slug.go
package helper

import (
	"fmt"
	"strings"
	"unicode"
)

// SectionKey normalizes a free-form title into a section/field key:
// lower-case, every run of non-alphanumerics becomes a single "_",
// trimmed at both ends. Empty input falls back to "section".
func SectionKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		out = "section"
	}
	return out
}

// FieldKey derives a field key from its display label; same rules as SectionKey.
func FieldKey(label string) string {
	k := SectionKey(label)
	if k == "section" && strings.TrimSpace(label) == "" {
		return "field"
	}
	return k
}

// DisambiguateTitle appends " {n}" to a title when n > 1, so a second
// "Work Experience" section becomes "Work Experience 2".
func DisambiguateTitle(title string, n int) string {
	if n <= 1 {
		return title
	}
	return fmt.Sprintf("%s %d", strings.TrimSpace(title), n)
}
