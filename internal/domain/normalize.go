package domain

import (
	"strings"
)

// NormalizeWord prepares a query word for lookup and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one (multi-word phrases are valid queries)
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	word = strings.ToLower(word)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(word))
	prevSpace := false
	for _, r := range word {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
