package domain

import (
	"strings"
)

// NormalizeField prepares a user-supplied filter value for comparison:
//   - trims leading/trailing whitespace
//   - compresses runs of spaces into one
//
// Case is preserved; the store's collation decides case sensitivity.
func NormalizeField(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
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
