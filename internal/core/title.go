// ABOUTME: Deterministic conversation title derivation from the first user message
// ABOUTME: Strips terminal punctuation and truncates at a word boundary
package core

import (
	"strings"
	"unicode"
)

// maxTitleLength is the character budget for a derived title, before the
// ellipsis marker.
const maxTitleLength = 60

// DeriveTitle derives a conversation title from the first user message:
// question and exclamation marks are stripped, the first character is
// capitalized, and titles longer than 60 characters are cut back to the
// nearest word boundary with an ellipsis appended.
func DeriveTitle(message string) string {
	title := strings.TrimSpace(message)
	title = strings.ReplaceAll(title, "?", "")
	title = strings.ReplaceAll(title, "!", "")

	runes := []rune(title)
	if len(runes) > 1 {
		runes[0] = unicode.ToUpper(runes[0])
		title = string(runes)
	}

	if len(runes) > maxTitleLength {
		cut := string(runes[:maxTitleLength])
		if idx := strings.LastIndex(cut, " "); idx >= 0 {
			cut = cut[:idx]
		}
		title = cut + "..."
	}

	return title
}
