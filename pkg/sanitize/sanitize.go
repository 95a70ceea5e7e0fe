// Package sanitize cleans free-text fields coming back from the Snipe-IT API
// (asset names, notes, activity messages) before they are handed to an agent.
// Snipe-IT stores whatever users typed, so these fields can carry HTML markup
// and invisible Unicode characters.
package sanitize

import (
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Sanitize strips HTML tags and invisible characters from a string.
func Sanitize(input string) string {
	return FilterHTMLTags(FilterInvisibleCharacters(input))
}

// FilterHTMLTags removes all HTML markup, keeping only the text content.
func FilterHTMLTags(input string) string {
	if input == "" {
		return input
	}
	return getPolicy().Sanitize(input)
}

// FilterInvisibleCharacters removes invisible or control characters that
// should not appear in user-facing text: Unicode tag characters, BiDi
// controls, and hidden modifiers like zero-width spaces and soft hyphens.
func FilterInvisibleCharacters(input string) string {
	if input == "" {
		return input
	}
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !shouldRemoveRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func shouldRemoveRune(r rune) bool {
	switch {
	case r == 0xE0001, r >= 0xE0020 && r <= 0xE007F: // Unicode tags
		return true
	case r >= 0x202A && r <= 0x202E, r >= 0x2066 && r <= 0x2069: // BiDi controls
		return true
	case r == 0x200B, r == 0x200C, r == 0x200E, r == 0x200F: // zero-width / direction marks
		return true
	case r == 0x00AD, r == 0xFEFF, r == 0x180E: // soft hyphen, BOM, vowel separator
		return true
	case r >= 0x2060 && r <= 0x2064: // word joiner and invisible operators
		return true
	case unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t':
		return true
	}
	return false
}
