package sanitize

import (
	"regexp"
	"strings"
)

// maxCleanLen caps sanitized output well above any validated field length,
// so the sanitizer is safe even on paths that bypass validation.
const maxCleanLen = 10000

var (
	// Angle brackets and quotes are stripped rather than escaped: the
	// relay renders into an HTML email body and these fields have no
	// legitimate use for markup.
	unsafeChars = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "")

	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes free-text input before it is used anywhere: strips
// unsafe characters, collapses runs of 3+ newlines to exactly two, trims
// surrounding whitespace, and truncates to maxCleanLen characters.
func Clean(s string) string {
	s = unsafeChars.Replace(s)
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxCleanLen {
		s = string(runes[:maxCleanLen])
	}
	return s
}

// Email lowercases and trims an address. No characters are stripped since
// the address syntax was already constrained by validation.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
