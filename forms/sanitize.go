// Package forms cleans and validates user input before it reaches the
// backend.
package forms

import (
	"regexp"
	"strings"
)

const (
	DefaultTextMax        = 1000
	DefaultDescriptionMax = 500
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	nonUsername    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	nonName        = regexp.MustCompile(`[^a-zA-Z0-9\s\-'_]`)
	scriptBlock    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	htmlTag        = regexp.MustCompile(`<[^>]*>`)
	dangerousLinks = regexp.MustCompile(`(?i)(javascript|data):`)
)

// SanitizeText trims s, drops control characters other than tab, newline
// and carriage return, and truncates to maxLen runes.
func SanitizeText(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = controlChars.ReplaceAllString(s, "")
	return truncate(s, maxLen)
}

// SanitizeUsername keeps only ASCII letters, digits and underscores.
func SanitizeUsername(s string) string {
	return nonUsername.ReplaceAllString(s, "")
}

func SanitizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizeName keeps letters, digits, whitespace, hyphens, apostrophes and
// underscores, for league and team names.
func SanitizeName(s string) string {
	return strings.TrimSpace(nonName.ReplaceAllString(s, ""))
}

// SanitizeDescription removes control characters, script blocks, HTML tags
// and javascript: or data: schemes, then trims and truncates to maxLen runes.
func SanitizeDescription(s string, maxLen int) string {
	s = SanitizeText(s, 0)
	s = scriptBlock.ReplaceAllString(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	s = dangerousLinks.ReplaceAllString(s, "")
	return truncate(strings.TrimSpace(s), maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
