package utils

import (
	"strings"
	"unicode/utf8"
)

// Characters invalid in filenames on at least one of macOS, Linux or Windows
const forbiddenFilenameChars = `/\:*?"<>|`

var filenameReplacer = newFilenameReplacer()

func newFilenameReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(forbiddenFilenameChars)*2)
	for _, r := range forbiddenFilenameChars {
		pairs = append(pairs, string(r), "_")
	}
	return strings.NewReplacer(pairs...)
}

// SanitizeTitle turns a book title into a file stem by replacing every
// forbidden character with an underscore. Nothing else is touched, so two
// exports of the same title always land on the same files.
func SanitizeTitle(title string) string {
	return filenameReplacer.Replace(title)
}

// Truncate shortens s to at most max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
