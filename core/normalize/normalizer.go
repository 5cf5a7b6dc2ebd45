// Package normalize turns free text into filesystem-safe filename fragments.
// The rules follow the Windows filename restrictions, since the generated
// .url files are meant to be opened there.
package normalize

import (
	"regexp"
	"strings"
)

// MaxFilenameChars bounds the output of ForFilename.
const MaxFilenameChars = 50

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Matches what browsers treat as whitespace, including NBSP and the
	// ideographic space.
	whitespace = regexp.MustCompile(`[\s\p{Z}\x{0B}\x{FEFF}]+`)
)

// ForFilename removes characters illegal in Windows filenames, collapses
// whitespace runs to a single underscore and truncates to MaxFilenameChars
// characters. Empty input yields empty output.
func ForFilename(text string) string {
	return truncate(Word(text), MaxFilenameChars)
}

// Word applies the same character and whitespace rules as ForFilename
// without truncating. It is used per keyword.
func Word(text string) string {
	text = illegalChars.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	return whitespace.ReplaceAllString(text, "_")
}

// StripIllegal removes illegal characters but keeps whitespace intact.
func StripIllegal(text string) string {
	return illegalChars.ReplaceAllString(text, "")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
