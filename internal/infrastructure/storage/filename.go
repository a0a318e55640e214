package storage

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// TimestampLayout qualifies filenames in unique mode.
	TimestampLayout = "20060102_150405"
	ImageExt        = ".jpg"

	maxStemRunes = 180
)

var (
	reUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_.-]+`)
	reDots   = regexp.MustCompile(`\.{2,}`)
)

// SecureFilename reduces s to a single safe path element: separators become
// underscores, anything outside letters, digits, "_", "-" and "." is dropped,
// and leading dots or underscores are trimmed. It never returns "".
func SecureFilename(s string) string {
	s = strings.NewReplacer("/", " ", "\\", " ").Replace(s)
	s = strings.Join(strings.Fields(s), "_")
	s = reUnsafe.ReplaceAllString(s, "")
	s = reDots.ReplaceAllString(s, ".")
	s = strings.Trim(s, "._")
	if s == "" {
		return "upload"
	}
	return s
}

// BuildFilename derives the stored image name for a submission. The extension
// is always .jpg whatever the upload actually contains.
func BuildFilename(placeID, surname, name string, at time.Time, withTimestamp bool) string {
	parts := []string{placeID, surname, name}
	if withTimestamp {
		parts = append(parts, at.Format(TimestampLayout))
	}
	stem := SecureFilename(strings.Join(parts, "_"))
	if utf8.RuneCountInString(stem) > maxStemRunes {
		stem = strings.TrimRight(string([]rune(stem)[:maxStemRunes]), "._")
	}
	return stem + ImageExt
}
