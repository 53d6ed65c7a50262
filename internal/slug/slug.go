// Package slug derives URL-safe identifiers from human-readable names.
// Collision resolution against existing rows lives in the store so it can
// run inside the same transaction as the entity save.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Make converts a string to a URL-safe slug.
// "Science Fiction" -> "science-fiction".
// "Crime & Punishment" -> "crime-punishment".
// "Sci-Fi/Fantasy" -> "sci-fi-fantasy".
// Accented characters are decomposed and folded to ASCII, so
// "Les Misérables" -> "les-miserables".
func Make(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Replace non-alphanumeric with hyphens.
	s = nonAlphanumeric.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	return s
}

// WithSuffix appends a numeric disambiguation suffix to a base slug.
// Counter 0 returns the base unchanged; higher counters produce
// "base-2", "base-3", and so on.
func WithSuffix(base string, counter int) string {
	if counter <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, counter+1)
}
