// Package slugify derives URL-safe identifiers from human-readable names.
package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	// Decompose, strip combining marks, recompose. Folds "café" to "cafe"
	// before the ASCII-only filter runs.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a name to its canonical slug. The result is deterministic
// and idempotent: Slugify(Slugify(s)) == Slugify(s).
//
// Rules:
//  1. Transliterate accented latin characters to ASCII
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores and slashes with dashes
//  4. Remove remaining non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes, trim leading/trailing dashes
//
// Examples:
//
//	"Stephen King"      → "stephen-king"
//	"El Barco De Vapor" → "el-barco-de-vapor"
//	"Crónica de  1984!" → "cronica-de-1984"
func Slugify(input string) string {
	s, _, err := transform.String(deaccent, input)
	if err != nil {
		s = input
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}
