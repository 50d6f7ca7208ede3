// Package slug normalizes display text for accent-insensitive search matching.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, turning
// accented characters into their plain ASCII-range base form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToASCII lower-cases text and strips diacritics ("Café Brecht" -> "cafe brecht").
// Used to derive the queryText field venues are searched by.
func ToASCII(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	return strings.ToLower(stripped)
}
