package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly id from a display name. Accents are
// stripped by decomposing to NFD and dropping combining marks, so
// Portuguese names keep their base letters.
//
//   - "Monte seu Açaí" → "monte-seu-acai"
//   - "Picolés & Paletas" → "picoles-paletas"
func Generate(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}

	s := strings.ToLower(strings.TrimSpace(stripped))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
