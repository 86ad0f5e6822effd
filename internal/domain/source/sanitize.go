package source

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var mojibake = strings.NewReplacer("Â", "", "Ã", "")

// Sanitize strips mis-encoded bytes, diacritics and every other non-ASCII
// rune from scraped text. Non-breaking spaces become plain spaces.
func Sanitize(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Map(func(r rune) rune {
			if r == '\u00a0' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
	)

	out, _, err := transform.String(t, mojibake.Replace(s))
	if err != nil {
		return s
	}
	return out
}
