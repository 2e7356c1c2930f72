package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeVenueName folds full-width characters, case and whitespace so that
// "東京ドーム" and "東京 ドーム" compare equal.
func NormalizeVenueName(name string) string {
	folded := strings.ToLower(norm.NFKC.String(name))
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// VenueNamePrefix returns the first n runes of the normalized name.
func VenueNamePrefix(name string, n int) string {
	runes := []rune(NormalizeVenueName(name))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
