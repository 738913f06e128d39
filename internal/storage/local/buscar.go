// Package local implements the repository contracts on top of the
// durable local key-space store. It owns sample-data seeding, cascade
// deletes and the recomputation of derived budget totals.
package local

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizar lowercases a string and strips diacritics so that
// searches for "munoz" match "Muñoz".
func normalizar(s string) string {
	plano, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		plano = s
	}

	return strings.ToLower(plano)
}

// contiene reports whether the haystack contains the query, both
// normalized.
func contiene(haystack, query string) bool {
	return strings.Contains(normalizar(haystack), normalizar(query))
}
