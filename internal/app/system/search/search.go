// internal/app/system/search/search.go
package search

import (
	"strings"
	"unicode"

	"github.com/dalemusser/waffle/pantry/text"
)

// Normalizer maps a raw value (or the search term) to a comparable form.
type Normalizer func(string) string

// Lower lowercases and trims.
func Lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Fold lowercases and strips diacritics, so "joão" finds "Joao".
func Fold(s string) string { return text.Fold(strings.TrimSpace(s)) }

// Digits keeps only decimal digits. Used for documents and phone numbers so
// that "123.456" finds "12345678901".
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Numeric is Digits for terms that are written as numbers: digits plus the
// punctuation used in phones and documents (".-/() "). Any other rune, a
// letter or an "@", yields "" so the field is skipped. Without this
// "rua 1" would match every phone containing a 1.
func Numeric(s string) string {
	for _, r := range s {
		if unicode.IsDigit(r) || strings.ContainsRune(".-/() ", r) {
			continue
		}
		return ""
	}
	return Digits(s)
}

// Field is one searchable projection of E.
type Field[E any] struct {
	Name      string
	Get       func(E) string
	Normalize Normalizer
}

// Matcher decides whether an entity matches a search term.
type Matcher[E any] func(entity E, term string) bool

// Fields builds a Matcher that ORs a substring test across fields. An empty
// (or whitespace-only) term matches everything. A field whose normalized
// term comes out empty is skipped, so a letters-only term never matches
// every document via Digits. Use Numeric on digit projections of a field so
// that mixed terms such as "ana 2" are also skipped there.
func Fields[E any](fields ...Field[E]) Matcher[E] {
	return func(e E, term string) bool {
		if strings.TrimSpace(term) == "" {
			return true
		}
		for _, f := range fields {
			norm := f.Normalize
			if norm == nil {
				norm = Lower
			}
			t := norm(term)
			if t == "" {
				continue
			}
			if strings.Contains(norm(f.Get(e)), t) {
				return true
			}
		}
		return false
	}
}
