// Package domain – identifier handling.
//
// Sellers paste ISBN/UPC/ASIN codes in many raw shapes ("978-0-13-468599-1",
// "b00x4whp5e", "0 7432 7356 5"). All of them must collapse to one cache
// key, so normalization strips everything that is not a letter or digit and
// upper-cases the rest.
package domain

import "strings"

// IdentifierType labels the kind of product code an identifier was
// recognized as.
type IdentifierType string

const (
	IdentifierISBN    IdentifierType = "isbn"
	IdentifierUPC     IdentifierType = "upc"
	IdentifierASIN    IdentifierType = "asin"
	IdentifierUnknown IdentifierType = "unknown"
)

// NormalizeIdentifier derives the cache key from a raw product code:
// upper-case, with every non-alphanumeric character removed. Distinct raw
// forms of the same code collapse to the same key.
func NormalizeIdentifier(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectIdentifierType classifies a normalized identifier.
//
// Heuristics, checked in order:
//   - 13 digits with a 978/979 bookland prefix: ISBN-13.
//   - any other 13 digits (EAN) or exactly 12 digits: UPC.
//   - 10 characters, 9 digits plus a digit/X check character: ISBN-10.
//   - any other 10 alphanumerics: ASIN.
//   - everything else: unknown.
func DetectIdentifierType(id string) IdentifierType {
	switch len(id) {
	case 13:
		if !allDigits(id) {
			return IdentifierUnknown
		}
		if strings.HasPrefix(id, "978") || strings.HasPrefix(id, "979") {
			return IdentifierISBN
		}
		return IdentifierUPC
	case 12:
		if allDigits(id) {
			return IdentifierUPC
		}
		return IdentifierUnknown
	case 10:
		if allDigits(id[:9]) && (id[9] == 'X' || isDigit(id[9])) {
			return IdentifierISBN
		}
		return IdentifierASIN
	default:
		return IdentifierUnknown
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
