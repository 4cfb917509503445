// Package normalize provides text folding used when filtering the catalogue.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Text folds s for case-insensitive comparison.
// "  DUNE " -> "dune", "Straße" -> "strasse", "ｆｕｌｌ" -> "full".
func Text(s string) string {
	s = strings.TrimSpace(sanitizeString(s))
	if s == "" {
		return ""
	}
	// NFKC first so compatibility forms (full-width, ligatures) fold like their plain letters.
	return cases.Fold().String(norm.NFKC.String(s))
}

// Contains reports whether needle occurs in haystack, ignoring case.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	n := Text(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Text(haystack), n)
}

// sanitizeString removes null bytes and other control characters that
// sometimes arrive from pasted or scanned input.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
