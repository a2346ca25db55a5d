// Package textnorm provides deterministic text comparison primitives for
// answer validation: mode-aware normalization and Levenshtein distance.
// All functions are pure and total over arbitrary string input.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how aggressively Normalize folds text before comparison.
type Mode string

const (
	// ModeStrict lower-cases and collapses whitespace but preserves
	// diacritics exactly as typed.
	ModeStrict Mode = "strict"

	// ModeLenientAccents additionally strips combining diacritical marks,
	// so "café" and "cafe" compare equal.
	ModeLenientAccents Mode = "lenient_accents"
)

// stripMarks removes Unicode combining marks (category Mn) from the
// NFD-decomposed form and recomposes the result.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// IsValid reports whether m is a known normalization mode.
func (m Mode) IsValid() bool {
	return m == ModeStrict || m == ModeLenientAccents
}

// Normalize lower-cases s, trims surrounding whitespace and collapses
// internal whitespace runs to a single space. Under ModeLenientAccents it
// also strips combining diacritical marks. The function is idempotent:
// Normalize(Normalize(s, m), m) == Normalize(s, m).
func Normalize(s string, mode Mode) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")

	if mode == ModeLenientAccents {
		if stripped, _, err := transform.String(stripMarks, s); err == nil {
			s = stripped
		}
	}

	return s
}
