package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "identical strings have distance zero",
			a:        "hablo",
			b:        "hablo",
			expected: 0,
		},
		{
			name:     "classic kitten sitting",
			a:        "kitten",
			b:        "sitting",
			expected: 3,
		},
		{
			name:     "single substitution",
			a:        "vengas",
			b:        "vengax",
			expected: 1,
		},
		{
			name:     "single insertion",
			a:        "hablo",
			b:        "hablao",
			expected: 1,
		},
		{
			name:     "empty to non-empty",
			a:        "",
			b:        "hablo",
			expected: 5,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0,
		},
		{
			name:     "accented rune counts as one position",
			a:        "hablo",
			b:        "habló",
			expected: 1,
		},
		{
			name:     "completely different",
			a:        "zzzzz",
			b:        "hablo",
			expected: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Levenshtein(tc.a, tc.b))
		})
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"kitten", "sitting"},
		{"hablo", "habló"},
		{"", "vengas"},
		{"comemos", "comeis"},
	}

	for _, p := range pairs {
		assert.Equal(t, Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]),
			"distance must be symmetric for %q and %q", p[0], p[1])
	}
}
