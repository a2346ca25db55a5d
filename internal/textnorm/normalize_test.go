package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		mode     Mode
		expected string
	}{
		{
			name:     "lower-cases input",
			input:    "VENGAS",
			mode:     ModeStrict,
			expected: "vengas",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  hablo \t",
			mode:     ModeStrict,
			expected: "hablo",
		},
		{
			name:     "collapses internal whitespace runs",
			input:    "me  he \t levantado",
			mode:     ModeStrict,
			expected: "me he levantado",
		},
		{
			name:     "lenient mode strips diacritics",
			input:    "Café ",
			mode:     ModeLenientAccents,
			expected: "cafe",
		},
		{
			name:     "strict mode preserves diacritics",
			input:    "Café ",
			mode:     ModeStrict,
			expected: "café",
		},
		{
			name:     "lenient mode handles multiple accents",
			input:    "él habló",
			mode:     ModeLenientAccents,
			expected: "el hablo",
		},
		{
			name:     "empty string",
			input:    "",
			mode:     ModeLenientAccents,
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			mode:     ModeStrict,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input, tc.mode))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Café ", "VENGAS", "  me  he levantado ", "él habló", "", "çàüñê"}
	modes := []Mode{ModeStrict, ModeLenientAccents}

	for _, mode := range modes {
		for _, input := range inputs {
			once := Normalize(input, mode)
			twice := Normalize(once, mode)
			assert.Equal(t, once, twice,
				"Normalize must be idempotent for %q under %s", input, mode)
		}
	}
}

func TestModeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, ModeStrict.IsValid())
	assert.True(t, ModeLenientAccents.IsValid())
	assert.False(t, Mode("fuzzy").IsValid())
	assert.False(t, Mode("").IsValid())
}
