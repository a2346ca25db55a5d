package textnorm

// Levenshtein returns the classic edit distance between a and b, where
// insertion, deletion and substitution each cost 1.
//
// The distance is computed over Unicode code points, not grapheme clusters,
// so a precomposed "é" and "e"+combining-acute count as different single
// positions. Callers that want accent-insensitive comparison should
// Normalize first.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row dynamic programming over the edit matrix.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j-1]+cost, // substitution
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
