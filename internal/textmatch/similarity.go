// Package textmatch provides the low-level text scanning primitives used by
// the rule evaluators: similarity scoring, sentence splitting, and evidence
// snippet extraction.
package textmatch

// Similarity computes a normalized similarity ratio between two strings in
// [0, 1] using the Ratcliff/Obershelp algorithm: twice the total length of
// matching contiguous blocks divided by the combined length of both inputs.
//
// The result is deterministic and symmetric up to input order. Two empty
// strings are maximally similar (ratio 1).
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchingTotal(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingTotal sums the sizes of matching blocks: it finds the longest
// common contiguous block, then recurses on the pieces to its left and
// right.
func matchingTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingTotal(a[:ai], b[:bi])
	total += matchingTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch returns the start offsets and length of the longest block of
// runes that appears contiguously in both a and b. Ties resolve to the
// earliest block in a, then in b, so results are stable.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	// lengths[j] is the length of the match ending at a[i-1], b[j-1] from the
	// previous row of the implicit DP table.
	lengths := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int, len(positions[r]))
		for _, j := range positions[r] {
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		lengths = next
	}
	return bestA, bestB, bestSize
}
