package match

// Distance returns the Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// two rows over the shorter string
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity maps the distance of the normalized forms of a and b to [0, 1].
// 1 means the names are equal after normalization.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(na, nb))/float64(longest)
}
