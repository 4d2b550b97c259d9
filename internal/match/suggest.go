package match

import (
	"fmt"
	"sort"
)

// MinSimilarity is the score below which no suggestion is offered.
const MinSimilarity = 0.5

// Suggestion is a candidate ranked against a mistyped input.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against input, best first. Candidates below
// MinSimilarity are dropped. Ties keep the candidates' order.
func Rank(input string, candidates []string) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		score := Similarity(input, c)
		if score < MinSimilarity {
			continue
		}

		out = append(out, Suggestion{Name: c, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Closest returns the best candidate for input, if any is similar enough.
func Closest(input string, candidates []string) (string, bool) {
	ranked := Rank(input, candidates)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0].Name, true
}

// Hint renders ", did you mean %q?" for the closest candidate, or "".
func Hint(input string, candidates []string) string {
	name, ok := Closest(input, candidates)
	if !ok || name == input {
		return ""
	}

	return fmt.Sprintf(", did you mean %q?", name)
}
