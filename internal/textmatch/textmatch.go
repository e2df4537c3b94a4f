// Package textmatch compares inconsistently entered institutional labels
// (campus, board, technology, semester). Upstream rosters carry free-text
// values with uneven casing, spacing and punctuation, so eligibility checks
// tolerate near matches; exact normalized equality is always preferred.
package textmatch

import (
	"strings"
	"unicode"
)

// SimilarityThreshold is the minimum ratio at which two normalized values
// are considered the same label.
const SimilarityThreshold = 0.9

// Normalize lowercases the input and strips everything except letters and
// digits, so "KPK Medical-Faculty" and "kpk medical faculty" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Similarity returns a ratio in [0,1] between the normalized forms of a and
// b: 1 minus the edit distance relative to the longer string.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1
	}
	longest := max(len(na), len(nb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(na, nb))/float64(longest)
}

// Match reports whether two labels refer to the same value under the fuzzy
// tolerance.
func Match(a, b string) bool {
	return Similarity(a, b) >= SimilarityThreshold
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
