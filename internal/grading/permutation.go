package grading

import (
	"fmt"
	"math/rand/v2"
)

// OptionCount is the fixed number of options on a multiple-choice question.
const OptionCount = 4

// IdentityPermutation returns [0, 1, 2, ..., n-1].
func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// RandomPermutation returns a fresh uniformly shuffled permutation of size n.
// It is seeded from the process-wide generator: a permutation is drawn once
// at attempt creation and persisted, never re-derived.
func RandomPermutation(n int) []int {
	p := IdentityPermutation(n)
	rand.Shuffle(n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}

// IsPermutation reports whether p contains each of 0..n-1 exactly once.
func IsPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// InvertPermutation returns the inverse mapping of p: if p maps canonical
// index c to displayed position p[c], the inverse maps a displayed position
// back to its canonical index.
func InvertPermutation(p []int) ([]int, error) {
	if !IsPermutation(p, len(p)) {
		return nil, fmt.Errorf("not a permutation of %d elements: %v", len(p), p)
	}
	inv := make([]int, len(p))
	for c, d := range p {
		inv[d] = c
	}
	return inv, nil
}

// ApplyPermutation arranges options into display order: the option with
// canonical index c lands at displayed position p[c].
func ApplyPermutation(options []string, p []int) ([]string, error) {
	if len(options) != len(p) {
		return nil, fmt.Errorf("option count %d does not match permutation size %d", len(options), len(p))
	}
	if !IsPermutation(p, len(p)) {
		return nil, fmt.Errorf("not a permutation of %d elements: %v", len(p), p)
	}
	out := make([]string, len(options))
	for c, d := range p {
		out[d] = options[c]
	}
	return out, nil
}
