// Package grading contains the pure scoring and grade computation rules of
// the exam engine. Correctness is always recomputed here from the canonical
// option index; nothing in this package trusts client-declared results.
package grading

import "fmt"

// DefaultPassingPercent applies when an exam has no explicit passing
// threshold configured.
const DefaultPassingPercent = 50.0

// ScoreConfig carries the per-exam marking rules.
type ScoreConfig struct {
	MarksPerQuestion float64
	NegativeMarking  bool
	NegativePenalty  float64
}

// Score maps the displayed index the student chose back through the stored
// option permutation and compares it against the canonical correct index.
// A correct answer earns the full marks; a wrong one costs the configured
// penalty when negative marking is on, zero otherwise.
func Score(correctIndex int, perm []int, displayedIndex int, cfg ScoreConfig) (correct bool, marks float64, err error) {
	if displayedIndex < 0 || displayedIndex >= len(perm) {
		return false, 0, fmt.Errorf("displayed index %d out of range [0,%d)", displayedIndex, len(perm))
	}
	inv, err := InvertPermutation(perm)
	if err != nil {
		return false, 0, err
	}
	canonical := inv[displayedIndex]

	if canonical == correctIndex {
		return true, cfg.MarksPerQuestion, nil
	}
	if cfg.NegativeMarking {
		return false, -cfg.NegativePenalty, nil
	}
	return false, 0, nil
}

// Percentage returns obtained/total × 100, clamped to 0 when total is 0.
func Percentage(obtained, total float64) float64 {
	if total == 0 {
		return 0
	}
	return obtained / total * 100
}

// LetterGrade maps a percentage onto the institutional grade bands. The E
// band exists only for exams with an explicit passing threshold below 50.
func LetterGrade(pct float64, passing *float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	case passing != nil && pct >= *passing:
		return "E"
	default:
		return "F"
	}
}

// Passed reports pass/fail against the exam's passing threshold, defaulting
// to 50 percent when none is configured.
func Passed(pct float64, passing *float64) bool {
	threshold := DefaultPassingPercent
	if passing != nil {
		threshold = *passing
	}
	return pct >= threshold
}
