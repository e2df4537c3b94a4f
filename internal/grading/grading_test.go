package grading

import "testing"

func f64(v float64) *float64 { return &v }

func TestScore(t *testing.T) {
	identity := []int{0, 1, 2, 3}
	// Canonical option 2 is displayed at position 0 under this permutation.
	shuffled := []int{2, 3, 0, 1}

	plain := ScoreConfig{MarksPerQuestion: 1}
	negative := ScoreConfig{MarksPerQuestion: 1, NegativeMarking: true, NegativePenalty: 0.25}

	tests := []struct {
		name         string
		correctIndex int
		perm         []int
		displayed    int
		cfg          ScoreConfig
		wantCorrect  bool
		wantMarks    float64
	}{
		{name: "identity correct", correctIndex: 1, perm: identity, displayed: 1, cfg: plain, wantCorrect: true, wantMarks: 1},
		{name: "identity wrong", correctIndex: 1, perm: identity, displayed: 3, cfg: plain, wantCorrect: false, wantMarks: 0},
		{name: "shuffled correct", correctIndex: 2, perm: shuffled, displayed: 0, cfg: plain, wantCorrect: true, wantMarks: 1},
		{name: "shuffled wrong", correctIndex: 2, perm: shuffled, displayed: 2, cfg: plain, wantCorrect: false, wantMarks: 0},
		{name: "negative marking penalty", correctIndex: 0, perm: identity, displayed: 1, cfg: negative, wantCorrect: false, wantMarks: -0.25},
		{name: "negative marking correct", correctIndex: 0, perm: identity, displayed: 0, cfg: negative, wantCorrect: true, wantMarks: 1},
		{name: "weighted marks", correctIndex: 3, perm: identity, displayed: 3, cfg: ScoreConfig{MarksPerQuestion: 2.5}, wantCorrect: true, wantMarks: 2.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			correct, marks, err := Score(tc.correctIndex, tc.perm, tc.displayed, tc.cfg)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if correct != tc.wantCorrect || marks != tc.wantMarks {
				t.Fatalf("Score() = (%v, %v), want (%v, %v)", correct, marks, tc.wantCorrect, tc.wantMarks)
			}
		})
	}
}

func TestScoreRejectsBadInput(t *testing.T) {
	if _, _, err := Score(0, []int{0, 1, 2, 3}, 4, ScoreConfig{}); err == nil {
		t.Error("expected error for out-of-range displayed index")
	}
	if _, _, err := Score(0, []int{0, 0, 2, 3}, 1, ScoreConfig{}); err == nil {
		t.Error("expected error for invalid permutation")
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		obtained, total, want float64
	}{
		{1, 2, 50},
		{0.75, 2, 37.5},
		{2, 2, 100},
		{-0.5, 2, -25},
		{0, 0, 0},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := Percentage(tc.obtained, tc.total); got != tc.want {
			t.Errorf("Percentage(%v, %v) = %v, want %v", tc.obtained, tc.total, got, tc.want)
		}
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		pct     float64
		passing *float64
		want    string
	}{
		{100, nil, "A+"},
		{90, nil, "A+"},
		{89.9, nil, "A"},
		{80, nil, "A"},
		{70, nil, "B"},
		{60, nil, "C"},
		{50, nil, "D"},
		{49.9, nil, "F"},
		{45, f64(40), "E"},
		{39.9, f64(40), "F"},
		{37.5, nil, "F"},
		{0, nil, "F"},
	}
	for _, tc := range tests {
		if got := LetterGrade(tc.pct, tc.passing); got != tc.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

// Every percentage in [0,100] must map to exactly one grade, and grades must
// not improve as the percentage drops.
func TestLetterGradeMonotonicExhaustive(t *testing.T) {
	rank := map[string]int{"A+": 6, "A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "F": 0}
	prev := rank["A+"]
	for pct := 100.0; pct >= 0; pct -= 0.1 {
		g := LetterGrade(pct, f64(40))
		r, ok := rank[g]
		if !ok {
			t.Fatalf("LetterGrade(%v) returned unknown grade %q", pct, g)
		}
		if r > prev {
			t.Fatalf("grade improved from rank %d to %d at %v%%", prev, r, pct)
		}
		prev = r
	}
}

func TestPassed(t *testing.T) {
	if !Passed(50, nil) {
		t.Error("50%% should pass with the default threshold")
	}
	if Passed(49.9, nil) {
		t.Error("49.9%% should fail with the default threshold")
	}
	if !Passed(40, f64(40)) {
		t.Error("40%% should pass an explicit 40 threshold")
	}
	if Passed(39, f64(40)) {
		t.Error("39%% should fail an explicit 40 threshold")
	}
}

// Scenario math from the end-to-end fixtures: 2 questions worth 1 mark each.
func TestResultScenarios(t *testing.T) {
	// Negative marking off: one right, one wrong.
	obtained := 1.0 + 0.0
	pct := Percentage(obtained, 2)
	if pct != 50 || LetterGrade(pct, nil) != "D" {
		t.Errorf("scenario A: pct=%v grade=%q", pct, LetterGrade(pct, nil))
	}

	// Negative marking on with penalty 0.25: one right, one wrong.
	obtained = 1.0 - 0.25
	pct = Percentage(obtained, 2)
	if pct != 37.5 || LetterGrade(pct, nil) != "F" {
		t.Errorf("scenario B: pct=%v grade=%q", pct, LetterGrade(pct, nil))
	}
}
