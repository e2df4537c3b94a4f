package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/faisalgulab4589-hash/GIMS/internal/grading"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

func makeBank(n int) []model.Question {
	bank := make([]model.Question, n)
	for i := range bank {
		bank[i] = model.Question{
			ID:      uuid.New(),
			Options: []string{"a", "b", "c", "d"},
		}
	}
	return bank
}

func TestSelectQuestions(t *testing.T) {
	bank := makeBank(10)

	t.Run("keeps bank order without randomization", func(t *testing.T) {
		picked := selectQuestions(bank, 5, false)
		if len(picked) != 5 {
			t.Fatalf("picked %d questions, want 5", len(picked))
		}
		for i := range picked {
			if picked[i].ID != bank[i].ID {
				t.Errorf("position %d: order changed without randomization", i)
			}
		}
	})

	t.Run("quota larger than bank uses whole bank", func(t *testing.T) {
		picked := selectQuestions(bank, 50, false)
		if len(picked) != len(bank) {
			t.Fatalf("picked %d questions, want %d", len(picked), len(bank))
		}
	})

	t.Run("zero quota uses whole bank", func(t *testing.T) {
		picked := selectQuestions(bank, 0, true)
		if len(picked) != len(bank) {
			t.Fatalf("picked %d questions, want %d", len(picked), len(bank))
		}
	})

	t.Run("random draw has no duplicates", func(t *testing.T) {
		for trial := 0; trial < 50; trial++ {
			picked := selectQuestions(bank, 6, true)
			if len(picked) != 6 {
				t.Fatalf("picked %d questions, want 6", len(picked))
			}
			seen := make(map[uuid.UUID]bool, len(picked))
			for _, q := range picked {
				if seen[q.ID] {
					t.Fatalf("question %s drawn twice", q.ID)
				}
				seen[q.ID] = true
			}
		}
	})

	t.Run("does not mutate the bank", func(t *testing.T) {
		before := make([]uuid.UUID, len(bank))
		for i, q := range bank {
			before[i] = q.ID
		}
		selectQuestions(bank, 4, true)
		for i, q := range bank {
			if q.ID != before[i] {
				t.Fatalf("bank order mutated at position %d", i)
			}
		}
	})
}

func TestEffectiveBank(t *testing.T) {
	bank := makeBank(10)
	subset := bank[:4]

	t.Run("flagged subset wins", func(t *testing.T) {
		got := effectiveBank(subset, bank)
		if len(got) != 4 {
			t.Fatalf("got %d questions, want the 4 flagged ones", len(got))
		}
	})

	t.Run("empty subset falls back to the whole bank", func(t *testing.T) {
		got := effectiveBank(nil, bank)
		if len(got) != len(bank) {
			t.Fatalf("got %d questions, want the full bank of %d", len(got), len(bank))
		}
	})

	t.Run("both empty stays empty", func(t *testing.T) {
		if got := effectiveBank(nil, nil); len(got) != 0 {
			t.Fatalf("got %d questions, want none", len(got))
		}
	})
}

func TestBuildInstanceQuestions(t *testing.T) {
	bank := makeBank(8)

	t.Run("positions are sequential from one", func(t *testing.T) {
		layout := buildInstanceQuestions(bank, 5, false, false)
		if len(layout) != 5 {
			t.Fatalf("layout has %d rows, want 5", len(layout))
		}
		for i, iq := range layout {
			if iq.Position != i+1 {
				t.Errorf("row %d has position %d, want %d", i, iq.Position, i+1)
			}
		}
	})

	t.Run("identity order when option randomization is off", func(t *testing.T) {
		layout := buildInstanceQuestions(bank, 0, false, false)
		for _, iq := range layout {
			for c, d := range iq.OptionOrder {
				if c != d {
					t.Fatalf("expected identity option order, got %v", iq.OptionOrder)
				}
			}
		}
	})

	t.Run("every stored order is a valid permutation", func(t *testing.T) {
		layout := buildInstanceQuestions(bank, 0, true, true)
		for _, iq := range layout {
			if !grading.IsPermutation(iq.OptionOrder, grading.OptionCount) {
				t.Fatalf("stored order %v is not a permutation", iq.OptionOrder)
			}
		}
	})
}

func TestNewResumeToken(t *testing.T) {
	a := newResumeToken()
	b := newResumeToken()
	if len(a) != 64 {
		t.Fatalf("token length %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Fatal("two tokens collided")
	}
}

func TestStudentEligible(t *testing.T) {
	campus := "Main Campus"
	semester := "3rd Semester"

	student := &model.Student{
		Campus:     "main campus",
		Board:      "BTE Peshawar",
		Technology: "Electrical",
		Semester:   "3rd  Semester", // double space, upstream typo
	}

	tests := []struct {
		name string
		exam model.Exam
		want bool
	}{
		{"no filters matches everyone", model.Exam{}, true},
		{"case-insensitive campus match", model.Exam{Campus: &campus}, true},
		{"semester with spacing drift matches", model.Exam{Semester: &semester}, true},
		{
			"different campus rejected",
			model.Exam{Campus: strPtr("City Campus II North")},
			false,
		},
		{
			"near-identical filter accepted",
			model.Exam{Technology: strPtr("electrical ")},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudentEligible(student, &tt.exam); got != tt.want {
				t.Errorf("StudentEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
