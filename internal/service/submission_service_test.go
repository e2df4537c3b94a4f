package service

import (
	"testing"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

func TestCheckCompleteness(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		answered       int64
		skipped        int64
		wantSkipped    int64
		wantUnanswered int64
		complete       bool
	}{
		{"all answered", 10, 10, 0, 0, 0, true},
		{"one skipped", 10, 9, 1, 1, 0, false},
		{"untouched questions", 10, 7, 0, 0, 3, false},
		{"skipped and untouched", 10, 5, 2, 2, 3, false},
		{"empty attempt", 0, 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkCompleteness(tt.total, tt.answered, tt.skipped)
			if tt.complete {
				if got != nil {
					t.Fatalf("expected complete, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected incomplete submission error, got nil")
			}
			if got.Skipped != tt.wantSkipped || got.Unanswered != tt.wantUnanswered {
				t.Errorf("got skipped=%d unanswered=%d, want skipped=%d unanswered=%d",
					got.Skipped, got.Unanswered, tt.wantSkipped, tt.wantUnanswered)
			}
		})
	}
}

func TestComputeResultSummary(t *testing.T) {
	exam := &model.Exam{MarksPerQuestion: 2}
	questions := make([]model.Question, 10)

	t.Run("half marks lands in D band", func(t *testing.T) {
		got := computeResultSummary(exam, questions, 10)
		if got.TotalMarks != 20 {
			t.Errorf("total = %v, want 20", got.TotalMarks)
		}
		if got.Percentage != 50 {
			t.Errorf("percentage = %v, want 50", got.Percentage)
		}
		if got.Grade != "D" {
			t.Errorf("grade = %q, want D", got.Grade)
		}
		if !got.Passed {
			t.Error("50%% should pass at the default threshold")
		}
	})

	t.Run("negative marking pulls below passing", func(t *testing.T) {
		// 5 correct ×2, 5 wrong ×−0.5 under negative marking.
		got := computeResultSummary(exam, questions, 7.5)
		if got.Percentage != 37.5 {
			t.Errorf("percentage = %v, want 37.5", got.Percentage)
		}
		if got.Grade != "F" {
			t.Errorf("grade = %q, want F", got.Grade)
		}
		if got.Passed {
			t.Error("37.5%% should fail at the default threshold")
		}
	})

	t.Run("per-question marks override the exam default", func(t *testing.T) {
		weighted := []model.Question{
			{Marks: 5}, {Marks: 5}, {}, {},
		}
		got := computeResultSummary(exam, weighted, 14)
		if got.TotalMarks != 14 {
			t.Errorf("total = %v, want 14", got.TotalMarks)
		}
		if got.Percentage != 100 {
			t.Errorf("percentage = %v, want 100", got.Percentage)
		}
		if got.Grade != "A+" {
			t.Errorf("grade = %q, want A+", got.Grade)
		}
	})

	t.Run("explicit low threshold enables E band", func(t *testing.T) {
		passing := 40.0
		lowBar := &model.Exam{MarksPerQuestion: 1, PassingPercent: &passing}
		got := computeResultSummary(lowBar, make([]model.Question, 100), 45)
		if got.Grade != "E" {
			t.Errorf("grade = %q, want E", got.Grade)
		}
		if !got.Passed {
			t.Error("45%% should pass a 40%% threshold")
		}
	})
}
