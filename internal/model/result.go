package model

import (
	"time"

	"github.com/google/uuid"
)

// Result is the final grade record of one attempt, unique per attempt.
// Immutable once created, except for the publish fields.
type Result struct {
	ID            int64      `json:"id"`
	AttemptID     uuid.UUID  `json:"attempt_id"`
	ExamID        uuid.UUID  `json:"exam_id"`
	StudentID     int        `json:"student_id"`
	TotalMarks    float64    `json:"total_marks"`
	ObtainedMarks float64    `json:"obtained_marks"`
	Percentage    float64    `json:"percentage"`
	Grade         string     `json:"grade"`
	Passed        bool       `json:"passed"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	PublishedBy   *int       `json:"published_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ResultSummary is the submission acknowledgement returned to the student.
type ResultSummary struct {
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	Passed        bool    `json:"passed"`
}
