package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates exam attempt states. NotStarted exists in the
// schema for completeness; creation moves an attempt straight to InProgress.
type AttemptStatus string

const (
	AttemptStatusNotStarted AttemptStatus = "NOT_STARTED"
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusCompleted  AttemptStatus = "COMPLETED"
)

// Attempt is one student's single run through one exam. At most one exists
// per (exam, student) pair, enforced by a storage constraint.
type Attempt struct {
	ID          uuid.UUID     `json:"id"`
	ExamID      uuid.UUID     `json:"exam_id"`
	StudentID   int           `json:"student_id"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  *time.Time    `json:"finished_at,omitempty"`
	Status      AttemptStatus `json:"status"`
	ResumeToken string        `json:"resume_token,omitempty"`
	IPAddress   string        `json:"ip_address,omitempty"`
}

// InstanceQuestion maps an attempt to one bank question, carrying its
// 1-based presentation order and the stored option permutation. Rows are
// written once at attempt start and immutable afterwards.
type InstanceQuestion struct {
	ID          int64     `json:"id"`
	AttemptID   uuid.UUID `json:"attempt_id"`
	QuestionID  uuid.UUID `json:"question_id"`
	Position    int       `json:"position"`
	OptionOrder []int     `json:"option_order"`
}

// StartAttemptResult is returned when a student starts or resumes an exam.
type StartAttemptResult struct {
	AttemptID      uuid.UUID `json:"attempt_id"`
	ResumeToken    string    `json:"resume_token"`
	ExamTitle      string    `json:"exam_title"`
	TotalQuestions int       `json:"total_questions"`
	Resumed        bool      `json:"resumed"`
}

// AttemptQuestion is one question of an attempt as shown to the student:
// options permuted into display order, prior answer state overlaid, and
// never the correct index.
type AttemptQuestion struct {
	QuestionID         uuid.UUID `json:"question_id"`
	Position           int       `json:"position"`
	Text               string    `json:"text"`
	Options            []string  `json:"options"`
	Marks              float64   `json:"marks"`
	MediaPath          *string   `json:"media_path,omitempty"`
	PriorSelectedIndex *int      `json:"prior_selected_index,omitempty"`
	PriorStatus        *string   `json:"prior_status,omitempty"`
}
