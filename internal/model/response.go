package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerStatus is the authoritative per-question answered/skipped signal the
// submission validator checks. It survives independently of whether a
// Response row currently exists.
type AnswerStatus string

const (
	AnswerStatusAnswered AnswerStatus = "answered"
	AnswerStatusSkipped  AnswerStatus = "skipped"
)

// Response is a scored answer for one (attempt, question) pair, unique per
// pair and replaced wholesale on re-answer. Marking a question skipped
// deletes the row.
type Response struct {
	ID             int64     `json:"id"`
	AttemptID      uuid.UUID `json:"attempt_id"`
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	SelectedIndex  int       `json:"selected_index"`
	IsCorrect      bool      `json:"is_correct"`
	MarksObtained  float64   `json:"marks_obtained"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// AnswerState tracks whether a question is currently answered or skipped for
// one (student, exam, question) triple.
type AnswerState struct {
	StudentID  int          `json:"student_id"`
	ExamID     uuid.UUID    `json:"exam_id"`
	QuestionID uuid.UUID    `json:"question_id"`
	Status     AnswerStatus `json:"status"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// RecordResponseRequest is the payload for answering or skipping a question.
// DisplayedIndex is required when Status is "answered" and refers to the
// option position as displayed to the student.
type RecordResponseRequest struct {
	QuestionID     uuid.UUID `json:"question_id" binding:"required"`
	Status         string    `json:"status" binding:"required,oneof=answered skipped"`
	DisplayedIndex *int      `json:"displayed_index" binding:"omitempty,min=0,max=3"`
}
