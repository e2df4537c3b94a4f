package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is a bank question belonging to one exam definition. Options are
// always exactly four; CorrectIndex is the canonical index into Options.
type Question struct {
	ID           uuid.UUID `json:"id"`
	ExamID       uuid.UUID `json:"exam_id"`
	Text         string    `json:"text"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correct_index"`
	Marks        float64   `json:"marks"`
	// Selected marks a question as part of the exam subset when the bank
	// is larger than the quota.
	Selected  bool      `json:"selected"`
	MediaPath *string   `json:"media_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddQuestionRequest is the payload for adding a question to an exam bank.
type AddQuestionRequest struct {
	Text         string   `json:"text" binding:"required,min=1,max=2000"`
	Options      []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectIndex int      `json:"correct_index" binding:"min=0,max=3"`
	Marks        float64  `json:"marks" binding:"omitempty,gt=0"`
	MediaPath    *string  `json:"media_path" binding:"omitempty,max=255"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing an exam's bank.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// SelectQuestionsRequest flags the subset of bank questions used when the
// bank exceeds the quota.
type SelectQuestionsRequest struct {
	QuestionIDs []uuid.UUID `json:"question_ids" binding:"required,min=1"`
}
