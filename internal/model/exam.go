package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the lifecycle states of an exam definition.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "DRAFT"
	ExamStatusPublished ExamStatus = "PUBLISHED"
)

// IntegrityRules is the typed proctoring configuration attached to an exam.
// It is validated once when the exam is saved; the thresholds are advisory
// counters consumed by the invigilation layer.
type IntegrityRules struct {
	HeartbeatIntervalSec int `json:"heartbeat_interval_sec"`
	MaxFocusLosses       int `json:"max_focus_losses"`
	AutoSubmitViolations int `json:"auto_submit_violations"`
}

// Exam represents an exam definition and its marking configuration.
// The campus/board/technology/semester filters are nil for "any"; otherwise
// they are matched fuzzily against the student's roster fields.
type Exam struct {
	ID                 uuid.UUID      `json:"id"`
	Title              string         `json:"title"`
	Subject            string         `json:"subject"`
	Campus             *string        `json:"campus,omitempty"`
	Board              *string        `json:"board,omitempty"`
	Technology         *string        `json:"technology,omitempty"`
	Semester           *string        `json:"semester,omitempty"`
	StartsAt           *time.Time     `json:"starts_at,omitempty"`
	EndsAt             *time.Time     `json:"ends_at,omitempty"`
	DurationMinutes    int            `json:"duration_minutes"`
	QuestionQuota      int            `json:"question_quota"`
	MarksPerQuestion   float64        `json:"marks_per_question"`
	PassingPercent     *float64       `json:"passing_percent,omitempty"`
	NegativeMarking    bool           `json:"negative_marking"`
	NegativePenalty    float64        `json:"negative_penalty"`
	RandomizeQuestions bool           `json:"randomize_questions"`
	RandomizeOptions   bool           `json:"randomize_options"`
	Integrity          IntegrityRules `json:"integrity"`
	Status             ExamStatus     `json:"status"`
	CreatedBy          int            `json:"created_by"`
	PublishedAt        *time.Time     `json:"published_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Duration returns the configured duration as a time.Duration.
func (e *Exam) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// CreateExamRequest is the payload for creating a new exam definition.
type CreateExamRequest struct {
	Title              string     `json:"title" binding:"required,min=3,max=255"`
	Subject            string     `json:"subject" binding:"required,min=2,max=120"`
	Campus             *string    `json:"campus" binding:"omitempty,max=120"`
	Board              *string    `json:"board" binding:"omitempty,max=120"`
	Technology         *string    `json:"technology" binding:"omitempty,max=120"`
	Semester           *string    `json:"semester" binding:"omitempty,max=120"`
	StartsAt           *time.Time `json:"starts_at" binding:"omitempty"`
	EndsAt             *time.Time `json:"ends_at" binding:"omitempty,gtfield=StartsAt"`
	DurationMinutes    int        `json:"duration_minutes" binding:"required,min=1,max=480"`
	QuestionQuota      int        `json:"question_quota" binding:"required,min=1,max=500"`
	MarksPerQuestion   float64    `json:"marks_per_question" binding:"required,gt=0"`
	PassingPercent     *float64   `json:"passing_percent" binding:"omitempty,gte=0,lte=100"`
	NegativeMarking    bool       `json:"negative_marking"`
	NegativePenalty    float64    `json:"negative_penalty" binding:"omitempty,gte=0"`
	RandomizeQuestions bool       `json:"randomize_questions"`
	RandomizeOptions   bool       `json:"randomize_options"`
	HeartbeatInterval  int        `json:"heartbeat_interval_sec" binding:"omitempty,min=5,max=600"`
	MaxFocusLosses     int        `json:"max_focus_losses" binding:"omitempty,min=1,max=100"`
	AutoSubmitAfter    int        `json:"auto_submit_violations" binding:"omitempty,min=1,max=100"`
}

// UpdateExamRequest is the payload for updating an existing exam definition.
type UpdateExamRequest struct {
	Title              string     `json:"title" binding:"omitempty,min=3,max=255"`
	Subject            string     `json:"subject" binding:"omitempty,min=2,max=120"`
	Campus             *string    `json:"campus" binding:"omitempty,max=120"`
	Board              *string    `json:"board" binding:"omitempty,max=120"`
	Technology         *string    `json:"technology" binding:"omitempty,max=120"`
	Semester           *string    `json:"semester" binding:"omitempty,max=120"`
	StartsAt           *time.Time `json:"starts_at" binding:"omitempty"`
	EndsAt             *time.Time `json:"ends_at" binding:"omitempty,gtfield=StartsAt"`
	DurationMinutes    *int       `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	QuestionQuota      *int       `json:"question_quota" binding:"omitempty,min=1,max=500"`
	MarksPerQuestion   *float64   `json:"marks_per_question" binding:"omitempty,gt=0"`
	PassingPercent     *float64   `json:"passing_percent" binding:"omitempty,gte=0,lte=100"`
	NegativeMarking    *bool      `json:"negative_marking" binding:"omitempty"`
	NegativePenalty    *float64   `json:"negative_penalty" binding:"omitempty,gte=0"`
	RandomizeQuestions *bool      `json:"randomize_questions" binding:"omitempty"`
	RandomizeOptions   *bool      `json:"randomize_options" binding:"omitempty"`
	HeartbeatInterval  *int       `json:"heartbeat_interval_sec" binding:"omitempty,min=5,max=600"`
	MaxFocusLosses     *int       `json:"max_focus_losses" binding:"omitempty,min=1,max=100"`
	AutoSubmitAfter    *int       `json:"auto_submit_violations" binding:"omitempty,min=1,max=100"`
}

// EligibleExam is an exam as shown in the student lobby, with its computed
// window state and a human-readable window label.
type EligibleExam struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	WindowState     string     `json:"window_state"`
	WindowLabel     string     `json:"window_label"`
	DurationMinutes int        `json:"duration_minutes"`
	QuestionQuota   int        `json:"question_quota"`
	AttemptStatus   *string    `json:"attempt_status,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
}
