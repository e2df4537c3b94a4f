package service

import (
	"errors"
	"fmt"

	"github.com/faisalgulab4589-hash/GIMS/internal/examwindow"
)

// Domain errors shared across services. Handlers map these onto HTTP
// statuses and error codes.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrExamNotPublished     = errors.New("exam is not published")
	ErrExamNotDraft         = errors.New("exam is not in draft status")
	ErrNoQuestions          = errors.New("exam has no selected questions")
	ErrAttemptCompleted     = errors.New("attempt already completed")
	ErrAttemptNotInProgress = errors.New("attempt is not in progress")
	ErrQuestionNotInAttempt = errors.New("question does not belong to attempt")
	ErrResultNotPublished   = errors.New("result not published")
	ErrEditWindowClosed     = errors.New("edit window closed")
	ErrNotEligible          = errors.New("student not eligible for exam")
	ErrDisplayedIndexNeeded = errors.New("displayed_index required for answered status")
	ErrQuotaExceedsBank     = errors.New("question quota exceeds selected bank size")
)

// WindowError is returned when an exam window rejects an action. It carries
// the evaluated state and human-readable label for the client.
type WindowError struct {
	State examwindow.State
	Label string
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("exam window %s: %s", e.State, e.Label)
}

// IncompleteSubmissionError is returned when a submit request still has
// skipped or unanswered questions.
type IncompleteSubmissionError struct {
	Skipped    int64
	Unanswered int64
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("incomplete submission: %d skipped, %d unanswered", e.Skipped, e.Unanswered)
}
