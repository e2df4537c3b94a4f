package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/grading"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// SubmissionService finalizes attempts: it enforces submission completeness,
// computes the grade, and writes the immutable result record.
type SubmissionService struct {
	cfg          *config.Config
	examRepo     *repository.ExamRepository
	attemptRepo  *repository.AttemptRepository
	responseRepo *repository.ResponseRepository
	stateRepo    *repository.AnswerStateRepository
	resultRepo   *repository.ResultRepository
	log          zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	cfg *config.Config,
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	responseRepo *repository.ResponseRepository,
	stateRepo *repository.AnswerStateRepository,
	resultRepo *repository.ResultRepository,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		cfg:          cfg,
		examRepo:     examRepo,
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
		stateRepo:    stateRepo,
		resultRepo:   resultRepo,
		log:          log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit finalizes an attempt. Any submit, voluntary or driven by the
// invigilation threshold, is rejected while a question remains skipped or
// untouched; there is no bypass around completeness.
func (s *SubmissionService) Submit(ctx context.Context, attemptID uuid.UUID, studentID int) (*model.ResultSummary, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotFound
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, ErrAttemptCompleted
	}

	exam, err := s.examRepo.GetByID(ctx, attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("fetch exam: %w", err)
	}

	total, err := s.attemptRepo.CountInstanceQuestions(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("count attempt questions: %w", err)
	}
	answered, err := s.responseRepo.CountByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}
	skipped, err := s.stateRepo.CountSkipped(ctx, attempt.ExamID, studentID)
	if err != nil {
		return nil, fmt.Errorf("count skipped: %w", err)
	}

	if incomplete := checkCompleteness(total, answered, skipped); incomplete != nil {
		return nil, incomplete
	}

	_, questions, err := s.attemptRepo.ListInstanceQuestions(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list attempt questions: %w", err)
	}
	obtained, err := s.responseRepo.SumMarks(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("sum marks: %w", err)
	}

	summary := computeResultSummary(exam, questions, obtained)

	res := &model.Result{
		AttemptID:     attemptID,
		ExamID:        attempt.ExamID,
		StudentID:     studentID,
		TotalMarks:    summary.TotalMarks,
		ObtainedMarks: summary.ObtainedMarks,
		Percentage:    summary.Percentage,
		Grade:         summary.Grade,
		Passed:        summary.Passed,
	}
	won, err := s.resultRepo.CreateAndCompleteAttempt(ctx, res, time.Now().In(s.cfg.Location))
	if err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}
	if !won {
		// Another submit beat us to the transition.
		return nil, ErrAttemptCompleted
	}

	s.log.Info().Str("attempt_id", attemptID.String()).Int("student_id", studentID).
		Str("grade", summary.Grade).Float64("percentage", summary.Percentage).
		Msg("Attempt submitted")

	return summary, nil
}

// GetPublishedResult returns a student's result for an exam once staff have
// published the sheet.
func (s *SubmissionService) GetPublishedResult(ctx context.Context, examID uuid.UUID, studentID int) (*model.Result, error) {
	res, err := s.resultRepo.GetByExamAndStudent(ctx, examID, studentID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch result: %w", err)
	}
	if !res.Published {
		return nil, ErrResultNotPublished
	}
	return res, nil
}

// checkCompleteness returns a non-nil IncompleteSubmissionError while any
// question of the attempt is skipped or untouched.
func checkCompleteness(total, answered, skipped int64) *IncompleteSubmissionError {
	unanswered := total - answered - skipped
	if unanswered < 0 {
		unanswered = 0
	}
	if skipped > 0 || unanswered > 0 {
		return &IncompleteSubmissionError{Skipped: skipped, Unanswered: unanswered}
	}
	return nil
}

// computeResultSummary derives the grade from the exam's marking rules and
// the attempt's question set. Per-question marks override the exam default
// when set.
func computeResultSummary(exam *model.Exam, questions []model.Question, obtained float64) *model.ResultSummary {
	var total float64
	for _, q := range questions {
		if q.Marks > 0 {
			total += q.Marks
		} else {
			total += exam.MarksPerQuestion
		}
	}

	pct := grading.Percentage(obtained, total)
	return &model.ResultSummary{
		TotalMarks:    total,
		ObtainedMarks: obtained,
		Percentage:    pct,
		Grade:         grading.LetterGrade(pct, exam.PassingPercent),
		Passed:        grading.Passed(pct, exam.PassingPercent),
	}
}
