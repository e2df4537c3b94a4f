package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/grading"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// ResponseService records answers and skips during an in-progress attempt.
// Scoring happens at write time from the canonical option index; the client
// only ever supplies a displayed position.
type ResponseService struct {
	examRepo     *repository.ExamRepository
	attemptRepo  *repository.AttemptRepository
	responseRepo *repository.ResponseRepository
	stateRepo    *repository.AnswerStateRepository
	log          zerolog.Logger
}

// NewResponseService creates a new ResponseService.
func NewResponseService(
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	responseRepo *repository.ResponseRepository,
	stateRepo *repository.AnswerStateRepository,
	log zerolog.Logger,
) *ResponseService {
	return &ResponseService{
		examRepo:     examRepo,
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
		stateRepo:    stateRepo,
		log:          log.With().Str("component", "response_service").Logger(),
	}
}

// Record answers or skips one question of an attempt. Re-answering replaces
// the earlier answer wholesale; skipping deletes any stored answer. Both
// paths update the authoritative answered/skipped state.
func (s *ResponseService) Record(ctx context.Context, attemptID uuid.UUID, studentID int, req *model.RecordResponseRequest) error {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		if repository.IsNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("fetch attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return ErrNotFound
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return ErrAttemptNotInProgress
	}

	iq, question, err := s.attemptRepo.GetInstanceQuestion(ctx, attemptID, req.QuestionID)
	if err != nil {
		if repository.IsNoRows(err) {
			return ErrQuestionNotInAttempt
		}
		return fmt.Errorf("fetch attempt question: %w", err)
	}

	exam, err := s.examRepo.GetByID(ctx, attempt.ExamID)
	if err != nil {
		return fmt.Errorf("fetch exam: %w", err)
	}

	switch model.AnswerStatus(req.Status) {
	case model.AnswerStatusAnswered:
		if req.DisplayedIndex == nil {
			return ErrDisplayedIndexNeeded
		}
		if err := s.recordAnswer(ctx, attempt, exam, iq, question, *req.DisplayedIndex); err != nil {
			return err
		}
	case model.AnswerStatusSkipped:
		if err := s.responseRepo.Delete(ctx, attemptID, req.QuestionID); err != nil {
			return fmt.Errorf("delete response: %w", err)
		}
	default:
		return fmt.Errorf("unknown answer status %q", req.Status)
	}

	state := &model.AnswerState{
		StudentID:  studentID,
		ExamID:     attempt.ExamID,
		QuestionID: req.QuestionID,
		Status:     model.AnswerStatus(req.Status),
	}
	if err := s.stateRepo.Upsert(ctx, state); err != nil {
		return fmt.Errorf("upsert answer state: %w", err)
	}
	return nil
}

func (s *ResponseService) recordAnswer(ctx context.Context, attempt *model.Attempt, exam *model.Exam, iq *model.InstanceQuestion, question *model.Question, displayedIndex int) error {
	marksPer := question.Marks
	if marksPer == 0 {
		marksPer = exam.MarksPerQuestion
	}
	cfg := grading.ScoreConfig{
		MarksPerQuestion: marksPer,
		NegativeMarking:  exam.NegativeMarking,
		NegativePenalty:  exam.NegativePenalty,
	}

	correct, marks, err := grading.Score(question.CorrectIndex, iq.OptionOrder, displayedIndex, cfg)
	if err != nil {
		return fmt.Errorf("score answer: %w", err)
	}

	inv, err := grading.InvertPermutation(iq.OptionOrder)
	if err != nil {
		return fmt.Errorf("invert option order: %w", err)
	}
	canonical := inv[displayedIndex]

	resp := &model.Response{
		AttemptID:      attempt.ID,
		QuestionID:     question.ID,
		SelectedOption: question.Options[canonical],
		SelectedIndex:  canonical,
		IsCorrect:      correct,
		MarksObtained:  marks,
	}
	if err := s.responseRepo.Upsert(ctx, resp); err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	return nil
}
