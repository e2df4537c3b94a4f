package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/examwindow"
	"github.com/faisalgulab4589-hash/GIMS/internal/grading"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// AttemptService creates and serves exam attempts. An attempt freezes its
// question subset and option permutations at creation; every later read,
// including resume after a disconnect, reproduces the identical paper.
type AttemptService struct {
	cfg            *config.Config
	examRepo       *repository.ExamRepository
	questionRepo   *repository.QuestionRepository
	attemptRepo    *repository.AttemptRepository
	responseRepo   *repository.ResponseRepository
	stateRepo      *repository.AnswerStateRepository
	studentRepo    *repository.StudentRepository
	attendanceRepo *repository.AttendanceRepository
	log            zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	cfg *config.Config,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	responseRepo *repository.ResponseRepository,
	stateRepo *repository.AnswerStateRepository,
	studentRepo *repository.StudentRepository,
	attendanceRepo *repository.AttendanceRepository,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		cfg:            cfg,
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		responseRepo:   responseRepo,
		stateRepo:      stateRepo,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		log:            log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start creates the student's attempt for an exam, or resumes the existing
// one. Concurrent starts are race-safe: the storage layer admits exactly one
// attempt per (exam, student) pair and the loser resumes the winner's row.
func (s *AttemptService) Start(ctx context.Context, examID uuid.UUID, studentID int, ip string) (*model.StartAttemptResult, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch exam: %w", err)
	}
	if exam.Status != model.ExamStatusPublished {
		return nil, ErrExamNotPublished
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch student: %w", err)
	}
	if !StudentEligible(student, exam) {
		return nil, ErrNotEligible
	}

	now := time.Now().In(s.cfg.Location)
	w := examwindow.Evaluate(exam.StartsAt, exam.EndsAt, exam.Duration(), now, s.cfg.Location)
	if w.State != examwindow.StateOpen {
		return nil, &WindowError{State: w.State, Label: w.Label}
	}

	// Resume path: an attempt already exists.
	if existing, err := s.attemptRepo.GetByExamAndStudent(ctx, examID, studentID); err == nil {
		return s.resume(ctx, exam, existing)
	} else if !repository.IsNoRows(err) {
		return nil, fmt.Errorf("fetch attempt: %w", err)
	}

	selected, err := s.questionRepo.ListSelected(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list selected questions: %w", err)
	}
	bank, err := s.questionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := effectiveBank(selected, bank)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	attempt := &model.Attempt{
		ExamID:      examID,
		StudentID:   studentID,
		Status:      model.AttemptStatusInProgress,
		ResumeToken: newResumeToken(),
		IPAddress:   ip,
	}
	layout := buildInstanceQuestions(questions, exam.QuestionQuota,
		exam.RandomizeQuestions, exam.RandomizeOptions)
	err = s.attemptRepo.Create(ctx, attempt, layout)
	if repository.IsNoRows(err) {
		// Lost the creation race; the winner's attempt is authoritative.
		winner, ferr := s.attemptRepo.GetByExamAndStudent(ctx, examID, studentID)
		if ferr != nil {
			return nil, fmt.Errorf("refetch attempt after conflict: %w", ferr)
		}
		return s.resume(ctx, exam, winner)
	}
	if err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	if err := s.attendanceRepo.Mark(ctx, examID, studentID, attempt.ID, ip); err != nil {
		s.log.Error().Err(err).Str("exam_id", examID.String()).Int("student_id", studentID).
			Msg("Failed to mark attendance")
	}

	s.log.Info().Str("attempt_id", attempt.ID.String()).Str("exam_id", examID.String()).
		Int("student_id", studentID).Int("questions", len(layout)).Msg("Attempt started")

	return &model.StartAttemptResult{
		AttemptID:      attempt.ID,
		ResumeToken:    attempt.ResumeToken,
		ExamTitle:      exam.Title,
		TotalQuestions: len(layout),
	}, nil
}

func (s *AttemptService) resume(ctx context.Context, exam *model.Exam, attempt *model.Attempt) (*model.StartAttemptResult, error) {
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, ErrAttemptCompleted
	}
	count, err := s.attemptRepo.CountInstanceQuestions(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("count attempt questions: %w", err)
	}
	return &model.StartAttemptResult{
		AttemptID:      attempt.ID,
		ResumeToken:    attempt.ResumeToken,
		ExamTitle:      exam.Title,
		TotalQuestions: int(count),
		Resumed:        true,
	}, nil
}

// GetQuestions returns the attempt's paper in its frozen presentation
// order, options permuted into display order and prior answer state
// overlaid. The correct index never leaves the service.
func (s *AttemptService) GetQuestions(ctx context.Context, attemptID uuid.UUID, studentID int) ([]model.AttemptQuestion, error) {
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

	layout, questions, err := s.attemptRepo.ListInstanceQuestions(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list attempt questions: %w", err)
	}

	responses, err := s.responseRepo.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	states, err := s.stateRepo.ListByStudentAndExam(ctx, attempt.ExamID, studentID)
	if err != nil {
		return nil, fmt.Errorf("list answer states: %w", err)
	}

	paper := make([]model.AttemptQuestion, 0, len(layout))
	for i, iq := range layout {
		q := questions[i]
		displayed, err := grading.ApplyPermutation(q.Options, iq.OptionOrder)
		if err != nil {
			return nil, fmt.Errorf("apply option order for question %s: %w", q.ID, err)
		}

		aq := model.AttemptQuestion{
			QuestionID: q.ID,
			Position:   iq.Position,
			Text:       q.Text,
			Options:    displayed,
			Marks:      q.Marks,
			MediaPath:  q.MediaPath,
		}
		if st, ok := states[q.ID]; ok {
			status := string(st.Status)
			aq.PriorStatus = &status
		}
		if resp, ok := responses[q.ID]; ok {
			// Map the stored canonical index forward to display position.
			displayedIdx := iq.OptionOrder[resp.SelectedIndex]
			aq.PriorSelectedIndex = &displayedIdx
		}
		paper = append(paper, aq)
	}
	return paper, nil
}

// effectiveBank prefers the flagged subset; an exam whose author never
// flagged any question draws from the whole bank instead.
func effectiveBank(selected, bank []model.Question) []model.Question {
	if len(selected) > 0 {
		return selected
	}
	return bank
}

// buildInstanceQuestions freezes an attempt's paper: it draws the question
// subset and a per-question option permutation. Identity permutations are
// stored when option randomization is off so scoring follows one code path.
// The attempt ID is stamped on the rows when the attempt itself is persisted.
func buildInstanceQuestions(bank []model.Question, quota int, randomizeQuestions, randomizeOptions bool) []model.InstanceQuestion {
	picked := selectQuestions(bank, quota, randomizeQuestions)

	layout := make([]model.InstanceQuestion, 0, len(picked))
	for i, q := range picked {
		order := grading.IdentityPermutation(grading.OptionCount)
		if randomizeOptions {
			order = grading.RandomPermutation(grading.OptionCount)
		}
		layout = append(layout, model.InstanceQuestion{
			QuestionID:  q.ID,
			Position:    i + 1,
			OptionOrder: order,
		})
	}
	return layout
}

// selectQuestions draws up to quota questions from the bank. With
// randomization on, the draw and the order are both shuffled; otherwise the
// bank order is kept.
func selectQuestions(bank []model.Question, quota int, randomize bool) []model.Question {
	picked := make([]model.Question, len(bank))
	copy(picked, bank)
	if randomize {
		mathrand.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
	}
	if quota > 0 && quota < len(picked) {
		picked = picked[:quota]
	}
	return picked
}

// newResumeToken returns a 64-hex-char opaque token.
func newResumeToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable for token issuance.
		panic(fmt.Sprintf("resume token entropy: %v", err))
	}
	return hex.EncodeToString(buf)
}
