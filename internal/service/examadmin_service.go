package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/examwindow"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// Integrity rule defaults applied when an exam is created without explicit
// proctoring thresholds.
const (
	defaultHeartbeatIntervalSec = 30
	defaultMaxFocusLosses       = 3
	defaultAutoSubmitViolations = 5
)

// ExamAdminService is the staff console: exam definition lifecycle, question
// bank management, result publication, and attendance sheets. Published
// exams accept edits from non-admin staff only inside a grace window.
type ExamAdminService struct {
	cfg            *config.Config
	examRepo       *repository.ExamRepository
	questionRepo   *repository.QuestionRepository
	resultRepo     *repository.ResultRepository
	attendanceRepo *repository.AttendanceRepository
	log            zerolog.Logger
}

// NewExamAdminService creates a new ExamAdminService.
func NewExamAdminService(
	cfg *config.Config,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	attendanceRepo *repository.AttendanceRepository,
	log zerolog.Logger,
) *ExamAdminService {
	return &ExamAdminService{
		cfg:            cfg,
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		resultRepo:     resultRepo,
		attendanceRepo: attendanceRepo,
		log:            log.With().Str("component", "examadmin_service").Logger(),
	}
}

// Create inserts a new DRAFT exam from the request, applying integrity rule
// defaults for thresholds left unset.
func (s *ExamAdminService) Create(ctx context.Context, req *model.CreateExamRequest, staffID int) (*model.Exam, error) {
	exam := &model.Exam{
		Title:              req.Title,
		Subject:            req.Subject,
		Campus:             req.Campus,
		Board:              req.Board,
		Technology:         req.Technology,
		Semester:           req.Semester,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		DurationMinutes:    req.DurationMinutes,
		QuestionQuota:      req.QuestionQuota,
		MarksPerQuestion:   req.MarksPerQuestion,
		PassingPercent:     req.PassingPercent,
		NegativeMarking:    req.NegativeMarking,
		NegativePenalty:    req.NegativePenalty,
		RandomizeQuestions: req.RandomizeQuestions,
		RandomizeOptions:   req.RandomizeOptions,
		Integrity: model.IntegrityRules{
			HeartbeatIntervalSec: defaultInt(req.HeartbeatInterval, defaultHeartbeatIntervalSec),
			MaxFocusLosses:       defaultInt(req.MaxFocusLosses, defaultMaxFocusLosses),
			AutoSubmitViolations: defaultInt(req.AutoSubmitAfter, defaultAutoSubmitViolations),
		},
		Status:    model.ExamStatusDraft,
		CreatedBy: staffID,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}
	s.log.Info().Str("exam_id", exam.ID.String()).Str("title", exam.Title).
		Int("staff_id", staffID).Msg("Exam created")
	return exam, nil
}

// Get retrieves one exam definition.
func (s *ExamAdminService) Get(ctx context.Context, examID uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch exam: %w", err)
	}
	return exam, nil
}

// List retrieves exam definitions for the console, newest first.
func (s *ExamAdminService) List(ctx context.Context, page, perPage int) ([]model.Exam, int64, error) {
	return s.examRepo.ListAll(ctx, page, perPage)
}

// Update patches an exam definition. Published exams are editable by admins
// at any time; other staff only within the grace window after publication.
func (s *ExamAdminService) Update(ctx context.Context, examID uuid.UUID, req *model.UpdateExamRequest, role model.StaffRole) (*model.Exam, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEditable(exam, role); err != nil {
		return nil, err
	}

	applyExamUpdate(exam, req)
	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("update exam: %w", err)
	}
	return exam, nil
}

// Delete removes a DRAFT exam.
func (s *ExamAdminService) Delete(ctx context.Context, examID uuid.UUID) error {
	affected, err := s.examRepo.Delete(ctx, examID)
	if err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	if affected == 0 {
		return ErrExamNotDraft
	}
	return nil
}

// Publish flips a DRAFT exam live. The selected bank must cover the quota;
// publishing an empty exam is rejected.
func (s *ExamAdminService) Publish(ctx context.Context, examID uuid.UUID) (*model.Exam, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusDraft {
		return nil, ErrExamNotDraft
	}

	_, selected, err := s.questionRepo.CountByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if selected == 0 {
		return nil, ErrNoQuestions
	}
	if int64(exam.QuestionQuota) > selected {
		return nil, ErrQuotaExceedsBank
	}

	now := time.Now().In(s.cfg.Location)
	affected, err := s.examRepo.Publish(ctx, examID, now)
	if err != nil {
		return nil, fmt.Errorf("publish exam: %w", err)
	}
	if affected == 0 {
		return nil, ErrExamNotDraft
	}

	s.log.Info().Str("exam_id", examID.String()).Msg("Exam published")
	return s.Get(ctx, examID)
}

// AddQuestion appends one question to an exam's bank.
func (s *ExamAdminService) AddQuestion(ctx context.Context, examID uuid.UUID, req *model.AddQuestionRequest, role model.StaffRole) (*model.Question, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEditable(exam, role); err != nil {
		return nil, err
	}

	q := questionFromRequest(examID, req)
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// ReplaceQuestions swaps an exam's entire bank in one transaction.
func (s *ExamAdminService) ReplaceQuestions(ctx context.Context, examID uuid.UUID, req *model.ReplaceQuestionsRequest, role model.StaffRole) error {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return err
	}
	if err := s.checkEditable(exam, role); err != nil {
		return err
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, *questionFromRequest(examID, &req.Questions[i]))
	}
	if err := s.questionRepo.ReplaceForExam(ctx, examID, questions); err != nil {
		return fmt.Errorf("replace questions: %w", err)
	}
	return nil
}

// ListQuestions retrieves an exam's full bank, correct indexes included.
func (s *ExamAdminService) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByExam(ctx, examID)
}

// SelectQuestions flags the exam subset used when the bank exceeds the quota.
func (s *ExamAdminService) SelectQuestions(ctx context.Context, examID uuid.UUID, req *model.SelectQuestionsRequest, role model.StaffRole) error {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return err
	}
	if err := s.checkEditable(exam, role); err != nil {
		return err
	}
	if len(req.QuestionIDs) < exam.QuestionQuota {
		return ErrQuotaExceedsBank
	}
	if err := s.questionRepo.MarkSelected(ctx, examID, req.QuestionIDs); err != nil {
		return fmt.Errorf("mark selected: %w", err)
	}
	return nil
}

// DeleteQuestion removes one bank question from a DRAFT exam.
func (s *ExamAdminService) DeleteQuestion(ctx context.Context, examID, questionID uuid.UUID) error {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return err
	}
	if exam.Status != model.ExamStatusDraft {
		return ErrExamNotDraft
	}
	affected, err := s.questionRepo.Delete(ctx, examID, questionID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResults retrieves the result sheet of an exam with roster identity.
func (s *ExamAdminService) ListResults(ctx context.Context, examID uuid.UUID) ([]repository.ResultRow, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return nil, err
	}
	return s.resultRepo.ListByExam(ctx, examID)
}

// PublishResults releases every result of an exam to students.
func (s *ExamAdminService) PublishResults(ctx context.Context, examID uuid.UUID, staffID int) (int64, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return 0, err
	}
	now := time.Now().In(s.cfg.Location)
	published, err := s.resultRepo.PublishByExam(ctx, examID, staffID, now)
	if err != nil {
		return 0, fmt.Errorf("publish results: %w", err)
	}
	s.log.Info().Str("exam_id", examID.String()).Int64("published", published).
		Int("staff_id", staffID).Msg("Results published")
	return published, nil
}

// ListAttendance retrieves the attendance sheet of an exam.
func (s *ExamAdminService) ListAttendance(ctx context.Context, examID uuid.UUID) ([]repository.AttendanceRecord, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByExam(ctx, examID)
}

// checkEditable enforces the post-publish edit lock. Admins bypass it;
// other staff may edit a published exam only within the grace window after
// publication.
func (s *ExamAdminService) checkEditable(exam *model.Exam, role model.StaffRole) error {
	if exam.Status == model.ExamStatusDraft || role == model.StaffRoleAdmin {
		return nil
	}
	if exam.PublishedAt == nil {
		return ErrEditWindowClosed
	}
	lock := examwindow.EditLock{ActivatedAt: *exam.PublishedAt, Grace: s.cfg.EditGrace}
	if !lock.Open(time.Now().In(s.cfg.Location)) {
		return ErrEditWindowClosed
	}
	return nil
}

func questionFromRequest(examID uuid.UUID, req *model.AddQuestionRequest) *model.Question {
	return &model.Question{
		ExamID:       examID,
		Text:         req.Text,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Marks:        req.Marks,
		Selected:     true,
		MediaPath:    req.MediaPath,
	}
}

func applyExamUpdate(exam *model.Exam, req *model.UpdateExamRequest) {
	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Subject != "" {
		exam.Subject = req.Subject
	}
	if req.Campus != nil {
		exam.Campus = req.Campus
	}
	if req.Board != nil {
		exam.Board = req.Board
	}
	if req.Technology != nil {
		exam.Technology = req.Technology
	}
	if req.Semester != nil {
		exam.Semester = req.Semester
	}
	if req.StartsAt != nil {
		exam.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		exam.EndsAt = req.EndsAt
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.QuestionQuota != nil {
		exam.QuestionQuota = *req.QuestionQuota
	}
	if req.MarksPerQuestion != nil {
		exam.MarksPerQuestion = *req.MarksPerQuestion
	}
	if req.PassingPercent != nil {
		exam.PassingPercent = req.PassingPercent
	}
	if req.NegativeMarking != nil {
		exam.NegativeMarking = *req.NegativeMarking
	}
	if req.NegativePenalty != nil {
		exam.NegativePenalty = *req.NegativePenalty
	}
	if req.RandomizeQuestions != nil {
		exam.RandomizeQuestions = *req.RandomizeQuestions
	}
	if req.RandomizeOptions != nil {
		exam.RandomizeOptions = *req.RandomizeOptions
	}
	if req.HeartbeatInterval != nil {
		exam.Integrity.HeartbeatIntervalSec = *req.HeartbeatInterval
	}
	if req.MaxFocusLosses != nil {
		exam.Integrity.MaxFocusLosses = *req.MaxFocusLosses
	}
	if req.AutoSubmitAfter != nil {
		exam.Integrity.AutoSubmitViolations = *req.AutoSubmitAfter
	}
}

func defaultInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
