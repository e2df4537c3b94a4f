package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/examwindow"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
	"github.com/faisalgulab4589-hash/GIMS/internal/textmatch"
)

// CatalogService builds the student exam lobby: published exams filtered by
// fuzzy roster eligibility, each annotated with its window state.
type CatalogService struct {
	cfg         *config.Config
	examRepo    *repository.ExamRepository
	attemptRepo *repository.AttemptRepository
	studentRepo *repository.StudentRepository
	log         zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	cfg *config.Config,
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	studentRepo *repository.StudentRepository,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		cfg:         cfg,
		examRepo:    examRepo,
		attemptRepo: attemptRepo,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "catalog_service").Logger(),
	}
}

// ListEligibleExams returns every published exam the student is eligible
// for, including closed and not-yet-open ones so the lobby can show why an
// exam cannot be entered.
func (s *CatalogService) ListEligibleExams(ctx context.Context, studentID int) ([]model.EligibleExam, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch student: %w", err)
	}

	exams, err := s.examRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published exams: %w", err)
	}

	now := time.Now().In(s.cfg.Location)
	lobby := make([]model.EligibleExam, 0, len(exams))
	for i := range exams {
		e := &exams[i]
		if !StudentEligible(student, e) {
			continue
		}

		w := examwindow.Evaluate(e.StartsAt, e.EndsAt, e.Duration(), now, s.cfg.Location)
		item := model.EligibleExam{
			ID:              e.ID,
			Title:           e.Title,
			Subject:         e.Subject,
			WindowState:     string(w.State),
			WindowLabel:     w.Label,
			DurationMinutes: e.DurationMinutes,
			QuestionQuota:   e.QuestionQuota,
			StartsAt:        e.StartsAt,
		}

		attempt, err := s.attemptRepo.GetByExamAndStudent(ctx, e.ID, studentID)
		if err == nil {
			status := string(attempt.Status)
			item.AttemptStatus = &status
		} else if !repository.IsNoRows(err) {
			return nil, fmt.Errorf("fetch attempt: %w", err)
		}

		lobby = append(lobby, item)
	}
	return lobby, nil
}

// StudentEligible reports whether a student's roster fields satisfy an
// exam's scope filters. A nil filter matches everyone; non-nil filters are
// compared fuzzily to tolerate upstream spelling drift.
func StudentEligible(student *model.Student, exam *model.Exam) bool {
	checks := []struct {
		filter *string
		field  string
	}{
		{exam.Campus, student.Campus},
		{exam.Board, student.Board},
		{exam.Technology, student.Technology},
		{exam.Semester, student.Semester},
	}
	for _, c := range checks {
		if c.filter == nil || *c.filter == "" {
			continue
		}
		if !textmatch.Match(*c.filter, c.field) {
			return false
		}
	}
	return true
}
