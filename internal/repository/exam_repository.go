package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// ExamRepository handles exam definition data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, subject, campus, board, technology, semester,
	starts_at, ends_at, duration_minutes, question_quota, marks_per_question,
	passing_percent, negative_marking, negative_penalty,
	randomize_questions, randomize_options,
	heartbeat_interval_sec, max_focus_losses, auto_submit_violations,
	status, created_by, published_at, created_at, updated_at`

func scanExam(row interface{ Scan(...any) error }) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Subject, &e.Campus, &e.Board, &e.Technology, &e.Semester,
		&e.StartsAt, &e.EndsAt, &e.DurationMinutes, &e.QuestionQuota, &e.MarksPerQuestion,
		&e.PassingPercent, &e.NegativeMarking, &e.NegativePenalty,
		&e.RandomizeQuestions, &e.RandomizeOptions,
		&e.Integrity.HeartbeatIntervalSec, &e.Integrity.MaxFocusLosses, &e.Integrity.AutoSubmitViolations,
		&e.Status, &e.CreatedBy, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID retrieves one exam definition.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
}

// Create inserts a new exam definition in DRAFT status.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (
			title, subject, campus, board, technology, semester,
			starts_at, ends_at, duration_minutes, question_quota, marks_per_question,
			passing_percent, negative_marking, negative_penalty,
			randomize_questions, randomize_options,
			heartbeat_interval_sec, max_focus_losses, auto_submit_violations,
			status, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id, created_at, updated_at`,
		e.Title, e.Subject, e.Campus, e.Board, e.Technology, e.Semester,
		e.StartsAt, e.EndsAt, e.DurationMinutes, e.QuestionQuota, e.MarksPerQuestion,
		e.PassingPercent, e.NegativeMarking, e.NegativePenalty,
		e.RandomizeQuestions, e.RandomizeOptions,
		e.Integrity.HeartbeatIntervalSec, e.Integrity.MaxFocusLosses, e.Integrity.AutoSubmitViolations,
		e.Status, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update rewrites the mutable columns of an exam definition.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET
			title = $1, subject = $2, campus = $3, board = $4, technology = $5, semester = $6,
			starts_at = $7, ends_at = $8, duration_minutes = $9, question_quota = $10,
			marks_per_question = $11, passing_percent = $12,
			negative_marking = $13, negative_penalty = $14,
			randomize_questions = $15, randomize_options = $16,
			heartbeat_interval_sec = $17, max_focus_losses = $18, auto_submit_violations = $19,
			updated_at = NOW()
		WHERE id = $20`,
		e.Title, e.Subject, e.Campus, e.Board, e.Technology, e.Semester,
		e.StartsAt, e.EndsAt, e.DurationMinutes, e.QuestionQuota,
		e.MarksPerQuestion, e.PassingPercent,
		e.NegativeMarking, e.NegativePenalty,
		e.RandomizeQuestions, e.RandomizeOptions,
		e.Integrity.HeartbeatIntervalSec, e.Integrity.MaxFocusLosses, e.Integrity.AutoSubmitViolations,
		e.ID)
	return err
}

// Publish flips a DRAFT exam to PUBLISHED and records the instant. Returns
// the number of rows affected so callers can detect a non-DRAFT exam.
func (r *ExamRepository) Publish(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams SET status = $1, published_at = $2, updated_at = NOW()
		 WHERE id = $3 AND status = $4`,
		model.ExamStatusPublished, at, id, model.ExamStatusDraft)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a DRAFT exam and, via cascade, its bank questions.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM exams WHERE id = $1 AND status = $2`, id, model.ExamStatusDraft)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListAll retrieves exam definitions for the staff console, newest first.
func (r *ExamRepository) ListAll(ctx context.Context, page, perPage int) ([]model.Exam, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, *e)
	}
	return exams, total, rows.Err()
}

// ListPublished retrieves all PUBLISHED exams. Eligibility and window
// filtering happen above the storage layer.
func (r *ExamRepository) ListPublished(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams
		 WHERE status = $1
		 ORDER BY starts_at NULLS LAST, created_at DESC`,
		model.ExamStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *e)
	}
	return exams, rows.Err()
}
