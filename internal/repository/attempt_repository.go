package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// AttemptRepository handles attempt and per-attempt question layout access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// GetByID retrieves one attempt.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, student_id, started_at, finished_at, status, resume_token, ip_address
		 FROM attempts WHERE id = $1`, id,
	).Scan(&a.ID, &a.ExamID, &a.StudentID, &a.StartedAt, &a.FinishedAt, &a.Status, &a.ResumeToken, &a.IPAddress)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByExamAndStudent retrieves the attempt for one exam-student pair.
func (r *AttemptRepository) GetByExamAndStudent(ctx context.Context, examID uuid.UUID, studentID int) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, student_id, started_at, finished_at, status, resume_token, ip_address
		 FROM attempts WHERE exam_id = $1 AND student_id = $2`, examID, studentID,
	).Scan(&a.ID, &a.ExamID, &a.StudentID, &a.StartedAt, &a.FinishedAt, &a.Status, &a.ResumeToken, &a.IPAddress)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new attempt together with its frozen question layout in
// one transaction, so a partially written attempt can never become durable.
// The unique (exam_id, student_id) constraint makes concurrent starts
// race-safe: the loser sees pgx.ErrNoRows and must refetch the winner's row.
// Option permutations are stored as JSON arrays.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt, layout []model.InstanceQuestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO attempts (exam_id, student_id, status, resume_token, ip_address)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (exam_id, student_id) DO NOTHING
		 RETURNING id, started_at`,
		a.ExamID, a.StudentID, model.AttemptStatusInProgress, a.ResumeToken, a.IPAddress,
	).Scan(&a.ID, &a.StartedAt)
	if err != nil {
		return err
	}

	for i := range layout {
		layout[i].AttemptID = a.ID
		order, err := json.Marshal(layout[i].OptionOrder)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO instance_questions (attempt_id, question_id, position, option_order)
			 VALUES ($1, $2, $3, $4)`,
			a.ID, layout[i].QuestionID, layout[i].Position, order)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Complete marks an attempt COMPLETED. Only an IN_PROGRESS attempt
// transitions; the returned row count tells the caller whether it won.
func (r *AttemptRepository) Complete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attempts SET status = $1, finished_at = $2
		 WHERE id = $3 AND status = $4`,
		model.AttemptStatusCompleted, at, id, model.AttemptStatusInProgress)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListInstanceQuestions retrieves an attempt's layout joined with question
// content, ordered by presentation position.
func (r *AttemptRepository) ListInstanceQuestions(ctx context.Context, attemptID uuid.UUID) ([]model.InstanceQuestion, []model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT iq.id, iq.attempt_id, iq.question_id, iq.position, iq.option_order,
		        q.exam_id, q.question_text, q.options, q.correct_index, q.marks, q.media_path
		 FROM instance_questions iq
		 JOIN questions q ON q.id = iq.question_id
		 WHERE iq.attempt_id = $1
		 ORDER BY iq.position`, attemptID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var layout []model.InstanceQuestion
	var questions []model.Question
	for rows.Next() {
		var iq model.InstanceQuestion
		var q model.Question
		var rawOrder []byte
		if err := rows.Scan(&iq.ID, &iq.AttemptID, &iq.QuestionID, &iq.Position, &rawOrder,
			&q.ExamID, &q.Text, &q.Options, &q.CorrectIndex, &q.Marks, &q.MediaPath); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal(rawOrder, &iq.OptionOrder); err != nil {
			return nil, nil, err
		}
		q.ID = iq.QuestionID
		layout = append(layout, iq)
		questions = append(questions, q)
	}
	return layout, questions, rows.Err()
}

// GetInstanceQuestion retrieves one layout row plus its question content, or
// pgx.ErrNoRows when the question does not belong to the attempt.
func (r *AttemptRepository) GetInstanceQuestion(ctx context.Context, attemptID, questionID uuid.UUID) (*model.InstanceQuestion, *model.Question, error) {
	var iq model.InstanceQuestion
	var q model.Question
	var rawOrder []byte
	err := r.pool.QueryRow(ctx,
		`SELECT iq.id, iq.attempt_id, iq.question_id, iq.position, iq.option_order,
		        q.exam_id, q.question_text, q.options, q.correct_index, q.marks, q.media_path
		 FROM instance_questions iq
		 JOIN questions q ON q.id = iq.question_id
		 WHERE iq.attempt_id = $1 AND iq.question_id = $2`, attemptID, questionID,
	).Scan(&iq.ID, &iq.AttemptID, &iq.QuestionID, &iq.Position, &rawOrder,
		&q.ExamID, &q.Text, &q.Options, &q.CorrectIndex, &q.Marks, &q.MediaPath)
	if err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal(rawOrder, &iq.OptionOrder); err != nil {
		return nil, nil, err
	}
	q.ID = iq.QuestionID
	return &iq, &q, nil
}

// CountInstanceQuestions returns how many questions are frozen into an attempt.
func (r *AttemptRepository) CountInstanceQuestions(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM instance_questions WHERE attempt_id = $1`, attemptID,
	).Scan(&count)
	return count, err
}

// ListByExam retrieves all attempts of an exam, used by the invigilation
// snapshot.
func (r *AttemptRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, student_id, started_at, finished_at, status, resume_token, ip_address
		 FROM attempts WHERE exam_id = $1
		 ORDER BY started_at`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.StudentID, &a.StartedAt, &a.FinishedAt,
			&a.Status, &a.ResumeToken, &a.IPAddress); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// IsNoRows reports whether err is the pgx "no rows" sentinel. Services use
// this to translate storage misses into domain errors.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
