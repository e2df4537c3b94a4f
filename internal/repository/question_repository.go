package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// QuestionRepository handles bank question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExam retrieves the full question bank of an exam in insertion order.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, question_text, options, correct_index, marks, selected, media_path, created_at
		 FROM questions WHERE exam_id = $1
		 ORDER BY created_at, id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// ListSelected retrieves only the questions flagged as part of the exam
// subset, in insertion order.
func (r *QuestionRepository) ListSelected(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, question_text, options, correct_index, marks, selected, media_path, created_at
		 FROM questions WHERE exam_id = $1 AND selected
		 ORDER BY created_at, id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text, &q.Options, &q.CorrectIndex,
			&q.Marks, &q.Selected, &q.MediaPath, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new bank question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (exam_id, question_text, options, correct_index, marks, selected, media_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		q.ExamID, q.Text, q.Options, q.CorrectIndex, q.Marks, q.Selected, q.MediaPath,
	).Scan(&q.ID, &q.CreatedAt)
}

// ReplaceForExam atomically swaps an exam's entire question bank.
func (r *QuestionRepository) ReplaceForExam(ctx context.Context, examID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, examID); err != nil {
		return err
	}
	for i := range questions {
		q := &questions[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, question_text, options, correct_index, marks, selected, media_path)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			examID, q.Text, q.Options, q.CorrectIndex, q.Marks, q.Selected, q.MediaPath,
		).Scan(&q.ID, &q.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// MarkSelected flags exactly the given questions as the exam subset and
// clears the flag on every other bank question of the exam.
func (r *QuestionRepository) MarkSelected(ctx context.Context, examID uuid.UUID, questionIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE questions SET selected = FALSE WHERE exam_id = $1`, examID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE questions SET selected = TRUE WHERE exam_id = $1 AND id = ANY($2)`,
		examID, questionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes one bank question.
func (r *QuestionRepository) Delete(ctx context.Context, examID, questionID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM questions WHERE exam_id = $1 AND id = $2`, examID, questionID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountByExam returns total and selected bank sizes for an exam.
func (r *QuestionRepository) CountByExam(ctx context.Context, examID uuid.UUID) (total, selected int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE selected)
		 FROM questions WHERE exam_id = $1`, examID,
	).Scan(&total, &selected)
	return total, selected, err
}
