package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// ResponseRepository handles scored answer data access.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Upsert writes the scored answer for one (attempt, question) pair,
// replacing any earlier answer wholesale.
func (r *ResponseRepository) Upsert(ctx context.Context, resp *model.Response) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO responses (attempt_id, question_id, selected_option, selected_index, is_correct, marks_obtained)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (attempt_id, question_id) DO UPDATE SET
			selected_option = EXCLUDED.selected_option,
			selected_index = EXCLUDED.selected_index,
			is_correct = EXCLUDED.is_correct,
			marks_obtained = EXCLUDED.marks_obtained,
			answered_at = NOW()
		 RETURNING id, answered_at`,
		resp.AttemptID, resp.QuestionID, resp.SelectedOption, resp.SelectedIndex,
		resp.IsCorrect, resp.MarksObtained,
	).Scan(&resp.ID, &resp.AnsweredAt)
}

// Delete removes the answer row for one (attempt, question) pair. Used when
// the student marks a question skipped.
func (r *ResponseRepository) Delete(ctx context.Context, attemptID, questionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM responses WHERE attempt_id = $1 AND question_id = $2`,
		attemptID, questionID)
	return err
}

// CountByAttempt returns how many answers currently exist for an attempt.
func (r *ResponseRepository) CountByAttempt(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM responses WHERE attempt_id = $1`, attemptID,
	).Scan(&count)
	return count, err
}

// SumMarks returns the total marks obtained across all answers of an attempt.
func (r *ResponseRepository) SumMarks(ctx context.Context, attemptID uuid.UUID) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(marks_obtained), 0) FROM responses WHERE attempt_id = $1`, attemptID,
	).Scan(&sum)
	return sum, err
}

// ListByAttempt retrieves all answers of an attempt keyed by question ID.
func (r *ResponseRepository) ListByAttempt(ctx context.Context, attemptID uuid.UUID) (map[uuid.UUID]model.Response, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, question_id, selected_option, selected_index, is_correct, marks_obtained, answered_at
		 FROM responses WHERE attempt_id = $1`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make(map[uuid.UUID]model.Response)
	for rows.Next() {
		var resp model.Response
		if err := rows.Scan(&resp.ID, &resp.AttemptID, &resp.QuestionID, &resp.SelectedOption,
			&resp.SelectedIndex, &resp.IsCorrect, &resp.MarksObtained, &resp.AnsweredAt); err != nil {
			return nil, err
		}
		responses[resp.QuestionID] = resp
	}
	return responses, rows.Err()
}
