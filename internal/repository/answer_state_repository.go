package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// AnswerStateRepository tracks the authoritative answered/skipped signal per
// (student, exam, question) triple.
type AnswerStateRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerStateRepository creates a new AnswerStateRepository.
func NewAnswerStateRepository(pool *pgxpool.Pool) *AnswerStateRepository {
	return &AnswerStateRepository{pool: pool}
}

// Upsert writes the current status of one question for one student.
func (r *AnswerStateRepository) Upsert(ctx context.Context, state *model.AnswerState) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO answer_states (student_id, exam_id, question_id, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, exam_id, question_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()`,
		state.StudentID, state.ExamID, state.QuestionID, state.Status)
	return err
}

// CountSkipped returns how many of a student's questions in an exam are
// currently marked skipped.
func (r *AnswerStateRepository) CountSkipped(ctx context.Context, examID uuid.UUID, studentID int) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM answer_states
		 WHERE exam_id = $1 AND student_id = $2 AND status = $3`,
		examID, studentID, model.AnswerStatusSkipped,
	).Scan(&count)
	return count, err
}

// ListByStudentAndExam retrieves all per-question states keyed by question ID.
func (r *AnswerStateRepository) ListByStudentAndExam(ctx context.Context, examID uuid.UUID, studentID int) (map[uuid.UUID]model.AnswerState, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, exam_id, question_id, status, updated_at
		 FROM answer_states
		 WHERE exam_id = $1 AND student_id = $2`, examID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[uuid.UUID]model.AnswerState)
	for rows.Next() {
		var s model.AnswerState
		if err := rows.Scan(&s.StudentID, &s.ExamID, &s.QuestionID, &s.Status, &s.UpdatedAt); err != nil {
			return nil, err
		}
		states[s.QuestionID] = s
	}
	return states, rows.Err()
}
