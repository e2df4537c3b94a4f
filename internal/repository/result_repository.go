package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// ResultRepository handles final grade record data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, attempt_id, exam_id, student_id, total_marks, obtained_marks,
	percentage, grade, passed, published, published_at, published_by, created_at`

// CreateAndCompleteAttempt atomically writes the result row and flips the
// attempt to COMPLETED. Returns false when the attempt was no longer
// IN_PROGRESS, in which case nothing is written.
func (r *ResultRepository) CreateAndCompleteAttempt(ctx context.Context, res *model.Result, finishedAt time.Time) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE attempts SET status = $1, finished_at = $2
		 WHERE id = $3 AND status = $4`,
		model.AttemptStatusCompleted, finishedAt, res.AttemptID, model.AttemptStatusInProgress)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO results (attempt_id, exam_id, student_id, total_marks, obtained_marks, percentage, grade, passed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		res.AttemptID, res.ExamID, res.StudentID, res.TotalMarks, res.ObtainedMarks,
		res.Percentage, res.Grade, res.Passed,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

// GetByAttempt retrieves the result of one attempt.
func (r *ResultRepository) GetByAttempt(ctx context.Context, attemptID uuid.UUID) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE attempt_id = $1`, attemptID))
}

// GetByExamAndStudent retrieves one student's result for an exam.
func (r *ResultRepository) GetByExamAndStudent(ctx context.Context, examID uuid.UUID, studentID int) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE exam_id = $1 AND student_id = $2`,
		examID, studentID))
}

func scanResult(row interface{ Scan(...any) error }) (*model.Result, error) {
	res := &model.Result{}
	err := row.Scan(&res.ID, &res.AttemptID, &res.ExamID, &res.StudentID,
		&res.TotalMarks, &res.ObtainedMarks, &res.Percentage, &res.Grade, &res.Passed,
		&res.Published, &res.PublishedAt, &res.PublishedBy, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PublishByExam marks every result of an exam published.
func (r *ResultRepository) PublishByExam(ctx context.Context, examID uuid.UUID, staffID int, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE results SET published = TRUE, published_at = $1, published_by = $2
		 WHERE exam_id = $3 AND NOT published`,
		at, staffID, examID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ResultRow is a staff-facing result line joined with roster identity.
type ResultRow struct {
	model.Result
	AdmissionNo string `json:"admission_no"`
	StudentName string `json:"student_name"`
	Campus      string `json:"campus"`
	Semester    string `json:"semester"`
}

// ListByExam retrieves all results of an exam with roster identity attached,
// ranked by obtained marks.
func (r *ResultRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]ResultRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT res.id, res.attempt_id, res.exam_id, res.student_id,
		        res.total_marks, res.obtained_marks, res.percentage, res.grade, res.passed,
		        res.published, res.published_at, res.published_by, res.created_at,
		        s.admission_no, s.name, s.campus, s.semester
		 FROM results res
		 JOIN students s ON s.id = res.student_id
		 WHERE res.exam_id = $1
		 ORDER BY res.obtained_marks DESC, s.name`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.ID, &row.AttemptID, &row.ExamID, &row.StudentID,
			&row.TotalMarks, &row.ObtainedMarks, &row.Percentage, &row.Grade, &row.Passed,
			&row.Published, &row.PublishedAt, &row.PublishedBy, &row.CreatedAt,
			&row.AdmissionNo, &row.StudentName, &row.Campus, &row.Semester); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
