package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// ProctorRepository handles the append-only proctor event log.
type ProctorRepository struct {
	pool *pgxpool.Pool
}

// NewProctorRepository creates a new ProctorRepository.
func NewProctorRepository(pool *pgxpool.Pool) *ProctorRepository {
	return &ProctorRepository{pool: pool}
}

// BulkInsert writes a batch of proctor events via COPY.
func (r *ProctorRepository) BulkInsert(ctx context.Context, events []model.ProctorEvent) error {
	rows := make([][]interface{}, 0, len(events))
	for _, e := range events {
		rows = append(rows, []interface{}{
			e.AttemptID, e.ExamID, e.StudentID, e.EventType, e.Details, e.RecordedAt,
		})
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"proctor_events"},
		[]string{"attempt_id", "exam_id", "student_id", "event_type", "details", "recorded_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// Insert writes a single proctor event. Used by the worker's row-by-row
// fallback path.
func (r *ProctorRepository) Insert(ctx context.Context, e *model.ProctorEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO proctor_events (attempt_id, exam_id, student_id, event_type, details, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.AttemptID, e.ExamID, e.StudentID, e.EventType, e.Details, e.RecordedAt)
	return err
}

// CountViolations returns the number of persisted violation events for an
// attempt. The live counter lives in Redis; this is the durable tally.
func (r *ProctorRepository) CountViolations(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM proctor_events
		 WHERE attempt_id = $1 AND event_type = $2`,
		attemptID, model.ProctorEventViolation,
	).Scan(&count)
	return count, err
}

// ListByAttempt retrieves an attempt's full event log, oldest first.
func (r *ProctorRepository) ListByAttempt(ctx context.Context, attemptID uuid.UUID) ([]model.ProctorEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, exam_id, student_id, event_type, details, recorded_at
		 FROM proctor_events
		 WHERE attempt_id = $1
		 ORDER BY recorded_at, id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.ProctorEvent
	for rows.Next() {
		var e model.ProctorEvent
		if err := rows.Scan(&e.ID, &e.AttemptID, &e.ExamID, &e.StudentID,
			&e.EventType, &e.Details, &e.RecordedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetAnsweredCounts returns, per student, how many questions are answered in
// the given exam. Feeds the invigilation snapshot.
func (r *ProctorRepository) GetAnsweredCounts(ctx context.Context, examID uuid.UUID) (map[int]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.student_id, COUNT(resp.id)
		 FROM attempts a
		 JOIN responses resp ON resp.attempt_id = a.id
		 WHERE a.exam_id = $1
		 GROUP BY a.student_id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var sid int
		var count int64
		if err := rows.Scan(&sid, &count); err != nil {
			return nil, err
		}
		counts[sid] = count
	}
	return counts, rows.Err()
}

// GetViolationCounts returns, per student, the number of persisted violation
// events in the given exam.
func (r *ProctorRepository) GetViolationCounts(ctx context.Context, examID uuid.UUID) (map[int]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, COUNT(*)
		 FROM proctor_events
		 WHERE exam_id = $1 AND event_type = $2
		 GROUP BY student_id`, examID, model.ProctorEventViolation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var sid int
		var count int64
		if err := rows.Scan(&sid, &count); err != nil {
			return nil, err
		}
		counts[sid] = count
	}
	return counts, rows.Err()
}
