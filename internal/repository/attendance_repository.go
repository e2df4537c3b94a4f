package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRecord is one exam attendance row: marked once per (exam,
// student) when the attempt is created.
type AttendanceRecord struct {
	ID          int64     `json:"id"`
	ExamID      uuid.UUID `json:"exam_id"`
	StudentID   int       `json:"student_id"`
	AttemptID   uuid.UUID `json:"attempt_id"`
	IPAddress   string    `json:"ip_address,omitempty"`
	MarkedAt    time.Time `json:"marked_at"`
	AdmissionNo string    `json:"admission_no,omitempty"`
	StudentName string    `json:"student_name,omitempty"`
}

// AttendanceRepository handles exam attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Mark records attendance for one (exam, student) pair. Idempotent: a
// repeated mark for the same pair is a no-op.
func (r *AttendanceRepository) Mark(ctx context.Context, examID uuid.UUID, studentID int, attemptID uuid.UUID, ip string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exam_attendance (exam_id, student_id, attempt_id, ip_address)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (exam_id, student_id) DO NOTHING`,
		examID, studentID, attemptID, ip)
	return err
}

// ListByExam retrieves the attendance sheet of an exam with roster identity.
func (r *AttendanceRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ea.id, ea.exam_id, ea.student_id, ea.attempt_id, ea.ip_address, ea.marked_at,
		        s.admission_no, s.name
		 FROM exam_attendance ea
		 JOIN students s ON s.id = ea.student_id
		 WHERE ea.exam_id = $1
		 ORDER BY ea.marked_at`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []AttendanceRecord
	for rows.Next() {
		var rec AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.ExamID, &rec.StudentID, &rec.AttemptID,
			&rec.IPAddress, &rec.MarkedAt, &rec.AdmissionNo, &rec.StudentName); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
