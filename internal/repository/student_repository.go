package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
)

// StudentRepository handles roster data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, admission_no, name, father_name, campus, board, technology, semester,
	status, password_hash, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.AdmissionNo, &s.Name, &s.FatherName, &s.Campus, &s.Board,
		&s.Technology, &s.Semester, &s.Status, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByAdmissionNo retrieves one student by admission number.
func (r *StudentRepository) GetByAdmissionNo(ctx context.Context, admissionNo string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE admission_no = $1`, admissionNo))
}

// GetByID retrieves one student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// UpsertByAdmissionNo inserts or refreshes one roster row, keyed on
// admission number. Returns true when a new row was created. The password
// hash is written only on insert; imports never reset existing credentials.
func (r *StudentRepository) UpsertByAdmissionNo(ctx context.Context, s *model.Student) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (admission_no, name, father_name, campus, board, technology, semester, status, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (admission_no) DO UPDATE SET
			name = EXCLUDED.name,
			father_name = EXCLUDED.father_name,
			campus = EXCLUDED.campus,
			board = EXCLUDED.board,
			technology = EXCLUDED.technology,
			semester = EXCLUDED.semester,
			status = EXCLUDED.status,
			updated_at = NOW()
		 RETURNING id, (xmax = 0)`,
		s.AdmissionNo, s.Name, s.FatherName, s.Campus, s.Board, s.Technology,
		s.Semester, s.Status, s.PasswordHash,
	).Scan(&s.ID, &inserted)
	return inserted, err
}
