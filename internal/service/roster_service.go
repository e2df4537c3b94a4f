package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// rosterColumns is the expected spreadsheet header, in order. Header
// matching is case-insensitive; extra trailing columns are ignored.
var rosterColumns = []string{
	"admission_no", "name", "father_name", "campus", "board", "technology", "semester", "status",
}

// RosterService imports the student roster from spreadsheet uploads.
// Imports are strictly non-interactive: every row yields an outcome and the
// caller receives the complete list.
type RosterService struct {
	auth        *AuthService
	studentRepo *repository.StudentRepository
	log         zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(auth *AuthService, studentRepo *repository.StudentRepository, log zerolog.Logger) *RosterService {
	return &RosterService{
		auth:        auth,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "roster_service").Logger(),
	}
}

// ImportWorkbook reads an xlsx roster from r and upserts every data row,
// keyed on admission number. New students get their admission number as the
// initial password; existing students keep their credentials.
func (s *RosterService) ImportWorkbook(ctx context.Context, r io.Reader) ([]model.RowOutcome, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	if err := checkRosterHeader(rows[0]); err != nil {
		return nil, err
	}

	outcomes := make([]model.RowOutcome, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		outcomes = append(outcomes, s.importRow(ctx, rowNum, row))
	}

	s.log.Info().Int("rows", len(outcomes)).Msg("Roster import finished")
	return outcomes, nil
}

func (s *RosterService) importRow(ctx context.Context, rowNum int, row []string) model.RowOutcome {
	student, err := parseRosterRow(row)
	if err != nil {
		return model.RowOutcome{Row: rowNum, Outcome: "skipped", Message: err.Error()}
	}

	// Initial password is the admission number; imports never reset an
	// existing hash.
	hash, err := s.auth.HashPassword(student.AdmissionNo)
	if err != nil {
		return model.RowOutcome{Row: rowNum, Outcome: "skipped", Message: fmt.Sprintf("hash password: %v", err)}
	}
	student.PasswordHash = hash

	inserted, err := s.studentRepo.UpsertByAdmissionNo(ctx, student)
	if err != nil {
		return model.RowOutcome{Row: rowNum, Outcome: "skipped", Message: fmt.Sprintf("store row: %v", err)}
	}
	if inserted {
		return model.RowOutcome{Row: rowNum, Outcome: "imported"}
	}
	return model.RowOutcome{Row: rowNum, Outcome: "updated"}
}

func checkRosterHeader(header []string) error {
	if len(header) < len(rosterColumns) {
		return fmt.Errorf("header has %d columns, want %d (%s)",
			len(header), len(rosterColumns), strings.Join(rosterColumns, ", "))
	}
	for i, want := range rosterColumns {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseRosterRow(row []string) (*model.Student, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	admissionNo := cell(0)
	name := cell(1)
	if admissionNo == "" {
		return nil, fmt.Errorf("missing admission_no")
	}
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}

	status := cell(7)
	if status == "" {
		status = "active"
	}

	return &model.Student{
		AdmissionNo: admissionNo,
		Name:        name,
		FatherName:  cell(2),
		Campus:      cell(3),
		Board:       cell(4),
		Technology:  cell(5),
		Semester:    cell(6),
		Status:      status,
	}, nil
}
