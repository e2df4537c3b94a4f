package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCheckRosterHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		wantErr bool
	}{
		{
			"exact header",
			[]string{"admission_no", "name", "father_name", "campus", "board", "technology", "semester", "status"},
			false,
		},
		{
			"case and whitespace tolerated",
			[]string{" Admission_No ", "NAME", "father_name", "campus", "board", "technology", "semester", "Status"},
			false,
		},
		{
			"extra trailing columns ignored",
			[]string{"admission_no", "name", "father_name", "campus", "board", "technology", "semester", "status", "notes"},
			false,
		},
		{
			"missing columns rejected",
			[]string{"admission_no", "name"},
			true,
		},
		{
			"wrong column order rejected",
			[]string{"name", "admission_no", "father_name", "campus", "board", "technology", "semester", "status"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRosterHeader(tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkRosterHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRosterRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		s, err := parseRosterRow([]string{
			"GPI-2024-001", "Ahmed Khan", "Rahim Khan", "Main Campus",
			"BTE Peshawar", "Electrical", "3rd Semester", "active",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.AdmissionNo != "GPI-2024-001" || s.Name != "Ahmed Khan" {
			t.Errorf("identity fields wrong: %+v", s)
		}
		if s.Technology != "Electrical" || s.Semester != "3rd Semester" {
			t.Errorf("scope fields wrong: %+v", s)
		}
	})

	t.Run("status defaults to active", func(t *testing.T) {
		s, err := parseRosterRow([]string{"GPI-2024-002", "Bilal Shah", "", "", "", "", ""})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != "active" {
			t.Errorf("status = %q, want active", s.Status)
		}
	})

	t.Run("missing admission number rejected", func(t *testing.T) {
		if _, err := parseRosterRow([]string{"", "Nameless"}); err == nil {
			t.Error("expected error for missing admission_no")
		}
	})

	t.Run("missing name rejected", func(t *testing.T) {
		if _, err := parseRosterRow([]string{"GPI-2024-003", "  "}); err == nil {
			t.Error("expected error for missing name")
		}
	})
}

// Workbook-level failures surface before any storage access, so a service
// with nil repositories is enough here.
func TestImportWorkbookRejectsBadWorkbooks(t *testing.T) {
	svc := &RosterService{}

	t.Run("not a workbook", func(t *testing.T) {
		_, err := svc.ImportWorkbook(context.Background(), bytes.NewReader([]byte("not an xlsx")))
		if err == nil {
			t.Fatal("expected error for invalid workbook bytes")
		}
	})

	t.Run("wrong header", func(t *testing.T) {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		_ = f.SetSheetRow(sheet, "A1", &[]string{"roll_no", "student"})

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatalf("write workbook: %v", err)
		}

		_, err := svc.ImportWorkbook(context.Background(), &buf)
		if err == nil {
			t.Fatal("expected header validation error")
		}
	})
}
