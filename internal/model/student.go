package model

import "time"

// Student is a roster record. Campus/board/technology/semester are free-text
// upstream fields matched fuzzily against exam scope filters.
type Student struct {
	ID           int       `json:"id"`
	AdmissionNo  string    `json:"admission_no"`
	Name         string    `json:"name"`
	FatherName   string    `json:"father_name,omitempty"`
	Campus       string    `json:"campus"`
	Board        string    `json:"board"`
	Technology   string    `json:"technology"`
	Semester     string    `json:"semester"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	AdmissionNo string `json:"admission_no" binding:"required,min=2,max=30"`
	Password    string `json:"password" binding:"required,min=4,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// RowOutcome reports the result of one spreadsheet row in a bulk roster
// import. The import path is non-interactive by design: callers receive the
// full outcome list instead of any prompt or dialog.
type RowOutcome struct {
	Row     int    `json:"row"`
	Outcome string `json:"outcome"` // imported | updated | skipped
	Message string `json:"message,omitempty"`
}
