package model

import "time"

// StaffRole controls administrative reach: admins bypass edit-lock windows,
// teachers do not.
type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleTeacher StaffRole = "teacher"
)

// Staff is an administrative user (teacher, invigilator, admin).
type Staff struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	Modules      []string  `json:"modules"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Module permission identifiers carried in staff JWTs. The exam engine only
// checks the ones it owns; the rest belong to sibling subsystems.
const (
	ModuleExams   = "exams"
	ModuleResults = "results"
	ModuleRoster  = "roster"
)

// StaffLoginRequest is the payload for staff authentication.
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=60"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// StaffLoginResponse is returned after successful staff login.
type StaffLoginResponse struct {
	Token string `json:"token"`
	Staff Staff  `json:"staff"`
}
