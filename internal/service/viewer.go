package service

import (
	"errors"
	"strings"
)

// Viewer roles understood by the analytics services.
const (
	RoleAdmin     = "admin"
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

var (
	// ErrAccessDenied indicates the viewer does not own the requested scope.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidStudentID indicates an empty or malformed student identifier.
	ErrInvalidStudentID = errors.New("invalid student id")
)

// Viewer is the already-authenticated caller. Identity resolution happens upstream;
// the services only decide whether the viewer owns the requested scope.
type Viewer struct {
	ID   string
	Role string
}

func (v Viewer) role() string {
	return strings.ToLower(strings.TrimSpace(v.Role))
}

// IsAdmin reports whether the viewer has institution-wide access.
func (v Viewer) IsAdmin() bool {
	return v.role() == RoleAdmin
}

// CanViewStudent reports whether the viewer may read the student's analytics.
func (v Viewer) CanViewStudent(studentID string) bool {
	if v.IsAdmin() {
		return true
	}
	return v.role() == RoleStudent && v.ID != "" && v.ID == studentID
}

// RecruiterScope returns the recruiter identity whose internships the viewer may see.
func (v Viewer) RecruiterScope() (string, bool) {
	if v.role() != RoleRecruiter || strings.TrimSpace(v.ID) == "" {
		return "", false
	}
	return v.ID, true
}
