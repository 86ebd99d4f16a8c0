package models

import "time"

// Feedback is a mentor or recruiter rating (1..5) about a student.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ExternalID   string    `gorm:"column:external_id;size:64;index" json:"id,omitempty"`
	StudentID    string    `gorm:"size:64;index" json:"studentId"`
	InternshipID string    `gorm:"size:64" json:"internshipId,omitempty"`
	Rating       float64   `json:"rating"`
	Suggestions  string    `gorm:"type:text" json:"suggestions,omitempty"`
	Comments     string    `gorm:"type:text" json:"comments,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// TableName keeps the singular collection name used by the placement portal.
func (Feedback) TableName() string {
	return "feedback"
}
