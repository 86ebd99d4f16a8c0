package models

import (
	"time"

	"gorm.io/datatypes"
)

// Internship lifecycle statuses.
const (
	InternshipStatusSubmitted = "submitted"
	InternshipStatusActive    = "active"
	InternshipStatusClosed    = "closed"
)

// Internship is an opening posted or submitted by a recruiter.
type Internship struct {
	ID             uint                        `gorm:"primaryKey" json:"-"`
	ExternalID     string                      `gorm:"column:external_id;size:64;uniqueIndex;not null" json:"id"`
	Company        string                      `gorm:"size:255;index" json:"company"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Status         string                      `gorm:"size:32;index" json:"status"`
	RequiredSkills datatypes.JSONSlice[string] `json:"requiredSkills"`
	PostedBy       string                      `gorm:"size:64;index" json:"postedBy,omitempty"`
	SubmittedBy    string                      `gorm:"size:64;index" json:"submittedBy,omitempty"`
	CreatedAt      time.Time                   `json:"-"`
	UpdatedAt      time.Time                   `json:"-"`
}

// OwnedBy reports whether the recruiter posted or submitted the internship.
func (i Internship) OwnedBy(recruiterID string) bool {
	if recruiterID == "" {
		return false
	}
	return i.PostedBy == recruiterID || i.SubmittedBy == recruiterID
}
