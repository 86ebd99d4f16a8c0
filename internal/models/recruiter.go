package models

import "time"

// Recruiter is a company user that posts internships.
type Recruiter struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ExternalID string    `gorm:"column:external_id;size:64;uniqueIndex;not null" json:"id"`
	Name       string    `gorm:"size:255" json:"name"`
	Company    string    `gorm:"size:255" json:"company"`
	CreatedAt  time.Time `json:"-"`
}
