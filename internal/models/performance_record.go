package models

import (
	"time"

	"gorm.io/datatypes"
)

// Performance record statuses.
const (
	RecordStatusDraft     = "draft"
	RecordStatusSubmitted = "submitted"
	RecordStatusVerified  = "verified"
	RecordStatusPublished = "published"
)

// Certificate is the completion certificate issued for a verified record.
type Certificate struct {
	URL         string     `gorm:"size:512" json:"certificateUrl,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
}

// PerformanceRecord is the verified outcome of a completed internship.
type PerformanceRecord struct {
	ID                 uint                        `gorm:"primaryKey" json:"-"`
	ExternalID         string                      `gorm:"column:external_id;size:64;uniqueIndex;not null" json:"id"`
	StudentID          string                      `gorm:"size:64;index" json:"studentId"`
	InternshipID       string                      `gorm:"size:64" json:"internshipId,omitempty"`
	Company            string                      `gorm:"size:255" json:"company,omitempty"`
	Status             string                      `gorm:"size:32;index" json:"status"`
	VerificationStatus string                      `gorm:"size:32;index" json:"verificationStatus,omitempty"`
	OverallRating      float64                     `json:"overallRating"`
	NewSkillsAcquired  datatypes.JSONSlice[string] `json:"newSkillsAcquired"`
	Certificate        Certificate                 `gorm:"embedded;embeddedPrefix:certificate_" json:"certificate"`
	CreatedAt          time.Time                   `json:"-"`
	UpdatedAt          time.Time                   `json:"-"`
}

// HasCertificate reports whether a certificate has been issued.
func (r PerformanceRecord) HasCertificate() bool {
	return r.Certificate.URL != ""
}
