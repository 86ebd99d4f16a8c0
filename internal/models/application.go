package models

import "time"

// Application pipeline statuses.
const (
	ApplicationStatusApplied               = "applied"
	ApplicationStatusPendingMentorApproval = "pending_mentor_approval"
	ApplicationStatusApproved              = "approved"
	ApplicationStatusRejected              = "rejected"
	ApplicationStatusInterviewScheduled    = "interview_scheduled"
	ApplicationStatusInterviewed           = "interviewed"
	ApplicationStatusOffered               = "offered"
	ApplicationStatusAccepted              = "accepted"
	ApplicationStatusDeclined              = "declined"
	ApplicationStatusHired                 = "hired"
	ApplicationStatusInterning             = "interning"
	ApplicationStatusSelected              = "selected"
)

// InterviewSchedule describes a booked interview slot.
type InterviewSchedule struct {
	Date *time.Time `json:"date,omitempty"`
	Mode string     `gorm:"size:32" json:"mode,omitempty"`
}

// Application links a student to an internship through their external identifiers.
type Application struct {
	ID                 uint              `gorm:"primaryKey" json:"-"`
	ExternalID         string            `gorm:"column:external_id;size:64;uniqueIndex;not null" json:"id"`
	StudentID          string            `gorm:"size:64;index" json:"studentId"`
	InternshipID       string            `gorm:"size:64;index" json:"internshipId"`
	Status             string            `gorm:"size:40;index" json:"status"`
	AppliedAt          time.Time         `gorm:"index" json:"appliedAt"`
	ProcessedAt        *time.Time        `json:"processedAt,omitempty"`
	InterviewScheduled InterviewSchedule `gorm:"embedded;embeddedPrefix:interview_" json:"interviewScheduled"`
	CreatedAt          time.Time         `json:"-"`
	UpdatedAt          time.Time         `json:"-"`
}
