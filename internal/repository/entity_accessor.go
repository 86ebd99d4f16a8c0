package repository

import (
	"context"
	"errors"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// Mode identifies the data source behind an EntityAccessor.
type Mode string

const (
	// ModeLive reads from the queryable placement store.
	ModeLive Mode = "live"
	// ModeSnapshot reads a point-in-time copy loaded from disk.
	ModeSnapshot Mode = "snapshot"
)

// ErrNotFound is returned by point lookups when no record carries the identifier.
var ErrNotFound = errors.New("record not found")

// ApplicationFilter narrows ListApplications. Zero values do not filter.
type ApplicationFilter struct {
	StudentID string
	// InternshipIDs restricts to the given internships when non-nil. An empty,
	// non-nil slice matches nothing.
	InternshipIDs []string
	Statuses      []string
}

// Matches reports whether the application satisfies the filter.
func (f ApplicationFilter) Matches(application models.Application) bool {
	if f.StudentID != "" && application.StudentID != f.StudentID {
		return false
	}
	if f.InternshipIDs != nil && !contains(f.InternshipIDs, application.InternshipID) {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, application.Status) {
		return false
	}
	return true
}

// InternshipFilter narrows ListInternships.
type InternshipFilter struct {
	// OwnerID matches internships the recruiter posted or submitted.
	OwnerID string
}

// Matches reports whether the internship satisfies the filter.
func (f InternshipFilter) Matches(internship models.Internship) bool {
	if f.OwnerID == "" {
		return true
	}
	return internship.OwnedBy(f.OwnerID)
}

// FeedbackFilter narrows ListFeedback.
type FeedbackFilter struct {
	StudentID string
}

// Matches reports whether the feedback satisfies the filter.
func (f FeedbackFilter) Matches(feedback models.Feedback) bool {
	return f.StudentID == "" || feedback.StudentID == f.StudentID
}

// PerformanceRecordFilter narrows ListPerformanceRecords.
type PerformanceRecordFilter struct {
	StudentID          string
	Statuses           []string
	VerificationStatus string
}

// Matches reports whether the record satisfies the filter.
func (f PerformanceRecordFilter) Matches(record models.PerformanceRecord) bool {
	if f.StudentID != "" && record.StudentID != f.StudentID {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, record.Status) {
		return false
	}
	if f.VerificationStatus != "" && record.VerificationStatus != f.VerificationStatus {
		return false
	}
	return true
}

// EntityAccessor is the read contract shared by the live store and the snapshot.
//
// List results are in storage order, except applications which are ordered by
// AppliedAt descending (ties in storage order). Point lookups match the external
// identifier and return ErrNotFound when nothing matches.
type EntityAccessor interface {
	Mode() Mode
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListInternships(ctx context.Context, filter InternshipFilter) ([]models.Internship, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	ListFeedback(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error)
	ListPerformanceRecords(ctx context.Context, filter PerformanceRecordFilter) ([]models.PerformanceRecord, error)
	CountRecruiters(ctx context.Context) (int64, error)
	FindStudentByID(ctx context.Context, id string) (models.Student, error)
	FindInternshipByID(ctx context.Context, id string) (models.Internship, error)
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
