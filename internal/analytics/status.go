package analytics

import "github.com/noah-isme/placement-analytics/internal/models"

// StatusBreakdown is the fixed-shape application histogram. Every key is always
// present in the JSON payload, including zero counts.
type StatusBreakdown struct {
	Applied               int64 `json:"applied"`
	PendingMentorApproval int64 `json:"pending_mentor_approval"`
	Approved              int64 `json:"approved"`
	Rejected              int64 `json:"rejected"`
	InterviewScheduled    int64 `json:"interview_scheduled"`
	Interviewed           int64 `json:"interviewed"`
	Offered               int64 `json:"offered"`
	Accepted              int64 `json:"accepted"`
	Declined              int64 `json:"declined"`
}

// BreakdownByStatus counts applications per status. Statuses outside the fixed
// histogram (hired, interning, selected, unknown values) are not counted.
func BreakdownByStatus(applications []models.Application) StatusBreakdown {
	var breakdown StatusBreakdown
	for _, application := range applications {
		if counter := breakdown.slot(application.Status); counter != nil {
			*counter++
		}
	}
	return breakdown
}

// Total sums every bucket.
func (b StatusBreakdown) Total() int64 {
	return b.Applied + b.PendingMentorApproval + b.Approved + b.Rejected +
		b.InterviewScheduled + b.Interviewed + b.Offered + b.Accepted + b.Declined
}

func (b *StatusBreakdown) slot(status string) *int64 {
	switch status {
	case models.ApplicationStatusApplied:
		return &b.Applied
	case models.ApplicationStatusPendingMentorApproval:
		return &b.PendingMentorApproval
	case models.ApplicationStatusApproved:
		return &b.Approved
	case models.ApplicationStatusRejected:
		return &b.Rejected
	case models.ApplicationStatusInterviewScheduled:
		return &b.InterviewScheduled
	case models.ApplicationStatusInterviewed:
		return &b.Interviewed
	case models.ApplicationStatusOffered:
		return &b.Offered
	case models.ApplicationStatusAccepted:
		return &b.Accepted
	case models.ApplicationStatusDeclined:
		return &b.Declined
	default:
		return nil
	}
}

// DepartmentHistogram counts students per department value as it occurs.
func DepartmentHistogram(students []models.Student) map[string]int64 {
	histogram := make(map[string]int64)
	for _, student := range students {
		histogram[student.Department]++
	}
	return histogram
}
