package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// Activity limits used by the dashboards.
const (
	RecentActivityLimit     = 10
	UpcomingInterviewsLimit = 5
)

// RecentApplications returns up to limit applications, newest AppliedAt first.
func RecentApplications(applications []models.Application, limit int) []models.Application {
	sorted := append([]models.Application(nil), applications...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppliedAt.After(sorted[j].AppliedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// UpcomingInterviews returns up to limit applications whose interview date is strictly
// after now, soonest first.
func UpcomingInterviews(applications []models.Application, now time.Time, limit int) []models.Application {
	upcoming := make([]models.Application, 0)
	for _, application := range applications {
		date := application.InterviewScheduled.Date
		if date != nil && date.After(now) {
			upcoming = append(upcoming, application)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].InterviewScheduled.Date.Before(*upcoming[j].InterviewScheduled.Date)
	})
	if limit >= 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// AverageResponseHours averages processedAt - appliedAt, in whole hours, over
// applications that left the "applied" state and carry a processedAt. Zero when
// nothing qualifies.
func AverageResponseHours(applications []models.Application) int64 {
	var total float64
	var count int
	for _, application := range applications {
		if application.Status == models.ApplicationStatusApplied || application.ProcessedAt == nil {
			continue
		}
		total += application.ProcessedAt.Sub(application.AppliedAt).Hours()
		count++
	}
	if count == 0 {
		return 0
	}
	return int64(math.Round(total / float64(count)))
}

// RoundedRatio returns round(numerator / denominator * scale), or zero when the
// denominator is not positive.
func RoundedRatio(numerator, denominator int64, scale float64) int64 {
	if denominator <= 0 {
		return 0
	}
	return int64(math.Round(float64(numerator) / float64(denominator) * scale))
}
