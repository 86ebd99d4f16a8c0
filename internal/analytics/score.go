package analytics

import (
	"fmt"
	"math"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// AcceptedOfferStatuses are the application statuses that count as a secured offer.
var AcceptedOfferStatuses = []string{
	models.ApplicationStatusAccepted,
	models.ApplicationStatusOffered,
	models.ApplicationStatusHired,
	models.ApplicationStatusInterning,
	models.ApplicationStatusSelected,
}

// EngagedStatuses mark an application that is progressing but not yet a placement.
var EngagedStatuses = []string{
	models.ApplicationStatusInterviewScheduled,
	models.ApplicationStatusInterviewed,
	models.ApplicationStatusApproved,
}

// SuccessScoring holds the tunable constants of the success score.
type SuccessScoring struct {
	EngagementWeight float64
	RateCap          float64
}

// DefaultSuccessScoring credits engagement at a quarter weight and caps the rate at 98.
var DefaultSuccessScoring = SuccessScoring{EngagementWeight: 0.25, RateCap: 98}

// Validate rejects weights and caps that would push the rate outside 0..100.
func (s SuccessScoring) Validate() error {
	if s.EngagementWeight < 0 || math.IsNaN(s.EngagementWeight) {
		return fmt.Errorf("engagement weight must not be negative")
	}
	if s.RateCap < 0 || s.RateCap > 100 || math.IsNaN(s.RateCap) {
		return fmt.Errorf("success rate cap must be within 0..100")
	}
	return nil
}

// SuccessInputs are the counts feeding the success score.
type SuccessInputs struct {
	TotalStudents   int64
	PlacedStudents  int64
	VerifiedRecords int64
	AcceptedOffers  int64
	EngagedStudents int64
}

// SuccessScore is the outcome of scoring.
type SuccessScore struct {
	ProfessionalWins int64
	RawScore         float64
	SuccessRate      int64
}

// Score computes the capped success rate. Professional wins take the best of the
// three placement signals; engaged students add partial credit.
func (s SuccessScoring) Score(in SuccessInputs) SuccessScore {
	wins := max(in.PlacedStudents, in.VerifiedRecords, in.AcceptedOffers)
	raw := float64(wins) + s.EngagementWeight*float64(in.EngagedStudents)

	result := SuccessScore{ProfessionalWins: wins, RawScore: raw}
	if in.TotalStudents <= 0 {
		return result
	}

	rate := math.Round(100 * raw / float64(in.TotalStudents))
	rate = math.Min(math.Floor(s.RateCap), rate)
	if rate < 0 {
		rate = 0
	}
	result.SuccessRate = int64(rate)
	return result
}

// CountPlaced counts students flagged as placed.
func CountPlaced(students []models.Student) int64 {
	var placed int64
	for _, student := range students {
		if student.Placed() {
			placed++
		}
	}
	return placed
}

// CountEngaged counts distinct students with at least one engaged application.
func CountEngaged(applications []models.Application) int64 {
	engaged := make(map[string]struct{})
	for _, application := range applications {
		if containsStatus(EngagedStatuses, application.Status) {
			engaged[application.StudentID] = struct{}{}
		}
	}
	return int64(len(engaged))
}

// CountWithStatus counts applications whose status is one of statuses.
func CountWithStatus(applications []models.Application, statuses []string) int64 {
	var count int64
	for _, application := range applications {
		if containsStatus(statuses, application.Status) {
			count++
		}
	}
	return count
}

func containsStatus(statuses []string, status string) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
