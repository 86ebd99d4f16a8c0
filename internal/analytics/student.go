package analytics

import (
	"math"
	"strings"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// feedbackScale converts a 1..5 feedback rating onto the 1..10 record scale.
const feedbackScale = 2

// AverageRating merges feedback ratings (doubled) and record overall ratings into one
// 1..10 pool and returns the mean rounded to one decimal. Missing ratings are ignored.
func AverageRating(feedback []models.Feedback, records []models.PerformanceRecord) float64 {
	pool := make([]float64, 0, len(feedback)+len(records))
	for _, item := range feedback {
		if item.Rating > 0 {
			pool = append(pool, item.Rating*feedbackScale)
		}
	}
	for _, record := range records {
		if record.OverallRating > 0 {
			pool = append(pool, record.OverallRating)
		}
	}
	if len(pool) == 0 {
		return 0
	}

	var sum float64
	for _, rating := range pool {
		sum += rating
	}
	return math.Round(sum/float64(len(pool))*10) / 10
}

// AcquiredSkills unions newly acquired skills across records in first-seen order.
func AcquiredSkills(records []models.PerformanceRecord) []string {
	skills := newOrderedSet()
	for _, record := range records {
		for _, skill := range record.NewSkillsAcquired {
			skills.add(skill)
		}
	}
	return skills.items
}

// SuggestionSkills derives developed skills from feedback suggestion text. Snapshot
// data carries no performance records, so this is the degraded-mode source.
func SuggestionSkills(feedback []models.Feedback) []string {
	skills := newOrderedSet()
	for _, item := range feedback {
		skills.add(item.Suggestions)
	}
	return skills.items
}

// CertificateBadges synthesizes one badge per record with an issued certificate.
func CertificateBadges(records []models.PerformanceRecord) []models.Badge {
	badges := make([]models.Badge, 0)
	for _, record := range records {
		if !record.HasCertificate() {
			continue
		}
		badges = append(badges, models.Badge{
			ID:   "CERT-" + record.ExternalID,
			Name: "Internship Certificate - " + record.Company,
			Type: "certificate",
			Date: record.Certificate.GeneratedAt,
		})
	}
	return badges
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: make([]string, 0)}
}

func (s *orderedSet) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}
