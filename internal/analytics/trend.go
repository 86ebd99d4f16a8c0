package analytics

import (
	"sort"
	"time"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// MonthlyPoint is one month of the application trend.
type MonthlyPoint struct {
	Month        string `json:"month"`
	Applications int64  `json:"applications"`
}

const monthLabelLayout = "Jan 2006"

// MonthlyTrend buckets applications by the UTC calendar month of AppliedAt. Months
// without applications are absent; buckets are ordered by (year, month).
func MonthlyTrend(applications []models.Application) []MonthlyPoint {
	buckets := make(map[int]int64)
	for _, application := range applications {
		if application.AppliedAt.IsZero() {
			continue
		}
		applied := application.AppliedAt.UTC()
		buckets[applied.Year()*12+int(applied.Month())-1]++
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	points := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		month := time.Date(key/12, time.Month(key%12+1), 1, 0, 0, 0, 0, time.UTC)
		points = append(points, MonthlyPoint{Month: month.Format(monthLabelLayout), Applications: buckets[key]})
	}
	return points
}
