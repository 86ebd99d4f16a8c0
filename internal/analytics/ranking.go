package analytics

import (
	"sort"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// SkillDemand is one entry of the skills demand ranking.
type SkillDemand struct {
	Skill  string `json:"skill"`
	Demand int64  `json:"demand"`
}

// CompanyCount is one entry of the top companies ranking.
type CompanyCount struct {
	Company      string `json:"company"`
	Applications int64  `json:"applications"`
}

// Ranking limits used by the dashboards.
const (
	SkillsDemandLimit = 10
	TopCompaniesLimit = 5
)

// tally counts keys while remembering the order each key was first seen.
type tally struct {
	order  []string
	counts map[string]int64
}

func newTally() *tally {
	return &tally{counts: make(map[string]int64)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns keys ordered by count descending; equal counts keep first-seen order.
func (t *tally) top(limit int) []string {
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if limit >= 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// SkillsDemand ranks required skills across internships.
func SkillsDemand(internships []models.Internship, limit int) []SkillDemand {
	counter := newTally()
	for _, internship := range internships {
		for _, skill := range internship.RequiredSkills {
			counter.add(skill)
		}
	}

	keys := counter.top(limit)
	result := make([]SkillDemand, 0, len(keys))
	for _, skill := range keys {
		result = append(result, SkillDemand{Skill: skill, Demand: counter.counts[skill]})
	}
	return result
}

// TopCompanies joins applications to internships by external id and ranks companies
// by application count. Applications whose internship is unknown are skipped.
func TopCompanies(applications []models.Application, internships []models.Internship, limit int) []CompanyCount {
	companyByInternship := make(map[string]string, len(internships))
	for _, internship := range internships {
		if _, exists := companyByInternship[internship.ExternalID]; !exists {
			companyByInternship[internship.ExternalID] = internship.Company
		}
	}

	counter := newTally()
	for _, application := range applications {
		company, ok := companyByInternship[application.InternshipID]
		if !ok {
			continue
		}
		counter.add(company)
	}

	keys := counter.top(limit)
	result := make([]CompanyCount, 0, len(keys))
	for _, company := range keys {
		result = append(result, CompanyCount{Company: company, Applications: counter.counts[company]})
	}
	return result
}
