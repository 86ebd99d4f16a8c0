package dto

import (
	"time"

	"github.com/noah-isme/placement-analytics/internal/analytics"
	"github.com/noah-isme/placement-analytics/internal/models"
)

// AdminOverview summarises institution-wide placement counts.
type AdminOverview struct {
	TotalStudents     int64 `json:"totalStudents"`
	ActiveInternships int64 `json:"activeInternships"`
	TotalApplications int64 `json:"totalApplications"`
	PlacedStudents    int64 `json:"placedStudents"`
	UnplacedStudents  int64 `json:"unplacedStudents"`
	TotalRecruiters   int64 `json:"totalRecruiters"`
	VerifiedIPPs      int64 `json:"verifiedIPPs"`
	AcceptedOffers    int64 `json:"acceptedOffers"`
	PlacementRate     int64 `json:"placementRate"`
	SuccessRate       int64 `json:"successRate"`
}

// ActivityItem is one recent application on the admin feed. Company is always
// present, even when the internship records none.
type ActivityItem struct {
	ID         string    `json:"id"`
	Student    string    `json:"student"`
	Internship string    `json:"internship"`
	Company    string    `json:"company"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// RecruiterActivityItem is one recent application on a recruiter's feed. Every
// internship on it belongs to the recruiter's own company.
type RecruiterActivityItem struct {
	ID         string    `json:"id"`
	Student    string    `json:"student"`
	Internship string    `json:"internship"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// InterviewItem is one upcoming interview.
type InterviewItem struct {
	ID         string    `json:"id"`
	Student    string    `json:"student"`
	Internship string    `json:"internship"`
	Company    string    `json:"company"`
	Date       time.Time `json:"date"`
	Mode       string    `json:"mode"`
}

// AdminAnalyticsResponse is the institution admin dashboard payload.
type AdminAnalyticsResponse struct {
	Overview             AdminOverview             `json:"overview"`
	ApplicationsByStatus analytics.StatusBreakdown `json:"applicationsByStatus"`
	StudentsByDepartment map[string]int64          `json:"studentsByDepartment"`
	RecentActivities     []ActivityItem            `json:"recentActivities"`
	UpcomingInterviews   []InterviewItem           `json:"upcomingInterviews"`
	TopCompanies         []analytics.CompanyCount  `json:"topCompanies"`
	MonthlyTrends        []analytics.MonthlyPoint  `json:"monthlyTrends"`
	SkillsDemand         []analytics.SkillDemand   `json:"skillsDemand"`
	Source               string                    `json:"source"`
	GeneratedAt          time.Time                 `json:"generatedAt"`
	CacheHit             bool                      `json:"cacheHit"`
}

// ApplicationHistoryItem is one entry of a student's application history.
type ApplicationHistoryItem struct {
	ID         string    `json:"id"`
	Internship string    `json:"internship"`
	Company    string    `json:"company"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// StudentAnalyticsResponse is the individual student dashboard payload.
type StudentAnalyticsResponse struct {
	StudentID            string                    `json:"studentId"`
	TotalApplications    int64                     `json:"totalApplications"`
	ApplicationsByStatus analytics.StatusBreakdown `json:"applicationsByStatus"`
	AverageRating        float64                   `json:"averageRating"`
	SkillsDeveloped      []string                  `json:"skillsDeveloped"`
	Skills               []string                  `json:"skills"`
	TotalBadges          int64                     `json:"totalBadges"`
	Badges               []models.Badge            `json:"badges"`
	ApplicationHistory   []ApplicationHistoryItem  `json:"applicationHistory"`
	Feedback             []models.Feedback         `json:"feedback"`
	Source               string                    `json:"source"`
	GeneratedAt          time.Time                 `json:"generatedAt"`
	CacheHit             bool                      `json:"cacheHit"`
}

// RecruiterOverview summarises a recruiter's internships.
type RecruiterOverview struct {
	TotalInternships   int64 `json:"totalInternships"`
	ActiveInternships  int64 `json:"activeInternships"`
	PendingInternships int64 `json:"pendingInternships"`
	TotalApplications  int64 `json:"totalApplications"`
}

// InternshipApplications counts applications for one internship.
type InternshipApplications struct {
	InternshipID         string `json:"internshipId"`
	Title                string `json:"title"`
	TotalApplications    int64  `json:"totalApplications"`
	ApprovedApplications int64  `json:"approvedApplications"`
	RejectedApplications int64  `json:"rejectedApplications"`
}

// PerformanceMetrics describes how a recruiter handles incoming applications.
type PerformanceMetrics struct {
	AverageApplicationsPerInternship int64 `json:"averageApplicationsPerInternship"`
	ApprovalRate                     int64 `json:"approvalRate"`
	ResponseTime                     int64 `json:"responseTime"`
}

// RecruiterAnalyticsResponse is the recruiter dashboard payload.
type RecruiterAnalyticsResponse struct {
	Overview                 RecruiterOverview         `json:"overview"`
	ApplicationsByStatus     analytics.StatusBreakdown `json:"applicationsByStatus"`
	ApplicationsByInternship []InternshipApplications  `json:"applicationsByInternship"`
	RecentActivities         []RecruiterActivityItem   `json:"recentActivities"`
	PerformanceMetrics       PerformanceMetrics        `json:"performanceMetrics"`
	MonthlyTrends            []analytics.MonthlyPoint  `json:"monthlyTrends"`
	Source                   string                    `json:"source"`
	GeneratedAt              time.Time                 `json:"generatedAt"`
	CacheHit                 bool                      `json:"cacheHit"`
}
