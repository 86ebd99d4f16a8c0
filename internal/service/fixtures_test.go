package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type staticSelector struct {
	source repository.EntityAccessor
}

func (s staticSelector) Select(context.Context) repository.EntityAccessor {
	return s.source
}

// countingAccessor records point lookups and can inject store failures.
type countingAccessor struct {
	repository.EntityAccessor

	mu            sync.Mutex
	studentHits   map[string]int
	internHits    map[string]int
	lookupErr     error
	listStudentsE error
}

func newCountingAccessor(inner repository.EntityAccessor) *countingAccessor {
	return &countingAccessor{
		EntityAccessor: inner,
		studentHits:    make(map[string]int),
		internHits:     make(map[string]int),
	}
}

func (c *countingAccessor) ListStudents(ctx context.Context) ([]models.Student, error) {
	if c.listStudentsE != nil {
		return nil, c.listStudentsE
	}
	return c.EntityAccessor.ListStudents(ctx)
}

func (c *countingAccessor) FindStudentByID(ctx context.Context, id string) (models.Student, error) {
	c.mu.Lock()
	c.studentHits[id]++
	c.mu.Unlock()
	if c.lookupErr != nil {
		return models.Student{}, c.lookupErr
	}
	return c.EntityAccessor.FindStudentByID(ctx, id)
}

func (c *countingAccessor) FindInternshipByID(ctx context.Context, id string) (models.Internship, error) {
	c.mu.Lock()
	c.internHits[id]++
	c.mu.Unlock()
	return c.EntityAccessor.FindInternshipByID(ctx, id)
}

type placementFixture struct {
	students     []models.Student
	internships  []models.Internship
	applications []models.Application
	feedback     []models.Feedback
	records      []models.PerformanceRecord
	recruiters   []models.Recruiter
}

var fixtureBase = time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)

func newPlacementFixture() placementFixture {
	processed24 := fixtureBase.Add(24 * time.Hour)
	processed48 := fixtureBase.Add(24*time.Hour + 48*time.Hour)
	interview := fixtureBase.AddDate(0, 2, 0)
	certifiedAt := fixtureBase.AddDate(0, 1, 0)

	return placementFixture{
		students: []models.Student{
			{
				ExternalID:   "STU-1",
				Name:         "Ana Putri",
				Department:   "CSE",
				Skills:       datatypes.JSONSlice[string]{"Go", "SQL"},
				Achievements: datatypes.JSONSlice[models.Badge]{{ID: "B-1", Name: "Hackathon Winner", Type: "award"}},
			},
			{ExternalID: "STU-2", Name: "Bima Sakti", Department: "ECE", IsPlaced: true},
		},
		internships: []models.Internship{
			{ExternalID: "INT-A", Company: "Acme", Title: "Backend Intern", Status: models.InternshipStatusActive, PostedBy: "REC-1", RequiredSkills: datatypes.JSONSlice[string]{"Go", "SQL"}},
			{ExternalID: "INT-B", Company: "Beta", Title: "Data Intern", Status: models.InternshipStatusSubmitted, SubmittedBy: "REC-1", RequiredSkills: datatypes.JSONSlice[string]{"Python"}},
			{ExternalID: "INT-C", Company: "Acme", Title: "Mobile Intern", Status: models.InternshipStatusClosed, PostedBy: "REC-2"},
		},
		applications: []models.Application{
			{ExternalID: "APP-1", StudentID: "STU-1", InternshipID: "INT-A", Status: models.ApplicationStatusApproved, AppliedAt: fixtureBase, ProcessedAt: &processed24},
			{ExternalID: "APP-2", StudentID: "STU-1", InternshipID: "INT-B", Status: models.ApplicationStatusRejected, AppliedAt: fixtureBase.Add(24 * time.Hour), ProcessedAt: &processed48},
			{ExternalID: "APP-3", StudentID: "STU-2", InternshipID: "INT-A", Status: models.ApplicationStatusInterviewScheduled, AppliedAt: fixtureBase.AddDate(0, 1, 0), InterviewScheduled: models.InterviewSchedule{Date: &interview, Mode: "online"}},
			{ExternalID: "APP-4", StudentID: "STU-404", InternshipID: "INT-C", Status: models.ApplicationStatusApplied, AppliedAt: fixtureBase.AddDate(0, 1, 2)},
		},
		feedback: []models.Feedback{
			{ExternalID: "FB-1", StudentID: "STU-1", Rating: 4, Suggestions: "Kubernetes"},
			{ExternalID: "FB-2", StudentID: "STU-1", Rating: 5, Suggestions: "System design"},
		},
		records: []models.PerformanceRecord{
			{
				ExternalID:         "IPP-1",
				StudentID:          "STU-1",
				InternshipID:       "INT-A",
				Company:            "Acme",
				Status:             models.RecordStatusPublished,
				VerificationStatus: models.RecordStatusVerified,
				OverallRating:      9,
				NewSkillsAcquired:  datatypes.JSONSlice[string]{"gRPC", "Docker"},
				Certificate:        models.Certificate{URL: "https://certs.example.com/IPP-1.pdf", GeneratedAt: &certifiedAt},
			},
			{ExternalID: "IPP-2", StudentID: "STU-1", Status: models.RecordStatusDraft, OverallRating: 2},
		},
		recruiters: []models.Recruiter{
			{ExternalID: "REC-1", Name: "Rina", Company: "Acme"},
			{ExternalID: "REC-2", Name: "Dodi", Company: "Beta"},
		},
	}
}

func (f placementFixture) snapshot() *repository.SnapshotAccessor {
	return repository.NewSnapshotAccessor(f.students, f.internships, f.applications, f.feedback)
}

func (f placementFixture) live(t *testing.T) repository.EntityAccessor {
	t.Helper()
	db := setupTestDB(t)
	for _, rows := range []interface{}{&f.students, &f.internships, &f.applications, &f.feedback, &f.records, &f.recruiters} {
		require.NoError(t, db.Create(rows).Error)
	}
	return repository.NewLiveAccessor(db)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}
