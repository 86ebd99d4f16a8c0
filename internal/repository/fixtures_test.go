package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/placement-analytics/internal/models"
)

type placementFixture struct {
	students     []models.Student
	internships  []models.Internship
	applications []models.Application
	feedback     []models.Feedback
}

func newPlacementFixture() placementFixture {
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	processed := base.Add(30 * time.Hour)

	return placementFixture{
		students: []models.Student{
			{ExternalID: "STU-1", Name: "Ana Putri", Department: "CSE", Skills: datatypes.JSONSlice[string]{"Go"}},
			{ExternalID: "STU-2", Name: "Bima Sakti", Department: "ECE", IsPlaced: true},
		},
		internships: []models.Internship{
			{ExternalID: "INT-A", Company: "Acme", Title: "Backend Intern", Status: models.InternshipStatusActive, PostedBy: "REC-1", RequiredSkills: datatypes.JSONSlice[string]{"Go", "SQL"}},
			{ExternalID: "INT-B", Company: "Beta", Title: "Data Intern", Status: models.InternshipStatusSubmitted, SubmittedBy: "REC-2"},
		},
		applications: []models.Application{
			{ExternalID: "APP-1", StudentID: "STU-1", InternshipID: "INT-A", Status: models.ApplicationStatusApplied, AppliedAt: base},
			{ExternalID: "APP-2", StudentID: "STU-1", InternshipID: "INT-B", Status: models.ApplicationStatusApproved, AppliedAt: base.Add(48 * time.Hour), ProcessedAt: &processed},
			{ExternalID: "APP-3", StudentID: "STU-2", InternshipID: "INT-A", Status: models.ApplicationStatusInterviewed, AppliedAt: base.Add(24 * time.Hour)},
			{ExternalID: "APP-4", StudentID: "STU-404", InternshipID: "INT-404", Status: models.ApplicationStatusRejected, AppliedAt: base.Add(72 * time.Hour)},
		},
		feedback: []models.Feedback{
			{ExternalID: "FB-1", StudentID: "STU-1", Rating: 4, Suggestions: "Practice SQL"},
			{ExternalID: "FB-2", StudentID: "STU-2", Rating: 5},
		},
	}
}

func (f placementFixture) seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	for i := range f.students {
		require.NoError(t, db.Create(&f.students[i]).Error)
	}
	for i := range f.internships {
		require.NoError(t, db.Create(&f.internships[i]).Error)
	}
	for i := range f.applications {
		require.NoError(t, db.Create(&f.applications[i]).Error)
	}
	for i := range f.feedback {
		require.NoError(t, db.Create(&f.feedback[i]).Error)
	}
}

func (f placementFixture) snapshot() *SnapshotAccessor {
	return NewSnapshotAccessor(f.students, f.internships, f.applications, f.feedback)
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

func applicationIDs(applications []models.Application) []string {
	ids := make([]string, 0, len(applications))
	for _, application := range applications {
		ids = append(ids, application.ExternalID)
	}
	return ids
}
