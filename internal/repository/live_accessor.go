package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/placement-analytics/internal/models"
)

type liveAccessor struct {
	db *gorm.DB
}

// NewLiveAccessor reads placement facts from the relational store.
func NewLiveAccessor(db *gorm.DB) EntityAccessor {
	return &liveAccessor{db: db}
}

func (r *liveAccessor) Mode() Mode {
	return ModeLive
}

func (r *liveAccessor) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).Order("id ASC").Find(&students).Error
	return students, err
}

func (r *liveAccessor) ListInternships(ctx context.Context, filter InternshipFilter) ([]models.Internship, error) {
	query := r.db.WithContext(ctx).Model(&models.Internship{})
	if filter.OwnerID != "" {
		query = query.Where("posted_by = ? OR submitted_by = ?", filter.OwnerID, filter.OwnerID)
	}

	var internships []models.Internship
	err := query.Order("id ASC").Find(&internships).Error
	return internships, err
}

func (r *liveAccessor) ListApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	if filter.InternshipIDs != nil && len(filter.InternshipIDs) == 0 {
		return []models.Application{}, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Application{})
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.InternshipIDs != nil {
		query = query.Where("internship_id IN ?", filter.InternshipIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var applications []models.Application
	err := query.Order("applied_at DESC").Order("id ASC").Find(&applications).Error
	return applications, err
}

func (r *liveAccessor) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{})
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}

	var feedback []models.Feedback
	err := query.Order("id ASC").Find(&feedback).Error
	return feedback, err
}

func (r *liveAccessor) ListPerformanceRecords(ctx context.Context, filter PerformanceRecordFilter) ([]models.PerformanceRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.PerformanceRecord{})
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.VerificationStatus != "" {
		query = query.Where("verification_status = ?", filter.VerificationStatus)
	}

	var records []models.PerformanceRecord
	err := query.Order("id ASC").Find(&records).Error
	return records, err
}

func (r *liveAccessor) CountRecruiters(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recruiter{}).Count(&count).Error
	return count, err
}

func (r *liveAccessor) FindStudentByID(ctx context.Context, id string) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("external_id = ?", id).Order("id ASC").Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *liveAccessor) FindInternshipByID(ctx context.Context, id string) (models.Internship, error) {
	var internship models.Internship
	err := r.db.WithContext(ctx).Where("external_id = ?", id).Order("id ASC").Take(&internship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Internship{}, ErrNotFound
	}
	if err != nil {
		return models.Internship{}, err
	}
	return internship, nil
}
