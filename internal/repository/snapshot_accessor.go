package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/models"
)

// Snapshot resource names, relative to the snapshot directory.
const (
	SnapshotStudents     = "students.json"
	SnapshotInternships  = "internships.json"
	SnapshotApplications = "applications.json"
	SnapshotFeedback     = "feedback.json"
)

// SnapshotAccessor serves a point-in-time copy of the placement data. It holds no
// performance records or recruiters; those lists are always empty.
type SnapshotAccessor struct {
	students     []models.Student
	internships  []models.Internship
	applications []models.Application
	feedback     []models.Feedback

	studentIndex    map[string]int
	internshipIndex map[string]int
}

// LoadSnapshot reads every snapshot resource under dir. A missing or unparsable
// resource is logged and treated as an empty collection.
func LoadSnapshot(dir string, logger zerolog.Logger) *SnapshotAccessor {
	logger = logger.With().Str("component", "snapshot_accessor").Str("snapshot_dir", dir).Logger()

	return NewSnapshotAccessor(
		loadResource[models.Student](dir, SnapshotStudents, logger),
		loadResource[models.Internship](dir, SnapshotInternships, logger),
		loadResource[models.Application](dir, SnapshotApplications, logger),
		loadResource[models.Feedback](dir, SnapshotFeedback, logger),
	)
}

// NewSnapshotAccessor builds a snapshot from in-memory collections.
func NewSnapshotAccessor(students []models.Student, internships []models.Internship, applications []models.Application, feedback []models.Feedback) *SnapshotAccessor {
	s := &SnapshotAccessor{
		students:        students,
		internships:     internships,
		applications:    append([]models.Application(nil), applications...),
		feedback:        feedback,
		studentIndex:    make(map[string]int, len(students)),
		internshipIndex: make(map[string]int, len(internships)),
	}

	for idx, student := range students {
		if _, exists := s.studentIndex[student.ExternalID]; !exists {
			s.studentIndex[student.ExternalID] = idx
		}
	}
	for idx, internship := range internships {
		if _, exists := s.internshipIndex[internship.ExternalID]; !exists {
			s.internshipIndex[internship.ExternalID] = idx
		}
	}

	sort.SliceStable(s.applications, func(i, j int) bool {
		return s.applications[i].AppliedAt.After(s.applications[j].AppliedAt)
	})

	return s
}

func loadResource[T any](dir, name string, logger zerolog.Logger) []T {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		logger.Warn().Err(err).Str("resource", name).Msg("snapshot resource unavailable")
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn().Err(err).Str("resource", name).Msg("snapshot resource malformed")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (s *SnapshotAccessor) Mode() Mode {
	return ModeSnapshot
}

func (s *SnapshotAccessor) ListStudents(ctx context.Context) ([]models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Student{}, s.students...), nil
}

func (s *SnapshotAccessor) ListInternships(ctx context.Context, filter InternshipFilter) ([]models.Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterSlice(s.internships, filter.Matches), nil
}

func (s *SnapshotAccessor) ListApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterSlice(s.applications, filter.Matches), nil
}

func (s *SnapshotAccessor) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterSlice(s.feedback, filter.Matches), nil
}

func (s *SnapshotAccessor) ListPerformanceRecords(ctx context.Context, _ PerformanceRecordFilter) ([]models.PerformanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.PerformanceRecord{}, nil
}

func (s *SnapshotAccessor) CountRecruiters(ctx context.Context) (int64, error) {
	return 0, ctx.Err()
}

func (s *SnapshotAccessor) FindStudentByID(ctx context.Context, id string) (models.Student, error) {
	if err := ctx.Err(); err != nil {
		return models.Student{}, err
	}
	idx, ok := s.studentIndex[id]
	if !ok {
		return models.Student{}, ErrNotFound
	}
	return s.students[idx], nil
}

func (s *SnapshotAccessor) FindInternshipByID(ctx context.Context, id string) (models.Internship, error) {
	if err := ctx.Err(); err != nil {
		return models.Internship{}, err
	}
	idx, ok := s.internshipIndex[id]
	if !ok {
		return models.Internship{}, ErrNotFound
	}
	return s.internships[idx], nil
}

func filterSlice[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

var _ EntityAccessor = (*SnapshotAccessor)(nil)
