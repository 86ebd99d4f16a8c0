package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/placement-analytics/internal/analytics"
	"github.com/noah-isme/placement-analytics/internal/dto"
	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/observability"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

// qualifyingRecordStatuses are the performance record states that count towards a
// student's ratings, skills and certificates.
var qualifyingRecordStatuses = []string{models.RecordStatusVerified, models.RecordStatusPublished}

// StudentAnalyticsService assembles the analytics view for a single student.
type StudentAnalyticsService interface {
	GetAnalytics(ctx context.Context, viewer Viewer, studentID string) (dto.StudentAnalyticsResponse, error)
}

type studentAnalyticsService struct {
	selector SourceSelector
	resolver *RelationshipResolver
	cache    *analyticsCache
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStudentAnalyticsService constructs the student analytics service.
func NewStudentAnalyticsService(selector SourceSelector, resolver *RelationshipResolver, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentAnalyticsService {
	logger = logger.With().Str("component", "student_analytics_service").Logger()
	return &studentAnalyticsService{
		selector: selector,
		resolver: resolver,
		cache:    newAnalyticsCache(cache, ttl, logger),
		logger:   logger,
		now:      time.Now,
	}
}

type studentFacts struct {
	student      models.Student
	applications []models.Application
	feedback     []models.Feedback
	records      []models.PerformanceRecord
}

func (s *studentAnalyticsService) GetAnalytics(ctx context.Context, viewer Viewer, studentID string) (dto.StudentAnalyticsResponse, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return dto.StudentAnalyticsResponse{}, ErrInvalidStudentID
	}
	if !viewer.CanViewStudent(studentID) {
		return dto.StudentAnalyticsResponse{}, ErrAccessDenied
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.student")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.student_id", studentID))

	key := studentCacheKey(studentID)
	var cached dto.StudentAnalyticsResponse
	if s.cache.load(ctx, personaStudent, key, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
		return cached, nil
	}

	start := time.Now()
	source := s.selector.Select(ctx)
	mode := string(source.Mode())
	span.SetAttributes(attribute.String("analytics.source", mode))

	facts, err := s.fetch(ctx, source, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_failed")
		return dto.StudentAnalyticsResponse{}, err
	}

	resolved, err := s.resolver.ResolveAll(ctx, source, facts.applications)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve_failed")
		return dto.StudentAnalyticsResponse{}, err
	}

	response := buildStudentResponse(studentID, source.Mode(), facts, resolved)
	response.Source = mode
	response.GeneratedAt = s.now()

	observability.BuildDuration().WithLabelValues(personaStudent, mode).Observe(time.Since(start).Seconds())

	if source.Mode() == repository.ModeLive {
		s.cache.store(ctx, key, response)
	}

	return response, nil
}

func (s *studentAnalyticsService) fetch(ctx context.Context, source repository.EntityAccessor, studentID string) (studentFacts, error) {
	var facts studentFacts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		student, err := source.FindStudentByID(gctx, studentID)
		if errors.Is(err, repository.ErrNotFound) {
			// Analytics for an unknown profile degrade to empty skills and badges.
			return nil
		}
		if err != nil {
			return fmt.Errorf("find student: %w", err)
		}
		facts.student = student
		return nil
	})
	g.Go(func() error {
		applications, err := source.ListApplications(gctx, repository.ApplicationFilter{StudentID: studentID})
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		facts.applications = applications
		return nil
	})
	g.Go(func() error {
		feedback, err := source.ListFeedback(gctx, repository.FeedbackFilter{StudentID: studentID})
		if err != nil {
			return fmt.Errorf("list feedback: %w", err)
		}
		facts.feedback = feedback
		return nil
	})
	g.Go(func() error {
		records, err := source.ListPerformanceRecords(gctx, repository.PerformanceRecordFilter{
			StudentID: studentID,
			Statuses:  qualifyingRecordStatuses,
		})
		if err != nil {
			return fmt.Errorf("list performance records: %w", err)
		}
		facts.records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return studentFacts{}, err
	}
	return facts, nil
}

func buildStudentResponse(studentID string, mode repository.Mode, facts studentFacts, resolved []ResolvedApplication) dto.StudentAnalyticsResponse {
	var skillsDeveloped []string
	if mode == repository.ModeSnapshot {
		skillsDeveloped = analytics.SuggestionSkills(facts.feedback)
	} else {
		skillsDeveloped = analytics.AcquiredSkills(facts.records)
	}

	badges := make([]models.Badge, 0, len(facts.student.Achievements))
	badges = append(badges, facts.student.Achievements...)
	badges = append(badges, analytics.CertificateBadges(facts.records)...)

	ordered := append([]ResolvedApplication(nil), resolved...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Application.AppliedAt.After(ordered[j].Application.AppliedAt)
	})

	history := make([]dto.ApplicationHistoryItem, 0, len(ordered))
	for _, item := range ordered {
		history = append(history, dto.ApplicationHistoryItem{
			ID:         item.Application.ExternalID,
			Internship: item.Internship.Title,
			Company:    item.Internship.Company,
			Status:     item.Application.Status,
			AppliedAt:  item.Application.AppliedAt,
		})
	}

	feedback := facts.feedback
	if feedback == nil {
		feedback = []models.Feedback{}
	}

	return dto.StudentAnalyticsResponse{
		StudentID:            studentID,
		TotalApplications:    int64(len(facts.applications)),
		ApplicationsByStatus: analytics.BreakdownByStatus(facts.applications),
		AverageRating:        analytics.AverageRating(facts.feedback, facts.records),
		SkillsDeveloped:      skillsDeveloped,
		Skills:               nonNilStrings(facts.student.Skills),
		TotalBadges:          int64(len(badges)),
		Badges:               badges,
		ApplicationHistory:   history,
		Feedback:             feedback,
	}
}
