package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/placement-analytics/internal/analytics"
	"github.com/noah-isme/placement-analytics/internal/dto"
	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/observability"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

// RecruiterAnalyticsService assembles analytics over the internships a recruiter owns.
type RecruiterAnalyticsService interface {
	GetAnalytics(ctx context.Context, viewer Viewer) (dto.RecruiterAnalyticsResponse, error)
}

type recruiterAnalyticsService struct {
	selector SourceSelector
	resolver *RelationshipResolver
	cache    *analyticsCache
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRecruiterAnalyticsService constructs the recruiter analytics service.
func NewRecruiterAnalyticsService(selector SourceSelector, resolver *RelationshipResolver, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RecruiterAnalyticsService {
	logger = logger.With().Str("component", "recruiter_analytics_service").Logger()
	return &recruiterAnalyticsService{
		selector: selector,
		resolver: resolver,
		cache:    newAnalyticsCache(cache, ttl, logger),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *recruiterAnalyticsService) GetAnalytics(ctx context.Context, viewer Viewer) (dto.RecruiterAnalyticsResponse, error) {
	recruiterID, ok := viewer.RecruiterScope()
	if !ok {
		return dto.RecruiterAnalyticsResponse{}, ErrAccessDenied
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.recruiter")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.recruiter_id", recruiterID))

	key := recruiterCacheKey(recruiterID)
	var cached dto.RecruiterAnalyticsResponse
	if s.cache.load(ctx, personaRecruiter, key, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
		return cached, nil
	}

	start := time.Now()
	source := s.selector.Select(ctx)
	mode := string(source.Mode())
	span.SetAttributes(attribute.String("analytics.source", mode))

	internships, err := source.ListInternships(ctx, repository.InternshipFilter{OwnerID: recruiterID})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_failed")
		return dto.RecruiterAnalyticsResponse{}, fmt.Errorf("list internships: %w", err)
	}

	internshipIDs := make([]string, 0, len(internships))
	for _, internship := range internships {
		internshipIDs = append(internshipIDs, internship.ExternalID)
	}

	applications, err := source.ListApplications(ctx, repository.ApplicationFilter{InternshipIDs: internshipIDs})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_failed")
		return dto.RecruiterAnalyticsResponse{}, fmt.Errorf("list applications: %w", err)
	}

	recent, err := s.resolver.ResolveAll(ctx, source, analytics.RecentApplications(applications, analytics.RecentActivityLimit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve_failed")
		return dto.RecruiterAnalyticsResponse{}, err
	}

	response := buildRecruiterResponse(internships, applications, recent)
	response.Source = mode
	response.GeneratedAt = s.now()

	observability.BuildDuration().WithLabelValues(personaRecruiter, mode).Observe(time.Since(start).Seconds())

	if source.Mode() == repository.ModeLive {
		s.cache.store(ctx, key, response)
	}

	return response, nil
}

func buildRecruiterResponse(internships []models.Internship, applications []models.Application, recent []ResolvedApplication) dto.RecruiterAnalyticsResponse {
	byInternship := make(map[string][]models.Application, len(internships))
	for _, application := range applications {
		byInternship[application.InternshipID] = append(byInternship[application.InternshipID], application)
	}

	var active, pending int64
	perInternship := make([]dto.InternshipApplications, 0, len(internships))
	for _, internship := range internships {
		switch internship.Status {
		case models.InternshipStatusActive:
			active++
		case models.InternshipStatusSubmitted:
			pending++
		}

		owned := byInternship[internship.ExternalID]
		breakdown := analytics.BreakdownByStatus(owned)
		perInternship = append(perInternship, dto.InternshipApplications{
			InternshipID:         internship.ExternalID,
			Title:                internship.Title,
			TotalApplications:    int64(len(owned)),
			ApprovedApplications: breakdown.Approved,
			RejectedApplications: breakdown.Rejected,
		})
	}

	activities := make([]dto.RecruiterActivityItem, 0, len(recent))
	for _, item := range recent {
		activities = append(activities, recruiterActivity(item))
	}

	totalInternships := int64(len(internships))
	totalApplications := int64(len(applications))
	breakdown := analytics.BreakdownByStatus(applications)

	return dto.RecruiterAnalyticsResponse{
		Overview: dto.RecruiterOverview{
			TotalInternships:   totalInternships,
			ActiveInternships:  active,
			PendingInternships: pending,
			TotalApplications:  totalApplications,
		},
		ApplicationsByStatus:     breakdown,
		ApplicationsByInternship: perInternship,
		RecentActivities:         activities,
		PerformanceMetrics: dto.PerformanceMetrics{
			AverageApplicationsPerInternship: analytics.RoundedRatio(totalApplications, totalInternships, 1),
			ApprovalRate:                     analytics.RoundedRatio(breakdown.Approved, totalApplications, 100),
			ResponseTime:                     analytics.AverageResponseHours(applications),
		},
		MonthlyTrends: analytics.MonthlyTrend(applications),
	}
}
