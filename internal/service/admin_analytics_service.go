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
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/placement-analytics/internal/analytics"
	"github.com/noah-isme/placement-analytics/internal/dto"
	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/observability"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

// AdminAnalyticsService aggregates institution-wide analytics for the admin dashboard.
type AdminAnalyticsService interface {
	GetDashboard(ctx context.Context) (dto.AdminAnalyticsResponse, error)
}

type adminAnalyticsService struct {
	selector SourceSelector
	resolver *RelationshipResolver
	scoring  analytics.SuccessScoring
	cache    *analyticsCache
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAdminAnalyticsService constructs the admin analytics service.
func NewAdminAnalyticsService(selector SourceSelector, resolver *RelationshipResolver, scoring analytics.SuccessScoring, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminAnalyticsService {
	logger = logger.With().Str("component", "admin_analytics_service").Logger()
	return &adminAnalyticsService{
		selector: selector,
		resolver: resolver,
		scoring:  scoring,
		cache:    newAnalyticsCache(cache, ttl, logger),
		logger:   logger,
		now:      time.Now,
	}
}

type adminFacts struct {
	students        []models.Student
	internships     []models.Internship
	applications    []models.Application
	recruiters      int64
	verifiedRecords int64
	acceptedOffers  int64
}

func (s *adminAnalyticsService) GetDashboard(ctx context.Context) (dto.AdminAnalyticsResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.admin")
	defer span.End()

	var cached dto.AdminAnalyticsResponse
	if s.cache.load(ctx, personaAdmin, adminCacheKey, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
		return cached, nil
	}

	start := time.Now()
	source := s.selector.Select(ctx)
	mode := string(source.Mode())
	span.SetAttributes(attribute.String("analytics.source", mode))

	facts, err := s.fetch(ctx, source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_failed")
		return dto.AdminAnalyticsResponse{}, err
	}

	now := s.now()
	recent := analytics.RecentApplications(facts.applications, analytics.RecentActivityLimit)
	upcoming := analytics.UpcomingInterviews(facts.applications, now, analytics.UpcomingInterviewsLimit)

	joined := make([]models.Application, 0, len(recent)+len(upcoming))
	joined = append(joined, recent...)
	joined = append(joined, upcoming...)
	resolved, err := s.resolver.ResolveAll(ctx, source, joined)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve_failed")
		return dto.AdminAnalyticsResponse{}, err
	}

	response := buildAdminResponse(facts, resolved[:len(recent)], resolved[len(recent):], s.scoring)
	response.Source = mode
	response.GeneratedAt = now

	span.SetAttributes(
		attribute.Int64("analytics.total_students", response.Overview.TotalStudents),
		attribute.Int64("analytics.total_applications", response.Overview.TotalApplications),
	)
	observability.BuildDuration().WithLabelValues(personaAdmin, mode).Observe(time.Since(start).Seconds())

	if source.Mode() == repository.ModeLive {
		s.cache.store(ctx, adminCacheKey, response)
	}

	return response, nil
}

// fetch loads every independent aggregate concurrently and returns once all finish.
func (s *adminAnalyticsService) fetch(ctx context.Context, source repository.EntityAccessor) (adminFacts, error) {
	var facts adminFacts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		students, err := source.ListStudents(gctx)
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}
		facts.students = students
		return nil
	})
	g.Go(func() error {
		internships, err := source.ListInternships(gctx, repository.InternshipFilter{})
		if err != nil {
			return fmt.Errorf("list internships: %w", err)
		}
		facts.internships = internships
		return nil
	})
	g.Go(func() error {
		applications, err := source.ListApplications(gctx, repository.ApplicationFilter{})
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		facts.applications = applications
		return nil
	})
	g.Go(func() error {
		recruiters, err := source.CountRecruiters(gctx)
		if err != nil {
			return fmt.Errorf("count recruiters: %w", err)
		}
		facts.recruiters = recruiters
		return nil
	})
	g.Go(func() error {
		records, err := source.ListPerformanceRecords(gctx, repository.PerformanceRecordFilter{VerificationStatus: models.RecordStatusVerified})
		if err != nil {
			return fmt.Errorf("list verified records: %w", err)
		}
		facts.verifiedRecords = int64(len(records))
		return nil
	})
	g.Go(func() error {
		offers, err := source.ListApplications(gctx, repository.ApplicationFilter{Statuses: analytics.AcceptedOfferStatuses})
		if err != nil {
			return fmt.Errorf("list accepted offers: %w", err)
		}
		facts.acceptedOffers = int64(len(offers))
		return nil
	})

	if err := g.Wait(); err != nil {
		return adminFacts{}, err
	}
	return facts, nil
}

func buildAdminResponse(facts adminFacts, recent, upcoming []ResolvedApplication, scoring analytics.SuccessScoring) dto.AdminAnalyticsResponse {
	totalStudents := int64(len(facts.students))
	placed := analytics.CountPlaced(facts.students)

	score := scoring.Score(analytics.SuccessInputs{
		TotalStudents:   totalStudents,
		PlacedStudents:  placed,
		VerifiedRecords: facts.verifiedRecords,
		AcceptedOffers:  facts.acceptedOffers,
		EngagedStudents: analytics.CountEngaged(facts.applications),
	})

	var activeInternships int64
	for _, internship := range facts.internships {
		if internship.Status == models.InternshipStatusActive {
			activeInternships++
		}
	}

	activities := make([]dto.ActivityItem, 0, len(recent))
	for _, item := range recent {
		activities = append(activities, adminActivity(item))
	}

	interviews := make([]dto.InterviewItem, 0, len(upcoming))
	for _, item := range upcoming {
		interviews = append(interviews, dto.InterviewItem{
			ID:         item.Application.ExternalID,
			Student:    item.Student.Name,
			Internship: item.Internship.Title,
			Company:    item.Internship.Company,
			Date:       *item.Application.InterviewScheduled.Date,
			Mode:       item.Application.InterviewScheduled.Mode,
		})
	}

	return dto.AdminAnalyticsResponse{
		Overview: dto.AdminOverview{
			TotalStudents:     totalStudents,
			ActiveInternships: activeInternships,
			TotalApplications: int64(len(facts.applications)),
			PlacedStudents:    placed,
			UnplacedStudents:  totalStudents - placed,
			TotalRecruiters:   facts.recruiters,
			VerifiedIPPs:      facts.verifiedRecords,
			AcceptedOffers:    facts.acceptedOffers,
			PlacementRate:     score.SuccessRate,
			SuccessRate:       score.SuccessRate,
		},
		ApplicationsByStatus: analytics.BreakdownByStatus(facts.applications),
		StudentsByDepartment: analytics.DepartmentHistogram(facts.students),
		RecentActivities:     activities,
		UpcomingInterviews:   interviews,
		TopCompanies:         analytics.TopCompanies(facts.applications, facts.internships, analytics.TopCompaniesLimit),
		MonthlyTrends:        analytics.MonthlyTrend(facts.applications),
		SkillsDemand:         analytics.SkillsDemand(facts.internships, analytics.SkillsDemandLimit),
	}
}
