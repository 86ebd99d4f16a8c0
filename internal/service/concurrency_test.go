package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

const gateTimeout = 2 * time.Second

// gatedAccessor holds every gated call until quorum calls are in flight at once, then
// keeps them busy briefly so calls beyond a concurrency bound would overlap too. A
// serial caller never reaches the quorum and waits out gateTimeout with a peak of 1.
type gatedAccessor struct {
	repository.EntityAccessor

	quorum      int
	gateLists   bool
	gateLookups bool

	mu       sync.Mutex
	inFlight int
	peak     int
	reached  chan struct{}
	released bool
}

func newGatedAccessor(inner repository.EntityAccessor, quorum int) *gatedAccessor {
	return &gatedAccessor{EntityAccessor: inner, quorum: quorum, reached: make(chan struct{})}
}

func (g *gatedAccessor) enter(gated bool) func() {
	if !gated {
		return func() {}
	}

	g.mu.Lock()
	g.inFlight++
	if g.inFlight > g.peak {
		g.peak = g.inFlight
	}
	if g.inFlight >= g.quorum && !g.released {
		g.released = true
		close(g.reached)
	}
	g.mu.Unlock()

	select {
	case <-g.reached:
		time.Sleep(10 * time.Millisecond)
	case <-time.After(gateTimeout):
	}

	return func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}
}

func (g *gatedAccessor) peakInFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

func (g *gatedAccessor) ListStudents(ctx context.Context) ([]models.Student, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.ListStudents(ctx)
}

func (g *gatedAccessor) ListInternships(ctx context.Context, filter repository.InternshipFilter) ([]models.Internship, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.ListInternships(ctx, filter)
}

func (g *gatedAccessor) ListApplications(ctx context.Context, filter repository.ApplicationFilter) ([]models.Application, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.ListApplications(ctx, filter)
}

func (g *gatedAccessor) ListFeedback(ctx context.Context, filter repository.FeedbackFilter) ([]models.Feedback, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.ListFeedback(ctx, filter)
}

func (g *gatedAccessor) ListPerformanceRecords(ctx context.Context, filter repository.PerformanceRecordFilter) ([]models.PerformanceRecord, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.ListPerformanceRecords(ctx, filter)
}

func (g *gatedAccessor) CountRecruiters(ctx context.Context) (int64, error) {
	defer g.enter(g.gateLists)()
	return g.EntityAccessor.CountRecruiters(ctx)
}

func (g *gatedAccessor) FindStudentByID(ctx context.Context, id string) (models.Student, error) {
	defer g.enter(g.gateLookups)()
	return g.EntityAccessor.FindStudentByID(ctx, id)
}

func (g *gatedAccessor) FindInternshipByID(ctx context.Context, id string) (models.Internship, error) {
	defer g.enter(g.gateLookups)()
	return g.EntityAccessor.FindInternshipByID(ctx, id)
}

// The fixture's applications reference six distinct ids: STU-1, STU-2, STU-404 and
// INT-A, INT-B, INT-C.
const fixtureDistinctIDs = 6

func TestRelationshipResolverLooksUpConcurrently(t *testing.T) {
	fixture := newPlacementFixture()
	source := newGatedAccessor(fixture.snapshot(), fixtureDistinctIDs)
	source.gateLookups = true

	start := time.Now()
	resolved, err := NewRelationshipResolver(8).ResolveAll(context.Background(), source, fixture.applications)
	require.NoError(t, err)
	require.Len(t, resolved, len(fixture.applications))

	require.Equal(t, fixtureDistinctIDs, source.peakInFlight(), "every distinct lookup should be in flight together")
	require.Less(t, time.Since(start), gateTimeout)
}

func TestRelationshipResolverRespectsConcurrencyLimit(t *testing.T) {
	const limit = 3

	fixture := newPlacementFixture()
	source := newGatedAccessor(fixture.snapshot(), limit)
	source.gateLookups = true

	resolved, err := NewRelationshipResolver(limit).ResolveAll(context.Background(), source, fixture.applications)
	require.NoError(t, err)
	require.Len(t, resolved, len(fixture.applications))

	peak := source.peakInFlight()
	require.Greater(t, peak, 1)
	require.LessOrEqual(t, peak, limit)
}

func TestAdminAnalyticsFetchesAggregatesConcurrently(t *testing.T) {
	// students, internships, applications, recruiters, verified records, accepted offers
	const aggregates = 6

	fixture := newPlacementFixture()
	source := newGatedAccessor(fixture.snapshot(), aggregates)
	source.gateLists = true

	svc := newAdminService(t, source, fixtureBase)

	start := time.Now()
	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(len(fixture.applications)), dashboard.Overview.TotalApplications)

	require.Equal(t, aggregates, source.peakInFlight(), "all aggregate fetches should overlap")
	require.Less(t, time.Since(start), gateTimeout)
}

func TestStudentAnalyticsFetchesFactsConcurrently(t *testing.T) {
	fixture := newPlacementFixture()
	source := newGatedAccessor(fixture.snapshot(), 2)
	source.gateLists = true

	svc := NewStudentAnalyticsService(staticSelector{source: source}, NewRelationshipResolver(4), nil, 0, testLogger())

	_, err := svc.GetAnalytics(context.Background(), Viewer{ID: "STU-1", Role: RoleStudent}, "STU-1")
	require.NoError(t, err)
	require.Greater(t, source.peakInFlight(), 1)
}
