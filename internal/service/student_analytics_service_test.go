package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics/internal/repository"
)

func newStudentService(source repository.EntityAccessor) StudentAnalyticsService {
	return NewStudentAnalyticsService(staticSelector{source: source}, NewRelationshipResolver(4), nil, 0, testLogger())
}

func TestStudentAnalyticsMergesRatingsAndRecords(t *testing.T) {
	fixture := newPlacementFixture()
	svc := newStudentService(fixture.live(t))

	resp, err := svc.GetAnalytics(context.Background(), Viewer{ID: "STU-1", Role: RoleStudent}, "STU-1")
	require.NoError(t, err)

	require.Equal(t, "STU-1", resp.StudentID)
	require.Equal(t, string(repository.ModeLive), resp.Source)
	require.Equal(t, int64(2), resp.TotalApplications)
	require.Equal(t, int64(1), resp.ApplicationsByStatus.Approved)
	require.Equal(t, int64(1), resp.ApplicationsByStatus.Rejected)
	// feedback 4 and 5 doubled to 8 and 10, merged with the published record rating 9
	require.Equal(t, 9.0, resp.AverageRating)
	require.Equal(t, []string{"gRPC", "Docker"}, resp.SkillsDeveloped)
	require.Equal(t, []string{"Go", "SQL"}, resp.Skills)

	require.Equal(t, int64(2), resp.TotalBadges)
	require.Equal(t, "B-1", resp.Badges[0].ID)
	require.Equal(t, "CERT-IPP-1", resp.Badges[1].ID)
	require.Equal(t, "Internship Certificate - Acme", resp.Badges[1].Name)
	require.Equal(t, "certificate", resp.Badges[1].Type)

	require.Len(t, resp.ApplicationHistory, 2)
	require.Equal(t, "APP-2", resp.ApplicationHistory[0].ID)
	require.Equal(t, "Data Intern", resp.ApplicationHistory[0].Internship)
	require.Equal(t, "Beta", resp.ApplicationHistory[0].Company)
	require.Equal(t, "APP-1", resp.ApplicationHistory[1].ID)
	require.Len(t, resp.Feedback, 2)
}

func TestStudentAnalyticsSnapshotDerivesSkillsFromSuggestions(t *testing.T) {
	fixture := newPlacementFixture()
	svc := newStudentService(fixture.snapshot())

	resp, err := svc.GetAnalytics(context.Background(), Viewer{ID: "ADM-1", Role: RoleAdmin}, "STU-1")
	require.NoError(t, err)

	require.Equal(t, string(repository.ModeSnapshot), resp.Source)
	require.Equal(t, []string{"Kubernetes", "System design"}, resp.SkillsDeveloped)
	require.Equal(t, 9.0, resp.AverageRating)
	require.Equal(t, int64(1), resp.TotalBadges)
}

func TestStudentAnalyticsLiveAndSnapshotAgreeOnCounts(t *testing.T) {
	fixture := newPlacementFixture()
	viewer := Viewer{ID: "ADM-1", Role: RoleAdmin}
	liveSvc := newStudentService(fixture.live(t))
	snapshotSvc := newStudentService(fixture.snapshot())

	for _, studentID := range []string{"STU-1", "STU-2", "STU-404"} {
		live, err := liveSvc.GetAnalytics(context.Background(), viewer, studentID)
		require.NoError(t, err)
		snapshot, err := snapshotSvc.GetAnalytics(context.Background(), viewer, studentID)
		require.NoError(t, err)

		require.Equal(t, live.ApplicationsByStatus, snapshot.ApplicationsByStatus, studentID)
		require.Equal(t, live.TotalApplications, snapshot.TotalApplications, studentID)
	}
}

func TestStudentAnalyticsUnknownStudentDegradesToEmpty(t *testing.T) {
	fixture := newPlacementFixture()

	resp, err := newStudentService(fixture.snapshot()).GetAnalytics(context.Background(), Viewer{ID: "ADM-1", Role: RoleAdmin}, "STU-404")
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TotalApplications)
	require.Empty(t, resp.Skills)
	require.NotNil(t, resp.Skills)
	require.Empty(t, resp.Badges)
	require.Equal(t, "Mobile Intern", resp.ApplicationHistory[0].Internship)
}

func TestStudentAnalyticsRejectsForeignViewers(t *testing.T) {
	fixture := newPlacementFixture()
	svc := newStudentService(fixture.snapshot())

	cases := []struct {
		name   string
		viewer Viewer
	}{
		{name: "other student", viewer: Viewer{ID: "STU-2", Role: RoleStudent}},
		{name: "recruiter", viewer: Viewer{ID: "REC-1", Role: RoleRecruiter}},
		{name: "anonymous", viewer: Viewer{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GetAnalytics(context.Background(), tc.viewer, "STU-1")
			require.ErrorIs(t, err, ErrAccessDenied)
		})
	}
}

func TestStudentAnalyticsRejectsBlankID(t *testing.T) {
	svc := newStudentService(newPlacementFixture().snapshot())

	_, err := svc.GetAnalytics(context.Background(), Viewer{ID: "ADM-1", Role: RoleAdmin}, "  ")
	require.ErrorIs(t, err, ErrInvalidStudentID)
}

func TestStudentAnalyticsServesCachedPayload(t *testing.T) {
	fixture := newPlacementFixture()
	mr, client := setupRedis(t)
	svc := NewStudentAnalyticsService(staticSelector{source: fixture.live(t)}, NewRelationshipResolver(4), client, time.Minute, testLogger())
	viewer := Viewer{ID: "STU-1", Role: RoleStudent}

	first, err := svc.GetAnalytics(context.Background(), viewer, "STU-1")
	require.NoError(t, err)
	require.True(t, mr.Exists(studentCacheKey("STU-1")))

	second, err := svc.GetAnalytics(context.Background(), viewer, "STU-1")
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.SkillsDeveloped, second.SkillsDeveloped)

	// the access check runs before the cache is consulted
	_, err = svc.GetAnalytics(context.Background(), Viewer{ID: "STU-2", Role: RoleStudent}, "STU-1")
	require.ErrorIs(t, err, ErrAccessDenied)
}
