package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("PLACEMENT_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "placement.events", cfg.NATSSubject)
	require.Equal(t, "data", cfg.SnapshotDir)
	require.Equal(t, 750*time.Millisecond, cfg.StorePingTimeout)
	require.Equal(t, time.Minute, cfg.AnalyticsCacheTTL)
	require.Equal(t, 0.25, cfg.SuccessScoring().EngagementWeight)
	require.Equal(t, 98.0, cfg.SuccessScoring().RateCap)
	require.Equal(t, 8, cfg.LookupConcurrency)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
	require.False(t, cfg.AccessLog)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("PLACEMENT_JWT_SECRET", "secret")
	t.Setenv("PLACEMENT_APP_PORT", ":9090")
	t.Setenv("PLACEMENT_ANALYTICS_ENGAGEMENT_WEIGHT", "0.5")
	t.Setenv("PLACEMENT_ANALYTICS_SUCCESS_RATE_CAP", "100")
	t.Setenv("PLACEMENT_STORE_PING_TIMEOUT", "2s")
	t.Setenv("PLACEMENT_HTTP_CORS_ORIGINS", "https://placements.example.edu")
	t.Setenv("PLACEMENT_HTTP_ACCESS_LOG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 0.5, cfg.EngagementWeight)
	require.Equal(t, 100.0, cfg.SuccessRateCap)
	require.Equal(t, 2*time.Second, cfg.StorePingTimeout)
	require.Equal(t, "https://placements.example.edu", cfg.CORSAllowOrigins)
	require.True(t, cfg.AccessLog)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {},
		"cap above 100":    {"PLACEMENT_JWT_SECRET": "s", "PLACEMENT_ANALYTICS_SUCCESS_RATE_CAP": "120"},
		"negative weight":  {"PLACEMENT_JWT_SECRET": "s", "PLACEMENT_ANALYTICS_ENGAGEMENT_WEIGHT": "-1"},
		"bad ping timeout": {"PLACEMENT_JWT_SECRET": "s", "PLACEMENT_STORE_PING_TIMEOUT": "soon"},
		"zero concurrency": {"PLACEMENT_JWT_SECRET": "s", "PLACEMENT_ANALYTICS_LOOKUP_CONCURRENCY": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PLACEMENT_JWT_SECRET", "")
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
