package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics/internal/observability"
)

func jsonDecode(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestObservabilityCountsAnalyticsRequestsOnly(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Use(Observability(zerolog.Nop()))
	app.Get("/api/v1/analytics/recruiter", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusForbidden) })
	app.Get("/api/v1/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	counter := observability.AnalyticsRequests().WithLabelValues(http.MethodGet, "/api/v1/analytics/recruiter", "403")
	errorsCounter := observability.AnalyticsErrors().WithLabelValues(http.MethodGet, "/api/v1/analytics/recruiter", "403")
	before := counterValue(t, counter)
	beforeErrors := counterValue(t, errorsCounter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/recruiter", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, before+1, counterValue(t, counter))
	require.Equal(t, beforeErrors+1, counterValue(t, errorsCounter))
	require.Zero(t, counterValue(t, observability.AnalyticsRequests().WithLabelValues(http.MethodGet, "/api/v1/health", "200")))
}
