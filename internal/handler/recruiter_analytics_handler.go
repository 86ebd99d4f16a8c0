package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/service"
	"github.com/noah-isme/placement-analytics/internal/utils"
)

// RecruiterAnalyticsHandler exposes analytics over the caller's own internships.
type RecruiterAnalyticsHandler struct {
	service service.RecruiterAnalyticsService
	logger  zerolog.Logger
}

// NewRecruiterAnalyticsHandler constructs the handler.
func NewRecruiterAnalyticsHandler(service service.RecruiterAnalyticsService, logger zerolog.Logger) *RecruiterAnalyticsHandler {
	return &RecruiterAnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "recruiter_analytics_handler").Logger(),
	}
}

// Register attaches the recruiter analytics endpoint.
func (h *RecruiterAnalyticsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *RecruiterAnalyticsHandler) get(c *fiber.Ctx) error {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
	}

	analytics, err := h.service.GetAnalytics(c.UserContext(), viewer)
	if err != nil {
		return analyticsFailure(h.logger, c, err)
	}

	return utils.OK(c, analytics, "recruiter analytics", analyticsMeta(analytics.Source, analytics.CacheHit))
}
