package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/service"
	"github.com/noah-isme/placement-analytics/internal/utils"
)

// AdminAnalyticsHandler exposes the institution dashboard analytics for administrators.
type AdminAnalyticsHandler struct {
	service service.AdminAnalyticsService
	logger  zerolog.Logger
}

// NewAdminAnalyticsHandler constructs the handler.
func NewAdminAnalyticsHandler(service service.AdminAnalyticsService, logger zerolog.Logger) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_analytics_handler").Logger(),
	}
}

// Register attaches analytics routes to the router group.
func (h *AdminAnalyticsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *AdminAnalyticsHandler) get(c *fiber.Ctx) error {
	if _, ok := viewerFromContext(c); !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
	}

	dashboard, err := h.service.GetDashboard(c.UserContext())
	if err != nil {
		return analyticsFailure(h.logger, c, err)
	}

	return utils.OK(c, dashboard, "dashboard analytics", analyticsMeta(dashboard.Source, dashboard.CacheHit))
}
