package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/service"
	"github.com/noah-isme/placement-analytics/internal/utils"
)

type studentAnalyticsParams struct {
	StudentID string `validate:"required,max=64,printascii"`
}

// StudentAnalyticsHandler exposes per-student analytics to the student and to admins.
type StudentAnalyticsHandler struct {
	service   service.StudentAnalyticsService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentAnalyticsHandler creates a new handler instance.
func NewStudentAnalyticsHandler(service service.StudentAnalyticsService, validate *validator.Validate, logger zerolog.Logger) *StudentAnalyticsHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &StudentAnalyticsHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "student_analytics_handler").Logger(),
	}
}

// Register attaches the student analytics endpoint.
func (h *StudentAnalyticsHandler) Register(router fiber.Router) {
	router.Get("/:studentId", h.get)
}

func (h *StudentAnalyticsHandler) get(c *fiber.Ctx) error {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
	}

	params := studentAnalyticsParams{StudentID: c.Params("studentId")}
	if err := h.validator.Struct(params); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid student id", validationDetails(err))
	}

	analytics, err := h.service.GetAnalytics(c.UserContext(), viewer, params.StudentID)
	if err != nil {
		return analyticsFailure(h.logger, c, err)
	}

	return utils.OK(c, analytics, "student analytics", analyticsMeta(analytics.Source, analytics.CacheHit))
}
