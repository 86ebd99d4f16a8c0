package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/middleware"
	"github.com/noah-isme/placement-analytics/internal/service"
	"github.com/noah-isme/placement-analytics/internal/utils"
)

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func userIDStringFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		switch id := v.(type) {
		case string:
			return strings.TrimSpace(id)
		case uint:
			return strconv.FormatUint(uint64(id), 10)
		case int:
			if id < 0 {
				return ""
			}
			return strconv.Itoa(id)
		case fmt.Stringer:
			return strings.TrimSpace(id.String())
		}
	}
	return ""
}

// viewerFromContext reads the identity resolved by the JWT middleware.
func viewerFromContext(c *fiber.Ctx) (service.Viewer, bool) {
	viewer := service.Viewer{
		ID:   userIDStringFromContext(c),
		Role: userRoleFromContext(c),
	}
	if viewer.ID == "" {
		return service.Viewer{}, false
	}
	return viewer, true
}

func analyticsMeta(source string, cacheHit bool) fiber.Map {
	return fiber.Map{
		"source":    source,
		"cache_hit": cacheHit,
	}
}

// analyticsFailure maps service errors onto the response envelope. Unexpected causes
// are logged and never returned to the caller.
func analyticsFailure(base zerolog.Logger, c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return utils.Fail(c, fiber.StatusForbidden, "access denied", nil)
	case errors.Is(err, service.ErrInvalidStudentID):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid student id", nil)
	}

	requestLogger(base, c).Error().Err(err).Str("path", c.Path()).Msg("failed to assemble analytics")
	return utils.Fail(c, fiber.StatusInternalServerError, "failed to load analytics", nil)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func validationDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return details
}
