package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/placement-analytics/internal/utils"
)

// RequireRole admits callers whose resolved role is one of roles. A request without
// an identity is answered with 401, a known caller with the wrong persona with 403.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make([]string, 0, len(roles))
	for _, role := range roles {
		if normalized := normalizeRoleValue(role); normalized != "" && !slices.Contains(allowed, normalized) {
			allowed = append(allowed, normalized)
		}
	}

	return func(c *fiber.Ctx) error {
		if !hasIdentity(c) {
			return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
		}
		if !slices.Contains(allowed, normalizeRoleValue(c.Locals("user_role"))) {
			return utils.Fail(c, fiber.StatusForbidden, "insufficient permissions", fiber.Map{"allowedRoles": allowed})
		}
		return c.Next()
	}
}

// hasIdentity reports whether the JWT middleware resolved a caller.
func hasIdentity(c *fiber.Ctx) bool {
	id, ok := c.Locals("user_id").(string)
	return ok && strings.TrimSpace(id) != ""
}

func normalizeRoleValue(value interface{}) string {
	role, _ := value.(string)
	return strings.ToLower(strings.TrimSpace(role))
}
