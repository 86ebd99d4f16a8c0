package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/placement-analytics/internal/utils"
)

// RateLimit caps analytics requests per caller identity within window. Anonymous
// callers are keyed by IP. Rejections use the standard error envelope.
func RateLimit(scope string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			caller, _ := c.Locals("user_id").(string)
			if strings.TrimSpace(caller) == "" {
				caller = "ip:" + c.IP()
			}
			return scope + ":" + caller
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Fail(c, fiber.StatusTooManyRequests, "too many analytics requests", fiber.Map{
				"limit":  max,
				"window": window.String(),
			})
		},
	})
}
