package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/placement-analytics/internal/config"
	"github.com/noah-isme/placement-analytics/internal/handler"
	"github.com/noah-isme/placement-analytics/internal/middleware"
	"github.com/noah-isme/placement-analytics/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AdminAnalyticsHandler     *handler.AdminAnalyticsHandler
	StudentAnalyticsHandler   *handler.StudentAnalyticsHandler
	RecruiterAnalyticsHandler *handler.RecruiterAnalyticsHandler
	ModeReporter              handler.ModeReporter
	JWTMiddleware             fiber.Handler
	RateLimiter               fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.ModeReporter))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	analytics := api.Group("/analytics", jwtMiddleware, rateLimiter)
	next := func(c *fiber.Ctx) error { return c.Next() }

	if deps.AdminAnalyticsHandler != nil {
		admin := analytics.Group("/dashboard", middleware.RequireRole(middleware.AuthRoleAdmin))
		deps.AdminAnalyticsHandler.Register(admin)
	}

	// Ownership of the requested student is decided by the service.
	if deps.StudentAnalyticsHandler != nil {
		student := analytics.Group("/student", middleware.WithAuth(next, middleware.AuthOptions{}))
		deps.StudentAnalyticsHandler.Register(student)
	}

	if deps.RecruiterAnalyticsHandler != nil {
		recruiter := analytics.Group("/recruiter", middleware.WithAuth(next, middleware.AuthOptions{Role: middleware.AuthRoleRecruiter}))
		deps.RecruiterAnalyticsHandler.Register(recruiter)
	}
}
