package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/placement-analytics/internal/config"
	"github.com/noah-isme/placement-analytics/internal/repository"
	"github.com/noah-isme/placement-analytics/internal/utils"
)

// ModeReporter reports which data source a request would be served from.
type ModeReporter interface {
	CurrentMode(ctx context.Context) repository.Mode
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	DataSource  string    `json:"dataSource"`
}

// HealthCheck returns a handler that reports application health information. The
// service stays healthy in snapshot mode; dataSource tells operators it is degraded.
func HealthCheck(cfg config.Config, reporter ModeReporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			DataSource:  string(repository.ModeSnapshot),
		}
		if reporter != nil {
			payload.DataSource = string(reporter.CurrentMode(c.UserContext()))
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
