package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/placement-analytics/internal/config"
	"github.com/noah-isme/placement-analytics/internal/database"
	"github.com/noah-isme/placement-analytics/internal/handler"
	"github.com/noah-isme/placement-analytics/internal/middleware"
	"github.com/noah-isme/placement-analytics/internal/repository"
	"github.com/noah-isme/placement-analytics/internal/router"
	"github.com/noah-isme/placement-analytics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
	} else {
		logger.Warn().Str("snapshot_dir", cfg.SnapshotDir).Msg("no database configured, serving snapshot data only")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL, cfg.StorePingTimeout)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, analytics cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, cache invalidation disabled")
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	selector := repository.NewModeSelector(db, cfg.SnapshotDir, cfg.StorePingTimeout, logger)
	resolver := service.NewRelationshipResolver(cfg.LookupConcurrency)

	adminService := service.NewAdminAnalyticsService(selector, resolver, cfg.SuccessScoring(), redisClient, cfg.AnalyticsCacheTTL, logger)
	studentService := service.NewStudentAnalyticsService(selector, resolver, redisClient, cfg.AnalyticsCacheTTL, logger)
	recruiterService := service.NewRecruiterAnalyticsService(selector, resolver, redisClient, cfg.AnalyticsCacheTTL, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	invalidator := service.NewCacheInvalidator(natsConn, cfg.NATSSubject, redisClient, validate, logger)
	if err := invalidator.Start(ctx); err != nil {
		logger.Warn().Err(err).Msg("cache invalidation not started")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AccessLog,
	})
	router.Register(app, cfg, router.Dependencies{
		AdminAnalyticsHandler:     handler.NewAdminAnalyticsHandler(adminService, logger),
		StudentAnalyticsHandler:   handler.NewStudentAnalyticsHandler(studentService, validate, logger),
		RecruiterAnalyticsHandler: handler.NewRecruiterAnalyticsHandler(recruiterService, logger),
		ModeReporter:              selector,
		JWTMiddleware:             middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:               middleware.RateLimit("analytics", cfg.RateLimitMax, cfg.RateLimitWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
