package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/placement-analytics/internal/analytics"
)

// Config holds runtime configuration values for the analytics service.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string `validate:"required"`
	DatabaseURL string
	RedisURL    string
	NATSURL     string
	NATSSubject string
	JWTSecret   string `validate:"required"`

	CORSAllowOrigins string
	AccessLog        bool

	SnapshotDir      string        `validate:"required"`
	StorePingTimeout time.Duration `validate:"gt=0"`

	AnalyticsCacheTTL time.Duration `validate:"gte=0"`
	EngagementWeight  float64       `validate:"gte=0"`
	SuccessRateCap    float64       `validate:"gte=0,lte=100"`
	LookupConcurrency int           `validate:"gte=1,lte=64"`
	RateLimitMax      int           `validate:"gte=1"`
	RateLimitWindow   time.Duration `validate:"gt=0"`
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// SuccessScoring returns the configured success-score tuning.
func (c Config) SuccessScoring() analytics.SuccessScoring {
	return analytics.SuccessScoring{
		EngagementWeight: c.EngagementWeight,
		RateCap:          c.SuccessRateCap,
	}
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PLACEMENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Placement Analytics")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("http.access_log", false)
	v.SetDefault("nats.subject", "placement.events")
	v.SetDefault("snapshot.dir", "data")
	v.SetDefault("store.ping_timeout", "750ms")
	v.SetDefault("analytics.cache_ttl", "60s")
	v.SetDefault("analytics.engagement_weight", analytics.DefaultSuccessScoring.EngagementWeight)
	v.SetDefault("analytics.success_rate_cap", analytics.DefaultSuccessScoring.RateCap)
	v.SetDefault("analytics.lookup_concurrency", 8)
	v.SetDefault("analytics.rate_limit_max", 60)
	v.SetDefault("analytics.rate_limit_window", "1m")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	pingTimeout, err := parseDuration(v, "store.ping_timeout")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration(v, "analytics.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "analytics.rate_limit_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		NATSSubject:       v.GetString("nats.subject"),
		JWTSecret:         v.GetString("jwt.secret"),
		CORSAllowOrigins:  v.GetString("http.cors_origins"),
		AccessLog:         v.GetBool("http.access_log"),
		SnapshotDir:       v.GetString("snapshot.dir"),
		StorePingTimeout:  pingTimeout,
		AnalyticsCacheTTL: cacheTTL,
		EngagementWeight:  v.GetFloat64("analytics.engagement_weight"),
		SuccessRateCap:    v.GetFloat64("analytics.success_rate_cap"),
		LookupConcurrency: v.GetInt("analytics.lookup_concurrency"),
		RateLimitMax:      v.GetInt("analytics.rate_limit_max"),
		RateLimitWindow:   rateWindow,
	}

	if err := validator.New().Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
			}
			return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.SuccessScoring().Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return duration, nil
}
