package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	cacheInvalidatorQueue = "placement-analytics-cache"
	defaultPurgeTimeout   = 5 * time.Second
)

// ErrInvalidChangeEvent is returned for payloads that do not describe a domain change.
var ErrInvalidChangeEvent = errors.New("invalid change event")

// ChangeEvent is published by the subsystems that own placement entities whenever
// one of them is written.
type ChangeEvent struct {
	Entity string `json:"entity" validate:"required,oneof=students internships applications feedback performance_records recruiters"`
	Action string `json:"action" validate:"required,oneof=created updated deleted"`
	ID     string `json:"id"`
}

// CacheInvalidator purges cached analytics payloads when domain data changes.
type CacheInvalidator struct {
	nats      *nats.Conn
	subject   string
	redis     *redis.Client
	validator *validator.Validate
	logger    zerolog.Logger

	purgeTimeout time.Duration
}

// NewCacheInvalidator wires the invalidator. Either connection may be nil.
func NewCacheInvalidator(natsConn *nats.Conn, subject string, redisClient *redis.Client, validate *validator.Validate, logger zerolog.Logger) *CacheInvalidator {
	if validate == nil {
		validate = validator.New()
	}
	return &CacheInvalidator{
		nats:      natsConn,
		subject:   subject,
		redis:     redisClient,
		validator: validate,
		logger:    logger.With().Str("component", "cache_invalidator").Logger(),

		purgeTimeout: defaultPurgeTimeout,
	}
}

// Start subscribes to change events until ctx is cancelled. Messages still queued
// when ctx ends are drained and handled.
func (i *CacheInvalidator) Start(ctx context.Context) error {
	if i.nats == nil || i.subject == "" || i.redis == nil {
		return nil
	}

	sub, err := i.nats.QueueSubscribe(i.subject, cacheInvalidatorQueue, i.onMessage)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", i.subject, err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			i.logger.Warn().Err(err).Msg("failed to drain change event subscription")
		}
	}()
	return nil
}

// onMessage handles one delivery under its own deadline, independent of the
// subscription's lifetime.
func (i *CacheInvalidator) onMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), i.purgeTimeout)
	defer cancel()

	if err := i.Handle(ctx, msg.Data); err != nil {
		i.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("change event ignored")
	}
}

// Handle purges every cached analytics payload for one well-formed change event.
// Admin aggregates span all entities, so a change to any of them invalidates all views.
func (i *CacheInvalidator) Handle(ctx context.Context, payload []byte) error {
	var event ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChangeEvent, err)
	}
	if err := i.validator.Struct(event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChangeEvent, err)
	}

	removed, err := purgeAnalyticsCache(ctx, i.redis)
	if err != nil {
		i.logger.Error().Err(err).Str("entity", event.Entity).Msg("failed to purge analytics cache")
		return err
	}

	i.logger.Debug().
		Str("entity", event.Entity).
		Str("action", event.Action).
		Str("id", event.ID).
		Int64("purged", removed).
		Msg("analytics cache invalidated")
	return nil
}
