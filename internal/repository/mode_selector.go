package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/placement-analytics/internal/observability"
)

const defaultPingTimeout = 750 * time.Millisecond

// ModeSelector picks the data source for a single request. Nothing is cached between
// calls, so a store that comes back is used by the very next request.
type ModeSelector struct {
	live        EntityAccessor
	ping        func(ctx context.Context) error
	snapshotDir string
	pingTimeout time.Duration
	logger      zerolog.Logger
}

// NewModeSelector builds a selector over the relational store and the snapshot
// directory. A nil db means the snapshot is always used.
func NewModeSelector(db *gorm.DB, snapshotDir string, pingTimeout time.Duration, logger zerolog.Logger) *ModeSelector {
	var live EntityAccessor
	var ping func(ctx context.Context) error
	if db != nil {
		live = NewLiveAccessor(db)
		ping = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return newModeSelector(live, ping, snapshotDir, pingTimeout, logger)
}

func newModeSelector(live EntityAccessor, ping func(ctx context.Context) error, snapshotDir string, pingTimeout time.Duration, logger zerolog.Logger) *ModeSelector {
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	return &ModeSelector{
		live:        live,
		ping:        ping,
		snapshotDir: snapshotDir,
		pingTimeout: pingTimeout,
		logger:      logger.With().Str("component", "mode_selector").Logger(),
	}
}

// Select returns the accessor every read of the current request must go through.
func (s *ModeSelector) Select(ctx context.Context) EntityAccessor {
	if err := s.checkLive(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("live store unreachable, serving snapshot")
		observability.SourceSelections().WithLabelValues(string(ModeSnapshot)).Inc()
		return LoadSnapshot(s.snapshotDir, s.logger)
	}

	observability.SourceSelections().WithLabelValues(string(ModeLive)).Inc()
	return s.live
}

// CurrentMode reports which source Select would choose right now without loading
// the snapshot.
func (s *ModeSelector) CurrentMode(ctx context.Context) Mode {
	if err := s.checkLive(ctx); err != nil {
		return ModeSnapshot
	}
	return ModeLive
}

func (s *ModeSelector) checkLive(ctx context.Context) error {
	if s.live == nil || s.ping == nil {
		return fmt.Errorf("live store not configured")
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()

	return s.ping(pingCtx)
}
