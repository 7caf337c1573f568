package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/slogx"
)

// DefaultHousekeepingInterval is how often expired verification tokens are
// swept when no interval is configured.
const DefaultHousekeepingInterval = time.Hour

// HousekeepingService periodically clears expired verification and reset
// tokens. Expired tokens are already unusable (lookup checks expiry); the
// sweep just keeps stale fingerprints out of the database.
type HousekeepingService struct {
	store    store.Store
	interval time.Duration
}

func NewHousekeepingService(st store.Store, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	return &HousekeepingService{store: st, interval: interval}
}

// Run sweeps on a ticker until ctx is cancelled. Intended to be launched in
// its own goroutine.
func (s *HousekeepingService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				slogx.FromContext(ctx).Error("housekeeping sweep failed", slogx.Err(err))
			}
		}
	}
}

// Sweep runs one pass immediately.
func (s *HousekeepingService) Sweep(ctx context.Context) error {
	start := time.Now()
	if err := s.store.Users().ClearExpiredVerificationTokens(ctx, time.Now().UTC()); err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("housekeeping sweep done",
		slog.Duration("took", time.Since(start)))
	return nil
}
