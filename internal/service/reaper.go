package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/event-ticketing/internal/clock"
)

// Reaper deletes BOOKED ticket groups whose checkout was abandoned.  It is
// advisory: a concurrent reader can still see a stale BOOKED group before
// the reap runs.
type Reaper struct {
	store  Store
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

func NewReaper(store Store, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *Reaper {
	return &Reaper{store: store, ttl: ttl, clock: clk, logger: logger}
}

// Cutoff is the creation time before which a BOOKED group is expired.
func (r *Reaper) Cutoff() time.Time { return r.clock.Now().Add(-r.ttl) }

// ReapEvent removes expired reservations of one event in its own short
// transaction and returns how many groups were deleted.
func (r *Reaper) ReapEvent(ctx context.Context, eventID uint64) (int64, error) {
	return r.reap(ctx, eventID)
}

// ReapAll removes expired reservations across every event.
func (r *Reaper) ReapAll(ctx context.Context) (int64, error) {
	return r.reap(ctx, 0)
}

func (r *Reaper) reap(ctx context.Context, eventID uint64) (int64, error) {
	cutoff := r.Cutoff()
	var n int64
	err := r.store.WithTx(ctx, func(tx Tx) error {
		var err error
		n, err = tx.DeleteExpiredBooked(ctx, eventID, cutoff)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("reap expired reservations: %w", err)
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "expired reservations reaped",
			slog.Uint64("event_id", eventID),
			slog.Int64("groups", n),
			slog.Time("cutoff", cutoff),
		)
	}
	return n, nil
}
