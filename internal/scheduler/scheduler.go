package scheduler

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockery --name reservationReaper --exported --with-expecter --output mocks --outpkg mocks --filename mock_reservation_reaper.go
type reservationReaper interface {
	ReapAll(ctx context.Context) (int64, error)
}

// Scheduler sweeps expired reservations on a fixed interval so stale holds
// go away even for events nobody reads.
type Scheduler struct {
	reaper   reservationReaper
	interval time.Duration
	logger   *slog.Logger
}

func New(
	reaper reservationReaper,
	interval time.Duration,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		reaper:   reaper,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	n, err := s.reaper.ReapAll(ctx)
	if err != nil {
		s.logger.Error("failed to reap expired reservations", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("expired reservations reaped", "groups", n)
	}
}
