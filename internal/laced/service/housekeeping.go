package service

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper deletes expired records.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (SweepResult, error)
}

// HousekeepingService periodically sweeps expired sessions and guest
// sessions so the tables do not grow without bound.
type HousekeepingService struct {
	Sweeper  Sweeper
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(sweeper Sweeper, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Sweeper:  sweeper,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs one sweep. Failures are logged; the next tick tries again.
func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	res, err := s.Sweeper.SweepExpired(ctx, s.Now().UTC())
	if err != nil {
		s.Logger.Error("housekeeping sweep failed", "error", err,
			"sessions_deleted", res.Sessions, "guest_sessions_deleted", res.GuestSessions)
		return
	}
	s.Logger.Info("housekeeping sweep completed",
		"sessions_deleted", res.Sessions, "guest_sessions_deleted", res.GuestSessions)
}
