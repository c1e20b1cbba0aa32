package jobs

import (
	"context"
	"log/slog"
	"time"

	"leavedesk/internal/domain/reconcile"
)

const sweepBatchSize = 100

// Sweeper runs the reconciliation recovery sweep: once at startup to catch
// approvals made while the service was down, then on a fixed interval for
// notifications lost mid-flight.
type Sweeper struct {
	Reconciler *reconcile.Reconciler
	Interval   time.Duration
}

func NewSweeper(rec *reconcile.Reconciler, interval time.Duration) *Sweeper {
	return &Sweeper{Reconciler: rec, Interval: interval}
}

func (s *Sweeper) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Sweeper) loop(ctx context.Context) {
	s.runOnce(ctx)

	if s.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	done, err := s.Reconciler.Recover(ctx, sweepBatchSize)
	if err != nil {
		slog.Warn("recovery sweep failed", "reconciled", done, "err", err)
		return
	}
	if done > 0 {
		slog.Info("recovery sweep reconciled missed approvals", "count", done)
	}
}
