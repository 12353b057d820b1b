package usecase

import (
	"context"
	"log/slog"
	"time"

	"courtbook/internal/pkg/clock"
	"courtbook/internal/usecase/shared"
)

// ExpirationSweeper expires stale payment holds. The sweep itself is a pure
// bulk transition over current state; scheduling belongs to the process
// supervisor, which keeps this testable without real timers.
type ExpirationSweeper struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpirationSweeper(uow shared.UnitOfWork, clk clock.Clock) *ExpirationSweeper {
	return &ExpirationSweeper{uow: uow, clock: clk}
}

// SweepOnce transitions every pending-payment booking whose hold lapsed
// before now to expired. Idempotent: a second run over the same state finds
// nothing.
func (s *ExpirationSweeper) SweepOnce(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Bookings().ExpireStale(ctx, now)
		if err != nil {
			return err
		}
		swept = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}

// Tick is the scheduler entrypoint. The sweeper has no caller to report to,
// so failures are logged and the next tick retries against current state.
func (s *ExpirationSweeper) Tick(ctx context.Context) {
	now := s.clock.Now()
	swept, err := s.SweepOnce(ctx, now)
	if err != nil {
		slog.Error("expiration sweep failed", "error", err.Error())
		return
	}
	if swept > 0 {
		slog.Info("expired stale bookings", "count", swept)
	}
}
