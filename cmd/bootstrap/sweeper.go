package bootstrap

import (
	"context"
	"log/slog"

	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(
		StartSweeper,
	),
)

// StartSweeper schedules the expiration sweep for the lifetime of the
// process. The scheduler owns the timer; the sweeper stays timer-free.
func StartSweeper(lc fx.Lifecycle, sweeper *usecase.ExpirationSweeper, cfg config.Config) error {
	scheduler := cron.New()

	schedule := "@every " + cfg.Booking.SweepInterval.String()
	_, err := scheduler.AddFunc(schedule, func() {
		sweeper.Tick(context.Background())
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			slog.Info("starting expiration sweeper", "interval", cfg.Booking.SweepInterval.String())
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})

	return nil
}
