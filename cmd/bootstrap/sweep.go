package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"open-fridge/internal/pkg/config"
	"open-fridge/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweepModule = fx.Module("sweep",
	fx.Invoke(startExpirySweep),
)

// startExpirySweep keeps a background ticker that expires listings past
// their best-before. One sweep runs at a time; a slow database extends the
// interval rather than stacking sweeps.
func startExpirySweep(lc fx.Lifecycle, cfg config.Config, sweepCommands commands.SweepCommands) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Ledger.SweepInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						ids, err := sweepCommands.ExpireOverdueListings(ctx)
						if err != nil {
							slog.Error("listing expiry sweep failed", "error", err)
							continue
						}
						if len(ids) > 0 {
							slog.Info("expired overdue listings", "count", len(ids))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
