package components

import (
	"context"
	"log/slog"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/storage"
	"productpraat/internal/syncer"

	"go.uber.org/fx"
)

var SyncModule = fx.Module("sync",
	fx.Provide(
		NewSyncEngine,
		NewSyncScheduler,
	),
	fx.Invoke(StartScheduler),
)

func NewSyncEngine(
	svc *catalog.Service,
	products storage.ProductStore,
	deals storage.DealStore,
	jobs storage.JobStore,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *syncer.Engine {
	return syncer.NewEngine(svc, products, deals, jobs, cfg.Sync, clk, logger)
}

func NewSyncScheduler(engine *syncer.Engine, cfg config.Config, logger *slog.Logger) *syncer.Scheduler {
	return syncer.NewScheduler(engine, cfg.Sync, logger)
}

// StartScheduler runs the reconciliation loop for the lifetime of the app
// unless disabled by configuration.
func StartScheduler(lc fx.Lifecycle, scheduler *syncer.Scheduler, cfg config.Config, logger *slog.Logger) {
	if cfg.Sync.SchedulerDisabled {
		logger.Info("sync scheduler disabled by configuration")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go scheduler.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
