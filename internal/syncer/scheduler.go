package syncer

import (
	"context"
	"log/slog"
	"time"

	"productpraat/internal/pkg/config"
	"productpraat/internal/storage"
)

// Scheduler runs the full reconciliation cycle on a fixed interval: ingestion
// of the configured search terms and categories first, then prices and stock,
// ratings, and finally deal detection over the freshly updated discounts.
type Scheduler struct {
	engine      *Engine
	interval    time.Duration
	searchTerms []string
	categoryIDs []string
	logger      *slog.Logger
}

func NewScheduler(engine *Engine, cfg config.SyncConfig, logger *slog.Logger) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{
		engine:      engine,
		interval:    interval,
		searchTerms: cfg.SearchTerms,
		categoryIDs: cfg.CategoryIDs,
		logger:      logger.With(slog.String("component", "scheduler")),
	}
}

// Start runs one cycle immediately and then ticks until the context is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "sync scheduler started",
		slog.Duration("interval", s.interval))

	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single reconciliation cycle. Individual job failures are
// recorded on their job records; the cycle always runs every stage.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()

	var jobs []storage.SyncJobRecord
	for _, term := range s.searchTerms {
		jobs = append(jobs, s.engine.SyncFromSearch(ctx, term))
	}
	for _, categoryID := range s.categoryIDs {
		jobs = append(jobs, s.engine.SyncPopularProducts(ctx, categoryID))
	}
	jobs = append(jobs,
		s.engine.UpdatePricesAndStock(ctx),
		s.engine.UpdateRatings(ctx),
		s.engine.DetectDeals(ctx),
	)

	var failed int
	for _, job := range jobs {
		if job.Status == storage.JobFailed {
			failed++
		}
	}

	s.logger.InfoContext(ctx, "sync cycle finished",
		slog.Int("jobs", len(jobs)),
		slog.Int("failed", failed),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())))
}
