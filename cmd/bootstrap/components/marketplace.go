package components

import (
	"log/slog"

	"productpraat/internal/bol"
	"productpraat/internal/catalog"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/review"
	"productpraat/internal/scraper"
	"productpraat/internal/sourcing"

	"go.uber.org/fx"
)

// MarketplaceModule wires everything that talks to the outside world: the
// rate-limited marketplace client, the catalog query service, affiliate link
// building, the partner-site session and the dual-source orchestrator.
var MarketplaceModule = fx.Module("marketplace",
	fx.Provide(
		clock.NewRealClock,
		NewLimiter,
		NewResponseCache,
		NewBolClient,
		NewCatalogService,
		NewLinkBuilder,
		fx.Annotate(
			NewScraperSession,
			fx.As(new(sourcing.SecondarySource)),
		),
		NewOrchestrator,
		fx.Annotate(
			NewChatCompleter,
			fx.As(new(review.TextCompleter)),
		),
		review.NewGenerator,
	),
)

func NewLimiter(cfg config.Config) *bol.Limiter {
	return bol.NewLimiter(cfg.Bol.RatePerSecond)
}

func NewResponseCache(cfg config.Config, clk clock.Clock) *bol.ResponseCache {
	return bol.NewResponseCache(cfg.Bol.CacheSize, clk)
}

func NewBolClient(cfg config.Config, limiter *bol.Limiter, cache *bol.ResponseCache, clk clock.Clock, logger *slog.Logger) *bol.Client {
	return bol.NewClient(cfg.Bol, limiter, cache, clk, logger)
}

func NewCatalogService(client *bol.Client, cfg config.Config, logger *slog.Logger) *catalog.Service {
	return catalog.NewService(client, cfg.Bol, logger)
}

func NewLinkBuilder(cfg config.Config, clk clock.Clock) *catalog.LinkBuilder {
	return catalog.NewLinkBuilder(cfg.Affiliate, clk)
}

func NewScraperSession(cfg config.Config, logger *slog.Logger) *scraper.Session {
	return scraper.NewSession(cfg.Scraper, logger)
}

func NewOrchestrator(lc fx.Lifecycle, svc *catalog.Service, links *catalog.LinkBuilder, secondary sourcing.SecondarySource, cfg config.Config, logger *slog.Logger) *sourcing.Orchestrator {
	orchestrator := sourcing.NewOrchestrator(svc, links, secondary, cfg.Scraper, logger)
	lc.Append(fx.StopHook(orchestrator.Close))
	return orchestrator
}

func NewChatCompleter(cfg config.Config) *review.ChatCompleter {
	return review.NewChatCompleter(cfg.AI)
}
