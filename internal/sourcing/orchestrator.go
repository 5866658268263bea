// Package sourcing decides, per operation, whether the formal marketing API,
// the automation-based secondary source, or both serve a request, and merges
// their results. It is the last layer allowed to swallow errors: failures
// are collected into results, never raised past it.
package sourcing

import (
	"context"
	"log/slog"
	"sync"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/config"
)

// SecondarySource is the automation-backed fallback. Every operation is
// best-effort and may fail.
type SecondarySource interface {
	Login(ctx context.Context) error
	IsLoggedIn() bool
	GenerateDeeplink(ctx context.Context, productURL string) (string, error)
	GetProductMedia(ctx context.Context, productURL string) ([]catalog.MediaItem, error)
	Close() error
}

// initState tracks the one-shot secondary-source initialization. A failed
// initialization is never retried within the process lifetime.
type initState int

const (
	initNotStarted initState = iota
	initReady
	initFailed
)

func (s initState) String() string {
	switch s {
	case initReady:
		return "ready"
	case initFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// DeeplinkResult always carries a usable link. Source names which path
// produced it.
type DeeplinkResult struct {
	URL         string   `json:"url"`
	OriginalURL string   `json:"original_url"`
	Source      string   `json:"source"` // "scraper" or "api"
	Success     bool     `json:"success"`
	Errors      []string `json:"errors,omitempty"`
}

// MediaResult carries the merged gallery plus any collected error strings.
type MediaResult struct {
	Items  []catalog.MediaItem `json:"items"`
	Errors []string            `json:"errors,omitempty"`
}

// Status snapshots the orchestrator for diagnostics.
type Status struct {
	SecondaryConfigured bool   `json:"secondary_configured"`
	SecondaryState      string `json:"secondary_state"`
	LoggedIn            bool   `json:"logged_in"`
}

type Orchestrator struct {
	catalog   *catalog.Service
	links     *catalog.LinkBuilder
	secondary SecondarySource
	enabled   bool
	logger    *slog.Logger

	mu    sync.Mutex
	state initState
}

// NewOrchestrator wires the primary catalog service with an optional
// secondary source. secondary may be nil when automation is not configured.
func NewOrchestrator(catalogSvc *catalog.Service, links *catalog.LinkBuilder, secondary SecondarySource, cfg config.ScraperConfig, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:   catalogSvc,
		links:     links,
		secondary: secondary,
		enabled:   cfg.Enabled && secondary != nil,
		logger:    logger,
	}
}

// ensureSecondary performs the lazy, at-most-once initialization and reports
// whether the secondary source is usable.
func (o *Orchestrator) ensureSecondary(ctx context.Context) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case initReady:
		return true
	case initFailed:
		return false
	}

	if !o.enabled {
		o.state = initFailed
		return false
	}
	if err := o.secondary.Login(ctx); err != nil {
		// Treated as "not configured" for the rest of this instance's life.
		o.logger.Warn("secondary source initialization failed", slog.String("error", err.Error()))
		o.state = initFailed
		return false
	}
	o.state = initReady
	return true
}

// ProductMedia merges the primary gallery with secondary-sourced media.
// Primary entries come first; secondary entries augment the list with unseen
// URLs and upgrade already-listed items in place with a high-res URL.
func (o *Orchestrator) ProductMedia(ctx context.Context, ean, productURL string) MediaResult {
	var result MediaResult

	primary, err := o.catalog.Media(ctx, ean)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	result.Items = primary

	if productURL == "" || !o.ensureSecondary(ctx) {
		return result
	}

	scraped, err := o.secondary.GetProductMedia(ctx, productURL)
	if err != nil {
		o.logger.Warn("secondary media lookup failed", slog.String("ean", ean), slog.String("error", err.Error()))
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Items = MergeMedia(result.Items, scraped)
	return result
}

// Deeplink produces an affiliate link for productURL. A secondary-issued
// link is preferred when the session is authenticated; otherwise the locally
// computed link is used. The result is always usable.
func (o *Orchestrator) Deeplink(ctx context.Context, productURL, productName string) DeeplinkResult {
	result := DeeplinkResult{OriginalURL: productURL}

	if o.ensureSecondary(ctx) && o.secondary.IsLoggedIn() {
		link, err := o.secondary.GenerateDeeplink(ctx, productURL)
		if err == nil && link != "" {
			result.URL = link
			result.Source = "scraper"
			result.Success = true
			return result
		}
		if err != nil {
			o.logger.Warn("secondary deeplink failed, using local link", slog.String("error", err.Error()))
			result.Errors = append(result.Errors, err.Error())
		}
	}

	result.URL = o.links.Generate(productURL, productName).URL
	result.Source = "api"
	result.Success = true
	return result
}

// Status reports the secondary-source state for the diagnostic harness.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()

	status := Status{
		SecondaryConfigured: o.enabled,
		SecondaryState:      state.String(),
	}
	if state == initReady {
		status.LoggedIn = o.secondary.IsLoggedIn()
	}
	return status
}

// Close releases the secondary session if one was established.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == initReady {
		return o.secondary.Close()
	}
	return nil
}

// MergeMedia implements the field-level media merge: primary entries keep
// their position, secondary entries with a known URL upgrade the existing
// item with a high-res URL, unseen URLs are appended.
func MergeMedia(primary, secondary []catalog.MediaItem) []catalog.MediaItem {
	merged := make([]catalog.MediaItem, len(primary))
	copy(merged, primary)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.URL] = i
	}

	for _, item := range secondary {
		if i, ok := index[item.URL]; ok {
			if item.HighResURL != "" && merged[i].HighResURL == "" {
				merged[i].HighResURL = item.HighResURL
			}
			continue
		}
		index[item.URL] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
