// Package syncer reconciles the marketplace catalog into local storage. Every
// run is recorded as a sync job and is safe to repeat: records are keyed on
// EAN, existing rows are updated in place and deal status is recomputed from
// the stored discounts on every detection pass.
package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/storage"
)

// Catalog is the slice of the marketplace query surface the engine needs.
type Catalog interface {
	Search(ctx context.Context, term string, filters catalog.SearchFilters, page, pageSize int) (*catalog.SearchPage, error)
	PopularProducts(ctx context.Context, categoryID string, limit int) ([]catalog.Product, error)
	BestOffer(ctx context.Context, ean string) (*catalog.Offer, error)
	Rating(ctx context.Context, ean string) (*catalog.RatingSummary, error)
}

type Engine struct {
	catalog  Catalog
	products storage.ProductStore
	deals    storage.DealStore
	jobs     storage.JobStore
	cfg      config.SyncConfig
	clock    clock.Clock
	logger   *slog.Logger
}

func NewEngine(
	svc Catalog,
	products storage.ProductStore,
	deals storage.DealStore,
	jobs storage.JobStore,
	cfg config.SyncConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		catalog:  svc,
		products: products,
		deals:    deals,
		jobs:     jobs,
		cfg:      cfg,
		clock:    clk,
		logger:   logger.With(slog.String("component", "syncer")),
	}
}

// SyncFromSearch pulls one page of search results for the term and reconciles
// it into storage. New products are inserted, known ones updated.
func (e *Engine) SyncFromSearch(ctx context.Context, term string) storage.SyncJobRecord {
	job := e.begin(ctx, storage.JobSearchSync)

	page, err := e.catalog.Search(ctx, term, catalog.SearchFilters{}, 1, e.batchLimit())
	if err != nil {
		return e.fail(ctx, job, err)
	}
	res, err := e.reconcile(ctx, page.Items)
	if err != nil {
		return e.fail(ctx, job, err)
	}
	return e.completeReconcile(ctx, job, res)
}

// SyncPopularProducts reconciles the popular-products listing for a category.
func (e *Engine) SyncPopularProducts(ctx context.Context, categoryID string) storage.SyncJobRecord {
	job := e.begin(ctx, storage.JobPopularProducts)

	items, err := e.catalog.PopularProducts(ctx, categoryID, e.batchLimit())
	if err != nil {
		return e.fail(ctx, job, err)
	}
	res, err := e.reconcile(ctx, items)
	if err != nil {
		return e.fail(ctx, job, err)
	}
	return e.completeReconcile(ctx, job, res)
}

// UpdatePricesAndStock refreshes price, discount and availability for every
// stored product from its current best offer. A failed lookup only counts
// against that product; the run continues.
func (e *Engine) UpdatePricesAndStock(ctx context.Context) storage.SyncJobRecord {
	job := e.begin(ctx, storage.JobPriceUpdate)

	records, err := e.products.List(ctx, storage.ProductFilter{Limit: e.batchLimit()})
	if err != nil {
		return e.fail(ctx, job, err)
	}

	var processed, failed int
	for _, record := range records {
		offer, err := e.catalog.BestOffer(ctx, record.EAN)
		if err != nil {
			failed++
			e.logger.WarnContext(ctx, "offer lookup failed",
				slog.String("ean", record.EAN), slog.String("error", err.Error()))
			continue
		}
		if offer == nil {
			// No offer means the product is currently unavailable.
			record.Availability = string(catalog.AvailabilityOutOfStock)
		} else {
			record.Price = offer.Price
			record.Availability = string(offer.Availability)
			if offer.StrikethroughPrice > offer.Price {
				record.DiscountPrice = offer.Price
				record.Price = offer.StrikethroughPrice
				record.DiscountPct = catalog.DiscountPercentage(offer.StrikethroughPrice, offer.Price)
			} else {
				record.DiscountPrice = 0
				record.DiscountPct = 0
			}
		}
		record.UpdatedAt = e.clock.Now()
		if err := e.products.Update(ctx, record); err != nil {
			failed++
			e.logger.WarnContext(ctx, "price update failed",
				slog.String("ean", record.EAN), slog.String("error", err.Error()))
			continue
		}
		processed++
	}
	return e.complete(ctx, job, processed, failed)
}

// UpdateRatings refreshes the rating summary for every stored product.
func (e *Engine) UpdateRatings(ctx context.Context) storage.SyncJobRecord {
	job := e.begin(ctx, storage.JobRatingUpdate)

	records, err := e.products.List(ctx, storage.ProductFilter{Limit: e.batchLimit()})
	if err != nil {
		return e.fail(ctx, job, err)
	}

	var processed, failed int
	for _, record := range records {
		rating, err := e.catalog.Rating(ctx, record.EAN)
		if err != nil {
			failed++
			e.logger.WarnContext(ctx, "rating lookup failed",
				slog.String("ean", record.EAN), slog.String("error", err.Error()))
			continue
		}
		if rating == nil {
			processed++
			continue
		}
		record.RatingAvg = rating.Average
		record.RatingCount = rating.Count
		record.UpdatedAt = e.clock.Now()
		if err := e.products.Update(ctx, record); err != nil {
			failed++
			continue
		}
		processed++
	}
	return e.complete(ctx, job, processed, failed)
}

// DetectDeals recomputes the active deal set from stored discounts. Products
// at or above the threshold get a deal; every other active deal is ended,
// including all of them when nothing qualifies.
func (e *Engine) DetectDeals(ctx context.Context) storage.SyncJobRecord {
	job := e.begin(ctx, storage.JobDealDetection)

	threshold := e.cfg.DealThresholdPct
	if threshold <= 0 {
		threshold = config.DefaultDealThresholdPct
	}

	records, err := e.products.List(ctx, storage.ProductFilter{})
	if err != nil {
		return e.fail(ctx, job, err)
	}

	qualifying := make(map[string]storage.ProductRecord)
	var keep []string
	for _, record := range records {
		if record.DiscountPct >= threshold {
			qualifying[record.EAN] = record
			keep = append(keep, record.EAN)
		}
	}

	active, err := e.deals.ActiveDeals(ctx)
	if err != nil {
		return e.fail(ctx, job, err)
	}
	alreadyActive := make(map[string]bool, len(active))
	for _, deal := range active {
		alreadyActive[deal.EAN] = true
	}

	now := e.clock.Now()
	var fresh []storage.DealRecord
	for ean, record := range qualifying {
		if alreadyActive[ean] {
			continue
		}
		fresh = append(fresh, storage.DealRecord{
			ID:          uuid.New(),
			EAN:         ean,
			DiscountPct: record.DiscountPct,
			Active:      true,
			StartedAt:   now,
		})
	}
	if err := e.deals.InsertBatch(ctx, fresh); err != nil {
		return e.fail(ctx, job, err)
	}
	ended, err := e.deals.DeactivateExcept(ctx, keep, now)
	if err != nil {
		return e.fail(ctx, job, err)
	}

	e.logger.InfoContext(ctx, "deal detection finished",
		slog.Int("qualifying", len(keep)),
		slog.Int("started", len(fresh)),
		slog.Int("ended", ended))
	return e.complete(ctx, job, len(keep), 0)
}

// reconcileResult carries the counts of one reconcile pass. batchErr holds
// the first batch-level write failure; a failed batch counts all of its
// records as failed but the pass still completes.
type reconcileResult struct {
	processed int
	failed    int
	batchErr  error
}

// reconcile splits items into unseen and known records with a single keyed
// lookup, then inserts and updates them in bulk. Both batches always run;
// a failure in one does not abort the other.
func (e *Engine) reconcile(ctx context.Context, items []catalog.Product) (reconcileResult, error) {
	var res reconcileResult
	if len(items) == 0 {
		return res, nil
	}

	eans := make([]string, 0, len(items))
	for _, item := range items {
		eans = append(eans, item.EAN)
	}
	existing, err := e.products.ByEANs(ctx, eans)
	if err != nil {
		return res, err
	}
	known := make(map[string]storage.ProductRecord, len(existing))
	for _, record := range existing {
		known[record.EAN] = record
	}

	now := e.clock.Now()
	var inserts, updates []storage.ProductRecord
	for _, item := range items {
		if !catalog.ValidEAN(item.EAN) {
			res.failed++
			e.logger.WarnContext(ctx, "skipping product with invalid ean",
				slog.String("ean", item.EAN))
			continue
		}
		record := toRecord(item, now)
		if prior, ok := known[item.EAN]; ok {
			record.CreatedAt = prior.CreatedAt
			updates = append(updates, record)
		} else {
			record.CreatedAt = now
			inserts = append(inserts, record)
		}
	}

	e.runBatch(ctx, &res, "insert", inserts, e.products.InsertBatch)
	e.runBatch(ctx, &res, "upsert", updates, e.products.UpsertBatch)
	return res, nil
}

// runBatch executes one bulk write. On failure the whole batch counts as
// failed and the first error is kept on the result.
func (e *Engine) runBatch(ctx context.Context, res *reconcileResult, name string, records []storage.ProductRecord, op func(context.Context, []storage.ProductRecord) error) {
	if err := op(ctx, records); err != nil {
		res.failed += len(records)
		if res.batchErr == nil {
			res.batchErr = err
		}
		e.logger.WarnContext(ctx, "product batch write failed",
			slog.String("batch", name),
			slog.Int("size", len(records)),
			slog.String("error", err.Error()))
		return
	}
	res.processed += len(records)
}

func toRecord(p catalog.Product, now time.Time) storage.ProductRecord {
	record := storage.ProductRecord{
		EAN:           p.EAN,
		Title:         p.Title,
		Description:   p.Description,
		Brand:         p.Brand,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		DiscountPct:   p.DiscountPct,
		Availability:  string(p.Availability),
		ImageURL:      p.ImageURL,
		URL:           p.URL,
		UpdatedAt:     now,
	}
	if p.Rating != nil {
		record.RatingAvg = p.Rating.Average
		record.RatingCount = p.Rating.Count
	}
	return record
}

func (e *Engine) batchLimit() int {
	if e.cfg.BatchLimit > 0 {
		return e.cfg.BatchLimit
	}
	return config.DefaultSyncBatchLimit
}

func (e *Engine) begin(ctx context.Context, jobType storage.JobType) storage.SyncJobRecord {
	job := storage.SyncJobRecord{
		ID:        uuid.New(),
		Type:      jobType,
		Status:    storage.JobRunning,
		StartedAt: e.clock.Now(),
	}
	if err := e.jobs.Create(ctx, job); err != nil {
		e.logger.WarnContext(ctx, "failed to record sync job start",
			slog.String("type", string(jobType)), slog.String("error", err.Error()))
	}
	return job
}

// completeReconcile finishes a reconcile-backed job. A batch-level write
// failure is recorded on the job but does not fail it.
func (e *Engine) completeReconcile(ctx context.Context, job storage.SyncJobRecord, res reconcileResult) storage.SyncJobRecord {
	if res.batchErr != nil {
		job.Error = res.batchErr.Error()
	}
	return e.complete(ctx, job, res.processed, res.failed)
}

func (e *Engine) complete(ctx context.Context, job storage.SyncJobRecord, processed, failed int) storage.SyncJobRecord {
	now := e.clock.Now()
	job.Status = storage.JobCompleted
	job.CompletedAt = &now
	job.ItemsProcessed = processed
	job.ItemsFailed = failed
	e.persist(ctx, job)
	return job
}

func (e *Engine) fail(ctx context.Context, job storage.SyncJobRecord, cause error) storage.SyncJobRecord {
	now := e.clock.Now()
	job.Status = storage.JobFailed
	job.CompletedAt = &now
	job.Error = cause.Error()
	e.persist(ctx, job)
	e.logger.ErrorContext(ctx, "sync job failed",
		slog.String("type", string(job.Type)), slog.String("error", cause.Error()))
	return job
}

func (e *Engine) persist(ctx context.Context, job storage.SyncJobRecord) {
	if err := e.jobs.Update(ctx, job); err != nil {
		e.logger.WarnContext(ctx, "failed to persist sync job",
			slog.String("id", job.ID.String()), slog.String("error", err.Error()))
	}
}
