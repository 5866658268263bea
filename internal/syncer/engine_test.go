//go:build unit

package syncer_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/storage"
	"productpraat/internal/syncer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeCatalog struct {
	searchPage *catalog.SearchPage
	searchErr  error
	popular    []catalog.Product
	offers     map[string]*catalog.Offer
	offerErrs  map[string]error
	ratings    map[string]*catalog.RatingSummary

	searchTerms []string
	popularCats []string
}

func (f *fakeCatalog) Search(_ context.Context, term string, _ catalog.SearchFilters, _, _ int) (*catalog.SearchPage, error) {
	f.searchTerms = append(f.searchTerms, term)
	return f.searchPage, f.searchErr
}

func (f *fakeCatalog) PopularProducts(_ context.Context, categoryID string, _ int) ([]catalog.Product, error) {
	f.popularCats = append(f.popularCats, categoryID)
	return f.popular, nil
}

func (f *fakeCatalog) BestOffer(_ context.Context, ean string) (*catalog.Offer, error) {
	if err, ok := f.offerErrs[ean]; ok {
		return nil, err
	}
	return f.offers[ean], nil
}

func (f *fakeCatalog) Rating(_ context.Context, ean string) (*catalog.RatingSummary, error) {
	return f.ratings[ean], nil
}

type fakeProductStore struct {
	records map[string]storage.ProductRecord

	insertErr error

	inserted [][]storage.ProductRecord
	upserted [][]storage.ProductRecord
	updates  []storage.ProductRecord
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{records: map[string]storage.ProductRecord{}}
}

func (f *fakeProductStore) List(_ context.Context, _ storage.ProductFilter) ([]storage.ProductRecord, error) {
	var out []storage.ProductRecord
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeProductStore) ByEANs(_ context.Context, eans []string) ([]storage.ProductRecord, error) {
	var out []storage.ProductRecord
	for _, ean := range eans {
		if r, ok := f.records[ean]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProductStore) InsertBatch(_ context.Context, records []storage.ProductRecord) error {
	f.inserted = append(f.inserted, records)
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range records {
		f.records[r.EAN] = r
	}
	return nil
}

func (f *fakeProductStore) UpsertBatch(_ context.Context, records []storage.ProductRecord) error {
	f.upserted = append(f.upserted, records)
	for _, r := range records {
		f.records[r.EAN] = r
	}
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, record storage.ProductRecord) error {
	f.updates = append(f.updates, record)
	f.records[record.EAN] = record
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, ean string) error {
	delete(f.records, ean)
	return nil
}

type fakeDealStore struct {
	active      []storage.DealRecord
	inserted    []storage.DealRecord
	deactivated [][]string
	endedAt     []time.Time
}

func (f *fakeDealStore) ActiveDeals(_ context.Context) ([]storage.DealRecord, error) {
	return f.active, nil
}

func (f *fakeDealStore) InsertBatch(_ context.Context, deals []storage.DealRecord) error {
	f.inserted = append(f.inserted, deals...)
	return nil
}

func (f *fakeDealStore) DeactivateExcept(_ context.Context, keep []string, endedAt time.Time) (int, error) {
	f.deactivated = append(f.deactivated, keep)
	f.endedAt = append(f.endedAt, endedAt)
	kept := map[string]bool{}
	for _, ean := range keep {
		kept[ean] = true
	}
	var ended int
	for _, deal := range f.active {
		if !kept[deal.EAN] {
			ended++
		}
	}
	return ended, nil
}

type fakeJobStore struct {
	created []storage.SyncJobRecord
	updated []storage.SyncJobRecord
}

func (f *fakeJobStore) Create(_ context.Context, job storage.SyncJobRecord) error {
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobStore) Update(_ context.Context, job storage.SyncJobRecord) error {
	f.updated = append(f.updated, job)
	return nil
}

func (f *fakeJobStore) ByID(_ context.Context, id uuid.UUID) (*storage.SyncJobRecord, error) {
	for i := range f.updated {
		if f.updated[i].ID == id {
			return &f.updated[i], nil
		}
	}
	return nil, storage.WrapRepoErr("sync job not found", nil, storage.KindNotFound)
}

func (f *fakeJobStore) Recent(_ context.Context, _ int) ([]storage.SyncJobRecord, error) {
	return f.updated, nil
}

type engineFixture struct {
	engine   *syncer.Engine
	catalog  *fakeCatalog
	products *fakeProductStore
	deals    *fakeDealStore
	jobs     *fakeJobStore
	clock    *clock.MockClock
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	fx := &engineFixture{
		catalog:  &fakeCatalog{},
		products: newFakeProductStore(),
		deals:    &fakeDealStore{},
		jobs:     &fakeJobStore{},
		clock:    clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	fx.engine = syncer.NewEngine(
		fx.catalog, fx.products, fx.deals, fx.jobs,
		config.SyncConfig{BatchLimit: 50, DealThresholdPct: 15},
		fx.clock, testLogger(),
	)
	return fx
}

func product(ean string, discountPct float64) catalog.Product {
	return catalog.Product{
		EAN:          ean,
		Title:        "Product " + ean,
		Price:        100,
		DiscountPct:  discountPct,
		Availability: catalog.AvailabilityInStock,
		URL:          "https://www.bol.com/nl/p/" + ean,
	}
}

func TestSyncFromSearch_InsertsNewAndUpdatesKnown(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{
		EAN:       "1111111111111",
		Title:     "stale title",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	fx.catalog.searchPage = &catalog.SearchPage{
		Items: []catalog.Product{
			product("1111111111111", 0),
			product("2222222222222", 0),
		},
		TotalCount: 2,
	}

	job := fx.engine.SyncFromSearch(context.Background(), "tv")

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 2, job.ItemsProcessed)
	assert.Zero(t, job.ItemsFailed)

	require.Len(t, fx.products.inserted, 1)
	require.Len(t, fx.products.inserted[0], 1)
	assert.Equal(t, "2222222222222", fx.products.inserted[0][0].EAN)

	require.Len(t, fx.products.upserted, 1)
	require.Len(t, fx.products.upserted[0], 1)
	updated := fx.products.upserted[0][0]
	assert.Equal(t, "1111111111111", updated.EAN)
	assert.Equal(t, "Product 1111111111111", updated.Title)
	// creation timestamp survives the update
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), updated.CreatedAt)
}

func TestSyncFromSearch_SecondRunInsertsNothing(t *testing.T) {
	fx := newEngineFixture(t)
	fx.catalog.searchPage = &catalog.SearchPage{
		Items: []catalog.Product{product("1111111111111", 0), product("2222222222222", 0)},
	}

	first := fx.engine.SyncFromSearch(context.Background(), "tv")
	second := fx.engine.SyncFromSearch(context.Background(), "tv")

	assert.Equal(t, storage.JobCompleted, first.Status)
	assert.Equal(t, storage.JobCompleted, second.Status)
	require.Len(t, fx.products.inserted, 2)
	assert.Len(t, fx.products.inserted[0], 2)
	assert.Empty(t, fx.products.inserted[1])
	assert.Len(t, fx.products.upserted[1], 2)
}

func TestSyncFromSearch_SkipsInvalidEAN(t *testing.T) {
	fx := newEngineFixture(t)
	fx.catalog.searchPage = &catalog.SearchPage{
		Items: []catalog.Product{product("not-an-ean", 0), product("2222222222222", 0)},
	}

	job := fx.engine.SyncFromSearch(context.Background(), "tv")

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 1, job.ItemsProcessed)
	assert.Equal(t, 1, job.ItemsFailed)
}

func TestSyncFromSearch_InsertBatchFailureCompletesWithFailedCount(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111"}
	fx.products.insertErr = assert.AnError
	fx.catalog.searchPage = &catalog.SearchPage{
		Items: []catalog.Product{
			product("1111111111111", 0),
			product("2222222222222", 0),
		},
	}

	job := fx.engine.SyncFromSearch(context.Background(), "tv")

	// a failed batch counts its records as failed but the job completes
	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 1, job.ItemsProcessed)
	assert.Equal(t, 1, job.ItemsFailed)
	assert.NotEmpty(t, job.Error)

	// the update batch still ran
	require.Len(t, fx.products.upserted, 1)
	require.Len(t, fx.products.upserted[0], 1)
	assert.Equal(t, "1111111111111", fx.products.upserted[0][0].EAN)
}

func TestSyncFromSearch_SearchFailureFailsJob(t *testing.T) {
	fx := newEngineFixture(t)
	fx.catalog.searchErr = assert.AnError

	job := fx.engine.SyncFromSearch(context.Background(), "tv")

	assert.Equal(t, storage.JobFailed, job.Status)
	assert.NotEmpty(t, job.Error)
	require.NotNil(t, job.CompletedAt)
	require.Len(t, fx.jobs.updated, 1)
	assert.Equal(t, storage.JobFailed, fx.jobs.updated[0].Status)
}

func TestUpdatePricesAndStock_PartialFailure(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111", Price: 50}
	fx.products.records["2222222222222"] = storage.ProductRecord{EAN: "2222222222222", Price: 80}
	fx.catalog.offers = map[string]*catalog.Offer{
		"1111111111111": {Price: 40, StrikethroughPrice: 50, Availability: catalog.AvailabilityInStock},
	}
	fx.catalog.offerErrs = map[string]error{"2222222222222": assert.AnError}

	job := fx.engine.UpdatePricesAndStock(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 1, job.ItemsProcessed)
	assert.Equal(t, 1, job.ItemsFailed)

	updated := fx.products.records["1111111111111"]
	assert.Equal(t, 50.0, updated.Price)
	assert.Equal(t, 40.0, updated.DiscountPrice)
	assert.Equal(t, 20.0, updated.DiscountPct)
	assert.Equal(t, "in_stock", updated.Availability)
}

func TestUpdatePricesAndStock_MissingOfferMarksOutOfStock(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{
		EAN: "1111111111111", Price: 50, Availability: "in_stock",
	}

	job := fx.engine.UpdatePricesAndStock(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, "out_of_stock", fx.products.records["1111111111111"].Availability)
}

func TestDetectDeals_ThresholdBoundary(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111", DiscountPct: 15}
	fx.products.records["2222222222222"] = storage.ProductRecord{EAN: "2222222222222", DiscountPct: 14.9}

	job := fx.engine.DetectDeals(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 1, job.ItemsProcessed)
	require.Len(t, fx.deals.inserted, 1)
	assert.Equal(t, "1111111111111", fx.deals.inserted[0].EAN)
	assert.True(t, fx.deals.inserted[0].Active)
	require.Len(t, fx.deals.deactivated, 1)
	assert.Equal(t, []string{"1111111111111"}, fx.deals.deactivated[0])
}

func TestDetectDeals_AlreadyActiveNotReinserted(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111", DiscountPct: 20}
	fx.deals.active = []storage.DealRecord{{EAN: "1111111111111", Active: true}}

	job := fx.engine.DetectDeals(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Empty(t, fx.deals.inserted)
}

func TestDetectDeals_EmptySetDeactivatesAll(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111", DiscountPct: 5}
	fx.deals.active = []storage.DealRecord{
		{EAN: "1111111111111", Active: true},
		{EAN: "2222222222222", Active: true},
	}

	job := fx.engine.DetectDeals(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	assert.Equal(t, 0, job.ItemsProcessed)
	require.Len(t, fx.deals.deactivated, 1)
	assert.Empty(t, fx.deals.deactivated[0])
	// end timestamp comes from the engine's clock, not the store
	require.Len(t, fx.deals.endedAt, 1)
	assert.Equal(t, fx.clock.Now(), fx.deals.endedAt[0])
}

func TestUpdateRatings_AppliesSummary(t *testing.T) {
	fx := newEngineFixture(t)
	fx.products.records["1111111111111"] = storage.ProductRecord{EAN: "1111111111111"}
	fx.catalog.ratings = map[string]*catalog.RatingSummary{
		"1111111111111": {Average: 4.3, Count: 128},
	}

	job := fx.engine.UpdateRatings(context.Background())

	assert.Equal(t, storage.JobCompleted, job.Status)
	updated := fx.products.records["1111111111111"]
	assert.Equal(t, 4.3, updated.RatingAvg)
	assert.Equal(t, 128, updated.RatingCount)
}

func TestEngine_JobLifecycleRecorded(t *testing.T) {
	fx := newEngineFixture(t)
	fx.catalog.searchPage = &catalog.SearchPage{Items: []catalog.Product{product("1111111111111", 0)}}

	job := fx.engine.SyncFromSearch(context.Background(), "tv")

	require.Len(t, fx.jobs.created, 1)
	assert.Equal(t, storage.JobRunning, fx.jobs.created[0].Status)
	assert.Equal(t, storage.JobSearchSync, fx.jobs.created[0].Type)

	require.Len(t, fx.jobs.updated, 1)
	assert.Equal(t, job.ID, fx.jobs.updated[0].ID)
	assert.Equal(t, storage.JobCompleted, fx.jobs.updated[0].Status)
	assert.Equal(t, fx.clock.Now(), *fx.jobs.updated[0].CompletedAt)
}
