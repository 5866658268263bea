//go:build unit

package syncer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/config"
	"productpraat/internal/storage"
	"productpraat/internal/syncer"
)

func TestScheduler_RunOnceIngestsConfiguredTargets(t *testing.T) {
	fx := newEngineFixture(t)
	fx.catalog.searchPage = &catalog.SearchPage{
		Items: []catalog.Product{product("1111111111111", 0)},
	}
	fx.catalog.popular = []catalog.Product{product("2222222222222", 0)}

	sched := syncer.NewScheduler(fx.engine, config.SyncConfig{
		SearchTerms: []string{"airfryer", "smartwatch"},
		CategoryIDs: []string{"10404"},
	}, testLogger())

	sched.RunOnce(context.Background())

	assert.Equal(t, []string{"airfryer", "smartwatch"}, fx.catalog.searchTerms)
	assert.Equal(t, []string{"10404"}, fx.catalog.popularCats)

	var types []storage.JobType
	for _, job := range fx.jobs.created {
		types = append(types, job.Type)
	}
	assert.Equal(t, []storage.JobType{
		storage.JobSearchSync,
		storage.JobSearchSync,
		storage.JobPopularProducts,
		storage.JobPriceUpdate,
		storage.JobRatingUpdate,
		storage.JobDealDetection,
	}, types)

	// the ingestion stage actually stored products this cycle
	assert.Contains(t, fx.products.records, "1111111111111")
	assert.Contains(t, fx.products.records, "2222222222222")
}

func TestScheduler_RunOnceWithoutTargetsStillMaintains(t *testing.T) {
	fx := newEngineFixture(t)

	sched := syncer.NewScheduler(fx.engine, config.SyncConfig{}, testLogger())
	sched.RunOnce(context.Background())

	var types []storage.JobType
	for _, job := range fx.jobs.created {
		types = append(types, job.Type)
	}
	assert.Equal(t, []storage.JobType{
		storage.JobPriceUpdate,
		storage.JobRatingUpdate,
		storage.JobDealDetection,
	}, types)
}
