//go:build unit

package bol_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"productpraat/internal/bol"
	"productpraat/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintSortsQueryParameters(t *testing.T) {
	a := bol.Fingerprint(http.MethodGet, "/products/search", url.Values{
		"search-term": {"samsung tv"},
		"page":        {"1"},
	})
	b := bol.Fingerprint(http.MethodGet, "/products/search", url.Values{
		"page":        {"1"},
		"search-term": {"samsung tv"},
	})
	assert.Equal(t, a, b)
	assert.Equal(t, "GET /products/search?page=1&search-term=samsung+tv", a)

	assert.Equal(t, "GET /categories", bol.Fingerprint(http.MethodGet, "/categories", nil))
}

func TestResponseCacheRoundtrip(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(10, clk)

	cache.Set("k", []byte(`{"ok":true}`), http.StatusOK, time.Minute)

	body, status, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestResponseCacheExpiryEvictsOnRead(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(10, clk)

	cache.Set("k", []byte("v"), http.StatusOK, time.Minute)
	clk.Add(time.Minute + time.Second)

	_, _, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestResponseCacheRejectsZeroTTL(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(10, clk)

	cache.Set("zero", []byte("v"), http.StatusOK, 0)
	cache.Set("negative", []byte("v"), http.StatusOK, -time.Second)

	assert.Equal(t, 0, cache.Len())
}

func TestResponseCacheEvictsOldestInsertedFirst(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(3, clk)

	cache.Set("first", []byte("1"), http.StatusOK, time.Hour)
	cache.Set("second", []byte("2"), http.StatusOK, time.Hour)
	cache.Set("third", []byte("3"), http.StatusOK, time.Hour)

	// A read must not protect the oldest entry: eviction is FIFO, not LRU.
	_, _, ok := cache.Get("first")
	require.True(t, ok)

	cache.Set("fourth", []byte("4"), http.StatusOK, time.Hour)

	_, _, ok = cache.Get("first")
	assert.False(t, ok, "oldest-inserted entry must be evicted")
	for _, key := range []string{"second", "third", "fourth"} {
		_, _, ok := cache.Get(key)
		assert.True(t, ok, "entry %q must survive", key)
	}
}

func TestResponseCacheClear(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(10, clk)

	cache.Set("a", []byte("1"), http.StatusOK, time.Hour)
	cache.Set("b", []byte("2"), http.StatusOK, time.Hour)
	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	_, _, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestResponseCacheOverwriteKeepsInsertionOrder(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cache := bol.NewResponseCache(2, clk)

	cache.Set("a", []byte("1"), http.StatusOK, time.Hour)
	cache.Set("b", []byte("2"), http.StatusOK, time.Hour)
	cache.Set("a", []byte("1b"), http.StatusOK, time.Hour)
	cache.Set("c", []byte("3"), http.StatusOK, time.Hour)

	// "a" keeps its original slot, so it is still the oldest insertion.
	_, _, ok := cache.Get("a")
	assert.False(t, ok)
	body, _, ok := cache.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", string(body))
}
